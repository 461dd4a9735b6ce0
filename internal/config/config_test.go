package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

func TestIgnore_Matches(t *testing.T) {
	rule := Ignore{
		IDs:     []string{"login"},
		Folders: []string{"/admin"},
	}

	tests := []struct {
		name        string
		operationID string
		path        string
		want        bool
	}{
		{"id listed, path unrelated", "login", "/auth/login", true},
		{"folder prefix, id unrelated", "listUsers", "/admin/users", true},
		{"prefix is not segment aware", "x", "/administrators", true},
		{"neither", "listPets", "/pets", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rule.Matches(tt.operationID, tt.path))
		})
	}
}

func TestIgnore_EmptyRuleMatchesNothing(t *testing.T) {
	assert.False(t, Ignore{}.Matches("any", "/any"))
}

func TestBruno_DescriptorDefaults(t *testing.T) {
	d := Bruno{}.Descriptor()

	assert.Equal(t, domain.Descriptor{
		Version: "1",
		Name:    "Untitled",
		Type:    "collection",
		Ignore:  []string{"node_modules", ".git"},
	}, d)
}

func TestBruno_DescriptorKeepsValues(t *testing.T) {
	d := Bruno{Name: "Pets", Version: "2", Type: "collection", Ignore: []string{}}.Descriptor()

	assert.Equal(t, "Pets", d.Name)
	assert.Equal(t, "2", d.Version)
	assert.Empty(t, d.Ignore)
	assert.NotNil(t, d.Ignore)
}

func TestConfig_Validate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Auth.Type = "bearer"
	require.NoError(t, cfg.Validate())

	cfg.Auth.Type = "kerberos"
	assert.ErrorIs(t, cfg.Validate(), domain.ErrUnsupportedAuth)
}

func TestConfig_ValidateOAuth2(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		wantErr bool
	}{
		{"grant_type key", map[string]string{"grant_type": "client_credentials", "access_token_url": "http://t"}, false},
		{"grantType key", map[string]string{"grantType": "password"}, false},
		{"missing grant type", map[string]string{"access_token_url": "http://t"}, true},
		{"unknown grant type", map[string]string{"grant_type": "implicit"}, true},
		{"bad pkce", map[string]string{"grant_type": "authorization_code", "pkce": "maybe"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Auth = Auth{Type: "oauth2", Values: tt.values}

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnsupportedAuth)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Untitled", cfg.Bruno.Name)
	assert.Equal(t, "1", cfg.Bruno.Version)
	assert.False(t, cfg.Auth.Enabled())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `bruno:
  name: Pet Store
update:
  ignore:
    ids: [login]
    folders: [/internal]
auth:
  type: bearer
  values:
    token: "{{accessToken}}"
  ignore:
    ids: [login]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Pet Store", cfg.Bruno.Name)
	assert.Equal(t, "1", cfg.Bruno.Version)
	assert.Equal(t, []string{"login"}, cfg.Update.Ignore.IDs)
	assert.Equal(t, []string{"/internal"}, cfg.Update.Ignore.Folders)
	assert.Equal(t, "bearer", cfg.Auth.Type)
	assert.Equal(t, "{{accessToken}}", cfg.Auth.Values["token"])
	assert.True(t, cfg.Auth.Ignore.Matches("login", "/auth/login"))
}

func TestLoad_JSONFileWithUnknownAuth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"auth": {"type": "kerberos"}}`), 0o600))

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedAuth)
}
