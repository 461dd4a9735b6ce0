package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

const petstore = `openapi: 3.0.0
info:
  title: Pets
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
            default: 20
    post:
      operationId: createPet
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Pet'
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func run(args ...string) error {
	app := New(logger.NewConsoleLogger(io.Discard))
	app.rootCmd.SetOut(io.Discard)
	app.rootCmd.SetErr(io.Discard)
	app.SetArgs(args)

	return app.Execute()
}

func TestRun_FreshGeneration(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "openapi.yaml")
	out := filepath.Join(dir, "collection")
	writeFile(t, source, petstore)
	writeFile(t, filepath.Join(out, "old", "stale.bru"), "meta {\n  name: stale\n  type: http\n  seq: 1\n}\n")
	writeFile(t, filepath.Join(out, "environments", "Local.bru"), "vars {\n  host: http://localhost\n}\n")
	writeFile(t, filepath.Join(out, "collection.bru"), "auth {\n  mode: none\n}\n")

	require.NoError(t, run("--source", source, "--output", out))

	var desc domain.Descriptor
	require.NoError(t, json.Unmarshal([]byte(readFile(t, filepath.Join(out, "bruno.json"))), &desc))
	assert.Equal(t, "Untitled", desc.Name)

	list := readFile(t, filepath.Join(out, "pets", "listPets.bru"))
	assert.Contains(t, list, "get {\n  url: {{host}}/pets\n}")
	assert.Contains(t, list, "query {\n  ~limit: 20\n}")

	create := readFile(t, filepath.Join(out, "pets", "createPet.bru"))
	assert.Contains(t, create, "  body: json\n")
	assert.Contains(t, create, "body:json {\n  {\n    \"name\": \"\"\n  }\n}")
	assert.Contains(t, create, "seq: 2")

	assert.NoDirExists(t, filepath.Join(out, "old"))
	assert.FileExists(t, filepath.Join(out, "environments", "Local.bru"))
	assert.FileExists(t, filepath.Join(out, "collection.bru"))
}

func TestRun_DotSegmentsStayUnderOutput(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "openapi.yaml")
	out := filepath.Join(dir, "a", "b", "out")
	writeFile(t, source, "openapi: 3.0.0\npaths:\n  /../../escaped:\n    get:\n      operationId: evil\n")

	require.NoError(t, run("-s", source, "-o", out))

	assert.NoFileExists(t, filepath.Join(dir, "a", "escaped", "evil.bru"))
	assert.FileExists(t, filepath.Join(out, "_", "_", "escaped", "evil.bru"))
}

func TestRun_OAuth2Config(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "openapi.yaml")
	cfgFile := filepath.Join(dir, "config.json")
	out := filepath.Join(dir, "out")
	writeFile(t, source, petstore)
	writeFile(t, cfgFile, `{"auth": {"type": "oauth2", "values": {"grant_type": "client_credentials", "access_token_url": "http://t"}}}`)

	require.NoError(t, run("-s", source, "-o", out, "-c", cfgFile))

	list := readFile(t, filepath.Join(out, "pets", "listPets.bru"))
	assert.Contains(t, list, "  auth: oauth2\n")
	assert.Contains(t, list, "auth:oauth2 {\n  grant_type: client_credentials\n  access_token_url: http://t\n")

	writeFile(t, cfgFile, `{"auth": {"type": "oauth2", "values": {"access_token_url": "http://t"}}}`)
	assert.ErrorIs(t, run("-s", source, "-o", filepath.Join(dir, "other"), "-c", cfgFile), domain.ErrUnsupportedAuth)
	assert.NoDirExists(t, filepath.Join(dir, "other"))
}

func TestRun_UpdateKeepsIgnoredFiles(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "openapi.yaml")
	cfgFile := filepath.Join(dir, "config.json")
	out := filepath.Join(dir, "collection")
	writeFile(t, source, petstore)
	writeFile(t, cfgFile, `{"bruno": {"name": "Pets"}, "update": {"ignore": {"ids": ["createPet"]}}}`)

	require.NoError(t, run("-s", source, "-o", out, "-c", cfgFile))

	edited := filepath.Join(out, "pets", "createPet.bru")
	writeFile(t, edited, "hand edited")

	require.NoError(t, run("-s", source, "-o", out, "-c", cfgFile, "--update"))

	assert.Equal(t, "hand edited", readFile(t, edited))
	assert.FileExists(t, filepath.Join(out, "pets", "listPets.bru"))
	assert.Contains(t, readFile(t, filepath.Join(out, "bruno.json")), `"name": "Pets"`)

	require.NoError(t, run("-s", source, "-o", out, "-c", cfgFile))
	assert.NotEqual(t, "hand edited", readFile(t, edited))
}

func TestRun_RejectsSwagger2(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "swagger.json")
	out := filepath.Join(dir, "collection")
	writeFile(t, source, `{"swagger": "2.0", "paths": {"/pets": {"get": {}}}}`)

	err := run("-s", source, "-o", out)

	assert.ErrorIs(t, err, domain.ErrUnsupportedVersion)
	assert.NoDirExists(t, out)
}

func TestRun_Catalog(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "openapi.yaml")
	catalog := filepath.Join(dir, "catalog.json")
	writeFile(t, source, petstore)

	require.NoError(t, run("-s", source, "-o", filepath.Join(dir, "out"), "--catalog", catalog, "--catalog-format", "confluence"))

	content := readFile(t, catalog)
	assert.Contains(t, content, `"type": "doc"`)
	assert.Contains(t, content, "GET {{host}}/pets")
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "openapi.yaml")
	writeFile(t, source, petstore)

	tests := []struct {
		name string
		args []string
	}{
		{"missing source flag", []string{"-o", dir}},
		{"missing output flag", []string{"-s", source}},
		{"missing source file", []string{"-s", filepath.Join(dir, "nope.yaml"), "-o", dir}},
		{"bad catalog format", []string{"-s", source, "-o", dir, "--catalog", filepath.Join(dir, "c.txt"), "--catalog-format", "html"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, run(tt.args...))
		})
	}
}

func TestRun_Validate(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "openapi.yaml")
	writeFile(t, source, "openapi: 3.0.0\npaths: {}\n")

	err := run("-s", source, "-o", filepath.Join(dir, "out"), "--validate")
	assert.Error(t, err)
}
