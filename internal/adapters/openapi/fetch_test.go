package openapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

func TestFetcher_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petstoreYAML), 0o600))

	data, err := NewFetcher().Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, petstoreYAML, string(data))
}

func TestFetcher_MissingFile(t *testing.T) {
	_, err := NewFetcher().Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFetcher_EmptySource(t *testing.T) {
	_, err := NewFetcher().Fetch(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMissingSource)
}

func TestFetcher_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openapi.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"openapi": "3.0.0"}`))
	}))
	defer server.Close()

	data, err := NewFetcher().Fetch(context.Background(), server.URL+"/openapi.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"openapi": "3.0.0"}`, string(data))

	_, err = NewFetcher().Fetch(context.Background(), server.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch data from URL")
	assert.Contains(t, err.Error(), "404")
}

func TestIsURL(t *testing.T) {
	assert.True(t, isURL("https://example.com/openapi.json"))
	assert.True(t, isURL("HTTP://example.com"))
	assert.False(t, isURL("openapi.json"))
	assert.False(t, isURL("./specs/api.yaml"))
}
