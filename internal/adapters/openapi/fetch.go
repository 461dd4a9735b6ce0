package openapi

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/resty.v1"

	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

const fetchTimeout = 60 * time.Second

// Fetcher reads an OpenAPI document from a URL or a local file.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a fetcher with a default HTTP client.
func NewFetcher() *Fetcher {
	cl := http.Client{Timeout: fetchTimeout}

	return &Fetcher{client: resty.NewWithClient(&cl)}
}

// Fetch returns the raw document. Sources starting with http:// or https://
// are downloaded; anything else is read from disk.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	if source == "" {
		return nil, domain.ErrMissingSource
	}

	if !isURL(source) {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %s: %w", source, err)
		}

		return data, nil
	}

	resp, err := f.client.R().SetContext(ctx).Get(source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from URL: %s: %w", source, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch data from URL: %s: status code %d", source, resp.StatusCode())
	}

	return resp.Body(), nil
}

func isURL(source string) bool {
	lower := strings.ToLower(source)

	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
