package openapi

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Validate runs kin-openapi's structural validation over the raw document.
func Validate(ctx context.Context, data []byte) error {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	spec, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("failed to parse OpenAPI file: %w", err)
	}

	if err := spec.Validate(ctx); err != nil {
		return fmt.Errorf("OpenAPI validation failed: %w", err)
	}

	return nil
}
