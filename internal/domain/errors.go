package domain

import "errors"

var (
	// ErrUnsupportedVersion is returned for documents that are not OpenAPI 3.x.
	ErrUnsupportedVersion = errors.New("only OpenAPI 3.x is supported")

	// ErrInvalidReference is returned for "$ref" strings that are not local component pointers.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrUnresolvedReference is returned when a reference points to a missing component.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrCircularReference is returned when a reference chain loops back on itself.
	ErrCircularReference = errors.New("circular reference")
	// ErrUnsupportedSchema is returned for schema nodes that cannot be decoded.
	ErrUnsupportedSchema = errors.New("unsupported schema")

	// ErrUnsupportedAuth is returned for unknown auth types in the configuration.
	ErrUnsupportedAuth = errors.New("unsupported auth type")

	// ErrMissingSource is returned when no OpenAPI source was given.
	ErrMissingSource = errors.New("source (OpenAPI URL or file path) must be specified")
	// ErrMissingOutput is returned when no output folder was given.
	ErrMissingOutput = errors.New("output folder must be specified")
)
