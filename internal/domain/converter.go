package domain

import "io"

// CatalogConverter defines the interface for collection catalog exporters.
type CatalogConverter interface {
	// Convert renders the catalog in the target format.
	Convert(catalog *Catalog, output io.Writer) error

	// Format returns the output format name (e.g., "pdf", "docx").
	Format() string
}
