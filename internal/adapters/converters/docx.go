package converters

import (
	"fmt"
	"io"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

const docxFormat = "docx"

// DocxConverter renders a collection catalog as a Word (DOCX) document.
type DocxConverter struct{}

// NewDocxConverter creates a new DOCX converter.
func NewDocxConverter() *DocxConverter {
	return &DocxConverter{}
}

// Format returns the output format name.
func (c *DocxConverter) Format() string {
	return docxFormat
}

// Convert writes the catalog as DOCX.
func (c *DocxConverter) Convert(catalog *domain.Catalog, output io.Writer) error {
	document, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	c.addTitle(document, catalog)

	for _, group := range groupByFolder(catalog) {
		c.addFolder(document, group)
	}

	if err := document.Write(output); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	return nil
}

func (c *DocxConverter) addTitle(document *docx.RootDoc, catalog *domain.Catalog) {
	_, _ = document.AddHeading(catalog.Title, 0) // Level 0 = Title style
	document.AddParagraph(fmt.Sprintf("Version: %s", catalog.Version))
	document.AddParagraph(fmt.Sprintf("Requests: %d", len(catalog.Entries)))
	document.AddEmptyParagraph()
}

func (c *DocxConverter) addFolder(document *docx.RootDoc, group folderGroup) {
	_, _ = document.AddHeading(group.name, 1)

	for _, entry := range group.entries {
		c.addEntry(document, entry)
	}
}

func (c *DocxConverter) addEntry(document *docx.RootDoc, entry domain.CatalogEntry) {
	_, _ = document.AddHeading(formatTitle(entry), 2)

	if entry.Summary != "" {
		document.AddParagraph(entry.Summary)
	}

	document.AddParagraph(fmt.Sprintf("File: %s (seq %d)", entry.File, entry.Seq))
	document.AddParagraph(fmt.Sprintf("Auth: %s", formatAuth(entry.Auth)))

	if len(entry.Query) > 0 {
		_, _ = document.AddHeading("Query", 3)

		for _, q := range entry.Query {
			document.AddParagraph(fmt.Sprintf("• %s", formatQueryParam(q)))
		}
	}

	document.AddEmptyParagraph()
}
