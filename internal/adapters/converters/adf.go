package converters

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

const adfFormat = "confluence"

// ADFConverter renders a collection catalog as Atlassian Document Format (ADF) for Confluence.
type ADFConverter struct{}

// NewADFConverter creates a new ADF converter.
func NewADFConverter() *ADFConverter {
	return &ADFConverter{}
}

// Format returns the output format name.
func (c *ADFConverter) Format() string {
	return adfFormat
}

// ADF node types.
type adfDocument struct {
	Version int       `json:"version"`
	Type    string    `json:"type"`
	Content []adfNode `json:"content"`
}

type adfNode struct {
	Type    string    `json:"type"`
	Attrs   *adfAttrs `json:"attrs,omitempty"`
	Content []adfNode `json:"content,omitempty"`
	Text    string    `json:"text,omitempty"`
	Marks   []adfMark `json:"marks,omitempty"`
}

type adfAttrs struct {
	Level int `json:"level,omitempty"`
}

type adfMark struct {
	Type string `json:"type"`
}

// Convert writes the catalog as ADF JSON.
func (c *ADFConverter) Convert(catalog *domain.Catalog, output io.Writer) error {
	adf := &adfDocument{
		Version: 1,
		Type:    "doc",
		Content: []adfNode{
			c.heading(catalog.Title, 1),
			c.paragraph(fmt.Sprintf("Version: %s", catalog.Version)),
		},
	}

	for _, group := range groupByFolder(catalog) {
		adf.Content = append(adf.Content, c.heading(group.name, 2))

		for _, entry := range group.entries {
			adf.Content = append(adf.Content, c.entryNodes(entry)...)
		}
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(adf); err != nil {
		return fmt.Errorf("failed to encode ADF: %w", err)
	}

	return nil
}

func (c *ADFConverter) heading(text string, level int) adfNode {
	return adfNode{
		Type:  "heading",
		Attrs: &adfAttrs{Level: level},
		Content: []adfNode{
			{Type: "text", Text: text},
		},
	}
}

func (c *ADFConverter) paragraph(text string) adfNode {
	return adfNode{
		Type: "paragraph",
		Content: []adfNode{
			{Type: "text", Text: text},
		},
	}
}

func (c *ADFConverter) codeText(text string) adfNode {
	return adfNode{
		Type: "text",
		Text: text,
		Marks: []adfMark{
			{Type: "code"},
		},
	}
}

func (c *ADFConverter) entryNodes(entry domain.CatalogEntry) []adfNode {
	nodes := []adfNode{c.heading(formatTitle(entry), 3)}

	if entry.Summary != "" {
		nodes = append(nodes, adfNode{
			Type: "paragraph",
			Content: []adfNode{
				{Type: "text", Text: entry.Summary, Marks: []adfMark{{Type: "strong"}}},
			},
		})
	}

	nodes = append(nodes, adfNode{
		Type: "paragraph",
		Content: []adfNode{
			{Type: "text", Text: "File: "},
			c.codeText(entry.File),
			{Type: "text", Text: fmt.Sprintf(" (seq %d), auth: %s", entry.Seq, formatAuth(entry.Auth))},
		},
	})

	if len(entry.Query) > 0 {
		nodes = append(nodes, c.heading("Query", 4), c.queryList(entry.Query))
	}

	// Divider between requests
	nodes = append(nodes, adfNode{Type: "rule"})

	return nodes
}

func (c *ADFConverter) queryList(query []domain.KeyValue) adfNode {
	items := make([]adfNode, 0, len(query))

	for _, q := range query {
		rest := ""
		if q.Value != "" {
			rest = " = " + q.Value
		}
		if q.Enabled {
			rest += " (required)"
		}

		text := []adfNode{c.codeText(q.Name)}
		if rest != "" {
			text = append(text, adfNode{Type: "text", Text: rest})
		}

		items = append(items, adfNode{
			Type: "listItem",
			Content: []adfNode{
				{Type: "paragraph", Content: text},
			},
		})
	}

	return adfNode{
		Type:    "bulletList",
		Content: items,
	}
}
