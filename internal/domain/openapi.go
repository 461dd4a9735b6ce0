// Package domain provides core business models and interfaces for the OpenAPI to Bruno generator.
package domain

import "strings"

// Document represents the subset of an OpenAPI 3 document the generator reads.
// Paths, operations and schema properties keep their declaration order.
type Document struct {
	OpenAPI    string
	Info       Info
	Tags       []Tag
	Paths      []Path
	Components Components
}

// IsVersion3 reports whether the document declares an OpenAPI 3.x version.
func (d *Document) IsVersion3() bool {
	return strings.HasPrefix(d.OpenAPI, "3")
}

// Info holds the document metadata.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Tag represents an OpenAPI tag.
type Tag struct {
	Name        string
	Description string
}

// Path represents an API endpoint path and its operations.
type Path struct {
	Template   string
	Operations []Operation
}

// Operation represents an HTTP operation on a path.
type Operation struct {
	Method      string // lower case, as declared in the document
	OperationID string
	Tags        []string
	Summary     string
	Description string
	Parameters  []Parameter // nil when the operation declares no parameters
	RequestBody *RequestBody
}

// Parameter represents a request parameter.
type Parameter struct {
	Name        string
	In          string // query, path, header, cookie
	Description string
	Required    bool
	Schema      Schema
}

// RequestBody represents a request body.
type RequestBody struct {
	Description string
	Required    bool
	Content     []MediaType
}

// JSONSchema returns the application/json schema of the body, or nil.
func (b *RequestBody) JSONSchema() *Schema {
	for _, media := range b.Content {
		if media.Name == "application/json" {
			return media.Schema
		}
	}

	return nil
}

// MediaType represents one content type entry and its schema.
type MediaType struct {
	Name   string
	Schema *Schema
}
