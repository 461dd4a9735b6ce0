// Package collection turns an OpenAPI document into a Bruno request collection.
package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

// wrapperKeys are the property names through which a request body reference is unwrapped.
var wrapperKeys = []string{"data", "items"}

// Resolver resolves local "#/components/<category>/<name>" references.
type Resolver struct {
	components domain.Components
}

// NewResolver creates a resolver over the document components.
func NewResolver(components domain.Components) *Resolver {
	return &Resolver{components: components}
}

// Resolve returns the schema the reference points to.
func (r *Resolver) Resolve(ref string) (*domain.Schema, error) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReference, ref)
	}

	segments := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	if len(segments) != 3 || segments[0] != "components" {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReference, ref)
	}

	category, name := unescape(segments[1]), unescape(segments[2])

	schema, ok := r.components[category][name]
	if !ok || schema == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnresolvedReference, ref)
	}

	return schema, nil
}

// unescape decodes JSON pointer tokens.
func unescape(token string) string {
	return strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
}

// RequestBody resolves the application/json schema of a request body into a
// pretty-printed JSON skeleton and its reference documentation.
//
// A referenced schema whose "data" or "items" property is itself a reference
// is unwrapped through that property, each key checked once. On error the
// documentation collected so far is returned alongside it.
func (r *Resolver) RequestBody(body *domain.RequestBody) (string, string, error) {
	schema := body.JSONSchema()
	if schema == nil {
		return "", "", nil
	}

	if schema.Kind != domain.SchemaRef {
		if schema.Kind != domain.SchemaObject {
			return "", "", nil
		}

		skeleton, err := renderSkeleton(schema)
		return skeleton, "", err
	}

	ref := schema.Ref

	target, err := r.Resolve(ref)
	if err != nil {
		return "", "", err
	}

	for _, key := range wrapperKeys {
		if target.Kind != domain.SchemaObject {
			continue
		}

		prop := target.Property(key)
		if prop == nil || prop.Kind != domain.SchemaRef {
			continue
		}

		ref = prop.Ref
		if target, err = r.Resolve(ref); err != nil {
			return "", "", err
		}
	}

	skeleton, err := renderSkeleton(target)
	if err != nil {
		return "", "", err
	}

	docs, err := r.ReferenceDocs(ref)

	return skeleton, docs, err
}

// ReferenceDocs renders Markdown tables for the referenced object schema and,
// recursively, for every array property whose items are references.
func (r *Resolver) ReferenceDocs(ref string) (string, error) {
	var docs strings.Builder

	err := r.collectDocs(ref, &docs, make(map[string]bool))

	return docs.String(), err
}

// collectDocs appends to docs. chain holds the references currently being
// expanded; meeting one of them again is a cycle.
func (r *Resolver) collectDocs(ref string, docs *strings.Builder, chain map[string]bool) error {
	if ref == "" {
		return nil
	}

	if chain[ref] {
		return fmt.Errorf("%w: %q", domain.ErrCircularReference, ref)
	}

	schema, err := r.Resolve(ref)
	if err != nil {
		return err
	}

	chain[ref] = true
	defer delete(chain, ref)

	if schema.Kind == domain.SchemaObject {
		heading := schema.Description
		if heading == "" {
			heading = domain.RefName(ref)
		}

		fmt.Fprintf(docs, "## %s\n", heading)
		docs.WriteString("| name | type | description | format |\n")
		docs.WriteString("| ---- | ---- | ----------- | ------ |\n")

		for _, prop := range schema.Properties {
			fmt.Fprintf(docs, "| %s | %s | %s | %s |\n", prop.Name, prop.Schema.Type, prop.Schema.Description, prop.Schema.Format)
		}

		docs.WriteString("\n\n")
	}

	for _, prop := range schema.Properties {
		items := prop.Schema.Items
		if items == nil || items.Kind != domain.SchemaRef {
			continue
		}

		if err := r.collectDocs(items.Ref, docs, chain); err != nil {
			return err
		}
	}

	return nil
}

// JSONObject is a JSON object that marshals its fields in insertion order.
type JSONObject []JSONField

// JSONField is one member of a JSONObject.
type JSONField struct {
	Name  string
	Value any
}

// MarshalJSON implements json.Marshaler.
func (o JSONObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, field := range o {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := encodeJSON(field.Name)
		if err != nil {
			return nil, err
		}

		value, err := encodeJSON(field.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// EmptyJSONBody builds a skeleton value for an object schema: nested objects
// recurse, arrays become empty and every other property an empty string.
func EmptyJSONBody(schema *domain.Schema) (JSONObject, error) {
	body := JSONObject{}

	for _, prop := range schema.Properties {
		var value any

		switch prop.Schema.Kind {
		case domain.SchemaObject:
			nested, err := EmptyJSONBody(prop.Schema)
			if err != nil {
				return nil, err
			}

			value = nested
		case domain.SchemaArray:
			value = []any{}
		case domain.SchemaScalar, domain.SchemaRef:
			value = ""
		default:
			return nil, fmt.Errorf("%w: property %q has kind %s", domain.ErrUnsupportedSchema, prop.Name, prop.Schema.Kind)
		}

		body = append(body, JSONField{Name: prop.Name, Value: value})
	}

	return body, nil
}

func renderSkeleton(schema *domain.Schema) (string, error) {
	body, err := EmptyJSONBody(schema)
	if err != nil {
		return "", err
	}

	out, err := encodeJSON(body)
	if err != nil {
		return "", err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, out, "", "  "); err != nil {
		return "", fmt.Errorf("failed to format JSON body: %w", err)
	}

	return pretty.String(), nil
}

// encodeJSON marshals v without HTML escaping.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
