// Package openapi loads OpenAPI documents into the domain model.
package openapi

import (
	"errors"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

// ErrInvalidDocument is returned when the input is not an OpenAPI object.
var ErrInvalidDocument = errors.New("invalid OpenAPI document")

var httpMethods = map[string]struct{}{
	"get":     {},
	"put":     {},
	"post":    {},
	"delete":  {},
	"options": {},
	"head":    {},
	"patch":   {},
	"trace":   {},
}

// Decode parses a JSON or YAML OpenAPI document. Paths, operations and schema
// properties are kept in the order they are declared.
func Decode(data []byte) (*domain.Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		node = node.Content[0]
	}

	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected an object at line %d", ErrInvalidDocument, node.Line)
	}

	top := make(map[string]*yaml.Node)
	_ = eachPair(node, func(key string, val *yaml.Node) error {
		top[key] = val
		return nil
	})

	d := &decoder{components: top["components"]}
	doc := &domain.Document{Components: domain.Components{}}

	if v := top["openapi"]; v != nil {
		doc.OpenAPI = v.Value
	}

	if v := top["info"]; v != nil {
		doc.Info = decodeInfo(v)
	}

	if v := top["tags"]; v != nil {
		doc.Tags = decodeTags(v)
	}

	if d.components != nil {
		schemas, err := d.schemas()
		if err != nil {
			return nil, err
		}
		if schemas != nil {
			doc.Components["schemas"] = schemas
		}
	}

	if v := top["paths"]; v != nil {
		paths, err := d.paths(v)
		if err != nil {
			return nil, err
		}
		doc.Paths = paths
	}

	return doc, nil
}

// decoder resolves parameter and request body references against the raw
// components node.
type decoder struct {
	components *yaml.Node
}

func (d *decoder) schemas() (map[string]*domain.Schema, error) {
	node := child(d.components, "schemas")
	if node == nil {
		return nil, nil
	}

	schemas := make(map[string]*domain.Schema)

	err := eachPair(node, func(name string, val *yaml.Node) error {
		schema, err := decodeSchema(val)
		if err != nil {
			return fmt.Errorf("components.schemas.%s: %w", name, err)
		}

		schemas[name] = schema
		return nil
	})

	return schemas, err
}

func (d *decoder) paths(node *yaml.Node) ([]domain.Path, error) {
	var paths []domain.Path

	err := eachPair(node, func(template string, item *yaml.Node) error {
		path := domain.Path{Template: template}

		err := eachPair(item, func(method string, val *yaml.Node) error {
			if _, ok := httpMethods[method]; !ok {
				return nil
			}

			op, err := d.operation(method, val)
			if err != nil {
				return fmt.Errorf("paths.%s.%s: %w", template, method, err)
			}

			path.Operations = append(path.Operations, op)
			return nil
		})
		if err != nil {
			return err
		}

		paths = append(paths, path)
		return nil
	})

	return paths, err
}

func (d *decoder) operation(method string, node *yaml.Node) (domain.Operation, error) {
	op := domain.Operation{Method: method}

	err := eachPair(node, func(key string, val *yaml.Node) error {
		switch key {
		case "operationId":
			op.OperationID = val.Value
		case "summary":
			op.Summary = val.Value
		case "description":
			op.Description = val.Value
		case "tags":
			op.Tags = scalars(val)
		case "parameters":
			params, err := d.parameters(val)
			if err != nil {
				return err
			}
			op.Parameters = params
		case "requestBody":
			body, err := d.requestBody(val)
			if err != nil {
				return err
			}
			op.RequestBody = body
		}
		return nil
	})

	return op, err
}

func (d *decoder) parameters(node *yaml.Node) ([]domain.Parameter, error) {
	node = deref(node)
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: parameters must be a list (line %d)", ErrInvalidDocument, node.Line)
	}

	params := make([]domain.Parameter, 0, len(node.Content))

	for _, item := range node.Content {
		item, err := d.follow(item)
		if err != nil {
			return nil, err
		}

		param := domain.Parameter{}

		err = eachPair(item, func(key string, val *yaml.Node) error {
			switch key {
			case "name":
				param.Name = val.Value
			case "in":
				param.In = val.Value
			case "description":
				param.Description = val.Value
			case "required":
				required, err := boolean(val)
				if err != nil {
					return fmt.Errorf("parameter %q: %w", param.Name, err)
				}
				param.Required = required
			case "schema":
				schema, err := decodeSchema(val)
				if err != nil {
					return fmt.Errorf("parameter %q: %w", param.Name, err)
				}
				param.Schema = *schema
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		params = append(params, param)
	}

	return params, nil
}

func (d *decoder) requestBody(node *yaml.Node) (*domain.RequestBody, error) {
	node, err := d.follow(node)
	if err != nil {
		return nil, err
	}

	body := &domain.RequestBody{}

	err = eachPair(node, func(key string, val *yaml.Node) error {
		switch key {
		case "description":
			body.Description = val.Value
		case "required":
			required, err := boolean(val)
			if err != nil {
				return fmt.Errorf("requestBody: %w", err)
			}
			body.Required = required
		case "content":
			return eachPair(val, func(mediaType string, media *yaml.Node) error {
				entry := domain.MediaType{Name: mediaType}

				if schemaNode := child(media, "schema"); schemaNode != nil {
					schema, err := decodeSchema(schemaNode)
					if err != nil {
						return fmt.Errorf("requestBody %s: %w", mediaType, err)
					}
					entry.Schema = schema
				}

				body.Content = append(body.Content, entry)
				return nil
			})
		}
		return nil
	})

	return body, err
}

// follow replaces a {"$ref": "#/components/..."} node with its target.
func (d *decoder) follow(node *yaml.Node) (*yaml.Node, error) {
	node = deref(node)

	ref := child(node, "$ref")
	if ref == nil {
		return node, nil
	}

	segments := strings.Split(strings.TrimPrefix(ref.Value, "#/"), "/")
	if !strings.HasPrefix(ref.Value, "#/") || len(segments) != 3 || segments[0] != "components" {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReference, ref.Value)
	}

	target := child(child(d.components, segments[1]), segments[2])
	if target == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnresolvedReference, ref.Value)
	}

	return deref(target), nil
}

func decodeSchema(node *yaml.Node) (*domain.Schema, error) {
	node = deref(node)
	if node == nil {
		return nil, fmt.Errorf("%w: missing schema", domain.ErrUnsupportedSchema)
	}

	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected an object at line %d", domain.ErrUnsupportedSchema, node.Line)
	}

	schema := &domain.Schema{}
	var props, items *yaml.Node

	_ = eachPair(node, func(key string, val *yaml.Node) error {
		switch key {
		case "$ref":
			schema.Ref = val.Value
		case "type":
			schema.Type = schemaType(val)
		case "format":
			schema.Format = val.Value
		case "description":
			schema.Description = val.Value
		case "default":
			if val.Kind == yaml.ScalarNode {
				schema.Default = val.Value
				schema.HasDefault = true
			}
		case "properties":
			props = val
		case "items":
			items = val
		}
		return nil
	})

	switch {
	case schema.Ref != "":
		schema.Kind = domain.SchemaRef
	case schema.Type == "object" || props != nil:
		schema.Kind = domain.SchemaObject

		if props != nil {
			err := eachPair(props, func(name string, val *yaml.Node) error {
				prop, err := decodeSchema(val)
				if err != nil {
					return fmt.Errorf("property %q: %w", name, err)
				}

				schema.Properties = append(schema.Properties, domain.Property{Name: name, Schema: prop})
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	case schema.Type == "array":
		schema.Kind = domain.SchemaArray

		if items != nil {
			item, err := decodeSchema(items)
			if err != nil {
				return nil, fmt.Errorf("items: %w", err)
			}
			schema.Items = item
		}
	default:
		schema.Kind = domain.SchemaScalar
	}

	return schema, nil
}

// schemaType reads "type", taking the first non-null entry of a 3.1 type list.
func schemaType(node *yaml.Node) string {
	node = deref(node)
	if node.Kind == yaml.ScalarNode {
		return node.Value
	}

	for _, t := range scalars(node) {
		if t != "null" {
			return t
		}
	}

	return ""
}

func decodeInfo(node *yaml.Node) domain.Info {
	var info domain.Info

	_ = eachPair(node, func(key string, val *yaml.Node) error {
		switch key {
		case "title":
			info.Title = val.Value
		case "version":
			info.Version = val.Value
		case "description":
			info.Description = val.Value
		}
		return nil
	})

	return info
}

func decodeTags(node *yaml.Node) []domain.Tag {
	node = deref(node)
	if node.Kind != yaml.SequenceNode {
		return nil
	}

	tags := make([]domain.Tag, 0, len(node.Content))
	for _, item := range node.Content {
		tags = append(tags, domain.Tag{
			Name:        scalar(child(item, "name")),
			Description: scalar(child(item, "description")),
		})
	}

	return tags
}

// eachPair walks a mapping node's key/value pairs in declaration order.
// Non-mapping nodes are an error.
func eachPair(node *yaml.Node, fn func(key string, val *yaml.Node) error) error {
	node = deref(node)
	if node == nil {
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: expected an object at line %d", ErrInvalidDocument, node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, deref(node.Content[i+1])); err != nil {
			return err
		}
	}

	return nil
}

func child(node *yaml.Node, key string) *yaml.Node {
	node = deref(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return deref(node.Content[i+1])
		}
	}

	return nil
}

// boolean decodes a YAML boolean scalar in any spelling the decoder accepts.
func boolean(node *yaml.Node) (bool, error) {
	var b bool
	if err := node.Decode(&b); err != nil {
		return false, fmt.Errorf("%w: expected a boolean at line %d", ErrInvalidDocument, node.Line)
	}

	return b, nil
}

func scalars(node *yaml.Node) []string {
	node = deref(node)
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil
	}

	values := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		values = append(values, scalar(item))
	}

	return values
}

func scalar(node *yaml.Node) string {
	node = deref(node)
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}

	return node.Value
}

func deref(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}

	return node
}
