package domain

import "strings"

// SchemaKind discriminates the schema variants.
type SchemaKind int

const (
	// SchemaScalar is any schema that is neither object, array nor reference.
	SchemaScalar SchemaKind = iota
	// SchemaObject is an object schema with (possibly zero) properties.
	SchemaObject
	// SchemaArray is an array schema with an optional item schema.
	SchemaArray
	// SchemaRef is a "$ref" pointer to a component.
	SchemaRef
)

// String returns the name of the schema kind.
func (k SchemaKind) String() string {
	switch k {
	case SchemaScalar:
		return "scalar"
	case SchemaObject:
		return "object"
	case SchemaArray:
		return "array"
	case SchemaRef:
		return "ref"
	default:
		return "unknown"
	}
}

// Schema is a typed, recursive JSON schema node.
//
// Only the fields relevant to Kind are set: Properties for objects, Items for
// arrays and Ref for references.
type Schema struct {
	Kind        SchemaKind
	Type        string
	Format      string
	Description string
	Default     string
	HasDefault  bool
	Ref         string
	Properties  []Property
	Items       *Schema
}

// Property is a named object property, kept in declaration order.
type Property struct {
	Name   string
	Schema *Schema
}

// Property returns the schema of the named property, or nil.
func (s *Schema) Property(name string) *Schema {
	for _, prop := range s.Properties {
		if prop.Name == name {
			return prop.Schema
		}
	}

	return nil
}

// RefName returns the last segment of a reference, e.g. "Pet" for "#/components/schemas/Pet".
func RefName(ref string) string {
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}

	return ref
}

// Components maps a component category (e.g. "schemas") to its named schemas.
type Components map[string]map[string]*Schema
