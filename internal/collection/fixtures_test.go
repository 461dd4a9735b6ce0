package collection

import (
	"io"

	"github.com/GabrielNunesIT/go-libs/logger"

	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

func discardLogger() logger.ILogger {
	return logger.NewConsoleLogger(io.Discard)
}

func scalar(typ, format, description string) *domain.Schema {
	return &domain.Schema{Kind: domain.SchemaScalar, Type: typ, Format: format, Description: description}
}

func ref(target string) *domain.Schema {
	return &domain.Schema{Kind: domain.SchemaRef, Ref: target}
}

func object(description string, props ...domain.Property) *domain.Schema {
	return &domain.Schema{Kind: domain.SchemaObject, Type: "object", Description: description, Properties: props}
}

func arrayOf(items *domain.Schema) *domain.Schema {
	return &domain.Schema{Kind: domain.SchemaArray, Type: "array", Items: items}
}

func prop(name string, schema *domain.Schema) domain.Property {
	return domain.Property{Name: name, Schema: schema}
}

func jsonBody(schema *domain.Schema) *domain.RequestBody {
	return &domain.RequestBody{Content: []domain.MediaType{{Name: "application/json", Schema: schema}}}
}

// petComponents describes a small pet store with a wrapped request body.
func petComponents() domain.Components {
	return domain.Components{
		"schemas": {
			"Pet": object("A pet",
				prop("id", scalar("integer", "int64", "identifier")),
				prop("name", scalar("string", "", "pet name")),
				prop("owner", object("",
					prop("email", scalar("string", "email", "")),
					prop("phones", arrayOf(scalar("string", "", ""))),
				)),
				prop("tags", arrayOf(ref("#/components/schemas/Tag"))),
				prop("category", ref("#/components/schemas/Tag")),
			),
			"Tag": object("",
				prop("label", scalar("string", "", "tag label")),
			),
			"PetEnvelope": object("",
				prop("data", ref("#/components/schemas/Pet")),
			),
			"Loop": object("",
				prop("children", arrayOf(ref("#/components/schemas/Loop"))),
			),
			"Broken": object("",
				prop("data", ref("#/components/schemas/Missing")),
			),
		},
	}
}
