package collection

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(petComponents())

	schema, err := r.Resolve("#/components/schemas/Tag")
	require.NoError(t, err)
	assert.Equal(t, "label", schema.Properties[0].Name)

	tests := []struct {
		ref  string
		want error
	}{
		{"components/schemas/Tag", domain.ErrInvalidReference},
		{"#/definitions/Tag", domain.ErrInvalidReference},
		{"#/components/schemas", domain.ErrInvalidReference},
		{"#/components/schemas/Nope", domain.ErrUnresolvedReference},
		{"#/components/responses/Tag", domain.ErrUnresolvedReference},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			_, err := r.Resolve(tt.ref)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestResolver_ResolveEscapedName(t *testing.T) {
	r := NewResolver(domain.Components{"schemas": {"a/b": object("")}})

	_, err := r.Resolve("#/components/schemas/a~1b")
	assert.NoError(t, err)
}

func TestEmptyJSONBody(t *testing.T) {
	pet := petComponents()["schemas"]["Pet"]

	body, err := EmptyJSONBody(pet)
	require.NoError(t, err)

	out, err := json.Marshal(body)
	require.NoError(t, err)

	assert.Equal(t, `{"id":"","name":"","owner":{"email":"","phones":[]},"tags":[],"category":""}`, string(out))
}

func TestEmptyJSONBody_Idempotent(t *testing.T) {
	pet := petComponents()["schemas"]["Pet"]

	first, err := EmptyJSONBody(pet)
	require.NoError(t, err)
	second, err := EmptyJSONBody(pet)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEmptyJSONBody_UnknownKindFails(t *testing.T) {
	schema := object("", prop("weird", &domain.Schema{Kind: domain.SchemaKind(42)}))

	_, err := EmptyJSONBody(schema)
	assert.ErrorIs(t, err, domain.ErrUnsupportedSchema)
}

func TestResolver_ReferenceDocs(t *testing.T) {
	r := NewResolver(petComponents())

	docs, err := r.ReferenceDocs("#/components/schemas/Pet")
	require.NoError(t, err)

	want := "## A pet\n" +
		"| name | type | description | format |\n" +
		"| ---- | ---- | ----------- | ------ |\n" +
		"| id | integer | identifier | int64 |\n" +
		"| name | string | pet name |  |\n" +
		"| owner | object |  |  |\n" +
		"| tags | array |  |  |\n" +
		"| category |  |  |  |\n" +
		"\n\n" +
		"## Tag\n" +
		"| name | type | description | format |\n" +
		"| ---- | ---- | ----------- | ------ |\n" +
		"| label | string | tag label |  |\n" +
		"\n\n"

	assert.Equal(t, want, docs)
}

func TestResolver_ReferenceDocsDoesNotLeakBetweenCalls(t *testing.T) {
	r := NewResolver(petComponents())

	first, err := r.ReferenceDocs("#/components/schemas/Tag")
	require.NoError(t, err)

	_, err = r.ReferenceDocs("#/components/schemas/Pet")
	require.NoError(t, err)

	again, err := r.ReferenceDocs("#/components/schemas/Tag")
	require.NoError(t, err)

	assert.Equal(t, first, again)
}

func TestResolver_ReferenceDocsCircular(t *testing.T) {
	r := NewResolver(petComponents())

	docs, err := r.ReferenceDocs("#/components/schemas/Loop")

	assert.ErrorIs(t, err, domain.ErrCircularReference)
	assert.Contains(t, docs, "## Loop")
}

func TestResolver_RequestBodyUnwrapsData(t *testing.T) {
	r := NewResolver(petComponents())

	body, docs, err := r.RequestBody(jsonBody(ref("#/components/schemas/PetEnvelope")))
	require.NoError(t, err)

	want := "{\n" +
		"  \"id\": \"\",\n" +
		"  \"name\": \"\",\n" +
		"  \"owner\": {\n" +
		"    \"email\": \"\",\n" +
		"    \"phones\": []\n" +
		"  },\n" +
		"  \"tags\": [],\n" +
		"  \"category\": \"\"\n" +
		"}"

	assert.Equal(t, want, body)
	assert.Contains(t, docs, "## A pet")
	assert.NotContains(t, docs, "PetEnvelope")
}

func TestResolver_RequestBodyInlineSchema(t *testing.T) {
	r := NewResolver(nil)

	body, docs, err := r.RequestBody(jsonBody(object("", prop("q", scalar("string", "", "")))))
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"q\": \"\"\n}", body)
	assert.Empty(t, docs)
}

func TestResolver_RequestBodyWithoutJSON(t *testing.T) {
	r := NewResolver(petComponents())

	body, docs, err := r.RequestBody(&domain.RequestBody{
		Content: []domain.MediaType{{Name: "application/xml", Schema: ref("#/components/schemas/Pet")}},
	})

	require.NoError(t, err)
	assert.Empty(t, body)
	assert.Empty(t, docs)
}

func TestResolver_RequestBodyBrokenUnwrap(t *testing.T) {
	r := NewResolver(petComponents())

	_, _, err := r.RequestBody(jsonBody(ref("#/components/schemas/Broken")))
	assert.ErrorIs(t, err, domain.ErrUnresolvedReference)
}
