package collection

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/GabrielNunesIT/openapi-to-bruno/internal/config"
	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

const (
	hostPlaceholder = "{{host}}"
	requestType     = "http"
	bodyKindJSON    = "json"
	fallbackName    = "noname"
)

var invalidPathChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// Builder builds the request model of one operation.
type Builder struct {
	log      logger.ILogger
	resolver *Resolver
	auth     config.Auth
}

// NewBuilder creates a request builder for a document's components and the auth policy.
func NewBuilder(log logger.ILogger, components domain.Components, auth config.Auth) *Builder {
	return &Builder{
		log:      log,
		resolver: NewResolver(components),
		auth:     auth,
	}
}

// Build returns the request model for the operation declared at path.
// Reference resolution failures are logged and leave the body or its
// documentation empty; they never fail the build.
func (b *Builder) Build(op *domain.Operation, path string, seq int) *domain.Request {
	req := &domain.Request{
		Meta: domain.Meta{
			Name: FileBaseName(op),
			Type: requestType,
			Seq:  seq,
		},
		HTTP: domain.HTTP{
			Method: op.Method,
			URL:    hostPlaceholder + path,
		},
		Query: buildQuery(op.Parameters),
	}

	b.applyAuth(req, op, path)

	var docsJSON string

	if op.RequestBody != nil {
		req.HTTP.Body = bodyKindJSON

		body, refDocs, err := b.resolver.RequestBody(op.RequestBody)
		if err != nil {
			b.log.Errorf("Ref error in %s %s: %v", strings.ToUpper(op.Method), path, err)
		}

		req.Body.JSON = body
		docsJSON = refDocs
	}

	// Each step overwrites the previous one; the operation id footer wins
	// over the parameter table, which wins over the reference tables.
	if op.Parameters != nil {
		docsJSON = parameterDocs(op.Parameters)
	}

	if op.OperationID != "" {
		docsJSON = fmt.Sprintf("OperationId: `%s`", op.OperationID)
	}

	req.Docs = documentation(op, docsJSON)

	return req
}

func (b *Builder) applyAuth(req *domain.Request, op *domain.Operation, path string) {
	if !b.auth.Enabled() || b.auth.Ignore.Matches(op.OperationID, path) {
		return
	}

	kind, err := b.auth.Kind()
	if err != nil {
		b.log.Errorf("Auth skipped for %s %s: %v", strings.ToUpper(op.Method), path, err)
		return
	}

	auth, err := domain.NewAuth(kind, b.auth.Values)
	if err != nil {
		b.log.Errorf("Auth skipped for %s %s: %v", strings.ToUpper(op.Method), path, err)
		return
	}

	req.HTTP.Auth = string(kind)
	req.Auth = auth
}

// buildQuery lists every parameter; required ones are enabled.
func buildQuery(params []domain.Parameter) []domain.KeyValue {
	query := make([]domain.KeyValue, 0, len(params))

	for _, param := range params {
		var value string
		if param.Schema.HasDefault {
			value = param.Schema.Default
		}

		query = append(query, domain.KeyValue{
			Name:    param.Name,
			Value:   value,
			Enabled: param.Required,
		})
	}

	return query
}

func parameterDocs(params []domain.Parameter) string {
	var docs strings.Builder

	docs.WriteString("## Parameters\n")
	docs.WriteString("| name | type | description | required | format |\n")
	docs.WriteString("| ---- | ---- | ----------- | -------- | ------ |\n")

	for _, param := range params {
		fmt.Fprintf(&docs, "| %s | %s | %s | %t | %s |\n",
			param.Name, param.Schema.Type, param.Description, param.Required, param.Schema.Format)
	}

	return docs.String()
}

// documentation assembles the docs block; it is empty when the operation has
// neither a summary nor generated documentation.
func documentation(op *domain.Operation, docsJSON string) string {
	if op.Summary == "" && docsJSON == "" {
		return ""
	}

	var docs strings.Builder

	if op.Summary != "" {
		fmt.Fprintf(&docs, "# %s\n\n", op.Summary)
	}

	if op.Summary != "" || op.Description != "" {
		fmt.Fprintf(&docs, "%s\n\n", op.Description)
	}

	fmt.Fprintf(&docs, "%s\n", docsJSON)

	return docs.String()
}

// FileBaseName returns the trimmed summary, else the operation id, else
// "noname", with characters invalid in file names replaced by "_".
func FileBaseName(op *domain.Operation) string {
	name := strings.TrimSpace(op.Summary)
	if name == "" {
		name = op.OperationID
	}
	if name == "" {
		name = fallbackName
	}

	return escapePath(name)
}

func escapePath(name string) string {
	return invalidPathChars.ReplaceAllString(name, "_")
}
