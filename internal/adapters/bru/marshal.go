// Package bru reads and writes the Bruno request file format.
package bru

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

// Marshal renders a request model as a .bru document.
//
// Blocks are emitted in a fixed order and only when the matching model
// section is non-empty. Every block body is indented by two spaces and the
// single trailing newline left by the last block is removed.
func Marshal(req *domain.Request) string {
	var b strings.Builder

	writeMeta(&b, req.Meta)
	writeHTTP(&b, req.HTTP)
	writeDictionary(&b, "query", req.Query)
	writeParams(&b, req.Params)
	writeDictionary(&b, "headers", req.Headers)
	writeAuth(&b, req.Auth)
	writeBody(&b, req.Body)
	writeVars(&b, "vars:pre-request", req.Vars.Req)
	writeVars(&b, "vars:post-response", req.Vars.Res)
	writeDictionary(&b, "assert", req.Assertions)
	writeText(&b, "script:pre-request", req.Script.Req)
	writeText(&b, "script:post-response", req.Script.Res)
	writeText(&b, "tests", req.Tests)
	writeText(&b, "docs", req.Docs)

	return stripLastLine(b.String())
}

func writeMeta(b *strings.Builder, meta domain.Meta) {
	if meta == (domain.Meta{}) {
		return
	}

	b.WriteString("meta {\n")
	b.WriteString(indent("name: " + meta.Name + "\ntype: " + meta.Type + "\nseq: " + strconv.Itoa(meta.Seq)))
	b.WriteString("\n}\n\n")
}

func writeHTTP(b *strings.Builder, http domain.HTTP) {
	if http.Method == "" {
		return
	}

	lines := []string{"url: " + http.URL}
	if http.Body != "" {
		lines = append(lines, "body: "+http.Body)
	}
	if http.Auth != "" {
		lines = append(lines, "auth: "+http.Auth)
	}

	fmt.Fprintf(b, "%s {\n%s\n}\n\n", http.Method, indent(strings.Join(lines, "\n")))
}

// writeDictionary renders enabled entries first, then disabled ones prefixed with "~".
func writeDictionary(b *strings.Builder, name string, items []domain.KeyValue) {
	if len(items) == 0 {
		return
	}

	var on, off []string
	for _, item := range items {
		if item.Enabled {
			on = append(on, item.Name+": "+valueString(item.Value))
		} else {
			off = append(off, "~"+item.Name+": "+valueString(item.Value))
		}
	}

	b.WriteString(name + " {")
	writeLines(b, on)
	writeLines(b, off)
	b.WriteString("\n}\n\n")
}

func writeParams(b *strings.Builder, params []domain.Param) {
	var query []domain.KeyValue
	var path []string

	for _, p := range params {
		switch p.Type {
		case "query":
			query = append(query, domain.KeyValue{Name: p.Name, Value: p.Value, Enabled: p.Enabled})
		case "path":
			path = append(path, p.Name+": "+valueString(p.Value))
		}
	}

	writeDictionary(b, "params:query", query)

	if len(path) > 0 {
		b.WriteString("params:path {")
		writeLines(b, path)
		b.WriteString("\n}\n\n")
	}
}

func writeAuth(b *strings.Builder, auth domain.Auth) {
	if a := auth.AWSV4; a != nil {
		writeFields(b, "auth:awsv4",
			"accessKeyId", a.AccessKeyID,
			"secretAccessKey", a.SecretAccessKey,
			"sessionToken", a.SessionToken,
			"service", a.Service,
			"region", a.Region,
			"profileName", a.ProfileName,
		)
	}

	if a := auth.Basic; a != nil {
		writeFields(b, "auth:basic", "username", a.Username, "password", a.Password)
	}

	if a := auth.Bearer; a != nil {
		writeFields(b, "auth:bearer", "token", a.Token)
	}

	if a := auth.Digest; a != nil {
		writeFields(b, "auth:digest", "username", a.Username, "password", a.Password)
	}

	if a := auth.OAuth2; a != nil {
		writeOAuth2(b, a)
	}
}

// writeOAuth2 renders the field set of the configured grant type. Unknown grant types render nothing.
func writeOAuth2(b *strings.Builder, a *domain.OAuth2Auth) {
	switch a.GrantType {
	case domain.GrantPassword:
		writeFields(b, "auth:oauth2",
			"grant_type", domain.GrantPassword,
			"access_token_url", a.AccessTokenURL,
			"username", a.Username,
			"password", a.Password,
			"client_id", a.ClientID,
			"client_secret", a.ClientSecret,
			"scope", a.Scope,
		)
	case domain.GrantAuthorizationCode:
		writeFields(b, "auth:oauth2",
			"grant_type", domain.GrantAuthorizationCode,
			"callback_url", a.CallbackURL,
			"authorization_url", a.AuthorizationURL,
			"access_token_url", a.AccessTokenURL,
			"client_id", a.ClientID,
			"client_secret", a.ClientSecret,
			"scope", a.Scope,
			"state", a.State,
			"pkce", strconv.FormatBool(a.PKCE),
		)
	case domain.GrantClientCredentials:
		writeFields(b, "auth:oauth2",
			"grant_type", domain.GrantClientCredentials,
			"access_token_url", a.AccessTokenURL,
			"client_id", a.ClientID,
			"client_secret", a.ClientSecret,
			"scope", a.Scope,
		)
	}
}

func writeBody(b *strings.Builder, body domain.Body) {
	writeText(b, "body:json", body.JSON)
	writeText(b, "body:text", body.Text)
	writeText(b, "body:xml", body.XML)
	writeText(b, "body:sparql", body.SPARQL)

	if len(body.FormURLEncoded) > 0 {
		var on, off []string
		for _, item := range body.FormURLEncoded {
			if item.Enabled {
				on = append(on, item.Name+": "+valueString(item.Value))
			} else {
				off = append(off, "~"+item.Name+": "+valueString(item.Value))
			}
		}

		b.WriteString("body:form-urlencoded {\n")
		if len(on) > 0 {
			b.WriteString(indent(strings.Join(on, "\n")) + "\n")
		}
		if len(off) > 0 {
			b.WriteString(indent(strings.Join(off, "\n")) + "\n")
		}
		b.WriteString("}\n\n")
	}

	if len(body.MultipartForm) > 0 {
		var lines []string
		for _, enabled := range []bool{true, false} {
			for _, field := range body.MultipartForm {
				if field.Enabled != enabled {
					continue
				}
				if line, ok := multipartLine(field); ok {
					lines = append(lines, line)
				}
			}
		}

		b.WriteString("body:multipart-form {")
		writeLines(b, lines)
		b.WriteString("\n}\n\n")
	}

	if gql := body.GraphQL; gql != nil {
		if gql.Query != "" {
			fmt.Fprintf(b, "body:graphql {\n%s\n}\n\n", indent(gql.Query))
		}
		if gql.Variables != "" {
			fmt.Fprintf(b, "body:graphql:vars {\n%s\n}\n\n", indent(gql.Variables))
		}
	}
}

func multipartLine(field domain.MultipartField) (string, bool) {
	prefix := ""
	if !field.Enabled {
		prefix = "~"
	}

	switch field.Type {
	case "text":
		return prefix + field.Name + ": " + valueString(field.Value), true
	case "file":
		return prefix + field.Name + ": @file(" + strings.Join(field.Files, "|") + ")", true
	default:
		return "", false
	}
}

// writeVars renders variables grouped as enabled, local enabled ("@"),
// disabled ("~") and local disabled ("~@").
func writeVars(b *strings.Builder, name string, vars []domain.Var) {
	if len(vars) == 0 {
		return
	}

	groups := []struct {
		enabled bool
		local   bool
		prefix  string
	}{
		{true, false, ""},
		{true, true, "@"},
		{false, false, "~"},
		{false, true, "~@"},
	}

	b.WriteString(name + " {")
	for _, g := range groups {
		var lines []string
		for _, v := range vars {
			if v.Enabled == g.enabled && v.Local == g.local {
				lines = append(lines, g.prefix+v.Name+": "+valueString(v.Value))
			}
		}
		writeLines(b, lines)
	}
	b.WriteString("\n}\n\n")
}

func writeText(b *strings.Builder, name, text string) {
	if text == "" {
		return
	}

	fmt.Fprintf(b, "%s {\n%s\n}\n\n", name, indent(text))
}

// writeFields renders a block from alternating key/value pairs.
func writeFields(b *strings.Builder, name string, pairs ...string) {
	lines := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		lines = append(lines, pairs[i]+": "+pairs[i+1])
	}

	fmt.Fprintf(b, "%s {\n%s\n}\n\n", name, indent(strings.Join(lines, "\n")))
}

func writeLines(b *strings.Builder, lines []string) {
	if len(lines) == 0 {
		return
	}

	b.WriteString("\n" + indent(strings.Join(lines, "\n")))
}

func indent(s string) string {
	if s == "" {
		return s
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}

	return strings.Join(lines, "\n")
}

// valueString wraps multi-line values in triple quotes, indenting their content one level.
func valueString(value string) string {
	if !strings.Contains(value, "\n") {
		return value
	}

	return "'''\n" + indent(value) + "\n'''"
}

// stripLastLine removes exactly one trailing line break.
func stripLastLine(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}

	return strings.TrimSuffix(s, "\n")
}
