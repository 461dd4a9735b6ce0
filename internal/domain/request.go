package domain

// Request is the serializer-ready model of one generated .bru file.
type Request struct {
	Meta       Meta
	HTTP       HTTP
	Query      []KeyValue
	Params     []Param
	Headers    []KeyValue
	Auth       Auth
	Body       Body
	Vars       Vars
	Assertions []KeyValue
	Script     Script
	Tests      string
	Docs       string
}

// Meta is the meta block of a request file.
type Meta struct {
	Name string
	Type string
	Seq  int
}

// HTTP describes the HTTP verb block.
type HTTP struct {
	Method string
	URL    string
	Body   string // body kind, e.g. "json"
	Auth   string // auth kind, e.g. "bearer"
}

// KeyValue is an entry of a dictionary block (query, headers, form fields, assertions).
type KeyValue struct {
	Name    string
	Value   string
	Enabled bool
}

// Param is a query or path parameter entry.
type Param struct {
	Name    string
	Value   string
	Type    string // "query" or "path"
	Enabled bool
}

// Var is a pre-request or post-response variable.
type Var struct {
	Name    string
	Value   string
	Enabled bool
	Local   bool
}

// Vars holds request and response variables.
type Vars struct {
	Req []Var
	Res []Var
}

// Script holds pre-request and post-response scripts.
type Script struct {
	Req string
	Res string
}

// Body holds every body variant a request file can carry.
type Body struct {
	JSON           string
	Text           string
	XML            string
	SPARQL         string
	FormURLEncoded []KeyValue
	MultipartForm  []MultipartField
	GraphQL        *GraphQL
}

// MultipartField is a multipart form entry of type "text" or "file".
type MultipartField struct {
	Name    string
	Type    string
	Value   string
	Files   []string
	Enabled bool
}

// GraphQL holds a GraphQL query and its variables.
type GraphQL struct {
	Query     string
	Variables string
}
