package domain

// File is one generated output file, relative to the output root.
type File struct {
	Path        string
	Content     string
	OperationID string
}

// Descriptor is the bruno.json collection descriptor.
type Descriptor struct {
	Version string   `json:"version"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Ignore  []string `json:"ignore"`
}

// Catalog is a human-readable index of a generated collection.
type Catalog struct {
	Title   string
	Version string
	Entries []CatalogEntry
}

// CatalogEntry describes one generated request.
type CatalogEntry struct {
	Folder  string
	File    string
	Name    string
	Seq     int
	Method  string
	URL     string
	Auth    string
	Summary string
	Query   []KeyValue
}
