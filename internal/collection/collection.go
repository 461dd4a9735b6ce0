package collection

import (
	"fmt"
	"path"
	"strings"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/GabrielNunesIT/openapi-to-bruno/internal/adapters/bru"
	"github.com/GabrielNunesIT/openapi-to-bruno/internal/config"
	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

// FileExtension is the extension of generated request files.
const FileExtension = ".bru"

// Mode selects how an existing output tree is treated.
type Mode int

const (
	// ModeFresh regenerates every operation.
	ModeFresh Mode = iota
	// ModeUpdate leaves operations matched by the update ignore policy untouched.
	ModeUpdate
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}

	return "fresh"
}

// Result is the outcome of one generation run.
type Result struct {
	Descriptor domain.Descriptor
	Files      []domain.File
	Skipped    []string
	Catalog    domain.Catalog
}

// Generator drives the path/method traversal of a document.
type Generator struct {
	log logger.ILogger
	cfg *config.Config
}

// NewGenerator creates a generator for the given configuration.
func NewGenerator(log logger.ILogger, cfg *config.Config) *Generator {
	return &Generator{log: log, cfg: cfg}
}

// Generate converts the document into request files keyed by slash-separated
// paths relative to the output root. Nothing is produced for documents that
// are not OpenAPI 3.x.
func (g *Generator) Generate(doc *domain.Document, mode Mode) (*Result, error) {
	if !doc.IsVersion3() {
		return nil, fmt.Errorf("%w: got %q", domain.ErrUnsupportedVersion, doc.OpenAPI)
	}

	builder := NewBuilder(g.log, doc.Components, g.cfg.Auth)
	descriptor := g.cfg.Bruno.Descriptor()

	result := &Result{
		Descriptor: descriptor,
		Catalog: domain.Catalog{
			Title:   descriptor.Name,
			Version: descriptor.Version,
		},
	}

	seen := make(map[string]int)

	for _, p := range doc.Paths {
		seq := 1

		for i := range p.Operations {
			op := &p.Operations[i]
			current := seq
			seq++

			if mode == ModeUpdate && g.cfg.Update.Ignore.Matches(op.OperationID, p.Template) {
				g.log.Infof("Skip (ignored): %s %s", strings.ToUpper(op.Method), p.Template)
				result.Skipped = append(result.Skipped, strings.ToUpper(op.Method)+" "+p.Template)

				continue
			}

			req := builder.Build(op, p.Template, current)
			folder := FolderFor(p.Template)
			file := path.Join(folder, req.Meta.Name+FileExtension)

			entry := domain.File{
				Path:        file,
				Content:     bru.Marshal(req),
				OperationID: op.OperationID,
			}

			if idx, dup := seen[file]; dup {
				g.log.Errorf("Duplicate output %s: %s %s replaces an earlier operation", file, strings.ToUpper(op.Method), p.Template)
				result.Files[idx] = entry
				result.Catalog.Entries[idx] = catalogEntry(folder, file, op, req)

				continue
			}

			seen[file] = len(result.Files)
			result.Files = append(result.Files, entry)
			result.Catalog.Entries = append(result.Catalog.Entries, catalogEntry(folder, file, op, req))
		}
	}

	return result, nil
}

// FolderFor maps a path template to its output folder, one directory per
// non-empty path segment, each segment made safe for file systems. "." and
// ".." segments become "_" so the folder always stays under the output root.
func FolderFor(template string) string {
	var segments []string

	for _, segment := range strings.Split(template, "/") {
		if segment == "" {
			continue
		}

		segments = append(segments, escapeSegment(segment))
	}

	return path.Join(segments...)
}

func escapeSegment(segment string) string {
	if segment == "." || segment == ".." {
		return "_"
	}

	return escapePath(segment)
}

func catalogEntry(folder, file string, op *domain.Operation, req *domain.Request) domain.CatalogEntry {
	return domain.CatalogEntry{
		Folder:  folder,
		File:    file,
		Name:    req.Meta.Name,
		Seq:     req.Meta.Seq,
		Method:  req.HTTP.Method,
		URL:     req.HTTP.URL,
		Auth:    req.HTTP.Auth,
		Summary: op.Summary,
		Query:   req.Query,
	}
}
