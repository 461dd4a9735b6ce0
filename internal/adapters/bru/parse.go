package bru

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned when a document does not follow the block grammar.
var ErrMalformed = errors.New("malformed bru document")

// Block is one named section of a .bru document.
// Dictionary blocks fill Entries; text blocks (bodies, scripts, tests, docs) fill Text.
type Block struct {
	Name    string
	Entries []Entry
	Text    string
}

// Entry is one key/value line of a dictionary block.
type Entry struct {
	Name    string
	Value   string
	Enabled bool
	Local   bool
}

// Entry returns the first entry with the given name.
func (b Block) Entry(name string) (Entry, bool) {
	for _, e := range b.Entries {
		if e.Name == name {
			return e, true
		}
	}

	return Entry{}, false
}

var textBlocks = map[string]struct{}{
	"body:json":            {},
	"body:text":            {},
	"body:xml":             {},
	"body:sparql":          {},
	"body:graphql":         {},
	"body:graphql:vars":    {},
	"script:pre-request":   {},
	"script:post-response": {},
	"tests":                {},
	"docs":                 {},
}

// requestTypes are the meta types of request files, as opposed to folder,
// collection and environment files.
var requestTypes = map[string]struct{}{
	"http":    {},
	"graphql": {},
}

// IsRequest reports whether doc is a request file: it parses and its meta
// block declares a request type.
func IsRequest(doc string) bool {
	blocks, err := Parse(doc)
	if err != nil {
		return false
	}

	for _, b := range blocks {
		if b.Name != "meta" {
			continue
		}

		typ, ok := b.Entry("type")
		if !ok {
			return false
		}

		_, ok = requestTypes[typ.Value]
		return ok
	}

	return false
}

// Parse splits a .bru document into its blocks, in document order.
func Parse(doc string) ([]Block, error) {
	lines := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")

	var blocks []Block

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !strings.HasSuffix(line, " {") {
			return nil, fmt.Errorf("%w: line %d: expected block header, got %q", ErrMalformed, i+1, line)
		}

		block := Block{Name: strings.TrimSuffix(line, " {")}

		end := closingLine(lines, i+1)
		if end < 0 {
			return nil, fmt.Errorf("%w: block %q is not closed", ErrMalformed, block.Name)
		}

		body := lines[i+1 : end]

		if _, ok := textBlocks[block.Name]; ok {
			block.Text = dedent(body)
		} else {
			entries, err := parseEntries(body)
			if err != nil {
				return nil, fmt.Errorf("block %q: %w", block.Name, err)
			}

			block.Entries = entries
		}

		blocks = append(blocks, block)
		i = end
	}

	return blocks, nil
}

// closingLine returns the index of the first unindented "}" at or after start.
func closingLine(lines []string, start int) int {
	for j := start; j < len(lines); j++ {
		if lines[j] == "}" {
			return j
		}
	}

	return -1
}

func dedent(lines []string) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimPrefix(line, "  ")
	}

	return strings.Join(out, "\n")
}

func parseEntries(lines []string) ([]Entry, error) {
	var entries []Entry

	for i := 0; i < len(lines); i++ {
		line := strings.TrimPrefix(lines[i], "  ")
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry := Entry{Enabled: true}
		if strings.HasPrefix(line, "~") {
			entry.Enabled = false
			line = line[1:]
		}
		if strings.HasPrefix(line, "@") {
			entry.Local = true
			line = line[1:]
		}

		idx := strings.Index(line, ":")
		if idx < 0 {
			return nil, fmt.Errorf("%w: entry %q has no separator", ErrMalformed, line)
		}

		entry.Name = line[:idx]
		entry.Value = strings.TrimPrefix(line[idx+1:], " ")

		if entry.Value == "'''" {
			value, next, err := multilineValue(lines, i+1)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", entry.Name, err)
			}

			entry.Value = value
			i = next
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// multilineValue collects a triple-quoted value starting at start and returns
// it with the index of its closing delimiter.
func multilineValue(lines []string, start int) (string, int, error) {
	var value []string

	for j := start; j < len(lines); j++ {
		line := strings.TrimPrefix(lines[j], "  ")
		if line == "'''" {
			return strings.Join(value, "\n"), j, nil
		}

		value = append(value, strings.TrimPrefix(line, "  "))
	}

	return "", 0, fmt.Errorf("%w: unterminated multi-line value", ErrMalformed)
}
