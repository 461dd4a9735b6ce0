// Package storage persists a generated collection under an output directory.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/GabrielNunesIT/openapi-to-bruno/internal/adapters/bru"
	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

// DescriptorFile is the collection descriptor written at the output root.
const DescriptorFile = "bruno.json"

// EnvironmentsDir holds Bruno environment files; Clean never enters it.
const EnvironmentsDir = "environments"

// ErrOutsideRoot is returned for a file whose path resolves outside the root.
var ErrOutsideRoot = errors.New("path escapes output directory")

// settingsFiles are Bruno collection and folder settings, never requests.
var settingsFiles = map[string]struct{}{
	"collection.bru": {},
	"folder.bru":     {},
}

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Status reports what Write did with a file.
type Status int

const (
	// Created means the file did not exist before.
	Created Status = iota
	// Updated means the file existed with different content.
	Updated
	// Unchanged means the file already had the same content.
	Unchanged
)

// String returns the log label for the status.
func (s Status) String() string {
	switch s {
	case Created:
		return "Create"
	case Updated:
		return "Update"
	default:
		return "Unchanged"
	}
}

// Writer writes collection files relative to a root directory.
type Writer struct {
	root string
}

// NewWriter creates a writer rooted at dir.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// Root returns the output directory.
func (w *Writer) Root() string {
	return w.root
}

// EnsureRoot creates the output directory when missing.
func (w *Writer) EnsureRoot() error {
	if w.root == "" {
		return domain.ErrMissingOutput
	}

	if err := os.MkdirAll(w.root, dirPerm); err != nil {
		return fmt.Errorf("failed to create output directory: %s: %w", w.root, err)
	}

	return nil
}

// WriteDescriptor writes bruno.json unless it already exists. It reports
// whether the file was created.
func (w *Writer) WriteDescriptor(desc domain.Descriptor) (bool, error) {
	data, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to encode descriptor: %w", err)
	}

	path := filepath.Join(w.root, DescriptorFile)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create descriptor: %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return false, fmt.Errorf("failed to write descriptor: %s: %w", path, err)
	}

	return true, nil
}

// Write stores one request file, creating parent folders as needed.
func (w *Writer) Write(file domain.File) (Status, error) {
	path, err := w.resolve(file.Path)
	if err != nil {
		return 0, err
	}

	content := []byte(file.Content)

	status := Created

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(existing, content) {
			return Unchanged, nil
		}
		status = Updated
	case !errors.Is(err, fs.ErrNotExist):
		return 0, fmt.Errorf("failed to read file: %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return 0, fmt.Errorf("failed to create directory: %s: %w", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, content, filePerm); err != nil {
		return 0, fmt.Errorf("failed to write file: %s: %w", path, err)
	}

	return status, nil
}

// resolve joins a slash-separated relative path to the root and rejects
// results that land outside it.
func (w *Writer) resolve(rel string) (string, error) {
	path := filepath.Join(w.root, filepath.FromSlash(rel))

	back, err := filepath.Rel(w.root, path)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, rel)
	}

	return path, nil
}

// Clean removes request files with the given extension under the root and
// prunes folders left empty. A file counts as a request only when its meta
// block declares a request type; environments, collection.bru, folder.bru,
// bruno.json and anything else are kept.
func (w *Writer) Clean(ext string) (int, error) {
	var (
		removed int
		dirs    []string
	)

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == w.root {
				return fs.SkipAll
			}
			return err
		}

		if d.IsDir() {
			if path == filepath.Join(w.root, EnvironmentsDir) {
				return fs.SkipDir
			}
			if path != w.root {
				dirs = append(dirs, path)
			}
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), ext) {
			return nil
		}

		if _, ok := settingsFiles[strings.ToLower(d.Name())]; ok {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if !bru.IsRequest(string(data)) {
			return nil
		}

		if err := os.Remove(path); err != nil {
			return err
		}
		removed++

		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("failed to clean output directory: %s: %w", w.root, err)
	}

	// Deepest first so parents empty out after their children.
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		_ = os.Remove(dir)
	}

	return removed, nil
}
