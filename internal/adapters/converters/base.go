// Package converters exports a generated collection catalog to document formats.
package converters

import (
	"fmt"
	"strings"

	"github.com/GabrielNunesIT/openapi-to-bruno/internal/domain"
)

// rootFolder labels requests written at the collection root.
const rootFolder = "(root)"

// folderGroup is a folder and its requests in generation order.
type folderGroup struct {
	name    string
	entries []domain.CatalogEntry
}

// groupByFolder keeps folders in the order they first appear.
func groupByFolder(catalog *domain.Catalog) []folderGroup {
	var groups []folderGroup
	index := make(map[string]int)

	for _, entry := range catalog.Entries {
		name := entry.Folder
		if name == "" {
			name = rootFolder
		}

		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, folderGroup{name: name})
		}

		groups[i].entries = append(groups[i].entries, entry)
	}

	return groups
}

// formatMethod returns a styled method string.
func formatMethod(method string) string {
	return strings.ToUpper(method)
}

// formatTitle is the "METHOD url" line used for an entry heading.
func formatTitle(entry domain.CatalogEntry) string {
	return fmt.Sprintf("%s %s", formatMethod(entry.Method), entry.URL)
}

// formatQueryParam describes one query parameter.
func formatQueryParam(q domain.KeyValue) string {
	text := q.Name
	if q.Value != "" {
		text = fmt.Sprintf("%s = %s", q.Name, q.Value)
	}

	if q.Enabled {
		text += " (required)"
	}

	return text
}

// formatAuth names the auth mode, "none" when unset.
func formatAuth(auth string) string {
	if auth == "" {
		return "none"
	}

	return auth
}
