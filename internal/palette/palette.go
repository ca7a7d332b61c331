// Package palette filters the command-palette shortcuts.
package palette

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/kiriseka/portfolio/internal/content"
)

// Filter returns the items whose label or sub-label contains query,
// ignoring case. The query is matched as typed, surrounding spaces
// included. An empty query matches everything. Declared order is kept.
func Filter(items []content.PaletteItem, query string) []content.PaletteItem {
	fold := cases.Fold()
	q := fold.String(query)

	out := make([]content.PaletteItem, 0, len(items))
	for _, item := range items {
		if q == "" ||
			strings.Contains(fold.String(item.Label), q) ||
			strings.Contains(fold.String(item.Sub), q) {
			out = append(out, item)
		}
	}
	return out
}
