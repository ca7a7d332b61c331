// Package projects prepares project records for the grid, the detail
// drawer and the media lightbox.
package projects

import (
	"fmt"

	"github.com/kiriseka/portfolio/internal/content"
)

// Lightbox is one media entry opened from a project drawer, with the
// neighbouring indices for previous/next navigation. Navigation wraps.
type Lightbox struct {
	Project content.Project
	Media   content.Media
	Index   int
	Prev    int
	Next    int
	Total   int
}

// IsVideo reports whether the entry should render a video player.
func (l Lightbox) IsVideo() bool {
	return l.Media.Kind == content.MediaVideo
}

// Select returns the project the drawer should show.
func Select(doc *content.Document, id string) (content.Project, error) {
	return doc.Project(id)
}

// OpenLightbox returns the lightbox state for media index of project id.
func OpenLightbox(doc *content.Document, id string, index int) (Lightbox, error) {
	p, err := doc.Project(id)
	if err != nil {
		return Lightbox{}, err
	}
	n := len(p.Media)
	if index < 0 || index >= n {
		return Lightbox{}, fmt.Errorf("project %q media %d: %w", id, index, content.ErrNotFound)
	}
	return Lightbox{
		Project: p,
		Media:   p.Media[index],
		Index:   index,
		Prev:    (index - 1 + n) % n,
		Next:    (index + 1) % n,
		Total:   n,
	}, nil
}
