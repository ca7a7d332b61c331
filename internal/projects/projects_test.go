package projects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiriseka/portfolio/internal/content"
)

func testDoc() *content.Document {
	return &content.Document{
		Projects: []content.Project{
			{ID: "01", Title: "No media"},
			{ID: "02", Title: "Gallery", Media: []content.Media{
				{Kind: content.MediaImage, URL: "/a.png"},
				{Kind: content.MediaVideo, URL: "/b.mp4"},
				{Kind: content.MediaImage, URL: "/c.png"},
			}},
		},
	}
}

func TestSelect(t *testing.T) {
	p, err := Select(testDoc(), "02")
	require.NoError(t, err)
	assert.Equal(t, "Gallery", p.Title)

	_, err = Select(testDoc(), "03")
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestOpenLightbox_Wraps(t *testing.T) {
	doc := testDoc()

	first, err := OpenLightbox(doc, "02", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Prev)
	assert.Equal(t, 1, first.Next)
	assert.Equal(t, 3, first.Total)
	assert.False(t, first.IsVideo())

	mid, err := OpenLightbox(doc, "02", 1)
	require.NoError(t, err)
	assert.True(t, mid.IsVideo())
	assert.Equal(t, "/b.mp4", mid.Media.URL)

	last, err := OpenLightbox(doc, "02", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, last.Prev)
	assert.Equal(t, 0, last.Next)
}

func TestOpenLightbox_OutOfRange(t *testing.T) {
	doc := testDoc()

	for _, tc := range []struct {
		id    string
		index int
	}{
		{"02", -1},
		{"02", 3},
		{"01", 0},
		{"99", 0},
	} {
		_, err := OpenLightbox(doc, tc.id, tc.index)
		assert.ErrorIs(t, err, content.ErrNotFound, "%s/%d", tc.id, tc.index)
	}
}
