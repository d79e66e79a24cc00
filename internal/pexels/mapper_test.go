package pexels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapPhotoFlattensVariants(t *testing.T) {
	img := MapPhoto(Photo{
		ID:           812,
		Width:        3000,
		Height:       4000,
		Photographer: "Jonas Berg",
		Src: PhotoSrc{
			Original: "https://images.pexels.com/812/original.jpg",
			Large:    "https://images.pexels.com/812/large.jpg",
			Medium:   "https://images.pexels.com/812/medium.jpg",
			Tiny:     "https://images.pexels.com/812/tiny.jpg",
		},
	})

	assert.Equal(t, "812", img.ID)
	assert.Equal(t, "Jonas Berg", img.Photographer)
	assert.Equal(t, "https://images.pexels.com/812/original.jpg", img.ImageURL)
	assert.Equal(t, "https://images.pexels.com/812/medium.jpg", img.ThumbnailURL)
	assert.Equal(t, 3000, img.Width)
	assert.Equal(t, 4000, img.Height)
	assert.Equal(t, []string{"featured", "curated", "popular"}, img.Tags)
}

func TestMapCollectionDefaultsEmptyDescription(t *testing.T) {
	c := MapCollection(Collection{ID: "abc123", Title: "Nature"})
	assert.Equal(t, "abc123", c.ID)
	assert.Equal(t, "Nature", c.Title)
	assert.Equal(t, "Featured collection", c.Subtitle)

	c = MapCollection(Collection{ID: "abc123", Title: "Nature", Description: "Wild places"})
	assert.Equal(t, "Wild places", c.Subtitle)
}

func TestPlaceholderImageURLStable(t *testing.T) {
	a := placeholderImageURL("abc123")
	b := placeholderImageURL("abc123")
	other := placeholderImageURL("xyz789")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.Contains(t, a, "https://picsum.photos/400/300?random=")
}
