package domain

import "fmt"

// CuratedImage is a single photo as shown to the UI. Values are immutable;
// every layer that changes one builds a new value.
type CuratedImage struct {
	ID           string   // Pexels photo identifier
	Photographer string   // Display credit
	ImageURL     string   // Full-resolution variant
	ThumbnailURL string   // Medium variant for grid cells
	Width        int      // Pixels, used for aspect-ratio layout
	Height       int      // Pixels
	Tags         []string // May be empty, order preserved
}

// AspectRatio returns width/height for layout, defaulting to portrait when
// dimensions are missing.
func (c CuratedImage) AspectRatio() float64 {
	if c.Width <= 0 || c.Height <= 0 {
		return 0.75
	}
	return float64(c.Width) / float64(c.Height)
}

// Dimensions returns a human-readable size string.
func (c CuratedImage) Dimensions() string {
	if c.Width <= 0 || c.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%d x %d", c.Width, c.Height)
}

// FeaturedCollection is a curated collection shown in the Home strip.
type FeaturedCollection struct {
	ID       string
	Title    string
	Subtitle string // Optional description
	ImageURL string // Optional cover image
}
