package tui

import (
	"fmt"

	"github.com/irisfoto/iris/internal/domain"
)

// Built-in sample data shown when nothing could be fetched and the cache is
// empty, so a first run without connectivity still renders a browsable screen.

func fallbackCollections() []domain.FeaturedCollection {
	subtitles := map[string]string{
		"Nature":       "Beautiful landscapes",
		"Architecture": "Modern designs",
		"People":       "Portrait photography",
		"Technology":   "Digital innovation",
		"Food":         "Culinary arts",
		"Travel":       "Adventure awaits",
		"Art":          "Creative expression",
	}
	titles := []string{"Nature", "Architecture", "People", "Technology", "Food", "Travel", "Art"}

	out := make([]domain.FeaturedCollection, len(titles))
	for i, title := range titles {
		out[i] = domain.FeaturedCollection{
			ID:       fmt.Sprintf("sample-%d", i+1),
			Title:    title,
			Subtitle: subtitles[title],
			ImageURL: fmt.Sprintf("https://picsum.photos/400/300?random=%d", i+1),
		}
	}
	return out
}

func fallbackImages() []domain.CuratedImage {
	out := make([]domain.CuratedImage, 30)
	for i := range out {
		n := i + 1
		out[i] = domain.CuratedImage{
			ID:           fmt.Sprintf("sample-photo-%d", n),
			Photographer: fmt.Sprintf("Photographer %d", n),
			ImageURL:     fmt.Sprintf("https://picsum.photos/600/800?random=%d", n),
			ThumbnailURL: fmt.Sprintf("https://picsum.photos/300/400?random=%d", n),
			Width:        600,
			Height:       800,
			Tags:         []string{"popular", "trending", "featured"},
		}
	}
	return out
}
