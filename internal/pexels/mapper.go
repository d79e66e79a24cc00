package pexels

import (
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/irisfoto/iris/internal/domain"
)

// Tags attached to every photo from the curated feed. The API does not
// return tags for photos; the app treats curated membership itself as the
// tag set.
var curatedTags = []string{"featured", "curated", "popular"}

// MapPhoto flattens an API photo into the domain shape, selecting the
// original variant for full resolution and medium for the thumbnail.
func MapPhoto(p Photo) domain.CuratedImage {
	return domain.CuratedImage{
		ID:           strconv.Itoa(p.ID),
		Photographer: p.Photographer,
		ImageURL:     p.Src.Original,
		ThumbnailURL: p.Src.Medium,
		Width:        p.Width,
		Height:       p.Height,
		Tags:         append([]string(nil), curatedTags...),
	}
}

// MapPhotos maps a list of API photos to domain images.
func MapPhotos(photos []Photo) []domain.CuratedImage {
	images := make([]domain.CuratedImage, len(photos))
	for i, p := range photos {
		images[i] = MapPhoto(p)
	}
	return images
}

// MapCollection maps an API collection to the domain shape. The API does not
// provide a cover image, so one is synthesized deterministically from the
// collection id.
func MapCollection(c Collection) domain.FeaturedCollection {
	subtitle := c.Description
	if subtitle == "" {
		subtitle = "Featured collection"
	}
	return domain.FeaturedCollection{
		ID:       c.ID,
		Title:    c.Title,
		Subtitle: subtitle,
		ImageURL: placeholderImageURL(c.ID),
	}
}

// MapCollections maps a list of API collections to domain collections.
func MapCollections(collections []Collection) []domain.FeaturedCollection {
	out := make([]domain.FeaturedCollection, len(collections))
	for i, c := range collections {
		out[i] = MapCollection(c)
	}
	return out
}

// placeholderImageURL synthesizes a stable cover image URL from an id hash.
func placeholderImageURL(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return fmt.Sprintf("https://picsum.photos/400/300?random=%d", h.Sum32())
}
