package store

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/irisfoto/iris/internal/domain"
)

// imageRecord is the persisted form of a curated image. Tags are stored
// comma-joined in a single column-like field.
type imageRecord struct {
	ID           string `json:"id"`
	Photographer string `json:"photographer"`
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Tags         string `json:"tags"`
	CreatedAt    int64  `json:"createdAt"`
}

// collectionRecord is the persisted form of a featured collection.
type collectionRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// bookmarkRecord is the persisted form of a bookmarked image. Unlike
// imageRecord it stores tags as a JSON-encoded array; the two formats
// coexist deliberately because existing rows are readable only in the
// format they were written with.
type bookmarkRecord struct {
	ID           string `json:"id"`
	Photographer string `json:"photographer"`
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Tags         string `json:"tags"`
	BookmarkedAt int64  `json:"bookmarkedAt"`
}

func newImageRecord(img domain.CuratedImage, now int64) imageRecord {
	return imageRecord{
		ID:           img.ID,
		Photographer: img.Photographer,
		ImageURL:     img.ImageURL,
		ThumbnailURL: img.ThumbnailURL,
		Width:        img.Width,
		Height:       img.Height,
		Tags:         strings.Join(img.Tags, ","),
		CreatedAt:    now,
	}
}

func (r imageRecord) toDomain() domain.CuratedImage {
	return domain.CuratedImage{
		ID:           r.ID,
		Photographer: r.Photographer,
		ImageURL:     r.ImageURL,
		ThumbnailURL: r.ThumbnailURL,
		Width:        r.Width,
		Height:       r.Height,
		Tags:         splitTags(r.Tags),
	}
}

func newCollectionRecord(col domain.FeaturedCollection, now int64) collectionRecord {
	return collectionRecord{
		ID:        col.ID,
		Title:     col.Title,
		Subtitle:  col.Subtitle,
		ImageURL:  col.ImageURL,
		CreatedAt: now,
	}
}

func (r collectionRecord) toDomain() domain.FeaturedCollection {
	return domain.FeaturedCollection{
		ID:       r.ID,
		Title:    r.Title,
		Subtitle: r.Subtitle,
		ImageURL: r.ImageURL,
	}
}

func newBookmarkRecord(img domain.CuratedImage) bookmarkRecord {
	tags, err := json.Marshal(img.Tags)
	if err != nil {
		tags = []byte("[]")
	}
	return bookmarkRecord{
		ID:           img.ID,
		Photographer: img.Photographer,
		ImageURL:     img.ImageURL,
		ThumbnailURL: img.ThumbnailURL,
		Width:        img.Width,
		Height:       img.Height,
		Tags:         string(tags),
		BookmarkedAt: time.Now().UnixMilli(),
	}
}

func (r bookmarkRecord) toDomain() domain.CuratedImage {
	var tags []string
	// Malformed tag data degrades to an empty list, never an error.
	if err := json.Unmarshal([]byte(r.Tags), &tags); err != nil {
		tags = nil
	}
	return domain.CuratedImage{
		ID:           r.ID,
		Photographer: r.Photographer,
		ImageURL:     r.ImageURL,
		ThumbnailURL: r.ThumbnailURL,
		Width:        r.Width,
		Height:       r.Height,
		Tags:         tags,
	}
}

// splitTags parses a comma-joined tag field, dropping blank entries.
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			tags = append(tags, p)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
