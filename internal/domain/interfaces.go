package domain

import "context"

// SearchOptions are the optional filters accepted by the search endpoint.
// Callers currently pass the zero value; the fields are part of the API
// contract and forwarded verbatim when set.
type SearchOptions struct {
	Orientation string // "landscape", "portrait", "square"
	Size        string // "large", "medium", "small"
	Color       string // Named color or hex code
}

// PhotoSource is the remote photo API boundary.
type PhotoSource interface {
	FeaturedCollections(ctx context.Context, page, perPage int) ([]FeaturedCollection, error)
	CuratedPhotos(ctx context.Context, page, perPage int) ([]CuratedImage, error)
	SearchPhotos(ctx context.Context, query string, page, perPage int, opts SearchOptions) ([]CuratedImage, error)
	Photo(ctx context.Context, id string) (*CuratedImage, error)
}

// ImageStore persists curated-image rows keyed by id.
type ImageStore interface {
	Images(limit int) ([]CuratedImage, int64, error) // newest-first; second return is the newest row's createdAt (epoch ms)
	PutImages(images []CuratedImage) error
	DeleteAllImages() error
	DeleteImagesOlderThan(cutoff int64) (int, error)
}

// CollectionStore persists featured-collection rows keyed by id.
type CollectionStore interface {
	Collections(limit int) ([]FeaturedCollection, int64, error)
	PutCollections(collections []FeaturedCollection) error
	DeleteAllCollections() error
	DeleteCollectionsOlderThan(cutoff int64) (int, error)
}

// BookmarkStore persists bookmarked images keyed by image id. Toggling is
// idempotent per id: insert-or-delete, never duplicate.
type BookmarkStore interface {
	Bookmarks() ([]CuratedImage, error) // newest-first by bookmark time
	Bookmark(id string) (*CuratedImage, error)
	IsBookmarked(id string) (bool, error)
	PutBookmark(image CuratedImage) error
	DeleteBookmark(id string) error
	DeleteAllBookmarks() error
}
