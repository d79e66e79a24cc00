package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irisfoto/iris/internal/adapter"
	"github.com/irisfoto/iris/internal/domain"
	"github.com/irisfoto/iris/internal/store"
)

// fakeSource is a scriptable PhotoSource.
type fakeSource struct {
	collections []domain.FeaturedCollection
	photos      []domain.CuratedImage
	results     []domain.CuratedImage
	err         error

	curatedPages []int
	searches     []string
}

func (f *fakeSource) FeaturedCollections(ctx context.Context, page, perPage int) ([]domain.FeaturedCollection, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.collections, nil
}

func (f *fakeSource) CuratedPhotos(ctx context.Context, page, perPage int) ([]domain.CuratedImage, error) {
	f.curatedPages = append(f.curatedPages, page)
	if f.err != nil {
		return nil, f.err
	}
	return f.photos, nil
}

func (f *fakeSource) SearchPhotos(ctx context.Context, query string, page, perPage int, opts domain.SearchOptions) ([]domain.CuratedImage, error) {
	f.searches = append(f.searches, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeSource) Photo(ctx context.Context, id string) (*domain.CuratedImage, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.photos {
		if f.photos[i].ID == id {
			return &f.photos[i], nil
		}
	}
	return nil, &domain.APIError{StatusCode: 404, Message: "Not found"}
}

func newTestGallery(t *testing.T, source *fakeSource) (*GalleryService, *store.Store) {
	t.Helper()
	db, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewGalleryService(source, db, db, adapter.NullLogger()), db
}

func images(ids ...string) []domain.CuratedImage {
	out := make([]domain.CuratedImage, len(ids))
	for i, id := range ids {
		out[i] = domain.CuratedImage{
			ID:           id,
			Photographer: "Photographer " + id,
			ImageURL:     "https://images.pexels.com/" + id + "/original.jpg",
			ThumbnailURL: "https://images.pexels.com/" + id + "/medium.jpg",
			Width:        600,
			Height:       800,
			Tags:         []string{"featured"},
		}
	}
	return out
}

func collections(ids ...string) []domain.FeaturedCollection {
	out := make([]domain.FeaturedCollection, len(ids))
	for i, id := range ids {
		out[i] = domain.FeaturedCollection{ID: id, Title: "Collection " + id, Subtitle: "Featured collection"}
	}
	return out
}

// agedStore serves canned rows stamped with a fixed createdAt so tests can
// drive the TTL gate directly; the real store always stamps rows with now.
type agedStore struct {
	images      []domain.CuratedImage
	collections []domain.FeaturedCollection
	newest      int64
}

func (s *agedStore) Images(limit int) ([]domain.CuratedImage, int64, error) {
	return s.images, s.newest, nil
}
func (s *agedStore) PutImages([]domain.CuratedImage) error    { return nil }
func (s *agedStore) DeleteAllImages() error                   { return nil }
func (s *agedStore) DeleteImagesOlderThan(int64) (int, error) { return 0, nil }

func (s *agedStore) Collections(limit int) ([]domain.FeaturedCollection, int64, error) {
	return s.collections, s.newest, nil
}
func (s *agedStore) PutCollections([]domain.FeaturedCollection) error { return nil }
func (s *agedStore) DeleteAllCollections() error                      { return nil }
func (s *agedStore) DeleteCollectionsOlderThan(int64) (int, error)    { return 0, nil }

var offline = &domain.NetworkError{Kind: domain.NetworkNoConnection, Message: "No internet connection"}

func TestCuratedImagesFreshRefreshesCache(t *testing.T) {
	source := &fakeSource{photos: images("1", "2")}
	gallery, _ := newTestGallery(t, source)

	out := gallery.CuratedImages(context.Background(), 1)
	assert.Equal(t, domain.Fresh, out.Source)
	assert.NoError(t, out.Err)
	assert.Len(t, out.Items, 2)

	assert.Len(t, gallery.CachedCuratedImages(), 2)
}

func TestCuratedImagesFallsBackToCacheOnFailure(t *testing.T) {
	source := &fakeSource{photos: images("1", "2")}
	gallery, _ := newTestGallery(t, source)

	// First load succeeds and warms the cache.
	gallery.CuratedImages(context.Background(), 1)

	// Second load fails; the cached batch stands in.
	source.err = offline
	out := gallery.CuratedImages(context.Background(), 1)
	assert.Equal(t, domain.Stale, out.Source)
	assert.Len(t, out.Items, 2)
	assert.True(t, domain.IsNetworkError(out.Err), "original fault must travel with the outcome")
}

func TestCuratedImagesUnavailableWhenCacheEmpty(t *testing.T) {
	source := &fakeSource{err: offline}
	gallery, _ := newTestGallery(t, source)

	out := gallery.CuratedImages(context.Background(), 1)
	assert.Equal(t, domain.Unavailable, out.Source)
	assert.Empty(t, out.Items)
	assert.True(t, domain.IsNetworkError(out.Err))
}

func TestExpiredCacheIsNotServed(t *testing.T) {
	source := &fakeSource{err: offline}
	aged := &agedStore{
		images:      images("1", "2"),
		collections: collections("c1"),
		newest:      time.Now().Add(-2 * time.Hour).UnixMilli(),
	}
	gallery := NewGalleryService(source, aged, aged, adapter.NullLogger())

	out := gallery.CuratedImages(context.Background(), 1)
	assert.Equal(t, domain.Unavailable, out.Source, "rows past the TTL must not stand in")
	assert.Empty(t, out.Items)

	cols := gallery.FeaturedCollections(context.Background())
	assert.Equal(t, domain.Unavailable, cols.Source)
	assert.Empty(t, cols.Items)
}

func TestCacheWithinTTLIsServedStale(t *testing.T) {
	source := &fakeSource{err: offline}
	aged := &agedStore{
		images: images("1", "2"),
		newest: time.Now().Add(-30 * time.Minute).UnixMilli(),
	}
	gallery := NewGalleryService(source, aged, aged, adapter.NullLogger())

	out := gallery.CuratedImages(context.Background(), 1)
	assert.Equal(t, domain.Stale, out.Source)
	assert.Len(t, out.Items, 2)
}

func TestCuratedPageTwoNeverTouchesCache(t *testing.T) {
	source := &fakeSource{photos: images("1")}
	gallery, _ := newTestGallery(t, source)

	// Warm the cache with page 1.
	gallery.CuratedImages(context.Background(), 1)

	// A later page succeeds without overwriting the page-1 snapshot.
	source.photos = images("31", "32")
	out := gallery.CuratedImages(context.Background(), 2)
	assert.Equal(t, domain.Fresh, out.Source)
	assert.Len(t, gallery.CachedCuratedImages(), 1, "page 2 must not be persisted")

	// A later page failure never substitutes the page-1 snapshot.
	source.err = offline
	out = gallery.CuratedImages(context.Background(), 2)
	assert.Equal(t, domain.Unavailable, out.Source)
	assert.Empty(t, out.Items)
}

func TestFeaturedCollectionsReconciliation(t *testing.T) {
	source := &fakeSource{collections: collections("c1", "c2")}
	gallery, _ := newTestGallery(t, source)

	out := gallery.FeaturedCollections(context.Background())
	assert.Equal(t, domain.Fresh, out.Source)
	assert.Len(t, out.Items, 2)

	source.err = offline
	out = gallery.FeaturedCollections(context.Background())
	assert.Equal(t, domain.Stale, out.Source)
	assert.Len(t, out.Items, 2)
}

func TestSearchNeverPersistsAndNeverFallsBack(t *testing.T) {
	source := &fakeSource{photos: images("1", "2"), results: images("9")}
	gallery, _ := newTestGallery(t, source)

	// Warm the curated cache so a fallback would be possible if search used it.
	gallery.CuratedImages(context.Background(), 1)

	out := gallery.SearchImages(context.Background(), "mountains", 1)
	assert.Equal(t, domain.Fresh, out.Source)
	assert.Len(t, out.Items, 1)
	assert.Len(t, gallery.CachedCuratedImages(), 2, "search results must not overwrite the cache")

	source.err = offline
	out = gallery.SearchImages(context.Background(), "mountains", 1)
	assert.Equal(t, domain.Unavailable, out.Source)
	assert.Empty(t, out.Items, "a failed search must not substitute cached curated photos")
}

func TestSearchEmptyResultsAreFresh(t *testing.T) {
	source := &fakeSource{results: nil}
	gallery, _ := newTestGallery(t, source)

	out := gallery.SearchImages(context.Background(), "qqqqqq", 1)
	assert.Equal(t, domain.Fresh, out.Source)
	assert.Empty(t, out.Items)
	assert.NoError(t, out.Err)
}

func TestClearCacheEmptiesBothKinds(t *testing.T) {
	source := &fakeSource{photos: images("1"), collections: collections("c1")}
	gallery, _ := newTestGallery(t, source)

	gallery.CuratedImages(context.Background(), 1)
	gallery.FeaturedCollections(context.Background())
	require.Len(t, gallery.CachedCuratedImages(), 1)
	require.Len(t, gallery.CachedFeaturedCollections(), 1)

	require.NoError(t, gallery.ClearCache())
	assert.Empty(t, gallery.CachedCuratedImages())
	assert.Empty(t, gallery.CachedFeaturedCollections())
}

func TestPhotoPassesThroughFaults(t *testing.T) {
	source := &fakeSource{photos: images("7")}
	gallery, _ := newTestGallery(t, source)

	img, err := gallery.Photo(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "7", img.ID)

	_, err = gallery.Photo(context.Background(), "missing")
	assert.True(t, domain.IsAPIError(err))
}
