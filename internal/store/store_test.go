package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irisfoto/iris/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testImage(id string) domain.CuratedImage {
	return domain.CuratedImage{
		ID:           id,
		Photographer: "Photographer " + id,
		ImageURL:     "https://images.pexels.com/" + id + "/original.jpg",
		ThumbnailURL: "https://images.pexels.com/" + id + "/medium.jpg",
		Width:        600,
		Height:       800,
		Tags:         []string{"featured", "curated"},
	}
}

func TestImagesRoundTrip(t *testing.T) {
	s := newTestStore(t)

	put := []domain.CuratedImage{testImage("1"), testImage("2"), testImage("3")}
	require.NoError(t, s.PutImages(put))

	images, newest, err := s.Images(30)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Greater(t, newest, int64(0))

	byID := map[string]domain.CuratedImage{}
	for _, img := range images {
		byID[img.ID] = img
	}
	assert.Equal(t, put[0], byID["1"])
	assert.Equal(t, []string{"featured", "curated"}, byID["2"].Tags)
}

func TestPutImagesReplacesOnConflict(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.PutImages([]domain.CuratedImage{testImage("1")}))

	updated := testImage("1")
	updated.Photographer = "Renamed"
	require.NoError(t, s.PutImages([]domain.CuratedImage{updated}))

	images, _, err := s.Images(30)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "Renamed", images[0].Photographer)
}

func TestImagesNewestFirstAndLimited(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.PutImages([]domain.CuratedImage{testImage("old-1"), testImage("old-2")}))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.PutImages([]domain.CuratedImage{testImage("new-1")}))

	images, _, err := s.Images(1)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "new-1", images[0].ID)
}

func TestDeleteImagesOlderThan(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.PutImages([]domain.CuratedImage{testImage("1"), testImage("2")}))

	// A cutoff in the past removes nothing.
	n, err := s.DeleteImagesOlderThan(time.Now().Add(-time.Hour).UnixMilli())
	require.NoError(t, err)
	assert.Zero(t, n)

	// A cutoff in the future removes everything.
	n, err = s.DeleteImagesOlderThan(time.Now().Add(time.Hour).UnixMilli())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	images, _, err := s.Images(30)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestDeleteAllImages(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.PutImages([]domain.CuratedImage{testImage("1"), testImage("2")}))
	require.NoError(t, s.DeleteAllImages())

	images, _, err := s.Images(30)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestCollectionsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	put := []domain.FeaturedCollection{
		{ID: "c1", Title: "Nature", Subtitle: "Wild places", ImageURL: "https://picsum.photos/400/300?random=1"},
		{ID: "c2", Title: "Art", Subtitle: "Featured collection", ImageURL: "https://picsum.photos/400/300?random=2"},
	}
	require.NoError(t, s.PutCollections(put))

	collections, newest, err := s.Collections(7)
	require.NoError(t, err)
	require.Len(t, collections, 2)
	assert.Greater(t, newest, int64(0))

	byID := map[string]domain.FeaturedCollection{}
	for _, c := range collections {
		byID[c.ID] = c
	}
	assert.Equal(t, put[0], byID["c1"])
	assert.Equal(t, put[1], byID["c2"])
}

func TestBookmarkToggleCycle(t *testing.T) {
	s := newTestStore(t)
	img := testImage("42")

	on, err := s.IsBookmarked("42")
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, s.PutBookmark(img))

	on, err = s.IsBookmarked("42")
	require.NoError(t, err)
	assert.True(t, on)

	got, err := s.Bookmark("42")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, img, *got)

	// Re-adding the same bookmark is idempotent.
	require.NoError(t, s.PutBookmark(img))
	all, err := s.Bookmarks()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.DeleteBookmark("42"))
	on, err = s.IsBookmarked("42")
	require.NoError(t, err)
	assert.False(t, on)

	// Deleting an absent bookmark is a no-op.
	require.NoError(t, s.DeleteBookmark("42"))
}

func TestBookmarksSurviveImageCachePurge(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.PutImages([]domain.CuratedImage{testImage("1")}))
	require.NoError(t, s.PutBookmark(testImage("1")))

	require.NoError(t, s.DeleteAllImages())
	_, err := s.DeleteImagesOlderThan(time.Now().Add(time.Hour).UnixMilli())
	require.NoError(t, err)

	all, err := s.Bookmarks()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
