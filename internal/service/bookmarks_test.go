package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irisfoto/iris/internal/adapter"
	"github.com/irisfoto/iris/internal/domain"
	"github.com/irisfoto/iris/internal/store"
)

func newTestBookmarks(t *testing.T) *BookmarkService {
	t.Helper()
	db, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBookmarkService(db, adapter.NullLogger())
}

func TestToggleFlipsAndReturnsNewState(t *testing.T) {
	svc := newTestBookmarks(t)
	img := images("42")[0]

	assert.False(t, svc.IsBookmarked("42"))

	on, err := svc.Toggle(img)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, svc.IsBookmarked("42"))

	on, err = svc.Toggle(img)
	require.NoError(t, err)
	assert.False(t, on)
	assert.False(t, svc.IsBookmarked("42"))

	// A full cycle leaves no residue.
	all, err := svc.Bookmarks()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRemoveIsIdempotent(t *testing.T) {
	svc := newTestBookmarks(t)

	_, err := svc.Toggle(images("7")[0])
	require.NoError(t, err)

	require.NoError(t, svc.Remove("7"))
	require.NoError(t, svc.Remove("7"))
	assert.False(t, svc.IsBookmarked("7"))
}

func TestFilterMatchesPhotographerAndTags(t *testing.T) {
	svc := newTestBookmarks(t)

	bookmarks := []domain.CuratedImage{
		{ID: "1", Photographer: "Ana Silva", Tags: []string{"nature", "forest"}},
		{ID: "2", Photographer: "Jonas Berg", Tags: []string{"city", "night"}},
		{ID: "3", Photographer: "Mia Tanaka", Tags: []string{"nature", "ocean"}},
	}

	results := svc.Filter(bookmarks, "nature")
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	assert.ElementsMatch(t, []string{"1", "3"}, ids)

	results = svc.Filter(bookmarks, "jonas")
	require.Len(t, results, 1)
	assert.Equal(t, "2", results[0].ID)

	assert.Empty(t, svc.Filter(bookmarks, "zzzzzz"))
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	svc := newTestBookmarks(t)

	bookmarks := images("1", "2", "3")
	assert.Equal(t, bookmarks, svc.Filter(bookmarks, ""))
	assert.Equal(t, bookmarks, svc.Filter(bookmarks, "   "))
}
