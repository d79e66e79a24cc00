package tui

import (
	"github.com/irisfoto/iris/internal/domain"
)

// Message types for the TUI

// InitialLoadedMsg carries the combined result of the two initial fetches.
type InitialLoadedMsg struct {
	Collections domain.Outcome[domain.FeaturedCollection]
	Images      domain.Outcome[domain.CuratedImage]
}

// CuratedReloadedMsg signals a fresh page-1 curated load (clear search,
// explore, empty debounce).
type CuratedReloadedMsg struct {
	Outcome domain.Outcome[domain.CuratedImage]
}

// MoreImagesMsg carries one additional curated page for appending.
type MoreImagesMsg struct {
	Outcome domain.Outcome[domain.CuratedImage]
	Page    int
}

// SearchResultsMsg signals that search results are ready.
type SearchResultsMsg struct {
	Query   string
	Outcome domain.Outcome[domain.CuratedImage]
}

// SearchDebounceMsg fires when the search quiet period elapses. Seq guards
// against superseded timers: a stale sequence number means a newer keystroke
// has already scheduled its own timer.
type SearchDebounceMsg struct {
	Query string
	Seq   int
}

// BookmarksLoadedMsg signals that the bookmark list has been read.
type BookmarksLoadedMsg struct {
	Bookmarks []domain.CuratedImage
	Err       error
}

// BookmarkToggledMsg signals a completed bookmark toggle.
type BookmarkToggledMsg struct {
	ID         string
	Bookmarked bool
	Err        error
}

// BookmarkRemovedMsg signals a completed bookmark removal.
type BookmarkRemovedMsg struct {
	ID  string
	Err error
}

// PhotoLoadedMsg carries a refreshed single-photo lookup for the detail view.
type PhotoLoadedMsg struct {
	Photo *domain.CuratedImage
	Err   error
}

// CacheClearedMsg signals that the local cache has been purged.
type CacheClearedMsg struct {
	Err error
}

// StatusMsg sets a temporary status line message.
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status line.
type ClearStatusMsg struct{}
