package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/irisfoto/iris/internal/domain"
	"github.com/irisfoto/iris/internal/service"
)

const (
	requestTimeout = 30 * time.Second
	searchDebounce = 500 * time.Millisecond
	statusTimeout  = 3 * time.Second
)

// loadInitialCmd runs both startup fetches concurrently and delivers their
// results as one message, so the model applies the combined transition in a
// single update.
func loadInitialCmd(gallery *service.GalleryService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var (
			wg          sync.WaitGroup
			collections domain.Outcome[domain.FeaturedCollection]
			images      domain.Outcome[domain.CuratedImage]
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			collections = gallery.FeaturedCollections(ctx)
		}()
		go func() {
			defer wg.Done()
			images = gallery.CuratedImages(ctx, 1)
		}()
		wg.Wait()

		return InitialLoadedMsg{Collections: collections, Images: images}
	}
}

func reloadCuratedCmd(gallery *service.GalleryService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return CuratedReloadedMsg{Outcome: gallery.CuratedImages(ctx, 1)}
	}
}

func loadMoreCmd(gallery *service.GalleryService, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return MoreImagesMsg{Outcome: gallery.CuratedImages(ctx, page), Page: page}
	}
}

func searchCmd(gallery *service.GalleryService, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return SearchResultsMsg{Query: query, Outcome: gallery.SearchImages(ctx, query, 1)}
	}
}

// debounceCmd schedules the quiet-period timer for a search keystroke.
func debounceCmd(query string, seq int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return SearchDebounceMsg{Query: query, Seq: seq}
	})
}

func loadBookmarksCmd(bookmarks *service.BookmarkService) tea.Cmd {
	return func() tea.Msg {
		items, err := bookmarks.Bookmarks()
		return BookmarksLoadedMsg{Bookmarks: items, Err: err}
	}
}

func toggleBookmarkCmd(bookmarks *service.BookmarkService, image domain.CuratedImage) tea.Cmd {
	return func() tea.Msg {
		on, err := bookmarks.Toggle(image)
		return BookmarkToggledMsg{ID: image.ID, Bookmarked: on, Err: err}
	}
}

func removeBookmarkCmd(bookmarks *service.BookmarkService, id string) tea.Cmd {
	return func() tea.Msg {
		return BookmarkRemovedMsg{ID: id, Err: bookmarks.Remove(id)}
	}
}

func loadPhotoCmd(gallery *service.GalleryService, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		photo, err := gallery.Photo(ctx, id)
		return PhotoLoadedMsg{Photo: photo, Err: err}
	}
}

func clearCacheCmd(gallery *service.GalleryService) tea.Cmd {
	return func() tea.Msg {
		return CacheClearedMsg{Err: gallery.ClearCache()}
	}
}

func statusCmd(message string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: message, IsError: isError}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
