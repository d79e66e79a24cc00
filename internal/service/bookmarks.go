package service

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/irisfoto/iris/internal/domain"
)

// BookmarkService manages the persisted bookmark collection.
type BookmarkService struct {
	store  domain.BookmarkStore
	logger *slog.Logger
}

// NewBookmarkService creates a new bookmark service.
func NewBookmarkService(store domain.BookmarkStore, logger *slog.Logger) *BookmarkService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookmarkService{store: store, logger: logger}
}

// Bookmarks returns all bookmarked images, newest first.
func (s *BookmarkService) Bookmarks() ([]domain.CuratedImage, error) {
	return s.store.Bookmarks()
}

// IsBookmarked reports whether an image id is bookmarked. Store faults read
// as "not bookmarked".
func (s *BookmarkService) IsBookmarked(id string) bool {
	bookmarked, err := s.store.IsBookmarked(id)
	if err != nil {
		s.logger.Error("bookmark lookup failed", "error", err, "id", id)
		return false
	}
	return bookmarked
}

// Toggle flips the bookmark state of an image and returns the new state.
// Toggling is idempotent per id: insert-or-delete, never duplicate.
func (s *BookmarkService) Toggle(img domain.CuratedImage) (bool, error) {
	bookmarked, err := s.store.IsBookmarked(img.ID)
	if err != nil {
		return false, err
	}

	if bookmarked {
		if err := s.store.DeleteBookmark(img.ID); err != nil {
			return true, err
		}
		s.logger.Debug("bookmark removed", "id", img.ID)
		return false, nil
	}

	if err := s.store.PutBookmark(img); err != nil {
		return false, err
	}
	s.logger.Debug("bookmark added", "id", img.ID)
	return true, nil
}

// Remove deletes a bookmark by image id.
func (s *BookmarkService) Remove(id string) error {
	return s.store.DeleteBookmark(id)
}

// Filter ranks bookmarks against a query by photographer name and tags,
// best match first. An empty query returns the input unchanged.
func (s *BookmarkService) Filter(bookmarks []domain.CuratedImage, query string) []domain.CuratedImage {
	query = strings.TrimSpace(query)
	if query == "" {
		return bookmarks
	}

	targets := make([]string, len(bookmarks))
	byTarget := make(map[string][]domain.CuratedImage, len(bookmarks))
	for i, b := range bookmarks {
		target := b.Photographer
		if len(b.Tags) > 0 {
			target += " " + strings.Join(b.Tags, " ")
		}
		targets[i] = target
		byTarget[target] = append(byTarget[target], b)
	}

	matches := fuzzy.RankFindFold(query, targets)
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	seen := make(map[string]bool, len(matches))
	results := make([]domain.CuratedImage, 0, len(matches))
	for _, match := range matches {
		for _, b := range byTarget[match.Target] {
			if seen[b.ID] {
				continue
			}
			seen[b.ID] = true
			results = append(results, b)
		}
	}
	return results
}
