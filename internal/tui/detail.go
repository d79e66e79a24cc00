package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/irisfoto/iris/internal/domain"
	"github.com/irisfoto/iris/internal/service"
)

// detailModel shows a single photo: metadata, bookmark state, and an
// on-demand refresh from the photo endpoint.
type detailModel struct {
	gallery   *service.GalleryService
	bookmarks *service.BookmarkService

	image      domain.CuratedImage
	bookmarked bool
	refreshing bool
	err        error

	width  int
	height int
}

func newDetailModel(gallery *service.GalleryService, bookmarks *service.BookmarkService) detailModel {
	return detailModel{gallery: gallery, bookmarks: bookmarks}
}

// show resets the screen onto a new photo.
func (m detailModel) show(img domain.CuratedImage) detailModel {
	m.image = img
	m.bookmarked = m.bookmarks.IsBookmarked(img.ID)
	m.refreshing = false
	m.err = nil
	return m
}

func (m detailModel) update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case PhotoLoadedMsg:
		m.refreshing = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		if msg.Photo != nil {
			m.image = *msg.Photo
		}
		return m, nil

	case BookmarkToggledMsg:
		if msg.ID != m.image.ID {
			return m, nil
		}
		if msg.Err != nil {
			return m, statusCmd("Failed to update bookmark", true)
		}
		m.bookmarked = msg.Bookmarked
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Bookmark), key.Matches(msg, Keys.Enter):
			return m, toggleBookmarkCmd(m.bookmarks, m.image)
		case key.Matches(msg, Keys.Retry):
			m.refreshing = true
			return m, loadPhotoCmd(m.gallery, m.image.ID)
		}
	}
	return m, nil
}
