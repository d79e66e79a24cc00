package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/irisfoto/iris/internal/service"
)

// Screen identifies which top-level view is showing.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenBookmarks
	ScreenDetail
)

// Model is the root Bubble Tea model. It routes messages to the active
// screen and handles global keys.
type Model struct {
	screen     Screen
	prevScreen Screen

	home      homeModel
	bookmarks bookmarksModel
	detail    detailModel

	gallery *service.GalleryService
	logger  *slog.Logger

	status      string
	statusError bool

	width  int
	height int
	ready  bool
}

func NewModel(gallery *service.GalleryService, bookmarkSvc *service.BookmarkService, logger *slog.Logger, gridCols int) Model {
	return Model{
		home:      newHomeModel(gallery, bookmarkSvc, gridCols),
		bookmarks: newBookmarksModel(bookmarkSvc),
		detail:    newDetailModel(gallery, bookmarkSvc),
		gallery:   gallery,
		logger:    logger,
	}
}

func (m Model) Init() tea.Cmd {
	return m.home.init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.home.width = msg.Width
		m.home.height = msg.Height
		m.bookmarks.width = msg.Width
		m.bookmarks.height = msg.Height
		m.detail.width = msg.Width
		m.detail.height = msg.Height
		return m, nil

	case StatusMsg:
		m.status = msg.Message
		m.statusError = msg.IsError
		return m, clearStatusAfter(statusTimeout)

	case ClearStatusMsg:
		m.status = ""
		m.statusError = false
		return m, nil

	case CacheClearedMsg:
		if msg.Err != nil {
			m.logger.Error("cache clear failed", "error", msg.Err)
			return m, statusCmd("Failed to clear cache", true)
		}
		return m, statusCmd("Cache cleared", false)

	case BookmarkToggledMsg:
		var cmds []tea.Cmd
		if msg.Err == nil {
			if msg.Bookmarked {
				cmds = append(cmds, statusCmd("Bookmarked", false))
			} else {
				cmds = append(cmds, statusCmd("Bookmark removed", false))
			}
			cmds = append(cmds, loadBookmarksCmd(m.bookmarks.svc))
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if model, cmd, handled := m.handleGlobalKey(msg); handled {
			return model, cmd
		}
	}

	return m.routeToScreen(msg)
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	// Text inputs swallow printable keys, so global shortcuts only apply
	// when no input is focused.
	typing := (m.screen == ScreenHome && m.home.focus == focusSearch) ||
		(m.screen == ScreenBookmarks && m.bookmarks.filtering)

	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit, true
	case key.Matches(msg, Keys.Quit):
		if typing {
			return m, nil, false
		}
		if m.screen == ScreenDetail {
			m.screen = m.prevScreen
			return m, nil, true
		}
		return m, tea.Quit, true
	case key.Matches(msg, Keys.Saved):
		if typing || m.screen == ScreenDetail {
			return m, nil, false
		}
		if m.screen == ScreenBookmarks {
			m.screen = ScreenHome
			return m, nil, true
		}
		m.screen = ScreenBookmarks
		return m, m.bookmarks.init(), true
	case key.Matches(msg, Keys.Enter):
		if typing || m.screen == ScreenDetail {
			return m, nil, false
		}
		if m.screen == ScreenHome && m.home.focus == focusGrid {
			if img, ok := m.home.selectedImage(); ok {
				m.prevScreen = m.screen
				m.detail = m.detail.show(img)
				m.screen = ScreenDetail
				return m, nil, true
			}
		}
		if m.screen == ScreenBookmarks {
			if img, ok := m.bookmarks.selected(); ok {
				m.prevScreen = m.screen
				m.detail = m.detail.show(img)
				m.screen = ScreenDetail
				return m, nil, true
			}
		}
		return m, nil, false
	case key.Matches(msg, Keys.Escape):
		if m.screen == ScreenDetail {
			m.screen = m.prevScreen
			return m, nil, true
		}
		return m, nil, false
	case key.Matches(msg, Keys.ClearCache):
		return m, clearCacheCmd(m.gallery), true
	}
	return m, nil, false
}

// routeToScreen delivers keys to the active screen and async results to the
// screen that owns them, so a fetch finishing off-screen is never dropped.
func (m Model) routeToScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.(type) {
	case InitialLoadedMsg, CuratedReloadedMsg, MoreImagesMsg,
		SearchResultsMsg, SearchDebounceMsg, spinner.TickMsg:
		m.home, cmd = m.home.update(msg)
	case BookmarksLoadedMsg, BookmarkRemovedMsg:
		m.bookmarks, cmd = m.bookmarks.update(msg)
	case PhotoLoadedMsg:
		m.detail, cmd = m.detail.update(msg)
	default:
		switch m.screen {
		case ScreenHome:
			m.home, cmd = m.home.update(msg)
		case ScreenBookmarks:
			m.bookmarks, cmd = m.bookmarks.update(msg)
		case ScreenDetail:
			m.detail, cmd = m.detail.update(msg)
		}
	}
	return m, cmd
}
