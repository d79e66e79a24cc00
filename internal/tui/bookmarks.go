package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/irisfoto/iris/internal/domain"
	"github.com/irisfoto/iris/internal/service"
)

// bookmarksModel is the saved-photos screen: the full bookmark list, a
// fuzzy filter over photographer and tags, and a cursor.
type bookmarksModel struct {
	svc *service.BookmarkService

	items   []domain.CuratedImage
	visible []domain.CuratedImage

	filter    textinput.Model
	filtering bool
	cursor    int

	loaded bool
	err    error

	width  int
	height int
}

func newBookmarksModel(svc *service.BookmarkService) bookmarksModel {
	ti := textinput.New()
	ti.Placeholder = "Filter bookmarks..."
	ti.CharLimit = 80
	ti.Prompt = "/ "
	return bookmarksModel{svc: svc, filter: ti}
}

func (m bookmarksModel) init() tea.Cmd {
	return loadBookmarksCmd(m.svc)
}

func (m bookmarksModel) update(msg tea.Msg) (bookmarksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case BookmarksLoadedMsg:
		m.loaded = true
		m.err = msg.Err
		m.items = msg.Bookmarks
		m.applyFilter()
		if m.cursor >= len(m.visible) {
			m.cursor = max(0, len(m.visible)-1)
		}
		return m, nil

	case BookmarkRemovedMsg:
		if msg.Err != nil {
			return m, statusCmd("Failed to remove bookmark", true)
		}
		return m, loadBookmarksCmd(m.svc)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m bookmarksModel) handleKey(msg tea.KeyMsg) (bookmarksModel, tea.Cmd) {
	if m.filtering {
		switch {
		case key.Matches(msg, Keys.Escape):
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		case key.Matches(msg, Keys.Enter):
			m.filtering = false
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		if m.cursor >= len(m.visible) {
			m.cursor = max(0, len(m.visible)-1)
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Search):
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink
	case key.Matches(msg, Keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, Keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, Keys.Remove):
		if img, ok := m.selected(); ok {
			return m, removeBookmarkCmd(m.svc, img.ID)
		}
	case key.Matches(msg, Keys.Escape):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyFilter()
		}
	}
	return m, nil
}

func (m *bookmarksModel) applyFilter() {
	query := m.filter.Value()
	if query == "" {
		m.visible = m.items
		return
	}
	m.visible = m.svc.Filter(m.items, query)
}

func (m bookmarksModel) selected() (domain.CuratedImage, bool) {
	if m.cursor >= 0 && m.cursor < len(m.visible) {
		return m.visible[m.cursor], true
	}
	return domain.CuratedImage{}, false
}

// highlightIndexes returns which runes of the photographer name matched the
// current filter, for emphasis in the row rendering.
func (m bookmarksModel) highlightIndexes(photographer string) []int {
	query := m.filter.Value()
	if query == "" {
		return nil
	}
	matches := fuzzy.Find(query, []string{photographer})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}
