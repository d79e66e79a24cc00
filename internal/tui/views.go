package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/irisfoto/iris/internal/domain"
	"github.com/irisfoto/iris/internal/tui/styles"
)

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var body string
	switch m.screen {
	case ScreenBookmarks:
		body = m.bookmarksView()
	case ScreenDetail:
		body = m.detailView()
	default:
		body = m.homeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar())
}

func (m Model) statusBar() string {
	if m.status != "" {
		if m.statusError {
			return styles.ErrorStyle.Render(m.status)
		}
		return styles.AccentStyle.Render(m.status)
	}
	bindings := []key.Binding{
		Keys.Search, Keys.Enter, Keys.Bookmark, Keys.Saved,
		Keys.Retry, Keys.Refresh, Keys.Explore, Keys.Quit,
	}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = styles.HelpKeyStyle.Render(h.Key) + " " + styles.HelpDescStyle.Render(h.Desc)
	}
	return strings.Join(parts, styles.DimStyle.Render("  ·  "))
}

func (m Model) homeView() string {
	h := m.home
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Iris"))
	b.WriteString("  ")
	b.WriteString(m.sourceBadge())
	b.WriteString("\n\n")

	b.WriteString(h.search.View())
	b.WriteString("\n\n")

	b.WriteString(renderCollectionStrip(h))
	b.WriteString("\n\n")

	switch {
	case h.IsLoading:
		b.WriteString(h.spin.View() + " Loading photos...")
	case h.IsSearching:
		b.WriteString(h.spin.View() + fmt.Sprintf(" Searching for %q...", h.SearchQuery))
	case h.HasNetworkError && len(h.CuratedImages) == 0:
		b.WriteString(styles.ErrorStyle.Render("No internet connection"))
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("Press r to retry"))
	case h.ErrorMessage != "" && len(h.CuratedImages) == 0:
		b.WriteString(styles.ErrorStyle.Render(h.ErrorMessage))
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("Press r to retry"))
	default:
		if h.ErrorMessage != "" {
			b.WriteString(styles.WarningStyle.Render(h.ErrorMessage))
			b.WriteString("\n\n")
		}
		b.WriteString(renderGrid(h))
		if h.IsLoadingMore {
			b.WriteString("\n" + h.spin.View() + " Loading more...")
		}
	}

	return b.String()
}

// sourceBadge shows where the current home data came from when it is not
// live: cached, offline, or the built-in samples.
func (m Model) sourceBadge() string {
	h := m.home
	switch {
	case h.IsRefreshing:
		return styles.DimStyle.Render("refreshing...")
	case h.UsingFallbackData:
		return styles.SampleBadgeStyle.Render("SAMPLE DATA")
	case h.HasNetworkError:
		return styles.OfflineBadgeStyle.Render("OFFLINE")
	case h.HasRealCachedData && !h.IsSearchRequest:
		return styles.CachedBadgeStyle.Render("CACHED")
	}
	return ""
}

func renderCollectionStrip(h homeModel) string {
	if len(h.FeaturedCollections) == 0 {
		return ""
	}
	chips := make([]string, 0, len(h.FeaturedCollections))
	for i, c := range h.FeaturedCollections {
		label := c.Title
		switch {
		case c.ID == h.SelectedCollection:
			chips = append(chips, styles.ActiveChipStyle.Render(label))
		case h.focus == focusCollections && i == h.colCursor:
			chips = append(chips, styles.FocusedChipStyle.Render(label))
		default:
			chips = append(chips, styles.ChipStyle.Render(label))
		}
	}
	return strings.Join(chips, " ")
}

func renderGrid(h homeModel) string {
	if len(h.CuratedImages) == 0 {
		return styles.DimStyle.Render("No photos to show")
	}
	cols := h.columns()
	var rows []string
	for start := 0; start < len(h.CuratedImages); start += cols {
		end := min(start+cols, len(h.CuratedImages))
		cells := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cells = append(cells, renderCell(h.CuratedImages[i], h.focus == focusGrid && i == h.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func renderCell(img domain.CuratedImage, selected bool) string {
	body := styles.Truncate(img.Photographer, 20) + "\n" +
		styles.DimStyle.Render(img.Dimensions())
	if len(img.Tags) > 0 {
		body += "\n" + styles.SubtitleStyle.Render(styles.Truncate(strings.Join(img.Tags, ", "), 20))
	}
	if selected {
		return styles.GridCellSelectedStyle.Render(body)
	}
	return styles.GridCellStyle.Render(body)
}

func (m Model) bookmarksView() string {
	bm := m.bookmarks
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Saved Photos"))
	b.WriteString("\n\n")
	b.WriteString(bm.filter.View())
	b.WriteString("\n\n")

	switch {
	case bm.err != nil:
		b.WriteString(styles.ErrorStyle.Render("Failed to load bookmarks"))
	case !bm.loaded:
		b.WriteString(styles.DimStyle.Render("Loading..."))
	case len(bm.items) == 0:
		b.WriteString(styles.DimStyle.Render("No saved photos yet. Press b on a photo to save it."))
	case len(bm.visible) == 0:
		b.WriteString(styles.DimStyle.Render("No bookmarks match the filter"))
	default:
		for i, img := range bm.visible {
			cursor := "  "
			if i == bm.cursor {
				cursor = styles.AccentStyle.Render("> ")
			}
			name := styles.HighlightRunes(img.Photographer, bm.highlightIndexes(img.Photographer))
			line := cursor + styles.BookmarkStar + " " + name
			if len(img.Tags) > 0 {
				line += "  " + styles.DimStyle.Render(strings.Join(img.Tags, ", "))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d saved · x remove · enter open", len(bm.visible))))
	}

	return b.String()
}

func (m Model) detailView() string {
	d := m.detail
	img := d.image
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(img.Photographer))
	if d.bookmarked {
		b.WriteString(" " + styles.BookmarkStar)
	}
	b.WriteString("\n\n")

	b.WriteString(styles.SubtitleStyle.Render("Size") + "        " + img.Dimensions() + "\n")
	b.WriteString(styles.SubtitleStyle.Render("Aspect") + "      " + fmt.Sprintf("%.2f", img.AspectRatio()) + "\n")
	if len(img.Tags) > 0 {
		b.WriteString(styles.SubtitleStyle.Render("Tags") + "        " + strings.Join(img.Tags, ", ") + "\n")
	}
	b.WriteString(styles.SubtitleStyle.Render("Image") + "       " + img.ImageURL + "\n")
	b.WriteString(styles.SubtitleStyle.Render("Thumbnail") + "   " + img.ThumbnailURL + "\n")

	b.WriteString("\n")
	switch {
	case d.refreshing:
		b.WriteString(styles.DimStyle.Render("Refreshing..."))
	case d.err != nil:
		b.WriteString(styles.ErrorStyle.Render(faultMessage(d.err, "Failed to refresh photo")))
	default:
		b.WriteString(styles.DimStyle.Render("b toggle bookmark · r refresh · esc back"))
	}

	return b.String()
}
