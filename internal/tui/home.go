package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/irisfoto/iris/internal/domain"
	"github.com/irisfoto/iris/internal/service"
	"github.com/irisfoto/iris/internal/tui/styles"
)

// HomeState holds everything the home screen renders from. All transitions
// run through the apply* reducers below so they stay testable without a
// terminal.
type HomeState struct {
	IsLoading     bool
	IsRefreshing  bool
	IsLoadingMore bool
	IsSearching   bool

	HasNetworkError   bool
	HasRealCachedData bool
	UsingFallbackData bool
	ErrorMessage      string

	SearchQuery        string
	SelectedCollection string

	FeaturedCollections []domain.FeaturedCollection
	CuratedImages       []domain.CuratedImage

	HasMoreItems bool
	CurrentPage  int

	// OriginalCollectionOrder preserves the server ordering of the
	// collection strip so clearing a selection restores it exactly.
	OriginalCollectionOrder []string

	// LastFailedQuery remembers a search that failed so retry can re-run
	// it instead of falling back to the curated feed.
	LastFailedQuery string

	// IsSearchRequest marks that the list currently shows search results
	// rather than the curated feed.
	IsSearchRequest bool
}

func newHomeState() HomeState {
	return HomeState{
		IsLoading:    true,
		HasMoreItems: true,
		CurrentPage:  1,
	}
}

// applyInitialLoaded folds the combined startup fetch into the state. Both
// outcomes are considered together: real data from either side counts as
// cached data, and the fallback dataset only appears when neither side
// produced anything.
func applyInitialLoaded(s HomeState, msg InitialLoadedMsg) HomeState {
	s.IsLoading = false
	s.IsRefreshing = false
	s.CurrentPage = 1
	s.HasMoreItems = true
	s.IsSearchRequest = false
	s.LastFailedQuery = ""

	collections := msg.Collections.Items
	images := msg.Images.Items
	s.OriginalCollectionOrder = collectionIDs(collections)

	if msg.Collections.Source == domain.Fresh && msg.Images.Source == domain.Fresh {
		s.FeaturedCollections = collections
		s.CuratedImages = images
		s.HasRealCachedData = true
		s.UsingFallbackData = false
		s.HasNetworkError = false
		s.ErrorMessage = ""
		return s
	}

	networkFault := domain.IsNetworkError(msg.Collections.Err) || domain.IsNetworkError(msg.Images.Err)
	classified := networkFault ||
		domain.IsAPIError(msg.Collections.Err) || domain.IsAPIError(msg.Images.Err)
	hasAny := len(collections) > 0 || len(images) > 0

	if !hasAny && !classified {
		// A fault outside the client's taxonomy means something broke
		// unexpectedly; show the built-in samples so the screen stays
		// usable.
		s.FeaturedCollections = fallbackCollections()
		s.CuratedImages = fallbackImages()
		s.HasRealCachedData = false
		s.UsingFallbackData = true
		s.HasNetworkError = false
		s.ErrorMessage = "Failed to load data"
		return s
	}

	if len(collections) > 0 {
		s.FeaturedCollections = collections
	} else {
		s.FeaturedCollections = fallbackCollections()
	}
	// Only the collection strip falls back to samples; the photo grid
	// stays empty so the offline or error screen can show.
	s.CuratedImages = images

	s.HasRealCachedData = hasAny
	s.UsingFallbackData = !hasAny
	s.HasNetworkError = networkFault && !hasAny
	if !networkFault {
		s.ErrorMessage = "Failed to load data"
	} else {
		s.ErrorMessage = ""
	}
	return s
}

// applyCuratedReloaded folds a page-1 curated reload (clear search, explore,
// empty debounce) into the state.
func applyCuratedReloaded(s HomeState, o domain.Outcome[domain.CuratedImage]) HomeState {
	s.IsLoading = false
	s.IsRefreshing = false
	s.IsSearching = false
	s.IsSearchRequest = false
	s.LastFailedQuery = ""
	s.CurrentPage = 1
	s.HasMoreItems = true

	switch o.Source {
	case domain.Fresh:
		s.CuratedImages = o.Items
		s.HasRealCachedData = true
		s.UsingFallbackData = false
		s.HasNetworkError = false
		s.ErrorMessage = ""
	case domain.Stale:
		s.CuratedImages = o.Items
		s.HasRealCachedData = true
		s.UsingFallbackData = false
		s.HasNetworkError = domain.IsNetworkError(o.Err)
		s.ErrorMessage = ""
	default:
		if domain.IsNetworkError(o.Err) {
			s.CuratedImages = nil
			s.HasRealCachedData = false
			s.HasNetworkError = true
			s.ErrorMessage = ""
		} else {
			// Keep whatever is on screen; only surface the message.
			s.HasNetworkError = false
			s.ErrorMessage = faultMessage(o.Err, "Failed to load images")
		}
	}
	return s
}

// applyMoreImages appends one curated page. A short page means the feed is
// exhausted. Failures leave the current list untouched. Appended pages are
// merged by ID so an overlapping page never duplicates a card.
func applyMoreImages(s HomeState, msg MoreImagesMsg) HomeState {
	s.IsLoadingMore = false
	if msg.Outcome.Source != domain.Fresh {
		return s
	}
	s.HasMoreItems = len(msg.Outcome.Items) == service.PhotosPerPage
	s.CurrentPage = msg.Page
	s.CuratedImages = mergeImages(s.CuratedImages, msg.Outcome.Items)
	s.HasRealCachedData = true
	s.ErrorMessage = ""
	return s
}

// applySearchResults folds a completed search into the state. Search results
// never mix with cached or fallback data.
func applySearchResults(s HomeState, msg SearchResultsMsg) HomeState {
	s.IsSearching = false
	s.IsLoading = false
	s.IsRefreshing = false

	if msg.Outcome.Source == domain.Fresh {
		s.CuratedImages = msg.Outcome.Items
		s.HasRealCachedData = false
		s.UsingFallbackData = false
		s.HasNetworkError = false
		s.LastFailedQuery = ""
		if len(msg.Outcome.Items) == 0 {
			s.ErrorMessage = fmt.Sprintf("No results found for %q", msg.Query)
		} else {
			s.ErrorMessage = ""
		}
		return s
	}

	s.CuratedImages = nil
	s.HasRealCachedData = false
	s.UsingFallbackData = false
	if domain.IsNetworkError(msg.Outcome.Err) {
		s.HasNetworkError = true
		s.ErrorMessage = ""
	} else {
		s.HasNetworkError = false
		s.ErrorMessage = faultMessage(msg.Outcome.Err, "Search failed")
	}
	return s
}

// beginSearch flips the state into a search request for the given query.
func beginSearch(s HomeState, query string) HomeState {
	s.IsSearching = true
	s.IsSearchRequest = true
	s.HasNetworkError = false
	s.ErrorMessage = ""
	s.CurrentPage = 1
	s.HasMoreItems = true
	s.LastFailedQuery = query
	return s
}

// reorderForActive moves the active collection to the front of the strip and
// keeps everything else in the canonical order. An empty or unknown active ID
// restores the canonical order unchanged.
func reorderForActive(current []domain.FeaturedCollection, canonical []string, activeID string) []domain.FeaturedCollection {
	if len(current) == 0 {
		return current
	}
	order := canonical
	if len(order) == 0 {
		order = collectionIDs(current)
	}
	byID := make(map[string]domain.FeaturedCollection, len(current))
	for _, c := range current {
		byID[c.ID] = c
	}

	out := make([]domain.FeaturedCollection, 0, len(current))
	if active, ok := byID[activeID]; ok && activeID != "" {
		out = append(out, active)
	}
	for _, id := range order {
		if id == activeID {
			continue
		}
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

func collectionIDs(collections []domain.FeaturedCollection) []string {
	ids := make([]string, len(collections))
	for i, c := range collections {
		ids[i] = c.ID
	}
	return ids
}

// matchCollectionTitle returns the ID of the collection whose title equals
// the query, ignoring case, or "" when none matches.
func matchCollectionTitle(collections []domain.FeaturedCollection, query string) string {
	for _, c := range collections {
		if strings.EqualFold(c.Title, query) {
			return c.ID
		}
	}
	return ""
}

func mergeImages(existing, more []domain.CuratedImage) []domain.CuratedImage {
	seen := make(map[string]struct{}, len(existing))
	for _, img := range existing {
		seen[img.ID] = struct{}{}
	}
	out := existing
	for _, img := range more {
		if _, ok := seen[img.ID]; ok {
			continue
		}
		seen[img.ID] = struct{}{}
		out = append(out, img)
	}
	return out
}

func faultMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	return err.Error()
}

// homeFocus tracks which region of the home screen receives key input.
type homeFocus int

const (
	focusGrid homeFocus = iota
	focusSearch
	focusCollections
)

// homeModel wraps HomeState with the interactive pieces: the search input,
// spinner, cursors, and the debounce sequence counter.
type homeModel struct {
	HomeState

	gallery   *service.GalleryService
	bookmarks *service.BookmarkService

	search    textinput.Model
	spin      spinner.Model
	focus     homeFocus
	cursor    int
	colCursor int
	searchSeq int

	// gridCols pins the grid width when configured; 0 means fit to the
	// terminal.
	gridCols int

	width  int
	height int
}

func newHomeModel(gallery *service.GalleryService, bookmarks *service.BookmarkService, gridCols int) homeModel {
	ti := textinput.New()
	ti.Placeholder = "Search photos..."
	ti.CharLimit = 80
	ti.Prompt = "/ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return homeModel{
		HomeState: newHomeState(),
		gallery:   gallery,
		bookmarks: bookmarks,
		search:    ti,
		spin:      sp,
		gridCols:  gridCols,
	}
}

func (m homeModel) init() tea.Cmd {
	return tea.Batch(loadInitialCmd(m.gallery), m.spin.Tick)
}

func (m homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case InitialLoadedMsg:
		m.HomeState = applyInitialLoaded(m.HomeState, msg)
		m.cursor = 0
		return m, nil

	case CuratedReloadedMsg:
		m.HomeState = applyCuratedReloaded(m.HomeState, msg.Outcome)
		m.cursor = 0
		return m, nil

	case MoreImagesMsg:
		m.HomeState = applyMoreImages(m.HomeState, msg)
		return m, nil

	case SearchResultsMsg:
		// Results for a query the user has since changed are dropped.
		if msg.Query != m.SearchQuery {
			return m, nil
		}
		m.HomeState = applySearchResults(m.HomeState, msg)
		m.cursor = 0
		return m, nil

	case SearchDebounceMsg:
		if msg.Seq != m.searchSeq {
			return m, nil
		}
		if msg.Query == "" {
			m.SelectedCollection = ""
			m.FeaturedCollections = reorderForActive(m.FeaturedCollections, m.OriginalCollectionOrder, "")
			m.IsRefreshing = true
			return m, reloadCuratedCmd(m.gallery)
		}
		m.HomeState = beginSearch(m.HomeState, msg.Query)
		return m, searchCmd(m.gallery, msg.Query)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m homeModel) handleKey(msg tea.KeyMsg) (homeModel, tea.Cmd) {
	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Search):
		m.focus = focusSearch
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, Keys.Focus):
		if m.focus == focusGrid {
			m.focus = focusCollections
		} else {
			m.focus = focusGrid
		}
		return m, nil
	case key.Matches(msg, Keys.Refresh):
		return m.refresh()
	case key.Matches(msg, Keys.Explore):
		return m.explore()
	case key.Matches(msg, Keys.Escape):
		if m.SearchQuery != "" || m.SelectedCollection != "" {
			return m.clearSearch()
		}
		return m, nil
	case key.Matches(msg, Keys.Retry):
		return m.retry()
	}

	if m.focus == focusCollections {
		return m.handleCollectionKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m homeModel) handleSearchKey(msg tea.KeyMsg) (homeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.focus = focusGrid
		m.search.Blur()
		if m.SearchQuery != "" {
			return m.clearSearch()
		}
		return m, nil
	case key.Matches(msg, Keys.Enter):
		m.focus = focusGrid
		m.search.Blur()
		if q := m.search.Value(); q != "" {
			// Submitting runs the search right away instead of waiting out
			// the debounce timer.
			m.searchSeq++
			m.HomeState = beginSearch(m.HomeState, q)
			return m, searchCmd(m.gallery, q)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.SearchQuery {
		return m.queryChanged(q, cmd)
	}
	return m, cmd
}

// queryChanged applies the immediate effects of a keystroke (query text,
// collection highlight, strip reorder) and schedules the debounce timer.
func (m homeModel) queryChanged(query string, inputCmd tea.Cmd) (homeModel, tea.Cmd) {
	m.SearchQuery = query
	m.SelectedCollection = matchCollectionTitle(m.FeaturedCollections, query)
	m.FeaturedCollections = reorderForActive(m.FeaturedCollections, m.OriginalCollectionOrder, m.SelectedCollection)
	m.searchSeq++
	return m, tea.Batch(inputCmd, debounceCmd(query, m.searchSeq))
}

func (m homeModel) handleCollectionKey(msg tea.KeyMsg) (homeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Left):
		if m.colCursor > 0 {
			m.colCursor--
		}
	case key.Matches(msg, Keys.Right):
		if m.colCursor < len(m.FeaturedCollections)-1 {
			m.colCursor++
		}
	case key.Matches(msg, Keys.Enter):
		if m.colCursor < len(m.FeaturedCollections) {
			return m.selectCollection(m.FeaturedCollections[m.colCursor])
		}
	}
	return m, nil
}

// selectCollection treats a collection pick as a search for its title.
func (m homeModel) selectCollection(c domain.FeaturedCollection) (homeModel, tea.Cmd) {
	m.SearchQuery = c.Title
	m.search.SetValue(c.Title)
	m.SelectedCollection = c.ID
	m.FeaturedCollections = reorderForActive(m.FeaturedCollections, m.OriginalCollectionOrder, c.ID)
	m.colCursor = 0
	m.searchSeq++ // cancel any pending debounce
	m.HomeState = beginSearch(m.HomeState, c.Title)
	return m, searchCmd(m.gallery, c.Title)
}

func (m homeModel) handleGridKey(msg tea.KeyMsg) (homeModel, tea.Cmd) {
	cols := m.columns()
	switch {
	case key.Matches(msg, Keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(msg, Keys.Down):
		if m.cursor+cols < len(m.CuratedImages) {
			m.cursor += cols
		}
		return m.maybeLoadMore()
	case key.Matches(msg, Keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, Keys.Right):
		if m.cursor < len(m.CuratedImages)-1 {
			m.cursor++
		}
		return m.maybeLoadMore()
	case key.Matches(msg, Keys.End):
		if n := len(m.CuratedImages); n > 0 {
			m.cursor = n - 1
		}
		return m.maybeLoadMore()
	case key.Matches(msg, Keys.Bookmark):
		if m.cursor < len(m.CuratedImages) {
			return m, toggleBookmarkCmd(m.bookmarks, m.CuratedImages[m.cursor])
		}
	}
	return m, nil
}

// maybeLoadMore requests the next curated page when the cursor nears the end
// of the grid. Search results and in-flight or exhausted feeds never paginate.
func (m homeModel) maybeLoadMore() (homeModel, tea.Cmd) {
	const threshold = 6
	if m.IsLoadingMore || !m.HasMoreItems || m.IsSearchRequest {
		return m, nil
	}
	if len(m.CuratedImages)-m.cursor > threshold {
		return m, nil
	}
	m.IsLoadingMore = true
	return m, loadMoreCmd(m.gallery, m.CurrentPage+1)
}

func (m homeModel) clearSearch() (homeModel, tea.Cmd) {
	m.SearchQuery = ""
	m.search.SetValue("")
	m.SelectedCollection = ""
	m.IsSearching = false
	m.searchSeq++ // cancel any pending debounce
	m.FeaturedCollections = reorderForActive(m.FeaturedCollections, m.OriginalCollectionOrder, "")
	m.IsRefreshing = true
	return m, reloadCuratedCmd(m.gallery)
}

// retry re-runs whatever failed last: a failed search first, then an active
// query, then the full initial load.
func (m homeModel) retry() (homeModel, tea.Cmd) {
	switch {
	case m.LastFailedQuery != "":
		query := m.LastFailedQuery
		m.HomeState = beginSearch(m.HomeState, query)
		return m, searchCmd(m.gallery, query)
	case m.SearchQuery != "":
		m.HomeState = beginSearch(m.HomeState, m.SearchQuery)
		return m, searchCmd(m.gallery, m.SearchQuery)
	default:
		m.IsLoading = true
		m.HasNetworkError = false
		m.ErrorMessage = ""
		return m, loadInitialCmd(m.gallery)
	}
}

// refresh re-runs the current view from the network: an active search is
// searched again, otherwise the full initial load repeats.
func (m homeModel) refresh() (homeModel, tea.Cmd) {
	if m.SearchQuery != "" {
		m.HomeState = beginSearch(m.HomeState, m.SearchQuery)
		m.IsRefreshing = true
		return m, searchCmd(m.gallery, m.SearchQuery)
	}
	m.IsRefreshing = true
	return m, loadInitialCmd(m.gallery)
}

// explore abandons any search and returns to the curated feed.
func (m homeModel) explore() (homeModel, tea.Cmd) {
	m.SearchQuery = ""
	m.search.SetValue("")
	m.SelectedCollection = ""
	m.IsSearching = false
	m.searchSeq++
	m.FeaturedCollections = reorderForActive(m.FeaturedCollections, m.OriginalCollectionOrder, "")
	m.IsRefreshing = true
	m.cursor = 0
	return m, reloadCuratedCmd(m.gallery)
}

func (m homeModel) selectedImage() (domain.CuratedImage, bool) {
	if m.cursor >= 0 && m.cursor < len(m.CuratedImages) {
		return m.CuratedImages[m.cursor], true
	}
	return domain.CuratedImage{}, false
}

func (m homeModel) columns() int {
	if m.gridCols > 0 {
		return m.gridCols
	}
	if m.width <= 0 {
		return 3
	}
	cols := m.width / 28
	if cols < 1 {
		cols = 1
	}
	if cols > 5 {
		cols = 5
	}
	return cols
}
