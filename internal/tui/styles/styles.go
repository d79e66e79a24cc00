package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	PexelsGreen = lipgloss.Color("#05A081")
	SlateDark   = lipgloss.Color("#1F2937")
	SlateLight  = lipgloss.Color("#374151")
	DimGray     = lipgloss.Color("#6B7280")
	LightGray   = lipgloss.Color("#9CA3AF")
	White       = lipgloss.Color("#F9FAFB")
	Amber       = lipgloss.Color("#F59E0B")
	Red         = lipgloss.Color("#EF4444")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PexelsGreen)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(PexelsGreen)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Amber)
)

// Bookmark indicators
const (
	BookmarkChar   = "★"
	UnbookmarkChar = "☆"
)

var (
	BookmarkStyle = lipgloss.NewStyle().Foreground(Amber)

	BookmarkStar = BookmarkStyle.Render(BookmarkChar)
)

// Badge styles for the data-source banner
var (
	CachedBadgeStyle = lipgloss.NewStyle().
				Foreground(SlateDark).
				Background(Amber).
				Padding(0, 1)

	OfflineBadgeStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(Red).
				Padding(0, 1)

	SampleBadgeStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Background(SlateLight).
				Padding(0, 1)
)

// Collection chip styles
var (
	ChipStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)

	ActiveChipStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(PexelsGreen).
			Padding(0, 1)

	FocusedChipStyle = lipgloss.NewStyle().
				Foreground(PexelsGreen).
				Bold(true).
				Padding(0, 1)
)

// Grid cell styles
var (
	GridCellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1).
			Width(24)

	GridCellSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(PexelsGreen).
				Padding(0, 1).
				Width(24)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PexelsGreen)
)

// Match highlight style for filtered bookmark rows
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(PexelsGreen).
				Bold(true)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(PexelsGreen)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}

// Pad pads a string to the given width
func Pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + spaces(width-len(s))
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// HighlightRunes renders s with the runes at the given indexes emphasized.
func HighlightRunes(s string, indexes []int) string {
	if len(indexes) == 0 {
		return s
	}
	marked := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		marked[i] = true
	}
	var out string
	for i, r := range []rune(s) {
		if marked[i] {
			out += MatchHighlightStyle.Render(string(r))
		} else {
			out += string(r)
		}
	}
	return out
}
