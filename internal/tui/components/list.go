package components

import (
	"strings"

	"musicshell/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	markerNowPlaying = "▶ "
	markerNone       = "  "
	ellipsis         = "…"
)

// Item is one row of a List.
type Item struct {
	Text   string
	Style  lipgloss.Style
	Marked bool
}

// List renders a window of items that keeps the selected row visible.
type List struct {
	Items    []Item
	Selected int
	Width    int
	Height   int
}

// VisibleRange returns the [start, end) slice of n rows that fits in height
// and keeps selected roughly centered.
func VisibleRange(selected, n, height int) (int, int) {
	if height <= 0 || n == 0 {
		return 0, 0
	}
	if n <= height {
		return 0, n
	}
	start := selected - height/2
	if start < 0 {
		start = 0
	}
	if start > n-height {
		start = n - height
	}
	return start, start + height
}

// Truncate shortens s to at most width cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// View renders the list. An empty list renders as an empty string.
func (l List) View(st styles.Styles) string {
	start, end := VisibleRange(l.Selected, len(l.Items), l.Height)
	if start == end {
		return ""
	}

	textWidth := l.Width - runewidth.StringWidth(markerNone)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		it := l.Items[i]
		marker := markerNone
		if it.Marked {
			marker = markerNowPlaying
		}
		line := marker + Truncate(it.Text, textWidth)
		if l.Width > 0 {
			line = runewidth.FillRight(line, l.Width)
		}

		style := it.Style
		if i == l.Selected {
			style = st.Selected.Inherit(it.Style)
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}
