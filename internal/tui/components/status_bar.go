package components

import (
	"fmt"
	"strings"
	"time"

	"musicshell/internal/player"
	"musicshell/internal/tui/styles"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// NowPlaying renders the playback panel: title, position and a progress bar.
type NowPlaying struct {
	Status player.Status
	Width  int
}

// FormatDuration renders d as m:ss, or h:mm:ss past an hour.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	h, m, s := secs/3600, (secs/60)%60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Fraction is the played share of the track, in [0, 1].
func Fraction(pos, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	f := float64(pos) / float64(total)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (n NowPlaying) flags() string {
	parts := []string{fmt.Sprintf("vol %d%%", int(n.Status.Volume*100+0.5))}
	if n.Status.Repeat {
		parts = append(parts, "repeat")
	}
	return strings.Join(parts, "  ")
}

// View renders the panel at n.Width, borders included.
func (n NowPlaying) View(st styles.Styles) string {
	inner := n.Width - st.Panel.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	s := n.Status
	title := "Nothing playing"
	if s.Playing {
		icon := "▶"
		if s.Paused {
			icon = "⏸"
		}
		title = icon + " " + s.NowPlaying
	}

	clock := FormatDuration(s.Position) + " / " + FormatDuration(s.Total)
	right := n.flags()
	if s.Playing {
		right = clock + "  " + right
	}
	titleWidth := inner - lipgloss.Width(right) - 1
	if titleWidth < 1 {
		titleWidth = 1
	}
	head := lipgloss.JoinHorizontal(lipgloss.Top,
		st.NowPlaying.Width(titleWidth).Render(Truncate(title, titleWidth)),
		" ",
		st.Text.Render(right),
	)

	bar := progress.New(
		progress.WithSolidFill(st.ProgressFull),
		progress.WithoutPercentage(),
		progress.WithWidth(inner),
	)
	bar.EmptyColor = st.ProgressEmpty

	return st.Panel.Width(n.Width - st.Panel.GetHorizontalBorderSize()).
		Render(lipgloss.JoinVertical(lipgloss.Left, head, bar.ViewAs(Fraction(s.Position, s.Total))))
}
