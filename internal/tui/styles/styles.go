// Package styles turns a configured color theme into lipgloss styles.
package styles

import (
	"musicshell/pkg/types"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the rendered roles of one theme.
type Styles struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	Path       lipgloss.Style
	Text       lipgloss.Style
	Directory  lipgloss.Style
	Track      lipgloss.Style
	Selected   lipgloss.Style
	NowPlaying lipgloss.Style
	Panel      lipgloss.Style
	Popup      lipgloss.Style
	Input      lipgloss.Style
	ErrorBox   lipgloss.Style
	HelpKey    lipgloss.Style
	HelpDesc   lipgloss.Style

	// ProgressFull and ProgressEmpty are hex colors for the progress bar
	ProgressFull  string
	ProgressEmpty string
}

// Color converts a theme color to a lipgloss color.
func Color(c types.RGB) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

// New builds the styles for t.
func New(t types.Theme) Styles {
	text := Color(t.Text)
	heading := Color(t.Heading)
	bg := Color(t.Background)
	border := Color(t.Border)

	return Styles{
		App: lipgloss.NewStyle().
			Foreground(text).
			Background(bg),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(heading),
		Tab: lipgloss.NewStyle().
			Foreground(border).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(heading).
			Underline(true).
			Padding(0, 1),
		Path: lipgloss.NewStyle().
			Foreground(border).
			Italic(true),
		Text: lipgloss.NewStyle().
			Foreground(text),
		Directory: lipgloss.NewStyle().
			Foreground(Color(t.Directory)).
			Bold(true),
		Track: lipgloss.NewStyle().
			Foreground(Color(t.Track)),
		Selected: lipgloss.NewStyle().
			Background(Color(t.Highlighted)),
		NowPlaying: lipgloss.NewStyle().
			Foreground(Color(t.Progress)).
			Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(heading).
			Padding(0, 2),
		Input: lipgloss.NewStyle().
			Foreground(text).
			Background(Color(t.Highlighted)),
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(Color(t.Error)).
			Background(Color(t.Error)).
			Foreground(Color(t.ErrorText)).
			Padding(0, 2),
		HelpKey: lipgloss.NewStyle().
			Foreground(heading),
		HelpDesc: lipgloss.NewStyle().
			Foreground(border),

		ProgressFull:  t.Progress.Hex(),
		ProgressEmpty: t.Border.Hex(),
	}
}
