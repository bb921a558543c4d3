// Package views composes one frame from a workspace snapshot and the
// playback status.
package views

import (
	"path/filepath"
	"strings"

	"musicshell/internal/player"
	"musicshell/internal/tui/components"
	"musicshell/internal/tui/styles"
	"musicshell/internal/workspace"
	"musicshell/pkg/types"

	"github.com/charmbracelet/lipgloss"
)

// Fallback terminal size until the first resize message arrives.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

const appTitle = "musicshell"

// Frame is everything a frame is drawn from. Snap and Status must each come
// from a single read.
type Frame struct {
	Snap   workspace.Snapshot
	Status player.Status
	Help   *components.Help
	Width  int
	Height int
}

// RenderMainView renders the full screen.
func RenderMainView(f Frame) string {
	width, height := f.Width, f.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	st := styles.New(f.Snap.Theme)

	header := renderHeader(f.Snap, st, width)
	nowPlaying := components.NowPlaying{Status: f.Status, Width: width}.View(st)
	footer := ""
	if f.Help != nil {
		footer = f.Help.View(st, width)
	}

	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(nowPlaying) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := renderBody(f, st, width, bodyHeight)

	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, nowPlaying, footer)
	return st.App.Width(width).Render(screen)
}

func renderHeader(snap workspace.Snapshot, st styles.Styles, width int) string {
	tabs := []string{st.Title.Render(appTitle), " "}
	for _, m := range []types.NavMode{types.NavFiles, types.NavQueue, types.NavPlaylists} {
		style := st.Tab
		if m == snap.Mode {
			style = st.ActiveTab
		}
		tabs = append(tabs, style.Render(m.String()))
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var sub string
	switch snap.Mode {
	case types.NavFiles:
		sub = snap.Dir
	case types.NavPlaylists:
		sub = "Playlists"
	case types.NavQueue:
		sub = "Queue"
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, st.Path.Render(components.Truncate(sub, width)))
}

func renderBody(f Frame, st styles.Styles, width, height int) string {
	var overlay string
	switch f.Snap.Window.Kind {
	case types.WindowThemeSelect:
		overlay = renderThemePicker(f.Snap, st, width)
	case types.WindowPlaylistNameEntry:
		overlay = renderPlaylistEntry(f.Snap, st, width)
	case types.WindowError:
		overlay = renderError(f.Snap.Window.Message, st, width)
	}
	if overlay != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay)
	}

	list := components.List{
		Items:    listItems(f, st),
		Selected: f.Snap.Selected,
		Width:    width,
		Height:   height,
	}
	return lipgloss.NewStyle().Height(height).Render(list.View(st))
}

// listItems builds the rows of the current navigation mode.
func listItems(f Frame, st styles.Styles) []components.Item {
	switch f.Snap.Mode {
	case types.NavFiles:
		items := make([]components.Item, len(f.Snap.Entries))
		for i, e := range f.Snap.Entries {
			if e.IsDir {
				items[i] = components.Item{Text: e.Name() + string(filepath.Separator), Style: st.Directory}
			} else {
				items[i] = components.Item{Text: e.Name(), Style: st.Track}
			}
		}
		return items

	case types.NavQueue:
		queue := f.Status.Queue
		items := make([]components.Item, len(queue))
		for i, path := range queue {
			items[i] = components.Item{Text: filepath.Base(path), Style: st.Track}
		}
		if len(items) > 0 && f.Status.NowPlayingSlot < len(items) {
			items[f.Status.NowPlayingSlot].Marked = true
			items[f.Status.NowPlayingSlot].Style = st.NowPlaying
		}
		return items

	case types.NavPlaylists:
		items := make([]components.Item, len(f.Snap.Playlists))
		for i, name := range f.Snap.Playlists {
			items[i] = components.Item{Text: name, Style: st.Text}
		}
		return items
	}
	return nil
}

func popupWidth(width int) int {
	w := width / 2
	if w < 24 {
		w = width - 2
	}
	if w < 1 {
		w = 1
	}
	return w
}

func renderThemePicker(snap workspace.Snapshot, st styles.Styles, width int) string {
	w := popupWidth(width)
	inner := w - st.Popup.GetHorizontalFrameSize()

	items := make([]components.Item, len(snap.ThemeNames))
	for i, name := range snap.ThemeNames {
		items[i] = components.Item{Text: name, Style: st.Text, Marked: name == snap.ThemeName}
	}
	list := components.List{Items: items, Selected: snap.ThemeCursor, Width: inner, Height: len(items)}

	content := lipgloss.JoinVertical(lipgloss.Left, st.Title.Render("Select theme"), "", list.View(st))
	return st.Popup.Width(w - st.Popup.GetHorizontalBorderSize()).Render(content)
}

func renderPlaylistEntry(snap workspace.Snapshot, st styles.Styles, width int) string {
	w := popupWidth(width)
	inner := w - st.Popup.GetHorizontalFrameSize()

	text := snap.Input + "▏"
	if lipgloss.Width(text) > inner {
		// Keep the cursor end visible
		r := []rune(text)
		for lipgloss.Width(string(r)) > inner && len(r) > 1 {
			r = r[1:]
		}
		text = string(r)
	}
	input := st.Input.Width(inner).Render(text)

	content := lipgloss.JoinVertical(lipgloss.Left, st.Title.Render("Save queue as playlist"), "", input)
	return st.Popup.Width(w - st.Popup.GetHorizontalBorderSize()).Render(content)
}

func renderError(msg string, st styles.Styles, width int) string {
	w := popupWidth(width)
	content := strings.Join([]string{"Error", "", msg, "", "esc to dismiss"}, "\n")
	return st.ErrorBox.Width(w - st.ErrorBox.GetHorizontalBorderSize()).Render(content)
}
