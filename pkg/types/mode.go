package types

// WindowKind represents which modal overlay owns input focus.
type WindowKind int

const (
	// WindowNormal is plain browsing with no overlay
	WindowNormal WindowKind = iota
	// WindowThemeSelect is the theme picker
	WindowThemeSelect
	// WindowPlaylistNameEntry collects a name for saving the queue
	WindowPlaylistNameEntry
	// WindowError shows a message until dismissed
	WindowError
)

// WindowMode is the active window with its error message, if any.
type WindowMode struct {
	Kind    WindowKind
	Message string
}

// NormalWindow returns the default window mode.
func NormalWindow() WindowMode {
	return WindowMode{Kind: WindowNormal}
}

// ErrorWindow returns an error window carrying msg.
func ErrorWindow(msg string) WindowMode {
	return WindowMode{Kind: WindowError, Message: msg}
}

// NavMode selects which list the navigation tree shows.
type NavMode int

const (
	NavFiles NavMode = iota
	NavQueue
	NavPlaylists
)

const navModeCount = 3

// Next returns the following mode, wrapping around.
func (m NavMode) Next() NavMode {
	return (m + 1) % navModeCount
}

// Prev returns the preceding mode, wrapping around.
func (m NavMode) Prev() NavMode {
	return (m + navModeCount - 1) % navModeCount
}

func (m NavMode) String() string {
	switch m {
	case NavFiles:
		return "Files"
	case NavQueue:
		return "Queue"
	case NavPlaylists:
		return "Playlists"
	}
	return "Unknown"
}
