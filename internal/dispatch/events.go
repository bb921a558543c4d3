package dispatch

import "musicshell/pkg/types"

// Event is anything the dispatcher reacts to.
type Event interface {
	event()
}

// KeyEvent is one key press from the terminal.
type KeyEvent struct {
	Key types.Key
}

// NoticeEvent carries a message for the error window.
type NoticeEvent struct {
	Message string
}

// RefreshPlaylistsEvent asks for a rescan of the playlists folder.
type RefreshPlaylistsEvent struct{}

func (KeyEvent) event()              {}
func (NoticeEvent) event()           {}
func (RefreshPlaylistsEvent) event() {}
