package tui

import (
	"musicshell/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

var namedKeyTypes = map[tea.KeyType]string{
	tea.KeySpace:     "SPACE",
	tea.KeyEnter:     "ENTER",
	tea.KeyEsc:       "ESC",
	tea.KeyBackspace: "BACKSPACE",
	tea.KeyTab:       "TAB",
	tea.KeyShiftTab:  "BACKTAB",
	tea.KeyDelete:    "DEL",
	tea.KeyUp:        "ARROW_UP",
	tea.KeyDown:      "ARROW_DOWN",
	tea.KeyLeft:      "ARROW_LEFT",
	tea.KeyRight:     "ARROW_RIGHT",
	tea.KeyF1:        "F1",
	tea.KeyF2:        "F2",
	tea.KeyF3:        "F3",
	tea.KeyF4:        "F4",
	tea.KeyF5:        "F5",
	tea.KeyF6:        "F6",
	tea.KeyF7:        "F7",
	tea.KeyF8:        "F8",
	tea.KeyF9:        "F9",
	tea.KeyF10:       "F10",
	tea.KeyF11:       "F11",
	tea.KeyF12:       "F12",
}

// KeysFromMsg converts a terminal key press into the key map's form. A burst
// of typed runes arrives as one message and yields one key per rune. Pasted
// text and keys the key map cannot express yield nothing.
func KeysFromMsg(msg tea.KeyMsg) []types.Key {
	var mods types.Modifier
	if msg.Alt {
		mods |= types.ModAlt
	}

	if token, ok := namedKeyTypes[msg.Type]; ok {
		return []types.Key{{Token: token, Mods: mods}}
	}

	switch {
	case msg.Type == tea.KeyRunes:
		if msg.Paste {
			return nil
		}
		keys := make([]types.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			token := string(r)
			if r == ' ' {
				token = "SPACE"
			}
			keys = append(keys, types.Key{Token: token, Mods: mods})
		}
		return keys

	case msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ:
		r := 'a' + rune(msg.Type-tea.KeyCtrlA)
		return []types.Key{{Token: string(r), Mods: mods | types.ModCtrl}}
	}
	return nil
}
