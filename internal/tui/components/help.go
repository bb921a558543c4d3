package components

import (
	"fmt"
	"strings"

	"musicshell/internal/tui/styles"
	"musicshell/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

var keyLabels = map[string]string{
	"ARROW_UP":    "↑",
	"ARROW_DOWN":  "↓",
	"ARROW_LEFT":  "←",
	"ARROW_RIGHT": "→",
	"BACKTAB":     "shift+tab",
	"BACKSPACE":   "bksp",
}

var actionHelp = map[types.ActionKind]string{
	types.ActionUp:             "up",
	types.ActionDown:           "down",
	types.ActionChildDir:       "open",
	types.ActionParentDir:      "parent",
	types.ActionPlay:           "play",
	types.ActionNextMode:       "next list",
	types.ActionPrevMode:       "prev list",
	types.ActionAddToQueue:     "enqueue",
	types.ActionAddAllToQueue:  "enqueue all",
	types.ActionClearQueue:     "clear queue",
	types.ActionDelete:         "delete",
	types.ActionTogglePause:    "pause",
	types.ActionToggleRepeat:   "repeat",
	types.ActionQueueNext:      "next",
	types.ActionQueuePrev:      "prev",
	types.ActionRewindForward:  "seek +%ds",
	types.ActionRewindBack:     "seek -%ds",
	types.ActionVolumeIncrease: "vol +%d",
	types.ActionVolumeDecrease: "vol -%d",
	types.ActionSelectTheme:    "theme",
	types.ActionSavePlaylist:   "save playlist",
	types.ActionEscape:         "close",
	types.ActionExit:           "quit",
}

// KeyLabel is the short form of k shown in the help footer.
func KeyLabel(k types.Key) string {
	token, ok := keyLabels[k.Token]
	if !ok {
		if len(k.Token) > 1 {
			token = strings.ToLower(k.Token)
		} else {
			token = k.Token
		}
	}
	plain := types.Key{Token: k.Token}
	return strings.TrimSuffix(k.String(), plain.String()) + token
}

// ActionHelp describes a, including its argument.
func ActionHelp(a types.Action) string {
	desc, ok := actionHelp[a.Kind]
	if !ok {
		return a.String()
	}
	if a.Kind.TakesArg() {
		return fmt.Sprintf(desc, a.Arg)
	}
	return desc
}

// Help is the key binding footer.
type Help struct {
	bindings []key.Binding
	model    help.Model
}

// NewHelp groups the key map by action so each action is listed once.
func NewHelp(km types.KeyMap) *Help {
	var (
		bindings []key.Binding
		keys     []string
		labels   []string
		current  types.Action
	)
	flush := func() {
		if len(keys) == 0 {
			return
		}
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(labels, "/"), ActionHelp(current)),
		))
		keys, labels = nil, nil
	}
	for _, b := range km.Bindings() {
		if b.Action != current {
			flush()
			current = b.Action
		}
		keys = append(keys, b.Key.String())
		labels = append(labels, KeyLabel(b.Key))
	}
	flush()

	return &Help{bindings: bindings, model: help.New()}
}

// Bindings returns the grouped bindings in display order.
func (h *Help) Bindings() []key.Binding {
	return h.bindings
}

// View renders one line, cut with an ellipsis at width.
func (h *Help) View(st styles.Styles, width int) string {
	m := h.model
	m.Width = width
	m.Styles.ShortKey = st.HelpKey
	m.Styles.ShortDesc = st.HelpDesc
	m.Styles.ShortSeparator = st.HelpDesc
	m.Styles.Ellipsis = st.HelpDesc
	return m.ShortHelpView(h.bindings)
}
