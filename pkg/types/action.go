package types

import "fmt"

// ActionKind identifies a logical action a key can be bound to.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionUp
	ActionDown
	ActionChildDir
	ActionParentDir
	ActionPlay
	ActionNextMode
	ActionPrevMode
	ActionAddToQueue
	ActionAddAllToQueue
	ActionClearQueue
	ActionDelete
	ActionTogglePause
	ActionToggleRepeat
	ActionQueueNext
	ActionQueuePrev
	ActionRewindForward
	ActionRewindBack
	ActionVolumeIncrease
	ActionVolumeDecrease
	ActionSelectTheme
	ActionSavePlaylist
	ActionEscape
	ActionExit
)

var actionNames = map[ActionKind]string{
	ActionUp:             "Up",
	ActionDown:           "Down",
	ActionChildDir:       "ChildDir",
	ActionParentDir:      "ParentDir",
	ActionPlay:           "Play",
	ActionNextMode:       "NextMode",
	ActionPrevMode:       "PrevMode",
	ActionAddToQueue:     "AddToQueue",
	ActionAddAllToQueue:  "AddAllToQueue",
	ActionClearQueue:     "ClearQueue",
	ActionDelete:         "Delete",
	ActionTogglePause:    "TogglePause",
	ActionToggleRepeat:   "ToggleRepeat",
	ActionQueueNext:      "QueueNext",
	ActionQueuePrev:      "QueuePrev",
	ActionRewindForward:  "RewindForward",
	ActionRewindBack:     "RewindBack",
	ActionVolumeIncrease: "VolumeIncrease",
	ActionVolumeDecrease: "VolumeDecrease",
	ActionSelectTheme:    "SelectTheme",
	ActionSavePlaylist:   "SavePlaylist",
	ActionEscape:         "Escape",
	ActionExit:           "Exit",
}

var actionsByName = func() map[string]ActionKind {
	m := make(map[string]ActionKind, len(actionNames))
	for k, v := range actionNames {
		m[v] = k
	}
	return m
}()

// String returns the configuration name of the action kind.
func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return "None"
}

// TakesArg reports whether the action carries a numeric argument
// (seconds for seeking, percentage points for volume).
func (k ActionKind) TakesArg() bool {
	switch k {
	case ActionRewindForward, ActionRewindBack, ActionVolumeIncrease, ActionVolumeDecrease:
		return true
	}
	return false
}

// IsGlobal reports whether the action applies outside the Normal window:
// playback controls plus deleting the selected entry.
func (k ActionKind) IsGlobal() bool {
	switch k {
	case ActionTogglePause, ActionToggleRepeat, ActionQueueNext, ActionQueuePrev,
		ActionRewindForward, ActionRewindBack, ActionVolumeIncrease, ActionVolumeDecrease,
		ActionClearQueue, ActionDelete:
		return true
	}
	return false
}

// Action is a logical action with its optional argument.
type Action struct {
	Kind ActionKind
	Arg  int
}

func (a Action) String() string {
	if a.Kind.TakesArg() {
		return fmt.Sprintf("%s(%d)", a.Kind, a.Arg)
	}
	return a.Kind.String()
}

// ParseAction resolves an action name from configuration. Actions that take
// an argument default to 5 when arg is zero.
func ParseAction(name string, arg int) (Action, error) {
	kind, ok := actionsByName[name]
	if !ok {
		return Action{}, fmt.Errorf("unknown action %q", name)
	}
	if arg < 0 {
		return Action{}, fmt.Errorf("action %s: negative argument %d", name, arg)
	}
	if !kind.TakesArg() {
		return Action{Kind: kind}, nil
	}
	if arg == 0 {
		arg = 5
	}
	return Action{Kind: kind, Arg: arg}, nil
}
