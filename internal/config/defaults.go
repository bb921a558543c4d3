package config

import (
	"os"
	"path/filepath"

	"musicshell/pkg/types"
)

const appName = "musicshell"

// DefaultDir returns ~/.config/musicshell, or a relative fallback when the
// home directory cannot be resolved.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, ".config", appName)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// defaultConfig returns the configuration used when no file exists and the
// base that file values are merged onto.
func defaultConfig() *Config {
	dir := DefaultDir()

	cfg := &Config{}
	cfg.Preferences = Preferences{
		SelectedTheme:      "dark",
		PlaylistsFolder:    filepath.Join(dir, "playlists"),
		StartDirectory:     "",
		PlayableExtensions: []string{"mp3", "wav", "flac", "ogg"},
		SessionFile:        filepath.Join(dir, "session.db"),
		LogFile:            filepath.Join(dir, appName+".log"),
		PollIntervalMs:     100,
		FrameIntervalMs:    32,
		AbortOnDecodeError: false,
	}
	cfg.Keymaps = defaultKeymaps()
	cfg.Themes = defaultThemes()
	return cfg
}

func defaultKeymaps() map[string][]Binding {
	return map[string][]Binding{
		"general": {
			{Key: "q", Action: "Exit"},
			{Key: "c", Mods: []string{"CTRL"}, Action: "Exit"},
			{Key: "ESC", Action: "Escape"},
			{Key: "t", Action: "SelectTheme"},
			{Key: "s", Action: "SavePlaylist"},
		},
		"navigation": {
			{Key: "k", Action: "Up"},
			{Key: "ARROW_UP", Action: "Up"},
			{Key: "j", Action: "Down"},
			{Key: "ARROW_DOWN", Action: "Down"},
			{Key: "l", Action: "ChildDir"},
			{Key: "ARROW_RIGHT", Action: "ChildDir"},
			{Key: "ENTER", Action: "Play"},
			{Key: "h", Action: "ParentDir"},
			{Key: "ARROW_LEFT", Action: "ParentDir"},
			{Key: "BACKSPACE", Action: "ParentDir"},
			{Key: "TAB", Action: "NextMode"},
			{Key: "BACKTAB", Action: "PrevMode"},
		},
		"queue": {
			{Key: "a", Action: "AddToQueue"},
			{Key: "A", Action: "AddAllToQueue"},
			{Key: "C", Action: "ClearQueue"},
			{Key: "DEL", Action: "Delete"},
			{Key: "d", Action: "Delete"},
			{Key: "n", Action: "QueueNext"},
			{Key: "p", Action: "QueuePrev"},
		},
		"playback": {
			{Key: "SPACE", Action: "TogglePause"},
			{Key: "r", Action: "ToggleRepeat"},
			{Key: ".", Action: "RewindForward", Arg: 5},
			{Key: ",", Action: "RewindBack", Arg: 5},
			{Key: "=", Action: "VolumeIncrease", Arg: 5},
			{Key: "+", Action: "VolumeIncrease", Arg: 5},
			{Key: "-", Action: "VolumeDecrease", Arg: 5},
		},
	}
}

func defaultThemes() map[string]types.Theme {
	return map[string]types.Theme{
		"dark": {
			Text:        types.RGB{205, 214, 244},
			Heading:     types.RGB{137, 180, 250},
			Background:  types.RGB{30, 30, 46},
			Border:      types.RGB{88, 91, 112},
			Highlighted: types.RGB{69, 71, 90},
			Error:       types.RGB{243, 139, 168},
			ErrorText:   types.RGB{17, 17, 27},
			Directory:   types.RGB{250, 179, 135},
			Track:       types.RGB{166, 227, 161},
			Progress:    types.RGB{203, 166, 247},
		},
		"light": {
			Text:        types.RGB{76, 79, 105},
			Heading:     types.RGB{30, 102, 245},
			Background:  types.RGB{239, 241, 245},
			Border:      types.RGB{156, 160, 176},
			Highlighted: types.RGB{204, 208, 218},
			Error:       types.RGB{210, 15, 57},
			ErrorText:   types.RGB{239, 241, 245},
			Directory:   types.RGB{254, 100, 11},
			Track:       types.RGB{64, 160, 43},
			Progress:    types.RGB{136, 57, 239},
		},
		"gruvbox": {
			Text:        types.RGB{235, 219, 178},
			Heading:     types.RGB{250, 189, 47},
			Background:  types.RGB{40, 40, 40},
			Border:      types.RGB{102, 92, 84},
			Highlighted: types.RGB{80, 73, 69},
			Error:       types.RGB{251, 73, 52},
			ErrorText:   types.RGB{40, 40, 40},
			Directory:   types.RGB{131, 165, 152},
			Track:       types.RGB{184, 187, 38},
			Progress:    types.RGB{211, 134, 155},
		},
	}
}
