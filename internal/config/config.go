package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"musicshell/internal/errors"
	"musicshell/internal/log"
	"musicshell/pkg/types"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It holds scalar preferences, named key binding tables and named themes.
type Config struct {
	Preferences Preferences            `yaml:"preferences" toml:"preferences"`
	Keymaps     map[string][]Binding   `yaml:"keymaps" toml:"keymaps"`
	Themes      map[string]types.Theme `yaml:"themes" toml:"themes"`
}

// Preferences are the scalar settings.
type Preferences struct {
	SelectedTheme      string   `yaml:"selected_theme" toml:"selected_theme"`               // Theme active at startup
	PlaylistsFolder    string   `yaml:"playlists_folder" toml:"playlists_folder"`           // Where <name>.plist files live
	StartDirectory     string   `yaml:"start_directory" toml:"start_directory"`             // Browser root, empty means cwd
	PlayableExtensions []string `yaml:"playable_extensions" toml:"playable_extensions"`     // Without the leading dot
	SessionFile        string   `yaml:"session_file" toml:"session_file"`                   // bbolt database for the session
	LogFile            string   `yaml:"log_file" toml:"log_file"`                           // Log destination while the UI runs
	PollIntervalMs     int      `yaml:"poll_interval_ms" toml:"poll_interval_ms"`           // Scheduler and dispatcher poll
	FrameIntervalMs    int      `yaml:"frame_interval_ms" toml:"frame_interval_ms"`         // Render cadence
	AbortOnDecodeError bool     `yaml:"abort_on_decode_error" toml:"abort_on_decode_error"` // Exit instead of skipping
}

// Binding is one entry of a key binding table.
type Binding struct {
	Key    string   `yaml:"key" toml:"key"`
	Mods   []string `yaml:"mods,omitempty" toml:"mods,omitempty"`
	Action string   `yaml:"action" toml:"action"`
	Arg    int      `yaml:"arg,omitempty" toml:"arg,omitempty"`
}

// LoadConfig loads configuration from the default location
// (~/.config/musicshell/config.yaml).
func LoadConfig() (*Config, error) {
	return LoadConfigFile(DefaultPath())
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, the defaults are written there and returned.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if saveErr := SaveConfig(cfg, path); saveErr != nil {
				log.LogWithError(saveErr).Warn("Could not write default config")
			} else {
				log.LogWithFields(log.F("path", path)).Info("Wrote default config")
			}
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	var tempCfg Config
	if err := unmarshal(path, data, &tempCfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	cfg.merge(&tempCfg)
	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func unmarshal(path string, data []byte, out *Config) error {
	if isTOML(path) {
		return toml.Unmarshal(data, out)
	}
	return yaml.Unmarshal(data, out)
}

// merge overlays values set in the file onto c.
func (c *Config) merge(file *Config) {
	p := file.Preferences
	if p.SelectedTheme != "" {
		c.Preferences.SelectedTheme = p.SelectedTheme
	}
	if p.PlaylistsFolder != "" {
		c.Preferences.PlaylistsFolder = p.PlaylistsFolder
	}
	if p.StartDirectory != "" {
		c.Preferences.StartDirectory = p.StartDirectory
	}
	if len(p.PlayableExtensions) > 0 {
		c.Preferences.PlayableExtensions = p.PlayableExtensions
	}
	if p.SessionFile != "" {
		c.Preferences.SessionFile = p.SessionFile
	}
	if p.LogFile != "" {
		c.Preferences.LogFile = p.LogFile
	}
	if p.PollIntervalMs != 0 {
		c.Preferences.PollIntervalMs = p.PollIntervalMs
	}
	if p.FrameIntervalMs != 0 {
		c.Preferences.FrameIntervalMs = p.FrameIntervalMs
	}
	c.Preferences.AbortOnDecodeError = p.AbortOnDecodeError

	// A file with its own key tables replaces the default tables entirely
	if len(file.Keymaps) > 0 {
		c.Keymaps = file.Keymaps
	}
	for name, theme := range file.Themes {
		c.Themes[name] = theme
	}
}

func (c *Config) expandPaths() {
	p := &c.Preferences
	p.PlaylistsFolder = expandHome(p.PlaylistsFolder)
	p.StartDirectory = expandHome(p.StartDirectory)
	p.SessionFile = expandHome(p.SessionFile)
	p.LogFile = expandHome(p.LogFile)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// SaveConfig saves the configuration to the specified file, as TOML when the
// extension is .toml and YAML otherwise.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.FromOS("failed to create config directory", dir, err)
	}

	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.FromOS("failed to write config file", path, err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrInvalidConfig
	}

	p := c.Preferences
	if len(c.Themes) == 0 {
		return errors.NewConfigError("no themes configured", "themes", errors.InvalidConfig, nil)
	}
	if _, ok := c.Themes[p.SelectedTheme]; !ok {
		return errors.NewConfigError("unknown theme "+p.SelectedTheme, "preferences.selected_theme", errors.InvalidConfig, nil)
	}
	for name, theme := range c.Themes {
		if err := validateTheme(theme); err != nil {
			return errors.NewConfigError("invalid theme "+name, "themes."+name, errors.InvalidConfig, err)
		}
	}

	if p.PlaylistsFolder == "" {
		return errors.NewConfigError("playlists folder is required", "preferences.playlists_folder", errors.InvalidConfig, nil)
	}
	if p.SessionFile == "" {
		return errors.NewConfigError("session file is required", "preferences.session_file", errors.InvalidConfig, nil)
	}
	if len(p.PlayableExtensions) == 0 {
		return errors.NewConfigError("at least one playable extension is required", "preferences.playable_extensions", errors.InvalidConfig, nil)
	}
	for _, ext := range p.PlayableExtensions {
		if ext == "" || strings.ContainsAny(ext, "{}*?[]!,/\\") {
			return errors.NewConfigError("invalid playable extension "+ext, "preferences.playable_extensions", errors.InvalidConfig, nil)
		}
	}
	if p.PollIntervalMs < 1 {
		return errors.NewConfigError("poll interval must be >= 1ms", "preferences.poll_interval_ms", errors.InvalidConfig, nil)
	}
	if p.FrameIntervalMs < 1 {
		return errors.NewConfigError("frame interval must be >= 1ms", "preferences.frame_interval_ms", errors.InvalidConfig, nil)
	}

	if _, err := c.KeyMap(); err != nil {
		return err
	}
	return nil
}

func validateTheme(t types.Theme) error {
	for _, c := range []types.RGB{t.Text, t.Heading, t.Background, t.Border, t.Highlighted,
		t.Error, t.ErrorText, t.Directory, t.Track, t.Progress} {
		for _, v := range c {
			if v < 0 || v > 255 {
				return errors.Newf("color component %d out of range", v)
			}
		}
	}
	return nil
}

// KeyMap resolves every binding table into one key map. Tables are applied
// in name order, so a later table overrides an earlier one for the same key.
func (c *Config) KeyMap() (types.KeyMap, error) {
	names := make([]string, 0, len(c.Keymaps))
	for name := range c.Keymaps {
		names = append(names, name)
	}
	sort.Strings(names)

	km := make(types.KeyMap)
	for _, name := range names {
		for i, b := range c.Keymaps[name] {
			key, err := types.ParseKey(b.Key, b.Mods)
			if err != nil {
				return nil, errors.NewConfigError("invalid key binding", keymapParam(name, i), errors.InvalidConfig, err)
			}
			action, err := types.ParseAction(b.Action, b.Arg)
			if err != nil {
				return nil, errors.NewConfigError("invalid key binding", keymapParam(name, i), errors.InvalidConfig, err)
			}
			if prev, ok := km[key]; ok && prev != action {
				log.LogWithFields(log.F("key", key.String()), log.F("table", name)).Debug("Key binding overridden")
			}
			km[key] = action
		}
	}
	return km, nil
}

func keymapParam(table string, index int) string {
	return fmt.Sprintf("keymaps.%s[%d]", table, index)
}

// ThemeNames returns the configured theme names sorted by name.
func (c *Config) ThemeNames() []string {
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}
