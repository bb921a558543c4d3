package types

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Modifier is a bit set of keyboard modifiers.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "CTRL"},
	{ModAlt, "ALT"},
	{ModShift, "SHIFT"},
	{ModSuper, "SUPER"},
}

// ParseModifier parses a modifier token such as "CTRL".
func ParseModifier(token string) (Modifier, error) {
	for _, m := range modifierNames {
		if strings.EqualFold(token, m.name) {
			return m.mod, nil
		}
	}
	return 0, fmt.Errorf("unknown modifier %q", token)
}

// Named key tokens. Any other token must be a single character.
var namedKeys = map[string]bool{
	"SPACE": true, "BACKSPACE": true, "TAB": true, "BACKTAB": true, "DEL": true,
	"ENTER": true, "ESC": true,
	"ARROW_UP": true, "ARROW_DOWN": true, "ARROW_LEFT": true, "ARROW_RIGHT": true,
	"F1": true, "F2": true, "F3": true, "F4": true, "F5": true, "F6": true,
	"F7": true, "F8": true, "F9": true, "F10": true, "F11": true, "F12": true,
}

// Key is a physical key with its modifier set.
type Key struct {
	Token string
	Mods  Modifier
}

// ParseKey validates a key token and its modifier tokens.
func ParseKey(token string, mods []string) (Key, error) {
	if token == "" {
		return Key{}, fmt.Errorf("empty key token")
	}
	upper := strings.ToUpper(token)
	if namedKeys[upper] {
		token = upper
	} else if utf8.RuneCountInString(token) != 1 {
		return Key{}, fmt.Errorf("unknown key token %q", token)
	}

	k := Key{Token: token}
	for _, m := range mods {
		mod, err := ParseModifier(m)
		if err != nil {
			return Key{}, err
		}
		k.Mods |= mod
	}
	return k, nil
}

// Has reports whether the key carries the modifier.
func (k Key) Has(m Modifier) bool {
	return k.Mods&m != 0
}

// Rune returns the printable rune for single-character tokens.
func (k Key) Rune() (rune, bool) {
	if k.Token == "SPACE" {
		return ' ', true
	}
	if utf8.RuneCountInString(k.Token) != 1 || namedKeys[k.Token] {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(k.Token)
	return r, true
}

func (k Key) String() string {
	var parts []string
	for _, m := range modifierNames {
		if k.Has(m.mod) {
			parts = append(parts, strings.ToLower(m.name))
		}
	}
	parts = append(parts, k.Token)
	return strings.Join(parts, "+")
}

// KeyMap maps physical keys to logical actions. It is built once at
// startup and read-only afterwards.
type KeyMap map[Key]Action

// Lookup returns the action bound to k.
func (m KeyMap) Lookup(k Key) (Action, bool) {
	a, ok := m[k]
	return a, ok
}

// Binding is one resolved key binding, used for help rendering.
type Binding struct {
	Key    Key
	Action Action
}

// Bindings returns the bindings ordered by action kind, then key.
func (m KeyMap) Bindings() []Binding {
	out := make([]Binding, 0, len(m))
	for k, a := range m {
		out = append(out, Binding{Key: k, Action: a})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Action.Kind != out[j].Action.Kind {
			return out[i].Action.Kind < out[j].Action.Kind
		}
		return out[i].Key.String() < out[j].Key.String()
	})
	return out
}
