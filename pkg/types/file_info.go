package types

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Entry represents a file or directory in the browser listing.
type Entry struct {
	Path  string
	IsDir bool
}

// Name returns the base name of the entry
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// SortEntries orders directories before files, then byte-wise by path.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Path < entries[j].Path
	})
}

// RGB is a color as red, green and blue components in 0-255.
type RGB [3]int

// Hex formats the color as #rrggbb, clamping out-of-range components.
func (c RGB) Hex() string {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return v
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(c[0]), clamp(c[1]), clamp(c[2]))
}

// Theme maps semantic roles to colors.
type Theme struct {
	Text        RGB `yaml:"text" toml:"text"`
	Heading     RGB `yaml:"heading" toml:"heading"`
	Background  RGB `yaml:"background" toml:"background"`
	Border      RGB `yaml:"border" toml:"border"`
	Highlighted RGB `yaml:"highlighted" toml:"highlighted"`
	Error       RGB `yaml:"error" toml:"error"`
	ErrorText   RGB `yaml:"error_text" toml:"error_text"`
	Directory   RGB `yaml:"directory" toml:"directory"`
	Track       RGB `yaml:"track" toml:"track"`
	Progress    RGB `yaml:"progress" toml:"progress"`
}
