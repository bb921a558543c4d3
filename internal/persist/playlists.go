package persist

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"musicshell/internal/errors"

	"github.com/gobwas/glob"
)

// PlaylistExt is the extension of playlist files.
const PlaylistExt = ".plist"

var playlistGlob = glob.MustCompile("*" + PlaylistExt)

// IsPlaylistFile reports whether path names a playlist file.
func IsPlaylistFile(path string) bool {
	return playlistGlob.Match(filepath.Base(path))
}

// PlaylistStore keeps one gob-encoded file per playlist in a folder.
type PlaylistStore struct {
	dir string
}

func NewPlaylistStore(dir string) *PlaylistStore {
	return &PlaylistStore{dir: dir}
}

// Dir is the playlists folder.
func (p *PlaylistStore) Dir() string {
	return p.dir
}

// ValidateName rejects names that are empty or would escape the folder.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return errors.NewInvalidInputError("playlist name is empty", nil)
	case trimmed == "." || trimmed == "..":
		return errors.NewInvalidInputError("invalid playlist name", nil).WithContext("name", name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, os.PathSeparator):
		return errors.NewInvalidInputError("playlist name contains a path separator", nil).WithContext("name", name)
	}
	return nil
}

func (p *PlaylistStore) path(name string) string {
	return filepath.Join(p.dir, name+PlaylistExt)
}

// Save writes tracks under name, replacing any playlist with that name.
func (p *PlaylistStore) Save(name string, tracks []string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return errors.FromOS("problem with playlists folder", p.dir, err)
	}

	tmp, err := os.CreateTemp(p.dir, ".tmp-*"+PlaylistExt+"~")
	if err != nil {
		return errors.FromOS("problem with playlists folder", p.dir, err)
	}
	defer os.Remove(tmp.Name())

	if tracks == nil {
		tracks = []string{}
	}
	if err := gob.NewEncoder(tmp).Encode(tracks); err != nil {
		tmp.Close()
		return errors.NewStoreError("could not encode playlist", err).WithOperation("save").WithContext("name", name)
	}
	if err := tmp.Close(); err != nil {
		return errors.FromOS("could not write playlist", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), p.path(name)); err != nil {
		return errors.FromOS("could not write playlist", p.path(name), err)
	}
	return nil
}

// Load reads the tracks of the named playlist.
func (p *PlaylistStore) Load(name string) ([]string, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	f, err := os.Open(p.path(name))
	if err != nil {
		return nil, errors.FromOS("could not open playlist", p.path(name), err)
	}
	defer f.Close()

	var tracks []string
	if err := gob.NewDecoder(f).Decode(&tracks); err != nil {
		return nil, errors.NewCorruptStoreError("could not decode playlist", err).
			WithOperation("load").WithContext("name", name)
	}
	return tracks, nil
}

// Delete removes the named playlist file.
func (p *PlaylistStore) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.Remove(p.path(name)); err != nil {
		return errors.FromOS("could not delete playlist", p.path(name), err)
	}
	return nil
}

// List scans the folder and returns playlist names sorted by name. A
// missing folder has no playlists.
func (p *PlaylistStore) List() ([]string, error) {
	items, err := os.ReadDir(p.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.FromOS("problem with playlists folder", p.dir, err)
	}

	var names []string
	for _, item := range items {
		if item.IsDir() || !IsPlaylistFile(item.Name()) {
			continue
		}
		names = append(names, strings.TrimSuffix(item.Name(), PlaylistExt))
	}
	sort.Strings(names)
	return names, nil
}
