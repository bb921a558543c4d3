// Package persist stores the session between runs and the saved playlists.
package persist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"musicshell/internal/errors"
	"musicshell/internal/log"

	"go.etcd.io/bbolt"
)

var (
	sessionBucket = []byte("session")
	stateKey      = []byte("state")
)

// Session is what survives a restart.
type Session struct {
	Queue []string `json:"queue"`
	// Index is the queue slot that was playing.
	Index         int     `json:"index"`
	Volume        float64 `json:"volume"`
	SelectedTheme string  `json:"selected_theme"`
}

// SessionStore keeps the session in a bbolt database.
type SessionStore struct {
	db   *bbolt.DB
	path string
}

// OpenSessionStore opens or creates the database at path. A file that is not
// a valid database is deleted and recreated.
func OpenSessionStore(path string) (*SessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.FromOS("could not create session directory", filepath.Dir(path), err)
	}

	db, err := openDB(path)
	if err != nil {
		if errors.Is(err, bbolt.ErrTimeout) {
			return nil, errors.NewStoreError("session database is locked", err).
				WithOperation("open").WithContext("path", path)
		}
		log.LogWithError(err).Warn("Session database unreadable, starting fresh")
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			return nil, errors.FromOS("could not remove corrupt session", path, rmErr)
		}
		if db, err = openDB(path); err != nil {
			return nil, errors.NewStoreError("could not open session database", err).
				WithOperation("open").WithContext("path", path)
		}
	}

	return &SessionStore{db: db, path: path}, nil
}

func openDB(path string) (*bbolt.DB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Load returns the saved session with missing files dropped. ok is false
// when nothing usable was stored; an undecodable value is deleted.
func (s *SessionStore) Load() (sess Session, ok bool, err error) {
	var raw []byte
	err = s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(sessionBucket).Get(stateKey); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return Session{}, false, errors.NewStoreError("could not read session", err).WithOperation("load")
	}
	if raw == nil {
		return Session{}, false, nil
	}

	if err := json.Unmarshal(raw, &sess); err != nil {
		log.LogWithError(errors.NewCorruptStoreError("undecodable session", err)).Warn("Discarding saved session")
		if delErr := s.clear(); delErr != nil {
			return Session{}, false, delErr
		}
		return Session{}, false, nil
	}

	sess.Queue, sess.Index = dropMissing(sess.Queue, sess.Index)
	return sess, true, nil
}

// dropMissing removes tracks whose files are gone and moves index so it
// still refers to the same track, or the one after it.
func dropMissing(queue []string, index int) ([]string, int) {
	kept := make([]string, 0, len(queue))
	for i, path := range queue {
		if _, err := os.Stat(path); err != nil {
			log.LogWithFields(log.F("path", path)).Debug("Dropping missing track from session")
			if i < index {
				index--
			}
			continue
		}
		kept = append(kept, path)
	}
	if index >= len(kept) || index < 0 {
		index = 0
	}
	return kept, index
}

// Save replaces the stored session.
func (s *SessionStore) Save(sess Session) error {
	value, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "error serializing session")
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionBucket).Put(stateKey, value)
	})
	if err != nil {
		return errors.NewStoreError("could not save session", err).WithOperation("save")
	}
	return nil
}

func (s *SessionStore) clear() error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete(stateKey)
	})
	if err != nil {
		return errors.NewStoreError("could not clear session", err).WithOperation("clear")
	}
	return nil
}

// Path returns the database file location.
func (s *SessionStore) Path() string {
	return s.path
}

func (s *SessionStore) Close() error {
	return s.db.Close()
}
