package tokenstore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore persists the credential to a single file so it survives process
// restarts. Restoring is optimistic: the token is not validated against the
// server; the first rejected call clears it again.
type FileStore struct {
	mu    sync.Mutex
	path  string
	token string
}

// NewFileStore opens (or creates lazily) a store backed by path.
// A missing file means "unauthenticated" and is not an error.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		s.token = strings.TrimSpace(string(b))
	case errors.Is(err, os.ErrNotExist):
		// no persisted credential
	default:
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return err
	}
	s.token = token
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}
