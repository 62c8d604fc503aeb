package kvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gopasspw/gitconfig"
)

// GitStore edits a git config file in place with gitconfig, which keeps the
// file's comments and layout across writes. Entries are enumerated with the
// same decoder FileStore uses.
type GitStore struct {
	path string
	list *FileStore
}

// NewGitStore returns a store for the config file at path. The file does
// not need to exist until the first write.
func NewGitStore(path string) *GitStore {
	return &GitStore{path: path, list: NewFileStore(path)}
}

// Path returns the config file path.
func (s *GitStore) Path() string {
	return s.path
}

// load parses the file. A missing file yields nil unless create is set, in
// which case an empty file is created first.
func (s *GitStore) load(create bool) (*gitconfig.Config, error) {
	_, err := os.Stat(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist) && create:
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(s.path, nil, 0o644); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, err
	}

	cfg, err := gitconfig.LoadConfig(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", s.path, err)
	}
	return cfg, nil
}

func (s *GitStore) GetString(key string) (string, error) {
	key, err := Canonical(key)
	if err != nil {
		return "", err
	}

	cfg, err := s.load(false)
	if err != nil {
		return "", err
	}
	if cfg == nil {
		return "", ErrNotFound
	}
	v, ok := cfg.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *GitStore) SetString(key, value string) error {
	key, err := Canonical(key)
	if err != nil {
		return err
	}

	cfg, err := s.load(true)
	if err != nil {
		return err
	}
	// Set and Unset flush the file themselves.
	if err := cfg.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *GitStore) Remove(key string) error {
	key, err := Canonical(key)
	if err != nil {
		return err
	}

	cfg, err := s.load(false)
	if err != nil {
		return err
	}
	if cfg == nil {
		return ErrNotFound
	}
	if _, ok := cfg.Get(key); !ok {
		return ErrNotFound
	}
	if err := cfg.Unset(key); err != nil {
		return fmt.Errorf("failed to unset %s: %w", key, err)
	}
	return nil
}

// Entries lists matching entries in file order.
func (s *GitStore) Entries(pattern string) ([]Entry, error) {
	return s.list.Entries(pattern)
}
