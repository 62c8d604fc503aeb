package kvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	format "github.com/go-git/go-git/v5/plumbing/format/config"
)

// FileStore reads and writes a git config file. The file is re-read on
// every call and rewritten after every change, so each call observes the
// file as it is on disk. Comments are not preserved on rewrite.
type FileStore struct {
	path string
}

// NewFileStore returns a store for the config file at path. The file does
// not need to exist until the first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the config file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) read() (*format.Config, error) {
	cfg := format.New()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if err := format.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", s.path, err)
	}
	return cfg, nil
}

func (s *FileStore) write(cfg *format.Config) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.lock")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := format.NewEncoder(tmp).Encode(cfg); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to encode config file %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// options returns the options holding the variable of a key, or nil.
func options(cfg *format.Config, section, subsection string) format.Options {
	if !cfg.HasSection(section) {
		return nil
	}
	sec := cfg.Section(section)
	if subsection == "" {
		return sec.Options
	}
	if !sec.HasSubsection(subsection) {
		return nil
	}
	return sec.Subsection(subsection).Options
}

func (s *FileStore) GetString(key string) (string, error) {
	section, subsection, name, err := splitKey(key)
	if err != nil {
		return "", err
	}

	cfg, err := s.read()
	if err != nil {
		return "", err
	}

	opts := options(cfg, section, subsection)
	if !opts.Has(name) {
		return "", ErrNotFound
	}
	return opts.Get(name), nil
}

func (s *FileStore) SetString(key, value string) error {
	section, subsection, name, err := splitKey(key)
	if err != nil {
		return err
	}

	cfg, err := s.read()
	if err != nil {
		return err
	}

	name = strings.ToLower(name)
	if subsection == "" {
		cfg.Section(section).SetOption(name, value)
	} else {
		cfg.Section(section).Subsection(subsection).SetOption(name, value)
	}
	return s.write(cfg)
}

func (s *FileStore) Remove(key string) error {
	section, subsection, name, err := splitKey(key)
	if err != nil {
		return err
	}

	cfg, err := s.read()
	if err != nil {
		return err
	}

	if !options(cfg, section, subsection).Has(name) {
		return ErrNotFound
	}

	sec := cfg.Section(section)
	if subsection == "" {
		sec.RemoveOption(name)
	} else {
		sub := sec.Subsection(subsection)
		sub.RemoveOption(name)
		if len(sub.Options) == 0 {
			sec.RemoveSubsection(subsection)
		}
	}
	return s.write(cfg)
}

// Entries lists matching entries in file order. Multi-valued variables
// yield one entry per value.
func (s *FileStore) Entries(pattern string) ([]Entry, error) {
	cfg, err := s.read()
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, sec := range cfg.Sections {
		for _, o := range sec.Options {
			entries = append(entries, Entry{Name: joinKey(sec.Name, "", o.Key), Value: o.Value})
		}
		for _, sub := range sec.Subsections {
			for _, o := range sub.Options {
				entries = append(entries, Entry{Name: joinKey(sec.Name, sub.Name, o.Key), Value: o.Value})
			}
		}
	}
	return Filter(entries, pattern)
}
