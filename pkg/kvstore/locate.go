package kvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Backend selects the Store implementation for config files.
type Backend string

const (
	BackendGit  Backend = "git"
	BackendFile Backend = "file"
)

// Open returns a store for the config file at path.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendGit, "":
		return NewGitStore(path), nil
	case BackendFile:
		return NewFileStore(path), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// FindLocal walks up from dir until a directory containing .git/config is
// found and returns that config file.
func FindLocal(dir string) (string, bool, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false, err
	}

	for {
		candidate := filepath.Join(dir, ".git", "config")
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return candidate, true, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) && !errors.Is(err, os.ErrPermission) {
			return "", false, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// GlobalPath returns the user's global git config the way git picks it for
// writing: ~/.gitconfig, unless only the XDG config exists.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dotfile := filepath.Join(home, ".gitconfig")
	if _, err := os.Stat(dotfile); err == nil {
		return dotfile, nil
	}

	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		xdg = filepath.Join(home, ".config")
	}
	xdgFile := filepath.Join(xdg, "git", "config")
	if _, err := os.Stat(xdgFile); err == nil {
		return xdgFile, nil
	}
	return dotfile, nil
}

// PrivatePath returns the default private identity file, kept out of
// shared dotfiles and pulled into the global config with [include].
func PrivatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gitconfig.private"), nil
}
