package integration

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/doodlesbykumbi/git-identity/pkg/kvstore"
	"github.com/doodlesbykumbi/git-identity/pkg/registry"
)

// Workspace is a scratch home directory holding a global config file and a
// repository with its own local config.
type Workspace struct {
	Dir        string
	GlobalPath string
	LocalPath  string
	Backend    kvstore.Backend

	Global kvstore.Store
	Local  kvstore.Store
}

// NewWorkspace lays out a workspace under dir. The backend is taken from
// INTEGRATION_BACKEND and defaults to the file backend.
func NewWorkspace(dir string) (*Workspace, error) {
	backend := kvstore.BackendFile
	if b := os.Getenv("INTEGRATION_BACKEND"); b != "" {
		backend = kvstore.Backend(b)
	}

	repo := filepath.Join(dir, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	w := &Workspace{
		Dir:        dir,
		GlobalPath: filepath.Join(dir, ".gitconfig"),
		LocalPath:  filepath.Join(repo, ".git", "config"),
		Backend:    backend,
	}

	var err error
	if w.Global, err = kvstore.Open(backend, w.GlobalPath); err != nil {
		return nil, err
	}
	if w.Local, err = kvstore.Open(backend, w.LocalPath); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"dir": dir, "backend": backend}).Debug("workspace ready")
	return w, nil
}

// Registry opens a registry over the workspace stores. Without a repository
// the registry has no local scope.
func (w *Workspace) Registry(inRepository bool) *registry.Registry {
	if !inRepository {
		return registry.New(w.Global)
	}
	return registry.New(w.Global, registry.WithLocal(w.Local))
}
