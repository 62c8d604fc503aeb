package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/doodlesbykumbi/git-identity/pkg/audit"
	"github.com/doodlesbykumbi/git-identity/pkg/config"
	"github.com/doodlesbykumbi/git-identity/pkg/identity"
	"github.com/doodlesbykumbi/git-identity/pkg/kvstore"
	"github.com/doodlesbykumbi/git-identity/pkg/registry"
	"github.com/doodlesbykumbi/git-identity/pkg/selector"
)

// environment is everything a command needs: the loaded configuration,
// the registry over the discovered config files and the audit log.
type environment struct {
	cfg        *config.Config
	registry   *registry.Registry
	globalPath string
	localPath  string
	auditLog   io.Closer
}

// newEnvironment loads the configuration and opens the global store and,
// inside a repository, the local one.
func newEnvironment() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.Level()
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	env := &environment{cfg: cfg}

	env.globalPath, err = globalPath(cfg, privateMode)
	if err != nil {
		return nil, err
	}
	backend := kvstore.Backend(cfg.Backend)
	global, err := kvstore.Open(backend, env.globalPath)
	if err != nil {
		return nil, err
	}

	opts := []registry.Option{
		registry.WithCodec(identity.NewCodec(cfg.Namespace)),
		registry.WithProtectedKeys(cfg.ProtectedKeys...),
		registry.WithLogger(log.WithFields(log.Fields{
			"component": "registry",
			"backend":   backend,
			"private":   privateMode,
		})),
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	localPath, found, err := kvstore.FindLocal(wd)
	if err != nil {
		return nil, fmt.Errorf("failed to find repository config: %w", err)
	}
	if found {
		local, err := kvstore.Open(backend, localPath)
		if err != nil {
			return nil, err
		}
		env.localPath = localPath
		opts = append(opts, registry.WithLocal(local))
	}

	if cfg.AuditLog != "" {
		logger, closer, err := audit.Open(cfg.AuditLog)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
		env.auditLog = closer
		opts = append(opts, registry.WithAuditLogger(logger))
	}

	log.WithFields(log.Fields{
		"global":  env.globalPath,
		"local":   env.localPath,
		"backend": backend,
	}).Debug("opened config files")

	env.registry = registry.New(global, opts...)
	return env, nil
}

func globalPath(cfg *config.Config, private bool) (string, error) {
	if private {
		if cfg.PrivateConfigPath != "" {
			return cfg.PrivateConfigPath, nil
		}
		return kvstore.PrivatePath()
	}
	if cfg.GlobalConfigPath != "" {
		return cfg.GlobalConfigPath, nil
	}
	return kvstore.GlobalPath()
}

func (e *environment) selector() (selector.Selector, error) {
	return selector.New(selector.Mode(e.cfg.Selector), os.Stdin, os.Stderr)
}

func (e *environment) Close() {
	if e.auditLog != nil {
		_ = e.auditLog.Close()
	}
}

// withEnvironment runs fn with a fresh environment and exits on failure.
func withEnvironment(action string, fn func(env *environment) error) {
	env, err := newEnvironment()
	if err != nil {
		fail(action, err)
	}
	err = fn(env)
	env.Close()
	if err != nil {
		fail(action, err)
	}
}

// fail reports err the way every command does and exits.
func fail(action string, err error) {
	fmt.Fprintf(os.Stderr, "Failed to %s: %v\n", action, err)
	os.Exit(1)
}
