package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/git-identity/pkg/config"
	"github.com/doodlesbykumbi/git-identity/pkg/identity"
	"github.com/doodlesbykumbi/git-identity/pkg/kvstore"
	"github.com/doodlesbykumbi/git-identity/pkg/registry"
)

// fixedSelector always answers with the same choice.
type fixedSelector struct {
	id     string
	chosen bool
	err    error
	seen   []string
}

func (s *fixedSelector) Choose(candidates []string) (string, bool, error) {
	s.seen = candidates
	return s.id, s.chosen, s.err
}

func newTestRegistry(global, local map[string]string) (*registry.Registry, *kvstore.MemoryStore) {
	l := kvstore.NewMemoryStore(local)
	return registry.New(kvstore.NewMemoryStore(global), registry.WithLocal(l)), l
}

var twoIdentities = map[string]string{
	"user.home.name":       "Jo",
	"user.home.email":      "jo@home.net",
	"user.work.name":       "Jo Doe",
	"user.work.email":      "jo@work.com",
	"user.work.signingkey": "ABCD",
}

func TestAddIdentity(t *testing.T) {
	reg, _ := newTestRegistry(nil, nil)
	var out bytes.Buffer

	err := addIdentity(reg, identity.Identity{ID: "work", Name: "Jo", Email: "jo@work.com"}, "/home/jo/.gitconfig", &out)
	require.NoError(t, err)
	assert.Equal(t, "Added work: Jo <jo@work.com> to /home/jo/.gitconfig\n", out.String())

	got, err := reg.Get(registry.ScopeGlobal, "work")
	require.NoError(t, err)
	assert.Equal(t, "Jo", got.Name)
}

func TestListIdentities(t *testing.T) {
	t.Run("text marks the active identity", func(t *testing.T) {
		reg, _ := newTestRegistry(twoIdentities, map[string]string{
			"user.name":  "Jo Doe",
			"user.email": "jo@work.com",
		})
		var out bytes.Buffer
		require.NoError(t, listIdentities(reg, "text", &out))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 4)
		assert.Contains(t, lines[0], "EMAIL")
		assert.Contains(t, lines[2], "home")
		assert.NotContains(t, lines[2], "*")
		assert.Contains(t, lines[3], "*")
		assert.Contains(t, lines[3], "ABCD")
	})

	t.Run("empty", func(t *testing.T) {
		reg, _ := newTestRegistry(nil, nil)
		var out bytes.Buffer
		require.NoError(t, listIdentities(reg, "text", &out))
		assert.Equal(t, "no identities\n", out.String())
	})

	t.Run("json", func(t *testing.T) {
		reg, _ := newTestRegistry(twoIdentities, nil)
		var out bytes.Buffer
		require.NoError(t, listIdentities(reg, "json", &out))

		var decoded []identity.Identity
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "work", decoded[1].ID)
		assert.Equal(t, "ABCD", identity.Deref(decoded[1].SigningKey))
		assert.Nil(t, decoded[0].SigningKey)
	})

	t.Run("yaml", func(t *testing.T) {
		reg, _ := newTestRegistry(twoIdentities, nil)
		var out bytes.Buffer
		require.NoError(t, listIdentities(reg, "yaml", &out))

		var decoded []identity.Identity
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "home", decoded[0].ID)
		assert.NotContains(t, out.String(), "ssh_key")
	})

	t.Run("unknown format", func(t *testing.T) {
		reg, _ := newTestRegistry(nil, nil)
		assert.Error(t, listIdentities(reg, "xml", &bytes.Buffer{}))
	})
}

func TestSetIdentity(t *testing.T) {
	t.Run("by id", func(t *testing.T) {
		reg, local := newTestRegistry(twoIdentities, nil)
		var out bytes.Buffer
		require.NoError(t, setIdentity(reg, "home", nil, &out))
		assert.Equal(t, "Using home: Jo <jo@home.net>\n", out.String())
		assert.Equal(t, "Jo", local.Snapshot()["user.name"])
	})

	t.Run("selected", func(t *testing.T) {
		reg, local := newTestRegistry(twoIdentities, nil)
		sel := &fixedSelector{id: "work", chosen: true}
		var out bytes.Buffer
		require.NoError(t, setIdentity(reg, "", sel, &out))
		assert.Equal(t, []string{"home", "work"}, sel.seen)
		assert.Equal(t, "ABCD", local.Snapshot()["user.signingkey"])
	})

	t.Run("selection abandoned", func(t *testing.T) {
		reg, local := newTestRegistry(twoIdentities, nil)
		var out bytes.Buffer
		require.NoError(t, setIdentity(reg, "", &fixedSelector{}, &out))
		assert.Equal(t, "no identity selected\n", out.String())
		assert.Empty(t, local.Snapshot())
	})

	t.Run("unknown id", func(t *testing.T) {
		reg, _ := newTestRegistry(twoIdentities, nil)
		err := setIdentity(reg, "ghost", nil, &bytes.Buffer{})
		assert.ErrorIs(t, err, registry.ErrNoSuchIdentity)
	})

	t.Run("outside a repository", func(t *testing.T) {
		reg := registry.New(kvstore.NewMemoryStore(twoIdentities))
		sel := &fixedSelector{id: "work", chosen: true}
		err := setIdentity(reg, "", sel, &bytes.Buffer{})
		assert.ErrorIs(t, err, registry.ErrNoLocalScope)
		assert.Nil(t, sel.seen, "no prompt outside a repository")
	})
}

func TestRemoveIdentity(t *testing.T) {
	t.Run("without force", func(t *testing.T) {
		reg, local := newTestRegistry(twoIdentities, map[string]string{"user.name": "Jo"})
		var out bytes.Buffer
		require.NoError(t, removeIdentity(reg, removeOptions{}, &out))
		assert.Empty(t, out.String())
		assert.Len(t, local.Snapshot(), 1)
	})

	t.Run("active identity", func(t *testing.T) {
		reg, local := newTestRegistry(twoIdentities, map[string]string{
			"user.name":          "Jo",
			"user.useconfigonly": "true",
		})
		var out bytes.Buffer
		require.NoError(t, removeIdentity(reg, removeOptions{force: true}, &out))
		assert.Equal(t, "removed user.name\n", out.String())
		assert.Equal(t, map[string]string{"user.useconfigonly": "true"}, local.Snapshot())
	})

	t.Run("global identity", func(t *testing.T) {
		reg, _ := newTestRegistry(twoIdentities, nil)
		var out bytes.Buffer
		require.NoError(t, removeIdentity(reg, removeOptions{force: true, global: true, id: "home"}, &out))
		assert.Contains(t, out.String(), "removed user.home.name\n")
		assert.Contains(t, out.String(), "removed user.home.email\n")

		ids, err := reg.List(registry.ScopeGlobal)
		require.NoError(t, err)
		assert.Equal(t, []string{"work"}, ids)
	})

	t.Run("nothing to remove", func(t *testing.T) {
		reg, _ := newTestRegistry(twoIdentities, nil)
		var out bytes.Buffer
		require.NoError(t, removeIdentity(reg, removeOptions{force: true, global: true, id: "ghost"}, &out))
		assert.Equal(t, "nothing to remove\n", out.String())
	})

	t.Run("global needs an id", func(t *testing.T) {
		reg, _ := newTestRegistry(twoIdentities, nil)
		err := removeIdentity(reg, removeOptions{force: true, global: true}, &bytes.Buffer{})
		assert.ErrorIs(t, err, errIdentityRequired)
	})
}

func TestPrintCurrent(t *testing.T) {
	tests := []struct {
		name  string
		local map[string]string
		want  string
	}{
		{name: "none", want: "none set\n"},
		{
			name:  "matching identity",
			local: map[string]string{"user.name": "Jo", "user.email": "jo@home.net"},
			want:  "Jo (jo@home.net) [home]\n",
		},
		{
			name:  "set by hand",
			local: map[string]string{"user.name": "Someone", "user.email": "else@x.com"},
			want:  "Someone (else@x.com)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, _ := newTestRegistry(twoIdentities, tt.local)
			var out bytes.Buffer
			require.NoError(t, printCurrent(reg, &out))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

// syncBuffer is a bytes.Buffer safe for the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchCurrent(t *testing.T) {
	dir := t.TempDir()
	localPath := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(localPath, nil, 0o644))

	local := kvstore.NewFileStore(localPath)
	reg := registry.New(kvstore.NewMemoryStore(twoIdentities), registry.WithLocal(local))

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() { done <- watchCurrent(ctx, reg, localPath, out) }()

	require.Eventually(t, func() bool {
		return out.String() == "none set\n"
	}, 2*time.Second, 10*time.Millisecond)

	_, err := reg.Activate("home")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return strings.HasSuffix(out.String(), "Jo (jo@home.net) [home]\n")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestGenCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, genCompletion(rootCmd, shell, &out))
			assert.Contains(t, out.String(), "git-identity")
		})
	}

	assert.Error(t, genCompletion(rootCmd, "tcsh", &bytes.Buffer{}))
}

func TestShowConfiguration(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GIT_IDENTITY_CONFIG_PATH", dir)
	t.Setenv("GIT_IDENTITY_BACKEND", "file")

	var out bytes.Buffer
	require.NoError(t, showConfiguration("json", &out))

	var decoded struct {
		ConfigFile string             `json:"config_file"`
		Attributes []config.Attribute `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, filepath.Join(dir, config.ConfigFileName), decoded.ConfigFile)
	assert.Contains(t, decoded.Attributes, config.Attribute{Name: "backend", Value: "file", Source: config.SourceEnvironment})

	out.Reset()
	require.NoError(t, showConfiguration("text", &out))
	assert.Contains(t, out.String(), "Config file: ")
}

func TestConfigurationWithoutSubcommand(t *testing.T) {
	var out bytes.Buffer
	missingSubcommand(configurationCmd, &out)

	assert.Contains(t, out.String(), "error: git-identity configuration needs a subcommand (show)")
	assert.Contains(t, out.String(), "Usage:")
	assert.Error(t, configurationCmd.Args(configurationCmd, []string{"extra"}))
}

func TestGlobalPath(t *testing.T) {
	cfg := &config.Config{GlobalConfigPath: "/etc/g", PrivateConfigPath: "/etc/p"}

	path, err := globalPath(cfg, false)
	require.NoError(t, err)
	assert.Equal(t, "/etc/g", path)

	path, err = globalPath(cfg, true)
	require.NoError(t, err)
	assert.Equal(t, "/etc/p", path)

	t.Setenv("HOME", "/home/jo")
	path, err = globalPath(&config.Config{}, true)
	require.NoError(t, err)
	assert.Equal(t, "/home/jo/.gitconfig.private", path)
}
