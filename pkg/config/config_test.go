package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config path at an empty directory and clears every
// override.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvPrefix+"_CONFIG_PATH", dir)
	for _, name := range attributeNames() {
		key := EnvPrefix + "_" + strings.ToUpper(name)
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.ConfigFilePath())
	assert.Equal(t, "user", cfg.Namespace)
	assert.Equal(t, []string{"useconfigonly"}, cfg.ProtectedKeys)
	assert.Equal(t, "git", cfg.Backend)
	assert.Equal(t, "auto", cfg.Selector)
	assert.Empty(t, cfg.AuditLog)
	for _, name := range attributeNames() {
		assert.Equal(t, SourceDefault, cfg.Source(name), name)
	}
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`
namespace: identity
protected_keys: [useconfigonly, signingkey]
backend: file
selector: prompt
`), 0o600))

	t.Setenv("GIT_IDENTITY_SELECTOR", "fuzzy")
	t.Setenv("GIT_IDENTITY_PROTECTED_KEYS", "a, b")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "identity", cfg.Namespace)
	assert.Equal(t, SourceFile, cfg.Source("namespace"))
	assert.Equal(t, "file", cfg.Backend)
	assert.Equal(t, SourceFile, cfg.Source("backend"))
	assert.Equal(t, "fuzzy", cfg.Selector)
	assert.Equal(t, SourceEnvironment, cfg.Source("selector"))
	assert.Equal(t, []string{"a", "b"}, cfg.ProtectedKeys)
	assert.Equal(t, SourceEnvironment, cfg.Source("protected_keys"))
	assert.Equal(t, SourceDefault, cfg.Source("log_level"))
}

func TestLoad_EmptyProtectedKeysInFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("protected_keys: []\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.ProtectedKeys)
	assert.Equal(t, SourceFile, cfg.Source("protected_keys"))
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("namespace: [\n"), 0o600))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{name: "defaults", modify: func(c *Config) {}},
		{name: "empty namespace", modify: func(c *Config) { c.Namespace = "" }, wantErr: "namespace must not be empty"},
		{name: "dotted namespace", modify: func(c *Config) { c.Namespace = "user.x" }, wantErr: "invalid namespace"},
		{name: "dotted protected key", modify: func(c *Config) { c.ProtectedKeys = []string{"a.b"} }, wantErr: "invalid protected_keys"},
		{name: "unknown backend", modify: func(c *Config) { c.Backend = "libgit2" }, wantErr: "invalid backend"},
		{name: "unknown selector", modify: func(c *Config) { c.Selector = "menu" }, wantErr: "invalid selector"},
		{name: "unknown log level", modify: func(c *Config) { c.LogLevel = "loud" }, wantErr: "invalid log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newDefault()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_FormatText(t *testing.T) {
	cfg := newDefault()
	cfg.configFilePath = "/tmp/config.yml"

	text := cfg.FormatText()
	assert.Contains(t, text, "Config file: /tmp/config.yml")
	assert.Contains(t, text, "namespace")
	assert.Contains(t, text, "(not set)")
}

func TestConfig_FormatJSON(t *testing.T) {
	cfg := newDefault()
	cfg.configFilePath = "/tmp/config.yml"
	cfg.sources["backend"] = SourceEnvironment

	out, err := cfg.FormatJSON()
	require.NoError(t, err)

	var decoded struct {
		ConfigFile string      `json:"config_file"`
		Attributes []Attribute `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "/tmp/config.yml", decoded.ConfigFile)
	assert.Contains(t, decoded.Attributes, Attribute{Name: "backend", Value: "git", Source: SourceEnvironment})
}
