package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment override, e.g. GIT_IDENTITY_BACKEND
	EnvPrefix      = "GIT_IDENTITY"
	ConfigFileName = "config.yml"
)

// Sources an attribute value can come from
const (
	SourceDefault     = "default"
	SourceFile        = "file"
	SourceEnvironment = "environment"
)

var (
	// ValidBackends are the store backends a config can select
	ValidBackends = []string{"git", "file"}
	// ValidSelectors are the selector modes a config can select
	ValidSelectors = []string{"auto", "fuzzy", "prompt"}
)

// Config holds the git-identity settings
type Config struct {
	// Namespace is the git config section identities are stored under
	Namespace string `yaml:"namespace" json:"namespace"`

	// ProtectedKeys are variable names removal never touches
	ProtectedKeys []string `yaml:"protected_keys" json:"protected_keys"`

	// GlobalConfigPath overrides the discovered global git config file
	GlobalConfigPath string `yaml:"global_config_path" json:"global_config_path"`

	// PrivateConfigPath overrides the private config file used by --private
	PrivateConfigPath string `yaml:"private_config_path" json:"private_config_path"`

	// Backend selects how config files are read and written
	Backend string `yaml:"backend" json:"backend"`

	// Selector selects how "set" asks for an identity
	Selector string `yaml:"selector" json:"selector"`

	// LogLevel is the logrus level of diagnostic output
	LogLevel string `yaml:"log_level" json:"log_level"`

	// AuditLog is a file audit events are appended to
	AuditLog string `yaml:"audit_log" json:"audit_log"`

	sources        map[string]string
	configFilePath string
}

// envConfig mirrors Config for envconfig. Unset variables leave the
// pointers nil so the file and default values survive. Fields carry no
// envconfig tag so only the prefixed names are looked up.
type envConfig struct {
	Namespace         *string
	ProtectedKeys     *[]string `split_words:"true"`
	GlobalConfigPath  *string   `split_words:"true"`
	PrivateConfigPath *string   `split_words:"true"`
	Backend           *string
	Selector          *string
	LogLevel          *string `split_words:"true"`
	AuditLog          *string `split_words:"true"`
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		Namespace:     "user",
		ProtectedKeys: []string{"useconfigonly"},
		Backend:       "git",
		Selector:      "auto",
		LogLevel:      "warning",
		sources:       make(map[string]string),
	}
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/git-identity, falling back to
// ~/.config/git-identity.
func DefaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git-identity"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "git-identity"), nil
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = SourceDefault
	}

	configPath := os.Getenv(EnvPrefix + "_CONFIG_PATH")
	if configPath == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate config directory: %w", err)
		}
		configPath = dir
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	data, err := os.ReadFile(config.configFilePath)
	switch {
	case err == nil:
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	case errors.Is(err, os.ErrNotExist):
		log.WithField("path", config.configFilePath).Debug("no config file")
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", config.configFilePath, err)
	}

	if err := config.applyEnvConfig(); err != nil {
		return nil, err
	}

	return config, nil
}

func attributeNames() []string {
	return []string{
		"namespace", "protected_keys",
		"global_config_path", "private_config_path",
		"backend", "selector", "log_level", "audit_log",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.Namespace != "" {
		c.Namespace = file.Namespace
		c.sources["namespace"] = SourceFile
	}
	if file.ProtectedKeys != nil {
		c.ProtectedKeys = file.ProtectedKeys
		c.sources["protected_keys"] = SourceFile
	}
	if file.GlobalConfigPath != "" {
		c.GlobalConfigPath = file.GlobalConfigPath
		c.sources["global_config_path"] = SourceFile
	}
	if file.PrivateConfigPath != "" {
		c.PrivateConfigPath = file.PrivateConfigPath
		c.sources["private_config_path"] = SourceFile
	}
	if file.Backend != "" {
		c.Backend = file.Backend
		c.sources["backend"] = SourceFile
	}
	if file.Selector != "" {
		c.Selector = file.Selector
		c.sources["selector"] = SourceFile
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = SourceFile
	}
	if file.AuditLog != "" {
		c.AuditLog = file.AuditLog
		c.sources["audit_log"] = SourceFile
	}
}

func (c *Config) applyEnvConfig() error {
	var env envConfig
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	set := func(name string, dst *string, val *string) {
		if val != nil {
			*dst = *val
			c.sources[name] = SourceEnvironment
		}
	}
	set("namespace", &c.Namespace, env.Namespace)
	set("global_config_path", &c.GlobalConfigPath, env.GlobalConfigPath)
	set("private_config_path", &c.PrivateConfigPath, env.PrivateConfigPath)
	set("backend", &c.Backend, env.Backend)
	set("selector", &c.Selector, env.Selector)
	set("log_level", &c.LogLevel, env.LogLevel)
	set("audit_log", &c.AuditLog, env.AuditLog)

	if env.ProtectedKeys != nil {
		c.ProtectedKeys = trimAll(*env.ProtectedKeys)
		c.sources["protected_keys"] = SourceEnvironment
	}
	return nil
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return SourceDefault
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return SourceDefault
}

// Level returns the parsed log level
func (c *Config) Level() (log.Level, error) {
	return log.ParseLevel(c.LogLevel)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Namespace == "" {
		return fmt.Errorf("namespace must not be empty")
	}
	if strings.ContainsAny(c.Namespace, ". \t") {
		return fmt.Errorf("invalid namespace %q: must be a single config section name", c.Namespace)
	}

	for _, k := range c.ProtectedKeys {
		if k == "" || strings.Contains(k, ".") {
			return fmt.Errorf("invalid protected_keys value: %q", k)
		}
	}

	if !contains(ValidBackends, c.Backend) {
		return fmt.Errorf("invalid backend: %s (expected one of %s)", c.Backend, strings.Join(ValidBackends, ", "))
	}
	if !contains(ValidSelectors, c.Selector) {
		return fmt.Errorf("invalid selector: %s (expected one of %s)", c.Selector, strings.Join(ValidSelectors, ", "))
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "namespace", Value: c.Namespace, Source: c.Source("namespace")},
		{Name: "protected_keys", Value: strings.Join(c.ProtectedKeys, ","), Source: c.Source("protected_keys")},
		{Name: "global_config_path", Value: c.GlobalConfigPath, Source: c.Source("global_config_path")},
		{Name: "private_config_path", Value: c.PrivateConfigPath, Source: c.Source("private_config_path")},
		{Name: "backend", Value: c.Backend, Source: c.Source("backend")},
		{Name: "selector", Value: c.Selector, Source: c.Source("selector")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "audit_log", Value: c.AuditLog, Source: c.Source("audit_log")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-24s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-24s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func trimAll(parts []string) []string {
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
