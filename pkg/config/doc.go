// Package config provides configuration management for git-identity.
//
// Settings are read from a YAML file and overridden by environment
// variables. Every attribute records where its value came from so that
// "git-identity configuration show" can report it.
//
// # Configuration Sources
//
// Configuration is loaded from, in increasing precedence:
//
//   - Built-in defaults
//   - $GIT_IDENTITY_CONFIG_PATH/config.yml (default $XDG_CONFIG_HOME/git-identity)
//   - GIT_IDENTITY_* environment variables
//
// # Key Configuration Options
//
//   - GIT_IDENTITY_NAMESPACE: Config section holding identities (user)
//   - GIT_IDENTITY_PROTECTED_KEYS: Comma separated names removal keeps
//   - GIT_IDENTITY_BACKEND: git or file
//   - GIT_IDENTITY_SELECTOR: auto, fuzzy or prompt
//   - GIT_IDENTITY_LOG_LEVEL: Logging verbosity
//   - GIT_IDENTITY_AUDIT_LOG: Audit trail file
package config
