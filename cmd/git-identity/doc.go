// Package main implements git-identity, a command line tool that keeps
// several git identities in the global git config and switches the one
// used by a repository.
//
// # Storage
//
// An identity is a group of keys in the global config (or in the private
// config file with --private):
//
//	[user "work"]
//		name = Jo Doe
//		email = jo@example.com
//		signingkey = 0xABCD
//
// Activating it copies the fields into the repository's .git/config as
// user.name, user.email and so on.
//
// # Quick Start
//
//	git-identity add -i work -n "Jo Doe" -e jo@example.com
//	git-identity list
//	git-identity set work
//	git-identity current
//	git-identity remove --force
//
// # Environment Variables
//
//   - GIT_IDENTITY_CONFIG_PATH: Directory holding config.yml
//   - GIT_IDENTITY_BACKEND: git or file
//   - GIT_IDENTITY_SELECTOR: auto, fuzzy or prompt
//   - GIT_IDENTITY_LOG_LEVEL: Log level (debug, info, warn, error)
//   - GIT_IDENTITY_AUDIT_LOG: File audit events are appended to
package main
