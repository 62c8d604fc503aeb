package kvstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// ErrNotFound is returned when a key is not present in the store
var ErrNotFound = errors.New("key not found")

// ErrInvalidKey is returned for keys without a section and a variable name
var ErrInvalidKey = errors.New("invalid key")

// Entry is a single key and its value
type Entry struct {
	Name  string
	Value string
}

// Store abstracts a hierarchical key-value config scope.
type Store interface {
	// GetString returns the value of key.
	// Returns ErrNotFound if the key doesn't exist.
	GetString(key string) (string, error)

	// SetString creates or replaces key.
	SetString(key, value string) error

	// Remove deletes key.
	// Returns ErrNotFound if the key doesn't exist.
	Remove(key string) error

	// Entries lists the entries whose names match pattern, or every entry
	// when pattern is empty.
	Entries(pattern string) ([]Entry, error)
}

// Pathed is implemented by stores backed by a file.
type Pathed interface {
	Path() string
}

// QuoteMeta escapes glob metacharacters in s so it matches literally.
func QuoteMeta(s string) string {
	return glob.QuoteMeta(s)
}

// Matcher reports whether a key matches a compiled pattern.
type Matcher func(name string) bool

// Compile compiles pattern into a Matcher. An empty pattern matches every key.
func Compile(pattern string) (Matcher, error) {
	if pattern == "" {
		return func(string) bool { return true }, nil
	}
	g, err := glob.Compile(pattern, '.')
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return g.Match, nil
}

// Filter returns the entries whose names match pattern.
func Filter(entries []Entry, pattern string) ([]Entry, error) {
	match, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	var result []Entry
	for _, e := range entries {
		if match(e.Name) {
			result = append(result, e)
		}
	}
	return result, nil
}

// splitKey splits key into its section, subsection and variable name.
func splitKey(key string) (section, subsection, name string, err error) {
	segments := strings.Split(key, ".")
	if len(segments) < 2 || segments[0] == "" || segments[len(segments)-1] == "" {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	section = segments[0]
	name = segments[len(segments)-1]
	subsection = strings.Join(segments[1:len(segments)-1], ".")
	return section, subsection, name, nil
}

// joinKey is the inverse of splitKey, producing git's canonical form.
func joinKey(section, subsection, name string) string {
	if subsection == "" {
		return strings.ToLower(section) + "." + strings.ToLower(name)
	}
	return strings.ToLower(section) + "." + subsection + "." + strings.ToLower(name)
}

// Canonical returns key with the section and variable name lower-cased.
func Canonical(key string) (string, error) {
	section, subsection, name, err := splitKey(key)
	if err != nil {
		return "", err
	}
	return joinKey(section, subsection, name), nil
}
