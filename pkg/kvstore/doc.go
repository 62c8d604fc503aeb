// Package kvstore provides the git-config style key-value stores identities
// are kept in.
//
// A Store maps dotted keys ("user.work.email") to string values and can
// enumerate its entries by glob. Keys follow git's rules: the first
// (section) and last (variable) segments are case-insensitive and reported
// in lower case; the segments in between (the subsection) keep their case.
//
// # Available Stores
//
//   - MemoryStore: in-process map, used by tests and dry runs
//   - FileStore: reads and rewrites a git config file directly
//   - GitStore: edits the file in place with gitconfig, keeping comments and layout
//
// # Globs
//
// Patterns are matched per segment: "*" matches within one segment and "**"
// matches any run of segments.
//
//	entries, err := store.Entries("user.*.**")        // every user.<id>.<field>
//	entries, err := store.Entries("user." + kvstore.QuoteMeta(id) + ".*")
//
// # Usage
//
//	local, ok, err := kvstore.FindLocal(".")
//	store, err := kvstore.Open(kvstore.BackendGit, local)
//	name, err := store.GetString("user.name")
//	if errors.Is(err, kvstore.ErrNotFound) {
//	    // nothing active
//	}
package kvstore
