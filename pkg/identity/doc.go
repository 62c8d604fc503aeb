// Package identity models git identities and their namespaced key layout.
//
// An Identity is a named set of git user settings: a display name, an email,
// and optionally a signing key and the path to an SSH key. Identities are not
// persisted on their own; they are decoded from, and encoded into, flat
// git-config keys by a Codec.
//
// # Key Layout
//
// Identities kept in a shared (global) config live under the namespace with
// their id as the middle segments:
//
//	user.<id>.name
//	user.<id>.email
//	user.<id>.signingkey
//	user.<id>.sshkey
//
// The id may itself contain dots ("work.client-a"). The closed set of field
// suffixes is the only way to tell where an id ends, so decoding scans for
// the last segment that names a Field.
//
// The identity active in a narrower (local) config drops the id:
//
//	user.name
//	user.email
//
// # Basic Usage
//
//	codec := identity.NewCodec(identity.Namespace)
//	pairs, err := codec.Encode(identity.Identity{ID: "work", Name: "Alice", Email: "alice@corp.example"})
//
//	id, field, ok := codec.DecodeKey("user.work.client-a.email")
//	// id == "work.client-a", field == identity.FieldEmail
//
// # Known Ambiguity
//
// A key whose trailing segments are not fields but whose id contains a field
// word, such as "user.a.name.foo", decodes as id "a" with field name. The last
// matching segment always wins; ids ending in a field word cannot be told
// apart from their fields.
package identity
