// Package registry implements the identity lifecycle over one or two config
// scopes.
//
// A Registry owns a global store, where any number of identities are kept
// under "user.<id>.<field>", and optionally a local store, which holds at
// most one active identity under the unscoped "user.<field>" keys.
//
// # Operations
//
//   - List: distinct ids in a scope
//   - Get: one identity, assembled from point reads
//   - Add: upsert an identity
//   - Remove: delete the keys of one identity
//   - RemoveAllActive: clear whatever identity is active locally
//   - Activate: copy a global identity into the local scope
//
// # Consistency
//
// The stores have no transactions. Add, Remove and Activate write key by
// key; when a write fails part way the returned *PartialWriteError names the
// keys that were applied so the caller can retry or roll back. Activate does
// not clear fields of the previously active identity, so a signing key of the
// old identity survives activating one without a signing key.
//
// Keys whose last segment is protected (by default "useconfigonly") are
// never removed, even when they fall under a removal glob.
package registry
