package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"

	"github.com/doodlesbykumbi/git-identity/pkg/audit"
	"github.com/doodlesbykumbi/git-identity/pkg/identity"
	"github.com/doodlesbykumbi/git-identity/pkg/kvstore"
)

// DefaultProtectedKeys are variable names never removed from a scope.
var DefaultProtectedKeys = []string{"useconfigonly"}

// Registry manages identities in a global and an optional local store.
type Registry struct {
	codec     identity.Codec
	global    kvstore.Store
	local     kvstore.Store
	protected map[string]struct{}
	audit     *audit.Logger
	log       *log.Entry
}

// Option configures a Registry.
type Option func(*Registry)

// WithLocal sets the store of the local scope.
func WithLocal(store kvstore.Store) Option {
	return func(r *Registry) {
		r.local = store
	}
}

// WithCodec replaces the default codec, e.g. to use another namespace.
func WithCodec(codec identity.Codec) Option {
	return func(r *Registry) {
		r.codec = codec
	}
}

// WithProtectedKeys replaces the protected variable names. Names are
// compared case-insensitively.
func WithProtectedKeys(keys ...string) Option {
	return func(r *Registry) {
		r.protected = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			r.protected[strings.ToLower(k)] = struct{}{}
		}
	}
}

// WithAuditLogger records every write operation to logger.
func WithAuditLogger(logger *audit.Logger) Option {
	return func(r *Registry) {
		r.audit = logger
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(entry *log.Entry) Option {
	return func(r *Registry) {
		r.log = entry
	}
}

// New creates a Registry over the global store.
func New(global kvstore.Store, opts ...Option) *Registry {
	r := &Registry{
		codec:  identity.NewCodec(identity.Namespace),
		global: global,
		log:    log.WithField("component", "registry"),
	}
	WithProtectedKeys(DefaultProtectedKeys...)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Codec returns the codec the registry encodes identities with.
func (r *Registry) Codec() identity.Codec {
	return r.codec
}

// HasLocal reports whether a local store is configured.
func (r *Registry) HasLocal() bool {
	return r.local != nil
}

func (r *Registry) store(scope Scope) (kvstore.Store, error) {
	switch scope {
	case ScopeGlobal:
		return r.global, nil
	case ScopeLocal:
		if r.local == nil {
			return nil, ErrNoLocalScope
		}
		return r.local, nil
	default:
		return nil, fmt.Errorf("unknown scope %s", scope)
	}
}

func (r *Registry) listPattern() string {
	return r.codec.Namespace() + identity.Separator + "*" + identity.Separator + "**"
}

func (r *Registry) identityPattern(id string) string {
	return r.codec.Namespace() + identity.Separator + kvstore.QuoteMeta(id) + identity.Separator + "*"
}

func (r *Registry) activePattern() string {
	return r.codec.Namespace() + identity.Separator + "*"
}

// List returns the distinct ids stored in scope, sorted.
func (r *Registry) List(scope Scope) ([]string, error) {
	s, err := r.store(scope)
	if err != nil {
		return nil, err
	}

	entries, err := s.Entries(r.listPattern())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s scope: %w", scope, err)
	}

	seen := map[string]struct{}{}
	for _, e := range entries {
		if id, _, ok := r.codec.DecodeKey(e.Name); ok {
			seen[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Get returns the identity id of scope, or nil when scope does not list it.
// A listed identity without a name or email is reported as ErrInconsistent.
func (r *Registry) Get(scope Scope, id string) (*identity.Identity, error) {
	s, err := r.store(scope)
	if err != nil {
		return nil, err
	}

	ids, err := r.List(scope)
	if err != nil {
		return nil, err
	}
	i := sort.SearchStrings(ids, id)
	if i == len(ids) || ids[i] != id {
		return nil, nil
	}

	values := map[identity.Field]string{}
	for _, f := range identity.FieldValues() {
		key := r.codec.Key(id, f)
		v, err := s.GetString(key)
		if errors.Is(err, kvstore.ErrNotFound) {
			if f.Required() {
				return nil, fmt.Errorf("%w: %q in %s scope has no %s", ErrInconsistent, id, scope, key)
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		values[f] = v
	}

	decoded := r.codec.Decode(id, values)
	return &decoded, nil
}

// Identities decodes every identity of scope from a single enumeration,
// including incomplete ones. The result is sorted by id.
func (r *Registry) Identities(scope Scope) ([]identity.Identity, error) {
	s, err := r.store(scope)
	if err != nil {
		return nil, err
	}

	entries, err := s.Entries(r.listPattern())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s scope: %w", scope, err)
	}

	groups := map[string]map[identity.Field]string{}
	for _, e := range entries {
		id, f, ok := r.codec.DecodeKey(e.Name)
		if !ok {
			continue
		}
		if groups[id] == nil {
			groups[id] = map[identity.Field]string{}
		}
		groups[id][f] = e.Value
	}

	identities := make([]identity.Identity, 0, len(groups))
	for id, values := range groups {
		identities = append(identities, r.codec.Decode(id, values))
	}
	sort.Slice(identities, func(i, j int) bool { return identities[i].ID < identities[j].ID })
	return identities, nil
}

// Add writes identity to scope, replacing the fields of an identity with the
// same id. Optional fields the new identity lacks are left untouched.
func (r *Registry) Add(scope Scope, ident identity.Identity) error {
	s, err := r.store(scope)
	if err != nil {
		return err
	}

	pairs, err := r.codec.Encode(ident)
	if err != nil {
		return err
	}

	written, err := r.write(s, scope, audit.OperationAdd, pairs)
	r.record(audit.OperationAdd, scope, ident.ID, written, err)
	return err
}

// Remove deletes the keys of identity id from scope and returns them.
// Removing an id that is not present removes nothing and is not an error.
func (r *Registry) Remove(scope Scope, id string) ([]string, error) {
	s, err := r.store(scope)
	if err != nil {
		return nil, err
	}

	entries, err := r.identityEntries(s, scope, id)
	if err != nil {
		return nil, err
	}
	removed, err := r.removeEntries(s, scope, audit.OperationRemove, entries)
	if len(removed) > 0 || err != nil {
		r.record(audit.OperationRemove, scope, id, removed, err)
	}
	return removed, err
}

// identityEntries returns the keys one segment below id together with every
// key that decodes to id, such as "user.a.name.extra".
func (r *Registry) identityEntries(s kvstore.Store, scope Scope, id string) ([]kvstore.Entry, error) {
	direct, err := s.Entries(r.identityPattern(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s scope: %w", scope, err)
	}
	all, err := s.Entries(r.listPattern())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s scope: %w", scope, err)
	}
	for _, e := range all {
		if owner, _, ok := r.codec.DecodeKey(e.Name); ok && owner == id {
			direct = append(direct, e)
		}
	}
	return direct, nil
}

// RemoveAllActive deletes every unscoped key of the local scope, whichever
// identity they belong to, and returns them.
func (r *Registry) RemoveAllActive() ([]string, error) {
	s, err := r.store(ScopeLocal)
	if err != nil {
		return nil, err
	}

	entries, err := s.Entries(r.activePattern())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s scope: %w", ScopeLocal, err)
	}
	removed, err := r.removeEntries(s, ScopeLocal, audit.OperationClear, entries)
	if len(removed) > 0 || err != nil {
		r.record(audit.OperationClear, ScopeLocal, "", removed, err)
	}
	return removed, err
}

// Activate copies the global identity id into the local scope under the
// unscoped keys. Fields the previous active identity had and id lacks are
// not cleared.
func (r *Registry) Activate(id string) (*identity.Identity, error) {
	local, err := r.store(ScopeLocal)
	if err != nil {
		return nil, err
	}

	ident, err := r.Get(ScopeGlobal, id)
	if err != nil {
		r.record(audit.OperationActivate, ScopeLocal, id, nil, err)
		return nil, err
	}
	if ident == nil {
		err := fmt.Errorf("%w: %q", ErrNoSuchIdentity, id)
		r.record(audit.OperationActivate, ScopeLocal, id, nil, err)
		return nil, err
	}

	pairs, err := r.codec.EncodeActive(*ident)
	if err != nil {
		r.record(audit.OperationActivate, ScopeLocal, id, nil, err)
		return nil, err
	}

	written, err := r.write(local, ScopeLocal, audit.OperationActivate, pairs)
	r.record(audit.OperationActivate, ScopeLocal, id, written, err)
	if err != nil {
		return nil, err
	}
	return ident, nil
}

// Current returns the identity active in the local scope, or nil when
// neither a name nor an email is set there. The id is filled in when exactly
// one global identity has the same name and email.
func (r *Registry) Current() (*identity.Identity, error) {
	local, err := r.store(ScopeLocal)
	if err != nil {
		return nil, err
	}

	values := map[identity.Field]string{}
	for _, f := range identity.FieldValues() {
		key := r.codec.ActiveKey(f)
		v, err := local.GetString(key)
		if errors.Is(err, kvstore.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		values[f] = v
	}
	if values[identity.FieldName] == "" && values[identity.FieldEmail] == "" {
		return nil, nil
	}

	active := r.codec.Decode("", values)

	candidates, err := r.Identities(ScopeGlobal)
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, c := range candidates {
		if c.Name == active.Name && c.Email == active.Email {
			matches = append(matches, c.ID)
		}
	}
	if len(matches) == 1 {
		active.ID = matches[0]
	}
	return &active, nil
}

// write sets pairs in order, stopping at the first failure.
func (r *Registry) write(s kvstore.Store, scope Scope, op string, pairs []identity.Pair) ([]string, error) {
	written := make([]string, 0, len(pairs))
	for _, p := range pairs {
		r.log.WithFields(log.Fields{"scope": scope, "key": p.Key}).Debug("set")
		if err := s.SetString(p.Key, p.Value); err != nil {
			if len(written) == 0 {
				return nil, fmt.Errorf("failed to write %s: %w", p.Key, err)
			}
			return written, &PartialWriteError{
				Op:      op,
				Scope:   scope,
				Applied: written,
				Failed:  []string{p.Key},
				Err:     err,
			}
		}
		written = append(written, p.Key)
	}
	return written, nil
}

// removeEntries deletes the unprotected keys among entries. Every key is
// attempted; failures are collected into a PartialWriteError.
func (r *Registry) removeEntries(s kvstore.Store, scope Scope, op string, entries []kvstore.Entry) ([]string, error) {
	keys := r.removable(entries)
	if len(keys) == 0 {
		r.log.WithFields(log.Fields{"scope": scope, "op": op}).Debug("nothing to remove")
		return nil, nil
	}

	var (
		removed []string
		failed  []string
		errs    *multierror.Error
	)
	for _, key := range keys {
		r.log.WithFields(log.Fields{"scope": scope, "key": key}).Debug("remove")
		err := s.Remove(key)
		switch {
		case err == nil:
			removed = append(removed, key)
		case errors.Is(err, kvstore.ErrNotFound):
			// already gone
		default:
			failed = append(failed, key)
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	if errs != nil {
		if len(removed) == 0 {
			return nil, fmt.Errorf("failed to remove from %s scope: %w", scope, errs.ErrorOrNil())
		}
		return removed, &PartialWriteError{
			Op:      op,
			Scope:   scope,
			Applied: removed,
			Failed:  failed,
			Err:     errs.ErrorOrNil(),
		}
	}
	return removed, nil
}

// removable returns the distinct entry names whose last segment is not
// protected.
func (r *Registry) removable(entries []kvstore.Entry) []string {
	seen := map[string]struct{}{}
	var keys []string
	for _, e := range entries {
		if r.isProtected(e.Name) {
			continue
		}
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		keys = append(keys, e.Name)
	}
	return keys
}

func (r *Registry) isProtected(key string) bool {
	terminal := key[strings.LastIndex(key, identity.Separator)+1:]
	_, ok := r.protected[strings.ToLower(terminal)]
	return ok
}

func (r *Registry) record(op string, scope Scope, id string, keys []string, err error) {
	event := audit.IdentityEvent{
		Operation:  op,
		Scope:      scope.String(),
		IdentityID: id,
		Keys:       keys,
		Success:    err == nil,
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	r.audit.Log(event)
}
