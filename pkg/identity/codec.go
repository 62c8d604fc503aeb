package identity

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Separator splits config keys into segments.
const Separator = "."

// ErrEmptyID is returned when encoding an identity without an id.
var ErrEmptyID = errors.New("identity id is empty")

// EncodingError is returned when a field value cannot be stored as a config string.
type EncodingError struct {
	ID    string
	Field Field
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("identity %q: %s is not valid UTF-8", e.ID, e.Field)
}

// Pair is a single config key and its value.
type Pair struct {
	Key   string
	Value string
}

// fieldAccess binds a Field to the Identity attribute it is stored in.
// get reports false when an optional attribute is unset.
type fieldAccess struct {
	get func(Identity) (string, bool)
	set func(*Identity, string)
}

var fields = [...]fieldAccess{
	FieldName: {
		get: func(i Identity) (string, bool) { return i.Name, true },
		set: func(i *Identity, v string) { i.Name = v },
	},
	FieldEmail: {
		get: func(i Identity) (string, bool) { return i.Email, true },
		set: func(i *Identity, v string) { i.Email = v },
	},
	FieldSigningKey: {
		get: func(i Identity) (string, bool) { return Deref(i.SigningKey), i.SigningKey != nil },
		set: func(i *Identity, v string) {
			// an empty signing key is the same as none
			if v == "" {
				i.SigningKey = nil
				return
			}
			i.SigningKey = Optional(v)
		},
	},
	FieldSSHKey: {
		get: func(i Identity) (string, bool) { return Deref(i.SSHKey), i.SSHKey != nil },
		set: func(i *Identity, v string) { i.SSHKey = Optional(v) },
	},
}

// Codec converts identities to and from keys scoped under a namespace.
type Codec struct {
	namespace string
}

// NewCodec returns a Codec for the given namespace. An empty namespace
// selects Namespace. Namespaces are config sections, so case is dropped.
func NewCodec(namespace string) Codec {
	if namespace == "" {
		namespace = Namespace
	}
	return Codec{namespace: strings.ToLower(namespace)}
}

// Namespace returns the key prefix of the codec.
func (c Codec) Namespace() string {
	if c.namespace == "" {
		return Namespace
	}
	return c.namespace
}

// Key returns the key of field f of identity id.
func (c Codec) Key(id string, f Field) string {
	return strings.Join([]string{c.Namespace(), id, f.String()}, Separator)
}

// ActiveKey returns the unscoped key of field f.
func (c Codec) ActiveKey(f Field) string {
	return c.Namespace() + Separator + f.String()
}

// Encode returns the keys of identity in field order. Name and email are
// always emitted, optional fields only when set.
func (c Codec) Encode(identity Identity) ([]Pair, error) {
	if identity.ID == "" {
		return nil, ErrEmptyID
	}
	return c.encode(identity, func(f Field) string { return c.Key(identity.ID, f) })
}

// EncodeActive is Encode with unscoped keys, for the active identity of a
// local config.
func (c Codec) EncodeActive(identity Identity) ([]Pair, error) {
	return c.encode(identity, c.ActiveKey)
}

func (c Codec) encode(identity Identity, key func(Field) string) ([]Pair, error) {
	pairs := make([]Pair, 0, len(fields))
	for _, f := range FieldValues() {
		value, ok := fields[f].get(identity)
		if !ok {
			continue
		}
		if f == FieldSSHKey && !utf8.ValidString(value) {
			return nil, &EncodingError{ID: identity.ID, Field: f}
		}
		pairs = append(pairs, Pair{Key: key(f), Value: value})
	}
	return pairs, nil
}

// DecodeKey splits a namespaced key into the identity id and the field it
// stores. The last segment naming a field is taken as the field and every
// segment before it forms the id. Keys without a field segment, or with
// nothing between the namespace and the field, do not belong to an
// identity.
func (c Codec) DecodeKey(key string) (string, Field, bool) {
	segments := strings.Split(key, Separator)
	if len(segments) < 3 || !strings.EqualFold(segments[0], c.Namespace()) {
		return "", 0, false
	}
	segments = segments[1:]

	for i := len(segments) - 1; i > 0; i-- {
		f, ok := ParseField(segments[i])
		if !ok {
			continue
		}
		id := strings.Join(segments[:i], Separator)
		if id == "" {
			return "", 0, false
		}
		return id, f, true
	}
	return "", 0, false
}

// Decode builds the identity id from its field values. Missing fields are
// left at their zero value.
func (c Codec) Decode(id string, values map[Field]string) Identity {
	identity := Identity{ID: id}
	for _, f := range FieldValues() {
		if v, ok := values[f]; ok {
			fields[f].set(&identity, v)
		}
	}
	return identity
}
