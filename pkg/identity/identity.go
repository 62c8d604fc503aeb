package identity

import "fmt"

// Namespace is the config section every identity key lives under.
const Namespace = "user"

// Identity is a named set of git user settings.
type Identity struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`

	// SigningKey is the gpg key id, nil when the identity does not sign.
	SigningKey *string `json:"signing_key,omitempty" yaml:"signing_key,omitempty"`

	// SSHKey is a filesystem path, nil when no key is configured.
	SSHKey *string `json:"ssh_key,omitempty" yaml:"ssh_key,omitempty"`
}

// Complete reports whether both required fields are set.
func (i Identity) Complete() bool {
	return i.Name != "" && i.Email != ""
}

// String renders the identity the way git shows an author.
func (i Identity) String() string {
	return fmt.Sprintf("%s <%s>", i.Name, i.Email)
}

// Optional returns a pointer to s, for filling the optional fields.
func Optional(s string) *string {
	return &s
}

// Deref returns the pointed-to value or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
