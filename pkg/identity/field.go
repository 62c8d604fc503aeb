package identity

//go:generate go run github.com/dmarkham/enumer -type Field -trimprefix Field -transform lower -yaml -output field.gen.go

// Field is one of the terminal key segments an identity is stored under.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldSigningKey
	FieldSSHKey
)

// Required reports whether every identity must carry the field.
func (f Field) Required() bool {
	return f == FieldName || f == FieldEmail
}

// ParseField matches a key segment against the field set. Matching ignores
// case because git lowercases variable names.
func ParseField(segment string) (Field, bool) {
	f, err := FieldString(segment)
	if err != nil {
		return 0, false
	}
	return f, true
}
