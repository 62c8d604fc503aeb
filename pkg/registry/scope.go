package registry

//go:generate go run github.com/dmarkham/enumer -type Scope -trimprefix Scope -transform lower -output scope.gen.go

// Scope names one of the stores a Registry manages.
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeLocal
)
