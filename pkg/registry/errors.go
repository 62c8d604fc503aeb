package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSuchIdentity is returned when activating an id the global scope does not hold
var ErrNoSuchIdentity = errors.New("no such identity")

// ErrNoLocalScope is returned by local operations on a Registry without a local store
var ErrNoLocalScope = errors.New("no local scope configured")

// ErrInconsistent is returned when a listed identity lacks a required field
var ErrInconsistent = errors.New("inconsistent identity")

// PartialWriteError is returned when a multi-key write stopped part way.
// Applied holds the keys that were written (or removed) before the failure.
type PartialWriteError struct {
	Op      string
	Scope   Scope
	Applied []string
	Failed  []string
	Err     error
}

func (e *PartialWriteError) Error() string {
	applied := "none"
	if len(e.Applied) > 0 {
		applied = strings.Join(e.Applied, ", ")
	}
	return fmt.Sprintf("%s in %s scope partially applied (applied: %s; failed: %s): %v",
		e.Op, e.Scope, applied, strings.Join(e.Failed, ", "), e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
