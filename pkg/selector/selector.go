package selector

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ErrAmbiguousSelection is returned when more than one candidate was chosen
var ErrAmbiguousSelection = errors.New("more than one identity selected")

// Selector picks one of a set of candidates.
type Selector interface {
	Choose(candidates []string) (string, bool, error)
}

// Mode names a selector implementation.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeFuzzy  Mode = "fuzzy"
	ModePrompt Mode = "prompt"
)

// New returns the selector for mode. ModeAuto uses the fuzzy finder when
// stdin and stdout are terminals and a prompt otherwise.
func New(mode Mode, in io.Reader, out io.Writer) (Selector, error) {
	switch mode {
	case ModeFuzzy:
		return NewFuzzy(), nil
	case ModePrompt:
		return NewPrompt(in, out), nil
	case ModeAuto, "":
		if isTerminal(in) && isTerminal(out) {
			return NewFuzzy(), nil
		}
		return NewPrompt(in, out), nil
	default:
		return nil, fmt.Errorf("unknown selector %q", mode)
	}
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
