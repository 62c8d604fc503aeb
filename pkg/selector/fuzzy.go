package selector

import (
	"errors"

	"github.com/ktr0731/go-fuzzyfinder"
)

// Fuzzy selects with an interactive fuzzy finder on the terminal.
type Fuzzy struct {
	opts []fuzzyfinder.Option
}

// NewFuzzy returns a fuzzy finder selector. Options are passed through to
// the finder.
func NewFuzzy(opts ...fuzzyfinder.Option) *Fuzzy {
	return &Fuzzy{
		opts: append([]fuzzyfinder.Option{fuzzyfinder.WithPromptString("identity> ")}, opts...),
	}
}

func (f *Fuzzy) Choose(candidates []string) (string, bool, error) {
	if len(candidates) == 0 {
		return "", false, nil
	}

	picked, err := fuzzyfinder.FindMulti(candidates, func(i int) string {
		return candidates[i]
	}, f.opts...)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	switch len(picked) {
	case 0:
		return "", false, nil
	case 1:
		return candidates[picked[0]], true, nil
	default:
		return "", false, ErrAmbiguousSelection
	}
}
