package selector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompt prints the candidates as a numbered list and reads one answer
// line. The answer is either a number from the list or a candidate itself.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompt returns a selector reading from in and writing to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

func (p *Prompt) Choose(candidates []string) (string, bool, error) {
	if len(candidates) == 0 {
		return "", false, nil
	}

	for i, c := range candidates {
		if _, err := fmt.Fprintf(p.out, "%3d) %s\n", i+1, c); err != nil {
			return "", false, err
		}
	}
	if _, err := fmt.Fprint(p.out, "identity> "); err != nil {
		return "", false, err
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}

	fields := strings.Fields(line)
	switch len(fields) {
	case 0:
		return "", false, nil
	case 1:
	default:
		return "", false, ErrAmbiguousSelection
	}

	answer := fields[0]
	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(candidates) {
			return "", false, fmt.Errorf("selection %d out of range 1-%d", n, len(candidates))
		}
		return candidates[n-1], true, nil
	}
	for _, c := range candidates {
		if c == answer {
			return c, true, nil
		}
	}
	return "", false, fmt.Errorf("unknown identity %q", answer)
}
