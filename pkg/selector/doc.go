// Package selector asks the user to pick one identity id from a list.
//
// Two selectors are provided. Fuzzy runs an interactive fuzzy finder on
// the terminal. Prompt prints a numbered list and reads the answer from a
// reader, which also works when stdin is a pipe.
//
// # Results
//
// Choose returns the chosen id and true. Abandoning the selection (Esc,
// Ctrl-C or an empty answer) returns false and no error. Choosing more
// than one id returns ErrAmbiguousSelection.
package selector
