package fault

import (
	"fmt"
	"io/fs"
)

// ValidationError reports a violated precondition on an argument.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a referenced file that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// Unwrap lets errors.Is(err, fs.ErrNotExist) match.
func (e *NotFoundError) Unwrap() error { return fs.ErrNotExist }

// FormatError reports a literal that does not match its grammar.
type FormatError struct {
	Input    string // offending literal, as read
	Expected string // expected pattern, may be empty
	Reason   string
}

func (e *FormatError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("%s: %q", e.Reason, e.Input)
	}
	return fmt.Sprintf("%s: %q (expected format: %s)", e.Reason, e.Input, e.Expected)
}
