package libsvm

import (
	"errors"
	"fmt"
)

var (
	FormatErr    = errors.New("format error")
	InvariantErr = errors.New("invariant violation")

	errEOF       = errors.New("unexpected end of model")
	errOrder     = errors.New("feature indices must start at 1 and ascend")
	errNotFinite = errors.New("not a finite number")
)

// FormatError reports a model line that does not match its expected pattern.
type FormatError struct {
	// Line is the 0-based line number in the model file.
	Line    int
	Pattern string
	Content string
	Err     error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("line %d: '%s' does not match '%s'", e.Line, e.Content, e.Pattern)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", FormatErr.Error(), msg)
}

func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{FormatErr}
	}
	return []error{FormatErr, e.Err}
}

func invariant(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), InvariantErr)
}

func isInvariant(err error) bool {
	return errors.Is(err, InvariantErr)
}
