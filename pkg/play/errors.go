package play

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPrecondition is returned by Extend when called on a Play that has
// already started, and by Stop when called on one that never started.
var ErrPrecondition = errors.New("play: precondition violated")

// FailureError aggregates every non-cancellation error raised by a
// cohort's actors during one run. It realizes ExceptionGroup from
// _examples/original_source/src/synopsys/concurrency/errors.py.
type FailureError struct {
	Errors []error
}

func (e *FailureError) Error() string {
	noun := "error"
	if len(e.Errors) != 1 {
		noun = "errors"
	}
	parts := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		parts[i] = err.Error()
	}
	return fmt.Sprintf("%d %s raised: [%s]", len(e.Errors), noun, strings.Join(parts, ", "))
}

// Unwrap exposes the aggregated errors to errors.Is/errors.As.
func (e *FailureError) Unwrap() []error { return e.Errors }
