// Package ice reports internal compiler errors: broken invariants which no
// well-formed or malformed input program should be able to trigger.
package ice

import (
	"fmt"

	"github.com/pkg/errors"
)

// InternalError is the value ICE panics with.
type InternalError struct {
	cause error
}

func (e InternalError) Error() string {
	return "internal compiler error: " + e.cause.Error()
}

func (e InternalError) Unwrap() error { return e.cause }

// StackTrace returns where the invariant was found to be broken.
func (e InternalError) StackTrace() errors.StackTrace {
	if tracer, ok := e.cause.(interface{ StackTrace() errors.StackTrace }); ok {
		return tracer.StackTrace()
	}
	return nil
}

// ICE aborts the current compilation unit.
func ICE(format string, args ...any) {
	panic(InternalError{cause: errors.Errorf(format, args...)})
}

// Recover turns an ICE raised below the caller into an error stored in errp.
// Any other panic is propagated. It must be called directly by a deferred statement:
//
//	defer ice.Recover(&err)
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	internal, ok := r.(InternalError)
	if !ok {
		panic(r)
	}
	*errp = internal
}

// Format renders err with its stack trace when it is an InternalError.
func Format(err error) string {
	var internal InternalError
	if errors.As(err, &internal) {
		return fmt.Sprintf("%v%+v", internal, internal.StackTrace())
	}
	return err.Error()
}
