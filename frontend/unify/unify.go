// Package unify implements structural unification over any value which can be
// stored in a subst.Substitution.
//
// The same algorithm serves kinds during kind checking; other Unifier
// implementations (such as the equivalence check in the renamer) reuse the
// ZipMatch half of it with their own variable handling.
package unify

import (
	"errors"
	"fmt"

	"github.com/cottand/ilecheck/frontend/subst"
	"github.com/cottand/ilecheck/internal/log"
)

var logger = log.DefaultLogger.With("section", "unify")

// Unifier is the state threaded through a structural comparison.
type Unifier[T any] interface {
	// TryMatch compares l against r. Errors are reported to the Unifier rather than returned.
	// The result is the merged value, and whether it differs from l.
	TryMatch(l, r T) (T, bool)
	// ReportError records a failure found while comparing children.
	ReportError(err error)
}

// Unifiable values know how to compare their own shape against another value.
type Unifiable[T any] interface {
	subst.Substitutable
	// ZipMatch compares the top-level shape of the receiver against other.
	// Both are resolved and neither is a variable. Children are compared through u.
	// The result is the merged value, and whether it differs from the receiver.
	ZipMatch(other T, u Unifier[T]) (T, bool, error)
}

// Mismatch is returned when two values have incompatible shapes.
type Mismatch[T any] struct {
	Expected T
	Actual   T
}

func (e Mismatch[T]) Error() string {
	return fmt.Sprintf("type mismatch: expected '%v', found '%v'", e.Expected, e.Actual)
}

type state[T Unifiable[T]] struct {
	subs   *subst.Substitution[T]
	errors []error
}

func (s *state[T]) TryMatch(l, r T) (T, bool) {
	merged, changed, err := s.tryMatchRes(l, r)
	if err != nil {
		s.ReportError(err)
		var zero T
		return zero, false
	}
	return merged, changed
}

func (s *state[T]) ReportError(err error) {
	s.errors = append(s.errors, err)
}

func (s *state[T]) tryMatchRes(l, r T) (T, bool, error) {
	var zero T
	l, r = s.subs.Real(l), s.subs.Real(r)
	lID, lIsVar := l.VarID()
	rID, rIsVar := r.VarID()
	switch {
	case lIsVar && rIsVar && lID == rID:
		return zero, false, nil
	case rIsVar:
		s.subs.Bind(rID, l)
		return zero, false, nil
	case lIsVar:
		s.subs.Bind(lID, r)
		return r, true, nil
	}
	return l.ZipMatch(r, s)
}

// Unify unifies expected with actual, binding variables in subs.
// On success it returns the merged value, which is expected itself when nothing had to change.
func Unify[T Unifiable[T]](subs *subst.Substitution[T], expected, actual T) (T, error) {
	logger.Debug("unify", "expected", expected, "actual", actual)
	s := &state[T]{subs: subs}
	merged, changed := s.TryMatch(expected, actual)
	if len(s.errors) > 0 {
		var zero T
		return zero, errors.Join(s.errors...)
	}
	if !changed {
		return expected, nil
	}
	return merged, nil
}

// Merge rebuilds a node with two children when at least one of them changed.
// It returns false when neither did, so that the caller can keep sharing the original node.
func Merge[C, R any](l, lNew C, lChanged bool, r, rNew C, rChanged bool, f func(C, C) R) (R, bool) {
	if !lChanged && !rChanged {
		var zero R
		return zero, false
	}
	if lChanged {
		l = lNew
	}
	if rChanged {
		r = rNew
	}
	return f(l, r), true
}

// MergeSlice applies f to each element, and only allocates a new slice if f changed one of them.
func MergeSlice[C any](items []C, f func(C) (C, bool)) ([]C, bool) {
	var out []C
	for i, item := range items {
		replaced, changed := f(item)
		if !changed {
			if out != nil {
				out[i] = item
			}
			continue
		}
		if out == nil {
			out = make([]C, len(items))
			copy(out, items[:i])
		}
		out[i] = replaced
	}
	if out == nil {
		return items, false
	}
	return out, true
}
