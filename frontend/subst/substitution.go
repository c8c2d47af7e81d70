// Package subst implements a single-assignment substitution store for inference variables.
package subst

import (
	"github.com/cottand/ilecheck/internal/ice"
)

// Substitutable is a value which may itself be an unresolved inference variable.
type Substitutable interface {
	// VarID returns the id of the variable if this value is one.
	VarID() (uint32, bool)
}

type slot[T any] struct {
	value T
	bound bool
}

// Substitution maps variables created through NewVar to the values discovered for them.
//
// Once a variable is bound it is never rebound. Variables may be bound to other
// variables, in which case Find follows the chain. No cycle detection is done.
//
// A Substitution is owned by a single pass and is not safe for concurrent use.
type Substitution[T Substitutable] struct {
	fromVar func(id uint32) T
	slots   []slot[T]
}

// New creates an empty Substitution, where fromVar constructs the value
// representing the unresolved variable id.
func New[T Substitutable](fromVar func(id uint32) T) *Substitution[T] {
	return &Substitution[T]{fromVar: fromVar}
}

// NewVar allocates a fresh unresolved variable.
func (s *Substitution[T]) NewVar() T {
	id := uint32(len(s.slots))
	s.slots = append(s.slots, slot[T]{})
	return s.fromVar(id)
}

// Len is the number of variables allocated so far.
func (s *Substitution[T]) Len() int { return len(s.slots) }

// Find returns the value bound to the variable id, resolving chained variable to
// variable bindings. It returns false when id is unbound.
func (s *Substitution[T]) Find(id uint32) (T, bool) {
	var zero T
	current := s.slot(id)
	if !current.bound {
		return zero, false
	}
	value := current.value
	for {
		next, isVar := value.VarID()
		if !isVar {
			return value, true
		}
		nextSlot := s.slot(next)
		if !nextSlot.bound {
			return value, true
		}
		value = nextSlot.value
	}
}

// Bind assigns value to the unbound variable id.
// Binding a variable twice is an internal compiler error.
func (s *Substitution[T]) Bind(id uint32, value T) {
	current := s.slot(id)
	if current.bound {
		ice.ICE("substitution variable %d is already bound", id)
	}
	s.slots[id] = slot[T]{value: value, bound: true}
}

// Real resolves t if it is a bound variable, and returns it unchanged otherwise.
func (s *Substitution[T]) Real(t T) T {
	if id, isVar := t.VarID(); isVar {
		if resolved, ok := s.Find(id); ok {
			return resolved
		}
	}
	return t
}

// IsBound reports whether the variable id has been assigned a value.
func (s *Substitution[T]) IsBound(id uint32) bool {
	return s.slot(id).bound
}

func (s *Substitution[T]) slot(id uint32) slot[T] {
	if int(id) >= len(s.slots) {
		ice.ICE("substitution variable %d was not allocated by this substitution", id)
	}
	return s.slots[id]
}
