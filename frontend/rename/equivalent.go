package rename

import (
	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/types"
	"github.com/cottand/ilecheck/frontend/unify"
)

// Equivalent reports whether actual, the declared type of a binding, can stand
// for inferred. Generics and skolems of actual match anything the first time
// they are met, and must match the same type afterwards.
//
// Nothing outside of this single check is bound.
func Equivalent(env types.TypeEnv, actual, inferred types.Type) bool {
	e := &equivalent{
		env:     env,
		scratch: make(map[hole]types.Type),
		equiv:   true,
	}
	e.TryMatch(actual, inferred)
	logger.Debug("equivalent", "actual", types.Slog(actual), "inferred", types.Slog(inferred), "result", e.equiv)
	return e.equiv
}

type equivalent struct {
	env     types.TypeEnv
	scratch map[hole]types.Type
	equiv   bool
}

// hole is a generic or skolem of actual. Skolems are told apart by ID, and
// never collide with a generic of the same name.
type hole struct {
	name   symbol.Symbol
	skolem bool
	id     uint32
}

var _ unify.Unifier[types.Type] = (*equivalent)(nil)

func (e *equivalent) TryMatch(l, r types.Type) (types.Type, bool) {
	merged, changed, err := e.tryMatchRes(l, r)
	if err != nil {
		e.ReportError(err)
		return nil, false
	}
	return merged, changed
}

func (e *equivalent) ReportError(error) {
	e.equiv = false
}

func (e *equivalent) tryMatchRes(l, r types.Type) (types.Type, bool, error) {
	switch l := l.(type) {
	case *types.Generic:
		if other, ok := r.(*types.Generic); ok && other.Name == l.Name {
			return nil, false, nil
		}
		return e.bindOrMatch(hole{name: l.Name}, r)
	case *types.Skolem:
		if other, ok := r.(*types.Skolem); ok && other.Name == l.Name && other.ID == l.ID {
			return nil, false, nil
		}
		return e.bindOrMatch(hole{name: l.Name, skolem: true, id: l.ID}, r)
	}
	merged, changed, err := l.ZipMatch(r, e)
	if err == nil {
		return merged, changed, nil
	}
	// the two sides may only differ by aliases
	lUnfolded, rUnfolded := types.RemoveAliases(e.env, l), types.RemoveAliases(e.env, r)
	if lUnfolded == l && rUnfolded == r {
		return nil, false, err
	}
	return e.tryMatchRes(lUnfolded, rUnfolded)
}

func (e *equivalent) bindOrMatch(h hole, r types.Type) (types.Type, bool, error) {
	if bound, ok := e.scratch[h]; ok {
		return e.tryMatchRes(bound, r)
	}
	e.scratch[h] = r
	return nil, false, nil
}
