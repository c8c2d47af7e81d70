// Package kind describes the kinds of type-level expressions.
//
// Kinds are immutable once built and freely shared between trees.
package kind

import (
	"fmt"

	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/unify"
)

// Kind classifies a type-level expression the way a type classifies a value.
type Kind interface {
	fmt.Stringer
	// VarID returns the id of the inference variable this kind is, if it is one.
	VarID() (uint32, bool)
	ZipMatch(other Kind, u unify.Unifier[Kind]) (Kind, bool, error)
	isKind()
}

var (
	_ Kind = (*Hole)(nil)
	_ Kind = (*Type)(nil)
	_ Kind = (*Row)(nil)
	_ Kind = (*Variable)(nil)
	_ Kind = (*Function)(nil)
)

// Hole is a kind that has not been constrained yet.
type Hole struct{}

// Type is the kind of types inhabited by values.
type Type struct{}

// Row is the kind of the field lists of records and variants.
type Row struct{}

// Variable is an unresolved kind inference variable.
type Variable struct {
	ID uint32
}

// Function is the kind of a type constructor taking Arg and producing Ret.
type Function struct {
	Arg, Ret Kind
}

func NewVariable(id uint32) Kind { return &Variable{ID: id} }

func NewFunction(arg, ret Kind) Kind { return &Function{Arg: arg, Ret: ret} }

// Arrow builds k1 -> k2 -> ... -> ret.
func Arrow(args []Kind, ret Kind) Kind {
	for i := len(args) - 1; i >= 0; i-- {
		ret = NewFunction(args[i], ret)
	}
	return ret
}

func (*Hole) isKind()     {}
func (*Type) isKind()     {}
func (*Row) isKind()      {}
func (*Variable) isKind() {}
func (*Function) isKind() {}

func (*Hole) VarID() (uint32, bool)       { return 0, false }
func (*Type) VarID() (uint32, bool)       { return 0, false }
func (*Row) VarID() (uint32, bool)        { return 0, false }
func (k *Variable) VarID() (uint32, bool) { return k.ID, true }
func (*Function) VarID() (uint32, bool)   { return 0, false }

func (*Hole) String() string       { return "_" }
func (*Type) String() string       { return "Type" }
func (*Row) String() string        { return "Row" }
func (k *Variable) String() string { return fmt.Sprintf("k%d", k.ID) }
func (k *Function) String() string {
	if _, isFunction := k.Arg.(*Function); isFunction {
		return fmt.Sprintf("(%v) -> %v", k.Arg, k.Ret)
	}
	return fmt.Sprintf("%v -> %v", k.Arg, k.Ret)
}

// Equal reports whether a and b are structurally the same kind.
func Equal(a, b Kind) bool {
	switch a := a.(type) {
	case *Hole:
		_, ok := b.(*Hole)
		return ok
	case *Type:
		_, ok := b.(*Type)
		return ok
	case *Row:
		_, ok := b.(*Row)
		return ok
	case *Variable:
		other, ok := b.(*Variable)
		return ok && a.ID == other.ID
	case *Function:
		other, ok := b.(*Function)
		return ok && Equal(a.Arg, other.Arg) && Equal(a.Ret, other.Ret)
	default:
		return false
	}
}

func zipLeaf(k Kind, other Kind) (Kind, bool, error) {
	if Equal(k, other) {
		return nil, false, nil
	}
	return nil, false, unify.Mismatch[Kind]{Expected: k, Actual: other}
}

func (k *Hole) ZipMatch(other Kind, _ unify.Unifier[Kind]) (Kind, bool, error) {
	return zipLeaf(k, other)
}

func (k *Type) ZipMatch(other Kind, _ unify.Unifier[Kind]) (Kind, bool, error) {
	return zipLeaf(k, other)
}

func (k *Row) ZipMatch(other Kind, _ unify.Unifier[Kind]) (Kind, bool, error) {
	return zipLeaf(k, other)
}

func (k *Variable) ZipMatch(other Kind, _ unify.Unifier[Kind]) (Kind, bool, error) {
	return zipLeaf(k, other)
}

func (k *Function) ZipMatch(other Kind, u unify.Unifier[Kind]) (Kind, bool, error) {
	o, ok := other.(*Function)
	if !ok {
		return nil, false, unify.Mismatch[Kind]{Expected: k, Actual: other}
	}
	arg, argChanged := u.TryMatch(k.Arg, o.Arg)
	ret, retChanged := u.TryMatch(k.Ret, o.Ret)
	merged, changed := unify.Merge(k.Arg, arg, argChanged, k.Ret, ret, retChanged, NewFunction)
	return merged, changed, nil
}

// Map rebuilds k bottom-up with f, where f returns false for kinds it leaves untouched.
// Subtrees that f does not change are shared with k.
func Map(k Kind, f func(Kind) (Kind, bool)) Kind {
	if mapped, changed := mapKind(k, f); changed {
		return mapped
	}
	return k
}

func mapKind(k Kind, f func(Kind) (Kind, bool)) (Kind, bool) {
	replaced, changed := f(k)
	current := k
	if changed {
		current = replaced
	}
	if fn, ok := current.(*Function); ok {
		arg, argChanged := mapKind(fn.Arg, f)
		ret, retChanged := mapKind(fn.Ret, f)
		if merged, ok := unify.Merge(fn.Arg, arg, argChanged, fn.Ret, ret, retChanged, NewFunction); ok {
			return merged, true
		}
	}
	return current, changed
}

// Cache holds shared instances of the leaf kinds.
type Cache struct {
	typ, row, hole Kind
}

func NewCache() *Cache {
	return &Cache{typ: &Type{}, row: &Row{}, hole: &Hole{}}
}

func (c *Cache) Typ() Kind  { return c.typ }
func (c *Cache) Row() Kind  { return c.row }
func (c *Cache) Hole() Kind { return c.hole }

// Env looks up the kinds of type names declared outside the unit being checked.
type Env interface {
	FindKind(name symbol.Symbol) (Kind, bool)
}

// EmptyEnv knows no names.
type EmptyEnv struct{}

func (EmptyEnv) FindKind(symbol.Symbol) (Kind, bool) { return nil, false }
