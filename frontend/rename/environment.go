package rename

import (
	"github.com/cottand/ilecheck/frontend/pos"
	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/types"
	"github.com/cottand/ilecheck/util"
)

// binding is a value binding visible under a surface name
type binding struct {
	// name is the unique name the binding was renamed to
	name symbol.Symbol
	span pos.Range
	typ  types.Type
}

// environment layers the bindings local to the module being renamed on top of
// the outer environment.
type environment struct {
	env        types.TypeEnv
	stack      *util.ScopedMap[symbol.Symbol, binding]
	stackTypes *util.ScopedMap[symbol.Symbol, *types.Alias]
}

var _ types.TypeEnv = (*environment)(nil)

func newEnvironment(env types.TypeEnv) *environment {
	return &environment{
		env:        env,
		stack:      util.NewScopedMap[symbol.Symbol, binding](),
		stackTypes: util.NewScopedMap[symbol.Symbol, *types.Alias](),
	}
}

func (e *environment) FindType(name symbol.Symbol) (types.Type, bool) {
	if local, ok := e.stack.Get(name); ok {
		return local.typ, true
	}
	return e.env.FindType(name)
}

func (e *environment) FindTypeInfo(name symbol.Symbol) (*types.Alias, bool) {
	if alias, ok := e.stackTypes.Get(name); ok {
		return alias, true
	}
	return e.env.FindTypeInfo(name)
}

func (e *environment) enterScope() {
	e.stackTypes.EnterScope()
	e.stack.EnterScope()
}

func (e *environment) exitScope() {
	e.stack.ExitScope()
	e.stackTypes.ExitScope()
}
