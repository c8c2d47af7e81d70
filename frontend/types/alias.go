package types

import (
	"github.com/cottand/ilecheck/frontend/kind"
	"github.com/cottand/ilecheck/frontend/pos"
	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/hashicorp/go-set/v3"
)

// Alias is a named stand-in for Typ. Parameterised aliases quantify their
// parameters with a Forall at the root of Typ.
type Alias struct {
	Name symbol.Symbol
	Typ  Type
}

func NewAlias(name symbol.Symbol, params []*Generic, body Type) *Alias {
	if len(params) == 0 {
		return &Alias{Name: name, Typ: body}
	}
	return &Alias{Name: name, Typ: &Forall{Range: pos.RangeOf(body), Params: params, Body: body}}
}

// Params are the parameters the alias must be applied to.
func (a *Alias) Params() []*Generic {
	if forall, ok := a.Typ.(*Forall); ok {
		return forall.Params
	}
	return nil
}

// Body is the aliased type with its parameters left as generics.
func (a *Alias) Body() Type {
	if forall, ok := a.Typ.(*Forall); ok {
		return forall.Body
	}
	return a.Typ
}

// Kind is the kind of the alias as a type constructor, from the kinds of its
// parameters. Parameters without a kind yet count as kind.Type.
func (a *Alias) Kind(cache *kind.Cache) kind.Kind {
	params := a.Params()
	kinds := make([]kind.Kind, len(params))
	for i, param := range params {
		kinds[i] = param.Kind
		if kinds[i] == nil {
			kinds[i] = cache.Typ()
		}
	}
	return kind.Arrow(kinds, cache.Typ())
}

func (a *Alias) String() string {
	return a.Name.String()
}

// Apply substitutes args for the parameters of a in its body.
// Extra arguments are applied to the result. It returns false when there are
// fewer arguments than parameters.
func (a *Alias) Apply(args []Type) (Type, bool) {
	params := a.Params()
	if len(args) < len(params) {
		return nil, false
	}
	body := a.Body()
	if len(params) > 0 {
		substitution := make(map[symbol.Symbol]Type, len(params))
		for i, param := range params {
			substitution[param.Name] = args[i]
		}
		body = Map(body, func(t Type) (Type, bool) {
			if generic, ok := t.(*Generic); ok {
				replaced, found := substitution[generic.Name]
				return replaced, found
			}
			return nil, false
		})
	}
	if rest := args[len(params):]; len(rest) > 0 {
		return &App{Ctor: body, Args: rest}, true
	}
	return body, true
}

// TypeEnv looks up the types of values and the definitions of type names
// declared outside of the unit being processed.
type TypeEnv interface {
	FindType(name symbol.Symbol) (Type, bool)
	FindTypeInfo(name symbol.Symbol) (*Alias, bool)
}

// RemoveAlias unfolds t once if it is an alias, or an alias applied to arguments.
func RemoveAlias(env TypeEnv, t Type) (Type, bool) {
	ctor, args := t, []Type(nil)
	if app, ok := t.(*App); ok {
		ctor, args = app.Ctor, app.Args
	}
	var alias *Alias
	switch ctor := ctor.(type) {
	case *AliasRef:
		alias = ctor.Alias
	case *Ident:
		alias, _ = env.FindTypeInfo(ctor.Name)
	}
	if alias == nil || isSelfReference(alias) {
		return nil, false
	}
	return alias.Apply(args)
}

// isSelfReference holds for aliases which name a distinct type rather than stand in for one
func isSelfReference(alias *Alias) bool {
	switch body := RemoveForall(alias.Typ).(type) {
	case *Opaque:
		return true
	case *Ident:
		return body.Name == alias.Name
	case *AliasRef:
		return body.Alias.Name == alias.Name
	case *App:
		switch ctor := body.Ctor.(type) {
		case *Ident:
			return ctor.Name == alias.Name
		case *AliasRef:
			return ctor.Alias.Name == alias.Name
		}
	}
	return false
}

// RemoveAliases unfolds t until it is no longer an alias.
// Aliases which (transitively) expand to themselves are unfolded at most once each.
func RemoveAliases(env TypeEnv, t Type) Type {
	seen := set.New[symbol.Symbol](2)
	for {
		name, isAlias := aliasName(env, t)
		if !isAlias || !seen.Insert(name) {
			return t
		}
		unfolded, ok := RemoveAlias(env, t)
		if !ok {
			return t
		}
		t = unfolded
	}
}

func aliasName(env TypeEnv, t Type) (symbol.Symbol, bool) {
	if app, ok := t.(*App); ok {
		t = app.Ctor
	}
	switch t := t.(type) {
	case *AliasRef:
		return t.Alias.Name, true
	case *Ident:
		_, found := env.FindTypeInfo(t.Name)
		return t.Name, found
	}
	return symbol.Symbol{}, false
}
