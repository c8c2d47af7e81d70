package types

import (
	"github.com/benbjohnson/immutable"
	"github.com/cottand/ilecheck/frontend/kind"
	"github.com/cottand/ilecheck/frontend/symbol"
)

// Env is a persistent environment of names declared outside the unit being
// checked. Adding to an Env returns a new Env and leaves the receiver untouched,
// so one Env can be handed to any number of passes.
type Env struct {
	kinds   *immutable.Map[symbol.Symbol, kind.Kind]
	values  *immutable.Map[symbol.Symbol, Type]
	aliases *immutable.Map[symbol.Symbol, *Alias]
}

var (
	_ TypeEnv  = (*Env)(nil)
	_ kind.Env = (*Env)(nil)
)

func NewEnv() *Env {
	return &Env{
		kinds:   immutable.NewMap[symbol.Symbol, kind.Kind](symbol.Hasher{}),
		values:  immutable.NewMap[symbol.Symbol, Type](symbol.Hasher{}),
		aliases: immutable.NewMap[symbol.Symbol, *Alias](symbol.Hasher{}),
	}
}

// WithKind declares a type constructor of kind k.
func (e *Env) WithKind(name symbol.Symbol, k kind.Kind) *Env {
	copied := *e
	copied.kinds = e.kinds.Set(name, k)
	return &copied
}

// WithValue declares a value of type typ.
func (e *Env) WithValue(name symbol.Symbol, typ Type) *Env {
	copied := *e
	copied.values = e.values.Set(name, typ)
	return &copied
}

// WithAlias declares alias, together with its kind.
func (e *Env) WithAlias(alias *Alias, k kind.Kind) *Env {
	copied := *e
	copied.aliases = e.aliases.Set(alias.Name, alias)
	copied.kinds = e.kinds.Set(alias.Name, k)
	return &copied
}

func (e *Env) FindKind(name symbol.Symbol) (kind.Kind, bool) {
	return e.kinds.Get(name)
}

func (e *Env) FindType(name symbol.Symbol) (Type, bool) {
	return e.values.Get(name)
}

func (e *Env) FindTypeInfo(name symbol.Symbol) (*Alias, bool) {
	return e.aliases.Get(name)
}
