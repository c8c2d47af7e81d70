package ast

import (
	"github.com/cottand/ilecheck/frontend/pos"
	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/types"
)

var (
	_ Pattern = (*IdentPattern)(nil)
	_ Pattern = (*AsPattern)(nil)
	_ Pattern = (*RecordPattern)(nil)
	_ Pattern = (*TuplePattern)(nil)
	_ Pattern = (*ConstructorPattern)(nil)
	_ Pattern = (*LiteralPattern)(nil)
	_ Pattern = (*ErrorPattern)(nil)
)

// Pattern destructures a value, and binds names to its parts.
type Pattern interface {
	pos.Positioner
	// Type is the type of the values the pattern matches.
	Type() types.Type
	isPattern()
}

type IdentPattern struct {
	pos.Range
	TypedIdent
}

// AsPattern binds Name to the whole value matched by Pattern.
type AsPattern struct {
	pos.Range
	Name    symbol.Symbol
	Pattern Pattern
}

// RecordPattern matches a record of type Typ.
type RecordPattern struct {
	pos.Range
	Typ types.Type
	// Types binds the type fields of the record
	Types []*PatternField
	// Fields destructures value fields. A field with a nil Value is punned:
	// it binds a variable named after the field.
	Fields []*PatternField
}

type PatternField struct {
	pos.Range
	Name  symbol.Symbol
	Value Pattern
}

type TuplePattern struct {
	pos.Range
	Typ   types.Type
	Elems []Pattern
}

// ConstructorPattern matches a variant constructor, where Ctor is typed as the
// function from the constructor arguments to the variant.
type ConstructorPattern struct {
	pos.Range
	Ctor TypedIdent
	Args []Pattern
}

type LiteralPattern struct {
	pos.Range
	Literal *Literal
}

type ErrorPattern struct {
	pos.Range
}

func (*IdentPattern) isPattern()       {}
func (*AsPattern) isPattern()          {}
func (*RecordPattern) isPattern()      {}
func (*TuplePattern) isPattern()       {}
func (*ConstructorPattern) isPattern() {}
func (*LiteralPattern) isPattern()     {}
func (*ErrorPattern) isPattern()       {}

func (p *IdentPattern) Type() types.Type  { return p.Typ }
func (p *AsPattern) Type() types.Type     { return p.Pattern.Type() }
func (p *RecordPattern) Type() types.Type { return p.Typ }
func (p *TuplePattern) Type() types.Type  { return p.Typ }
func (p *ConstructorPattern) Type() types.Type {
	return types.ReturnType(types.RemoveForall(p.Ctor.Typ))
}
func (p *LiteralPattern) Type() types.Type { return p.Literal.Typ }
func (p *ErrorPattern) Type() types.Type   { return types.Span(&types.Hole{}, p.Range) }
