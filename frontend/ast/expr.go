// Package ast holds the value-level tree handed over by type inference: every
// expression and pattern already carries its inferred type.
//
// The renamer mutates identifier names in place, and fills in the patterns of
// punned record fields.
package ast

import (
	"go/token"

	"github.com/cottand/ilecheck/frontend/pos"
	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/types"
)

var (
	_ Expr = (*Ident)(nil)
	_ Expr = (*Literal)(nil)
	_ Expr = (*App)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*Infix)(nil)
	_ Expr = (*Match)(nil)
	_ Expr = (*LetBindings)(nil)
	_ Expr = (*TypeBindings)(nil)
	_ Expr = (*Record)(nil)
	_ Expr = (*Tuple)(nil)
	_ Expr = (*Array)(nil)
	_ Expr = (*Projection)(nil)
	_ Expr = (*IfElse)(nil)
	_ Expr = (*Block)(nil)
	_ Expr = (*Do)(nil)
	_ Expr = (*ErrorExpr)(nil)
)

// Expr is the base for all value expressions.
//
// The following expressions are supported:
//
//	Ident:         identifier occurrence
//	Literal:       literal value
//	App:           function application
//	Lambda:        function abstraction
//	Infix:         binary operator application
//	Match:         pattern match
//	LetBindings:   group of value bindings
//	TypeBindings:  group of type declarations
//	Record:        record construction or update
//	Tuple:         tuple construction
//	Array:         array literal
//	Projection:    record field access
//	IfElse:        conditional
//	Block:         sequence of expressions
//	Do:            monadic bind
type Expr interface {
	pos.Positioner
	// ExprName is the Name of the syntax-type of the expression.
	ExprName() string
	// Describe is what to call this expression in error messages
	Describe() string
	isExpr()
}

// TypedIdent is a name together with the type inference found for it.
type TypedIdent struct {
	Name symbol.Symbol
	Typ  types.Type
}

// Ident is an identifier, both as an occurrence and as a binder (as in
// function parameters).
type Ident struct {
	pos.Range
	TypedIdent
}

type Literal struct {
	pos.Range
	// Syntax is a string representation of the literal value.
	Syntax string
	// Kind is one of token.INT, token.FLOAT, token.CHAR or token.STRING
	Kind token.Token
	Typ  types.Type
}

type App struct {
	pos.Range
	Func Expr
	Args []Expr
}

type Lambda struct {
	pos.Range
	// ID names the lambda, and its Typ is the type of the whole function
	ID   TypedIdent
	Args []*Ident
	Body Expr
}

type Infix struct {
	pos.Range
	Lhs Expr
	Op  *Ident
	Rhs Expr
}

type Match struct {
	pos.Range
	Expr Expr
	Alts []*Alternative
}

type Alternative struct {
	Pattern Pattern
	Expr    Expr
}

// LetBindings binds every binding in Bindings for the rest of the group and
// for Body.
type LetBindings struct {
	pos.Range
	Bindings []*ValueBinding
	Body     Expr
}

type ValueBinding struct {
	Name Pattern
	Args []*Ident
	// ResolvedType is the type of the bound value, including its arguments
	ResolvedType types.Type
	Expr         Expr
}

// TypeBindings declares type aliases visible in Body.
type TypeBindings struct {
	pos.Range
	Bindings []*TypeBinding
	Body     Expr
}

type TypeBinding struct {
	// Range is the span of the declared name
	pos.Range
	Name  symbol.Symbol
	Alias *types.Alias
	// FinalizedAlias is filled in once the alias is kind checked
	FinalizedAlias *types.Alias
}

// Record builds a record of type Typ. With a Base, the record is a copy of
// Base updated with Exprs.
type Record struct {
	pos.Range
	Typ   types.Type
	Exprs []*FieldExpr
	Base  Expr
}

// FieldExpr assigns a field of a record. A nil Value means that the field is
// punned from the variable of the same name.
type FieldExpr struct {
	pos.Range
	Name  symbol.Symbol
	Value Expr
}

type Tuple struct {
	pos.Range
	Typ   types.Type
	Elems []Expr
}

type Array struct {
	pos.Range
	Typ   types.Type
	Exprs []Expr
}

type Projection struct {
	pos.Range
	Expr  Expr
	Field symbol.Symbol
	Typ   types.Type
}

type IfElse struct {
	pos.Range
	Cond, Then, Else Expr
}

type Block struct {
	pos.Range
	Exprs []Expr
}

// Do binds the result of Bound to ID in Body through the flat-map operation
// FlatMapID, which is resolved by type inference.
type Do struct {
	pos.Range
	ID        *Ident
	Bound     Expr
	Body      Expr
	FlatMapID *Ident
}

// ErrorExpr stands in for an expression which failed to parse.
type ErrorExpr struct {
	pos.Range
}

func (*Ident) isExpr()        {}
func (*Literal) isExpr()      {}
func (*App) isExpr()          {}
func (*Lambda) isExpr()       {}
func (*Infix) isExpr()        {}
func (*Match) isExpr()        {}
func (*LetBindings) isExpr()  {}
func (*TypeBindings) isExpr() {}
func (*Record) isExpr()       {}
func (*Tuple) isExpr()        {}
func (*Array) isExpr()        {}
func (*Projection) isExpr()   {}
func (*IfElse) isExpr()       {}
func (*Block) isExpr()        {}
func (*Do) isExpr()           {}
func (*ErrorExpr) isExpr()    {}

// Returns the name of e.
func (e *Ident) ExprName() string { return e.Name.String() }

// Returns the syntax of e.
func (e *Literal) ExprName() string { return e.Syntax }

func (*App) ExprName() string          { return "App" }
func (*Lambda) ExprName() string       { return "Lambda" }
func (*Infix) ExprName() string        { return "Infix" }
func (*Match) ExprName() string        { return "Match" }
func (*LetBindings) ExprName() string  { return "LetBindings" }
func (*TypeBindings) ExprName() string { return "TypeBindings" }
func (*Record) ExprName() string       { return "Record" }
func (*Tuple) ExprName() string        { return "Tuple" }
func (*Array) ExprName() string        { return "Array" }
func (*Projection) ExprName() string   { return "Projection" }
func (*IfElse) ExprName() string       { return "IfElse" }
func (*Block) ExprName() string        { return "Block" }
func (*Do) ExprName() string           { return "Do" }
func (*ErrorExpr) ExprName() string    { return "Error" }

func (e *Literal) Describe() string {
	switch e.Kind {
	case token.INT:
		return "int literal"
	case token.FLOAT:
		return "float literal"
	case token.CHAR:
		return "char literal"
	case token.STRING:
		return "string literal"
	default:
		return "literal"
	}
}

func (*Ident) Describe() string        { return "variable" }
func (*App) Describe() string          { return "function call" }
func (*Lambda) Describe() string       { return "function" }
func (*Infix) Describe() string        { return "operator application" }
func (*Match) Describe() string        { return "match" }
func (*LetBindings) Describe() string  { return "let bindings" }
func (*TypeBindings) Describe() string { return "type bindings" }
func (e *Record) Describe() string {
	if e.Base != nil {
		return "record update"
	}
	return "record"
}
func (*Tuple) Describe() string      { return "tuple" }
func (*Array) Describe() string      { return "array literal" }
func (*Projection) Describe() string { return "field access" }
func (*IfElse) Describe() string     { return "if expression" }
func (*Block) Describe() string      { return "block" }
func (*Do) Describe() string         { return "do expression" }
func (*ErrorExpr) Describe() string  { return "error expression" }
