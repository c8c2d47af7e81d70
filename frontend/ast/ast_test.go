package ast

import (
	"go/token"
	"testing"

	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/types"
	"github.com/stretchr/testify/assert"
)

func ident(name string) *Ident {
	return &Ident{TypedIdent: TypedIdent{Name: symbol.New(name)}}
}

func intLit(syntax string) *Literal {
	return &Literal{Syntax: syntax, Kind: token.INT, Typ: types.NewBuiltin(types.Int)}
}

func TestExprString(t *testing.T) {
	cases := map[string]Expr{
		"f 1 x": &App{Func: ident("f"), Args: []Expr{intLit("1"), ident("x")}},
		"1 + (f x)": &Infix{
			Lhs: intLit("1"),
			Op:  ident("+"),
			Rhs: &App{Func: ident("f"), Args: []Expr{ident("x")}},
		},
		"\\x y -> x":       &Lambda{Args: []*Ident{ident("x"), ident("y")}, Body: ident("x")},
		"{ ..r with x, y = 1 }": &Record{
			Base:  ident("r"),
			Exprs: []*FieldExpr{{Name: symbol.New("x")}, {Name: symbol.New("y"), Value: intLit("1")}},
		},
		"(1, x)": &Tuple{Elems: []Expr{intLit("1"), ident("x")}},
		"let x = 1\nin x": &LetBindings{
			Bindings: []*ValueBinding{{Name: &IdentPattern{TypedIdent: TypedIdent{Name: symbol.New("x")}}, Expr: intLit("1")}},
			Body:     ident("x"),
		},
	}
	for expected, expr := range cases {
		t.Run(expected, func(t *testing.T) {
			assert.Equal(t, expected, ExprString(expr))
		})
	}
}

func TestPatternString(t *testing.T) {
	pattern := &AsPattern{
		Name: symbol.New("whole"),
		Pattern: &RecordPattern{
			Fields: []*PatternField{
				{Name: symbol.New("x")},
				{Name: symbol.New("y"), Value: &TuplePattern{Elems: []Pattern{
					&IdentPattern{TypedIdent: TypedIdent{Name: symbol.New("a")}},
					&LiteralPattern{Literal: intLit("2")},
				}}},
			},
		},
	}
	assert.Equal(t, "whole@{ x, y = (a, 2) }", PatternString(pattern))
}

func TestInspectOrder(t *testing.T) {
	expr := &IfElse{
		Cond: ident("c"),
		Then: &Block{Exprs: []Expr{ident("a"), ident("b")}},
		Else: &Record{Exprs: []*FieldExpr{{Name: symbol.New("pun")}, {Name: symbol.New("z"), Value: ident("z")}}},
	}
	var names []string
	Inspect(expr, func(e Expr) bool {
		if id, ok := e.(*Ident); ok {
			names = append(names, id.Name.String())
		}
		return true
	})
	assert.Equal(t, []string{"c", "a", "b", "z"}, names)
}

func TestInspectSkipsChildren(t *testing.T) {
	expr := &App{Func: &Lambda{Body: ident("hidden")}, Args: []Expr{ident("shown")}}
	var names []string
	Inspect(expr, func(e Expr) bool {
		if id, ok := e.(*Ident); ok {
			names = append(names, id.Name.String())
		}
		_, isLambda := e.(*Lambda)
		return !isLambda
	})
	assert.Equal(t, []string{"shown"}, names)
}

func TestPatternTypes(t *testing.T) {
	intT := types.NewBuiltin(types.Int)
	option := types.NewIdent(symbol.New("Option"))
	ctor := &ConstructorPattern{Ctor: TypedIdent{
		Name: symbol.New("Some"),
		Typ:  types.NewFunction([]types.Type{intT}, option),
	}}
	assert.Same(t, option, ctor.Type())

	as := &AsPattern{Name: symbol.New("x"), Pattern: &LiteralPattern{Literal: intLit("1")}}
	assert.Equal(t, "Int", as.Type().String())
	assert.Equal(t, "_", (&ErrorPattern{}).Type().String())
}
