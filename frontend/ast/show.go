package ast

import (
	"fmt"
	"strings"
)

// ExprString renders expr in surface syntax, mostly for logging and tests.
func ExprString(expr Expr) string {
	ctx := newShowContext()
	ctx.showExprWalker(expr, 0)
	return ctx.String()
}

type showContext struct {
	*strings.Builder
	indent    int
	indentStr string
}

func newShowContext() *showContext {
	return &showContext{
		Builder:   &strings.Builder{},
		indentStr: "  ",
		indent:    0,
	}
}

func (ctx *showContext) currentIndent() string {
	return strings.Repeat(ctx.indentStr, ctx.indent)
}

func (ctx *showContext) newline() {
	ctx.WriteString("\n")
	ctx.WriteString(ctx.currentIndent())
}

func (ctx *showContext) showAll(exprs []Expr, sep string) {
	for i, expr := range exprs {
		if i > 0 {
			ctx.WriteString(sep)
		}
		ctx.showExprWalker(expr, 0)
	}
}

func (ctx *showContext) showExprWalker(expr Expr, outerPrecedence int16) {
	if expr == nil {
		ctx.WriteString("nil")
		return
	}
	if outerPrecedence > 0 {
		switch expr.(type) {
		case *Ident, *Literal, *Tuple, *Array, *Record, *Projection, *Block, *ErrorExpr:
		default:
			ctx.WriteString("(")
			defer ctx.WriteString(")")
		}
	}
	switch expr := expr.(type) {
	case *Ident, *Literal:
		ctx.WriteString(expr.ExprName())
	case *App:
		ctx.showExprWalker(expr.Func, 1)
		for _, arg := range expr.Args {
			ctx.WriteString(" ")
			ctx.showExprWalker(arg, 1)
		}
	case *Lambda:
		ctx.WriteString("\\")
		for _, arg := range expr.Args {
			ctx.WriteString(arg.Name.String())
			ctx.WriteString(" ")
		}
		ctx.WriteString("-> ")
		ctx.showExprWalker(expr.Body, 0)
	case *Infix:
		ctx.showExprWalker(expr.Lhs, 1)
		ctx.WriteString(" " + expr.Op.Name.String() + " ")
		ctx.showExprWalker(expr.Rhs, 1)
	case *Match:
		ctx.WriteString("match ")
		ctx.showExprWalker(expr.Expr, 0)
		ctx.WriteString(" with")
		ctx.indent++
		for _, alt := range expr.Alts {
			ctx.newline()
			ctx.WriteString("| " + PatternString(alt.Pattern) + " -> ")
			ctx.showExprWalker(alt.Expr, 0)
		}
		ctx.indent--
	case *LetBindings:
		for _, binding := range expr.Bindings {
			ctx.WriteString("let " + PatternString(binding.Name))
			for _, arg := range binding.Args {
				ctx.WriteString(" " + arg.Name.String())
			}
			ctx.WriteString(" = ")
			ctx.showExprWalker(binding.Expr, 0)
			ctx.newline()
		}
		ctx.WriteString("in ")
		ctx.showExprWalker(expr.Body, 0)
	case *TypeBindings:
		for _, binding := range expr.Bindings {
			ctx.WriteString(fmt.Sprintf("type %s = %v", binding.Name, binding.Alias.Typ))
			ctx.newline()
		}
		ctx.WriteString("in ")
		ctx.showExprWalker(expr.Body, 0)
	case *Record:
		ctx.WriteString("{ ")
		if expr.Base != nil {
			ctx.WriteString("..")
			ctx.showExprWalker(expr.Base, 0)
			ctx.WriteString(" with ")
		}
		for i, field := range expr.Exprs {
			if i > 0 {
				ctx.WriteString(", ")
			}
			ctx.WriteString(field.Name.String())
			if field.Value != nil {
				ctx.WriteString(" = ")
				ctx.showExprWalker(field.Value, 0)
			}
		}
		ctx.WriteString(" }")
	case *Tuple:
		ctx.WriteString("(")
		ctx.showAll(expr.Elems, ", ")
		ctx.WriteString(")")
	case *Array:
		ctx.WriteString("[")
		ctx.showAll(expr.Exprs, ", ")
		ctx.WriteString("]")
	case *Projection:
		ctx.showExprWalker(expr.Expr, 1)
		ctx.WriteString("." + expr.Field.String())
	case *IfElse:
		ctx.WriteString("if ")
		ctx.showExprWalker(expr.Cond, 0)
		ctx.WriteString(" then ")
		ctx.showExprWalker(expr.Then, 0)
		ctx.WriteString(" else ")
		ctx.showExprWalker(expr.Else, 0)
	case *Block:
		ctx.WriteString("(")
		ctx.showAll(expr.Exprs, "; ")
		ctx.WriteString(")")
	case *Do:
		ctx.WriteString("do " + expr.ID.Name.String() + " = ")
		ctx.showExprWalker(expr.Bound, 0)
		ctx.newline()
		ctx.showExprWalker(expr.Body, 0)
	default:
		ctx.WriteString(expr.ExprName())
	}
}

// PatternString renders pattern in surface syntax.
func PatternString(pattern Pattern) string {
	switch pattern := pattern.(type) {
	case nil:
		return "nil"
	case *IdentPattern:
		return pattern.Name.String()
	case *AsPattern:
		return pattern.Name.String() + "@" + PatternString(pattern.Pattern)
	case *RecordPattern:
		var fields []string
		for _, field := range pattern.Types {
			fields = append(fields, field.Name.String())
		}
		for _, field := range pattern.Fields {
			if field.Value == nil {
				fields = append(fields, field.Name.String())
				continue
			}
			fields = append(fields, field.Name.String()+" = "+PatternString(field.Value))
		}
		if len(fields) == 0 {
			return "{}"
		}
		return "{ " + strings.Join(fields, ", ") + " }"
	case *TuplePattern:
		elems := make([]string, len(pattern.Elems))
		for i, elem := range pattern.Elems {
			elems[i] = PatternString(elem)
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case *ConstructorPattern:
		sb := strings.Builder{}
		sb.WriteString(pattern.Ctor.Name.String())
		for _, arg := range pattern.Args {
			sb.WriteString(" ")
			sb.WriteString(PatternString(arg))
		}
		return sb.String()
	case *LiteralPattern:
		return pattern.Literal.Syntax
	default:
		return "<error>"
	}
}
