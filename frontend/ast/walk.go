package ast

import "iter"

// Visitor is called by Walk for each direct child of an expression.
type Visitor interface {
	VisitExpr(expr Expr)
}

// Children yields the direct subexpressions of expr, in evaluation order.
// Punned record fields, which have no expression yet, are skipped.
func Children(expr Expr) iter.Seq[Expr] {
	return func(yield func(Expr) bool) {
		each := func(exprs ...Expr) bool {
			for _, e := range exprs {
				if e != nil && !yield(e) {
					return false
				}
			}
			return true
		}
		switch expr := expr.(type) {
		case *App:
			_ = each(expr.Func) && each(expr.Args...)
		case *Lambda:
			each(expr.Body)
		case *Infix:
			_ = each(expr.Lhs) && each(expr.Op) && each(expr.Rhs)
		case *Match:
			if !each(expr.Expr) {
				return
			}
			for _, alt := range expr.Alts {
				if !each(alt.Expr) {
					return
				}
			}
		case *LetBindings:
			for _, binding := range expr.Bindings {
				if !each(binding.Expr) {
					return
				}
			}
			each(expr.Body)
		case *TypeBindings:
			each(expr.Body)
		case *Record:
			for _, field := range expr.Exprs {
				if !each(field.Value) {
					return
				}
			}
			each(expr.Base)
		case *Tuple:
			each(expr.Elems...)
		case *Array:
			each(expr.Exprs...)
		case *Projection:
			each(expr.Expr)
		case *IfElse:
			each(expr.Cond, expr.Then, expr.Else)
		case *Block:
			each(expr.Exprs...)
		case *Do:
			_ = each(expr.Bound) && each(expr.Body)
		}
	}
}

// Walk calls v.VisitExpr on each direct child of expr. Visitors recurse by
// calling Walk again from VisitExpr.
func Walk(v Visitor, expr Expr) {
	for child := range Children(expr) {
		v.VisitExpr(child)
	}
}

// Inspect traverses expr depth-first, calling f on each expression.
// Children of an expression are skipped if f returns false for it.
func Inspect(expr Expr, f func(Expr) bool) {
	if expr == nil || !f(expr) {
		return
	}
	for child := range Children(expr) {
		Inspect(child, f)
	}
}
