package types

import (
	"iter"

	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/unify"
	"github.com/hashicorp/go-set/v3"
)

// AsFunction decomposes a function type `arg -> ret`.
func AsFunction(t Type) (arg, ret Type, ok bool) {
	app, isApp := t.(*App)
	if !isApp || len(app.Args) != 2 {
		return nil, nil, false
	}
	if builtin, isBuiltin := app.Ctor.(*Builtin); !isBuiltin || builtin.Kind != Function {
		return nil, nil, false
	}
	return app.Args[0], app.Args[1], true
}

// ArgIter yields the argument types of a curried function type, in order.
func ArgIter(t Type) iter.Seq[Type] {
	return func(yield func(Type) bool) {
		for {
			arg, ret, ok := AsFunction(t)
			if !ok || !yield(arg) {
				return
			}
			t = ret
		}
	}
}

// ReturnType strips every argument from a curried function type.
func ReturnType(t Type) Type {
	for {
		_, ret, ok := AsFunction(t)
		if !ok {
			return t
		}
		t = ret
	}
}

// RemoveForall returns the type underneath any outer quantifiers.
func RemoveForall(t Type) Type {
	for {
		forall, ok := t.(*Forall)
		if !ok {
			return t
		}
		t = forall.Body
	}
}

func rowOf(t Type) Type {
	switch t := t.(type) {
	case *Record:
		return t.Row
	case *Variant:
		return t.Row
	default:
		return t
	}
}

// RowIter yields the fields of a row, record or variant, following extensions in order.
func RowIter(t Type) iter.Seq[*Field] {
	return func(yield func(*Field) bool) {
		row := rowOf(t)
		for {
			extend, ok := row.(*ExtendRow)
			if !ok {
				return
			}
			for _, field := range extend.Fields {
				if !yield(field) {
					return
				}
			}
			row = extend.Rest
		}
	}
}

// TypeFieldIter yields the type fields of a row or record.
func TypeFieldIter(t Type) iter.Seq[*TypeField] {
	return func(yield func(*TypeField) bool) {
		row := rowOf(t)
		for {
			extend, ok := row.(*ExtendRow)
			if !ok {
				return
			}
			for _, field := range extend.Types {
				if !yield(field) {
					return
				}
			}
			row = extend.Rest
		}
	}
}

// Children yields the direct children of t.
// Aliases referenced by AliasRef and TypeField are not entered.
func Children(t Type) iter.Seq[Type] {
	return func(yield func(Type) bool) {
		switch t := t.(type) {
		case *Forall:
			yield(t.Body)
		case *App:
			if !yield(t.Ctor) {
				return
			}
			for _, arg := range t.Args {
				if !yield(arg) {
					return
				}
			}
		case *Variant:
			yield(t.Row)
		case *Record:
			yield(t.Row)
		case *ExtendRow:
			for _, field := range t.Fields {
				if !yield(field.Typ) {
					return
				}
			}
			yield(t.Rest)
		}
	}
}

// Walk calls f on t and then on each of its children, depth-first.
func Walk(t Type, f func(Type)) {
	if t == nil {
		return
	}
	f(t)
	for child := range Children(t) {
		Walk(child, f)
	}
}

// Map rebuilds t with f applied top-down, where f returns false for the nodes it leaves alone.
// The children of whatever f returns are visited as well. Subtrees f does not change are shared.
func Map(t Type, f func(Type) (Type, bool)) Type {
	mapped, _ := mapType(t, f)
	return mapped
}

// mapType returns t itself, and false, when nothing changed
func mapType(t Type, f func(Type) (Type, bool)) (Type, bool) {
	if t == nil {
		return nil, false
	}
	current := t
	replaced, changed := f(t)
	if changed {
		current = replaced
	}
	switch t := current.(type) {
	case *Forall:
		if body, bodyChanged := mapType(t.Body, f); bodyChanged {
			return &Forall{Range: t.Range, Params: t.Params, Body: body}, true
		}
	case *App:
		ctor, ctorChanged := mapType(t.Ctor, f)
		args, argsChanged := unify.MergeSlice(t.Args, func(arg Type) (Type, bool) { return mapType(arg, f) })
		if ctorChanged || argsChanged {
			return &App{Range: t.Range, Ctor: ctor, Args: args}, true
		}
	case *Variant:
		if row, rowChanged := mapType(t.Row, f); rowChanged {
			return &Variant{Range: t.Range, Row: row}, true
		}
	case *Record:
		if row, rowChanged := mapType(t.Row, f); rowChanged {
			return &Record{Range: t.Range, Row: row}, true
		}
	case *ExtendRow:
		fields, fieldsChanged := unify.MergeSlice(t.Fields, func(field *Field) (*Field, bool) {
			typ, typChanged := mapType(field.Typ, f)
			if !typChanged {
				return field, false
			}
			return &Field{Range: field.Range, Name: field.Name, Typ: typ}, true
		})
		rest, restChanged := mapType(t.Rest, f)
		if fieldsChanged || restChanged {
			return &ExtendRow{Range: t.Range, Types: t.Types, Fields: fields, Rest: rest}, true
		}
	}
	return current, changed
}

// FreeGenerics lists the generics of t which are not bound by a Forall inside t,
// in order of first occurrence.
func FreeGenerics(t Type) []*Generic {
	seen := set.New[symbol.Symbol](4)
	var free []*Generic
	var visit func(t Type, bound *set.Set[symbol.Symbol])
	visit = func(t Type, bound *set.Set[symbol.Symbol]) {
		switch t := t.(type) {
		case nil:
			return
		case *Generic:
			if !bound.Contains(t.Name) && seen.Insert(t.Name) {
				free = append(free, t)
			}
			return
		case *Forall:
			inner := bound.Copy()
			for _, param := range t.Params {
				inner.Insert(param.Name)
			}
			visit(t.Body, inner)
			return
		}
		for child := range Children(t) {
			visit(child, bound)
		}
	}
	visit(t, set.New[symbol.Symbol](0))
	return free
}
