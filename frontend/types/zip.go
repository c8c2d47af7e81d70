package types

import (
	"github.com/cottand/ilecheck/frontend/unify"
)

func mismatch(expected, actual Type) (Type, bool, error) {
	return nil, false, unify.Mismatch[Type]{Expected: expected, Actual: actual}
}

func (t *Hole) ZipMatch(other Type, _ unify.Unifier[Type]) (Type, bool, error) {
	if _, ok := other.(*Hole); ok {
		return nil, false, nil
	}
	return mismatch(t, other)
}

func (t *Opaque) ZipMatch(other Type, _ unify.Unifier[Type]) (Type, bool, error) {
	if _, ok := other.(*Opaque); ok {
		return nil, false, nil
	}
	return mismatch(t, other)
}

func (t *EmptyRow) ZipMatch(other Type, _ unify.Unifier[Type]) (Type, bool, error) {
	if _, ok := other.(*EmptyRow); ok {
		return nil, false, nil
	}
	return mismatch(t, other)
}

func (t *Builtin) ZipMatch(other Type, _ unify.Unifier[Type]) (Type, bool, error) {
	if o, ok := other.(*Builtin); ok && o.Kind == t.Kind {
		return nil, false, nil
	}
	return mismatch(t, other)
}

func (t *Variable) ZipMatch(other Type, _ unify.Unifier[Type]) (Type, bool, error) {
	if o, ok := other.(*Variable); ok && o.ID == t.ID {
		return nil, false, nil
	}
	return mismatch(t, other)
}

func (t *Generic) ZipMatch(other Type, _ unify.Unifier[Type]) (Type, bool, error) {
	if o, ok := other.(*Generic); ok && o.Name == t.Name {
		return nil, false, nil
	}
	return mismatch(t, other)
}

func (t *Skolem) ZipMatch(other Type, _ unify.Unifier[Type]) (Type, bool, error) {
	if o, ok := other.(*Skolem); ok && o.Name == t.Name && o.ID == t.ID {
		return nil, false, nil
	}
	return mismatch(t, other)
}

// Ident and AliasRef are interchangeable when they name the same type

func (t *Ident) ZipMatch(other Type, _ unify.Unifier[Type]) (Type, bool, error) {
	switch o := other.(type) {
	case *Ident:
		if o.Name == t.Name {
			return nil, false, nil
		}
	case *AliasRef:
		if o.Alias.Name == t.Name {
			return nil, false, nil
		}
	}
	return mismatch(t, other)
}

func (t *AliasRef) ZipMatch(other Type, _ unify.Unifier[Type]) (Type, bool, error) {
	switch o := other.(type) {
	case *Ident:
		if o.Name == t.Alias.Name {
			return nil, false, nil
		}
	case *AliasRef:
		if o.Alias.Name == t.Alias.Name {
			return nil, false, nil
		}
	}
	return mismatch(t, other)
}

func (t *Forall) ZipMatch(other Type, u unify.Unifier[Type]) (Type, bool, error) {
	o, ok := other.(*Forall)
	if !ok || len(o.Params) != len(t.Params) {
		return mismatch(t, other)
	}
	body, changed := u.TryMatch(t.Body, o.Body)
	if !changed {
		return nil, false, nil
	}
	return &Forall{Range: t.Range, Params: t.Params, Body: body}, true, nil
}

func (t *App) ZipMatch(other Type, u unify.Unifier[Type]) (Type, bool, error) {
	o, ok := other.(*App)
	if !ok || len(o.Args) != len(t.Args) {
		return mismatch(t, other)
	}
	ctor, ctorChanged := u.TryMatch(t.Ctor, o.Ctor)
	if !ctorChanged {
		ctor = t.Ctor
	}
	i := 0
	args, argsChanged := unify.MergeSlice(t.Args, func(arg Type) (Type, bool) {
		merged, changed := u.TryMatch(arg, o.Args[i])
		i++
		return merged, changed
	})
	if !ctorChanged && !argsChanged {
		return nil, false, nil
	}
	return &App{Range: t.Range, Ctor: ctor, Args: args}, true, nil
}

func (t *Variant) ZipMatch(other Type, u unify.Unifier[Type]) (Type, bool, error) {
	o, ok := other.(*Variant)
	if !ok {
		return mismatch(t, other)
	}
	row, changed := u.TryMatch(t.Row, o.Row)
	if !changed {
		return nil, false, nil
	}
	return &Variant{Range: t.Range, Row: row}, true, nil
}

func (t *Record) ZipMatch(other Type, u unify.Unifier[Type]) (Type, bool, error) {
	o, ok := other.(*Record)
	if !ok {
		return mismatch(t, other)
	}
	row, changed := u.TryMatch(t.Row, o.Row)
	if !changed {
		return nil, false, nil
	}
	return &Record{Range: t.Range, Row: row}, true, nil
}

// ZipMatch on rows requires both sides to list the same fields in the same order.
func (t *ExtendRow) ZipMatch(other Type, u unify.Unifier[Type]) (Type, bool, error) {
	o, ok := other.(*ExtendRow)
	if !ok || len(o.Fields) != len(t.Fields) || len(o.Types) != len(t.Types) {
		return mismatch(t, other)
	}
	for i, typeField := range t.Types {
		if o.Types[i].Name != typeField.Name {
			return mismatch(t, other)
		}
	}
	for i, field := range t.Fields {
		if o.Fields[i].Name != field.Name {
			return mismatch(t, other)
		}
	}
	i := 0
	fields, fieldsChanged := unify.MergeSlice(t.Fields, func(field *Field) (*Field, bool) {
		typ, changed := u.TryMatch(field.Typ, o.Fields[i].Typ)
		i++
		if !changed {
			return field, false
		}
		return &Field{Range: field.Range, Name: field.Name, Typ: typ}, true
	})
	rest, restChanged := u.TryMatch(t.Rest, o.Rest)
	if !restChanged {
		rest = t.Rest
	}
	if !fieldsChanged && !restChanged {
		return nil, false, nil
	}
	return &ExtendRow{Range: t.Range, Types: t.Types, Fields: fields, Rest: rest}, true, nil
}
