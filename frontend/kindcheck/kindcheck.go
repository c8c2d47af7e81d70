// Package kindcheck infers the kinds of type expressions.
//
// A KindCheck is used for one group of type declarations at a time. It keeps a
// stack of local kind bindings, the generics of the declaration being checked,
// and the substitution its kind variables are resolved through.
package kindcheck

import (
	"unicode"
	"unicode/utf8"

	"github.com/cottand/ilecheck/frontend/ilerr"
	"github.com/cottand/ilecheck/frontend/kind"
	"github.com/cottand/ilecheck/frontend/pos"
	"github.com/cottand/ilecheck/frontend/subst"
	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/types"
	"github.com/cottand/ilecheck/frontend/unify"
	"github.com/cottand/ilecheck/internal/ice"
	"github.com/cottand/ilecheck/internal/log"
)

var logger = log.DefaultLogger.With("section", "kindcheck")

type local struct {
	name symbol.Symbol
	kind kind.Kind
}

type KindCheck struct {
	variables []*types.Generic
	// locals are the type bindings local to the current group, innermost last
	locals []local
	info   kind.Env
	idents symbol.IdentEnv
	Subs   *subst.Substitution[kind.Kind]
	cache  *kind.Cache
	// function1 is the kind of one argument constructors, `Type -> Type`
	function1 kind.Kind
	// function2 is the kind of two argument constructors, `Type -> Type -> Type`
	function2 kind.Kind
}

func New(info kind.Env, idents symbol.IdentEnv, cache *kind.Cache) *KindCheck {
	typ := cache.Typ()
	function1 := kind.NewFunction(typ, typ)
	return &KindCheck{
		info:      info,
		idents:    idents,
		Subs:      subst.New(kind.NewVariable),
		cache:     cache,
		function1: function1,
		function2: kind.NewFunction(typ, function1),
	}
}

// AddLocal binds name to k for the rest of the group.
func (kc *KindCheck) AddLocal(name symbol.Symbol, k kind.Kind) {
	kc.locals = append(kc.locals, local{name: name, kind: k})
}

// Mark returns how many locals are bound, for a later Restore.
func (kc *KindCheck) Mark() int { return len(kc.locals) }

// Restore unbinds the locals added since mark was taken.
func (kc *KindCheck) Restore(mark int) {
	kc.locals = kc.locals[:mark]
}

// SetVariables replaces the generics currently in scope.
func (kc *KindCheck) SetVariables(variables []*types.Generic) {
	kc.variables = append(kc.variables[:0], variables...)
}

func (kc *KindCheck) TypeKind() kind.Kind      { return kc.cache.Typ() }
func (kc *KindCheck) RowKind() kind.Kind       { return kc.cache.Row() }
func (kc *KindCheck) Function1Kind() kind.Kind { return kc.function1 }
func (kc *KindCheck) Function2Kind() kind.Kind { return kc.function2 }

// InstantiateKinds replaces every hole in k with a fresh kind variable.
// k must not contain variables already.
func (kc *KindCheck) InstantiateKinds(k kind.Kind) kind.Kind {
	return kind.Map(k, func(k kind.Kind) (kind.Kind, bool) {
		switch k := k.(type) {
		case *kind.Hole:
			return kc.Subs.NewVar(), true
		case *kind.Variable:
			ice.ICE("unexpected kind variable %v while instantiating", k)
		}
		return nil, false
	})
}

func (kc *KindCheck) lookup(name symbol.Symbol) (kind.Kind, bool) {
	for _, variable := range kc.variables {
		if variable.Name == name {
			if variable.Kind == nil {
				variable.Kind = kc.Subs.NewVar()
			}
			return variable.Kind, true
		}
	}
	for i := len(kc.locals) - 1; i >= 0; i-- {
		if kc.locals[i].name == name {
			return kc.locals[i].kind, true
		}
	}
	return kc.info.FindKind(name)
}

// find resolves the kind of name. Unknown lower-case names are type variables
// which have not been bound explicitly, and get a fresh kind.
func (kc *KindCheck) find(r pos.Range, name symbol.Symbol) (kind.Kind, error) {
	display := kc.idents.String(name)
	k, found := kc.lookup(name)
	if !found {
		if first, _ := utf8.DecodeRuneInString(display); unicode.IsUpper(first) {
			return nil, ilerr.New(ilerr.NewUndefinedType{Positioner: r, Name: display})
		}
		k = kc.Subs.NewVar()
		kc.AddLocal(name, k)
	}
	logger.Debug("find kind", "name", display, "kind", k)
	return k, nil
}

// KindcheckType checks that typ is a type of values, that is, of kind Type.
func (kc *KindCheck) KindcheckType(typ types.Type) (kind.Kind, error) {
	return kc.KindcheckExpected(typ, kc.TypeKind())
}

// KindcheckExpected infers the kind of typ, checks it against expected, and
// finalizes the kinds annotated on typ.
func (kc *KindCheck) KindcheckExpected(typ types.Type, expected kind.Kind) (kind.Kind, error) {
	k, err := kc.kindcheck(typ)
	if err != nil {
		return nil, err
	}
	k, err = kc.unify(pos.RangeOf(typ), expected, k)
	if err != nil {
		return nil, err
	}
	kc.FinalizeType(typ)
	return k, nil
}

func (kc *KindCheck) builtinKind(b types.BuiltinType) kind.Kind {
	switch b {
	case types.Array:
		return kc.function1
	case types.Function:
		return kc.function2
	default:
		return kc.TypeKind()
	}
}

func (kc *KindCheck) kindcheck(typ types.Type) (kind.Kind, error) {
	r := pos.RangeOf(typ)
	switch typ := typ.(type) {
	case *types.Hole, *types.Opaque, *types.Variable:
		return kc.Subs.NewVar(), nil
	case *types.Skolem:
		k, err := kc.find(r, typ.Name)
		if err != nil {
			return nil, err
		}
		typ.Kind = k
		return k, nil
	case *types.Generic:
		k, err := kc.find(r, typ.Name)
		if err != nil {
			return nil, err
		}
		typ.Kind = k
		return k, nil
	case *types.Builtin:
		return kc.builtinKind(typ.Kind), nil
	case *types.Forall:
		defer kc.Restore(kc.Mark())
		for _, param := range typ.Params {
			param.Kind = kc.Subs.NewVar()
			kc.AddLocal(param.Name, param.Kind)
		}
		return kc.kindcheck(typ.Body)
	case *types.App:
		return kc.kindcheckApp(typ)
	case *types.Variant:
		for field := range types.RowIter(typ.Row) {
			if err := kc.expectKind(field.Typ, kc.TypeKind()); err != nil {
				return nil, err
			}
		}
		return kc.TypeKind(), nil
	case *types.Record:
		k, err := kc.kindcheck(typ.Row)
		if err != nil {
			return nil, err
		}
		if _, err = kc.unify(r, kc.RowKind(), k); err != nil {
			return nil, err
		}
		return kc.TypeKind(), nil
	case *types.ExtendRow:
		for _, field := range typ.Fields {
			if err := kc.expectKind(field.Typ, kc.TypeKind()); err != nil {
				return nil, err
			}
		}
		if err := kc.expectKind(typ.Rest, kc.RowKind()); err != nil {
			return nil, err
		}
		return kc.RowKind(), nil
	case *types.EmptyRow:
		return kc.RowKind(), nil
	case *types.Ident:
		return kc.find(r, typ.Name)
	case *types.AliasRef:
		return kc.find(r, typ.Alias.Name)
	default:
		ice.ICE("unexpected type %T in kind checking", typ)
		return nil, nil
	}
}

// kindcheckApp applies the kind of the constructor to each argument, left to right
func (kc *KindCheck) kindcheckApp(app *types.App) (kind.Kind, error) {
	k, err := kc.kindcheck(app.Ctor)
	if err != nil {
		return nil, err
	}
	for _, arg := range app.Args {
		argRange := pos.RangeOf(arg)
		fresh := kind.NewFunction(kc.Subs.NewVar(), kc.Subs.NewVar())
		k, err = kc.unify(argRange, fresh, k)
		if err != nil {
			return nil, err
		}
		function, ok := k.(*kind.Function)
		if !ok {
			return nil, ilerr.New(ilerr.NewKindMismatch{Positioner: argRange, Expected: kc.function1, Actual: k})
		}
		if err = kc.expectKind(arg, function.Arg); err != nil {
			return nil, err
		}
		k = function.Ret
	}
	return k, nil
}

func (kc *KindCheck) expectKind(typ types.Type, expected kind.Kind) error {
	k, err := kc.kindcheck(typ)
	if err != nil {
		return err
	}
	_, err = kc.unify(pos.RangeOf(typ), expected, k)
	return err
}

// Unify unifies actual with expected, reporting a mismatch at r.
func (kc *KindCheck) Unify(r pos.Range, expected, actual kind.Kind) (kind.Kind, error) {
	return kc.unify(r, expected, actual)
}

func (kc *KindCheck) unify(r pos.Range, expected, actual kind.Kind) (kind.Kind, error) {
	logger.Debug("unify kinds", "expected", expected, "actual", actual)
	merged, err := unify.Unify(kc.Subs, expected, actual)
	if err != nil {
		return nil, ilerr.New(ilerr.NewKindMismatch{
			Positioner: r,
			Expected:   updateKind(kc.Subs, expected, nil),
			Actual:     updateKind(kc.Subs, actual, nil),
		})
	}
	return merged, nil
}

// FinalizeType replaces the kind variables annotated on typ with what they
// resolved to. Variables which are still unresolved default to Type.
func (kc *KindCheck) FinalizeType(typ types.Type) {
	def := kc.TypeKind()
	types.Walk(typ, func(typ types.Type) {
		switch typ := typ.(type) {
		case *types.Variable:
			if typ.Kind != nil {
				typ.Kind = updateKind(kc.Subs, typ.Kind, def)
			}
		case *types.Generic:
			typ.Kind = kc.FinalizeKind(typ.Kind)
		case *types.Skolem:
			typ.Kind = kc.FinalizeKind(typ.Kind)
		case *types.Forall:
			for _, param := range typ.Params {
				param.Kind = kc.FinalizeKind(param.Kind)
			}
		}
	})
}

// FinalizeGeneric returns a copy of generic with its kind finalized.
func (kc *KindCheck) FinalizeGeneric(generic *types.Generic) *types.Generic {
	return &types.Generic{Range: generic.Range, Name: generic.Name, Kind: kc.FinalizeKind(generic.Kind)}
}

// FinalizeKind resolves k, defaulting unresolved variables to Type.
func (kc *KindCheck) FinalizeKind(k kind.Kind) kind.Kind {
	if k == nil {
		return kc.TypeKind()
	}
	return updateKind(kc.Subs, k, kc.TypeKind())
}

// updateKind resolves the variables in k through subs, and replaces the
// unresolved ones with def unless def is nil.
// Variables bound to kinds containing themselves make this diverge.
func updateKind(subs *subst.Substitution[kind.Kind], k kind.Kind, def kind.Kind) kind.Kind {
	return kind.Map(k, func(k kind.Kind) (kind.Kind, bool) {
		variable, ok := k.(*kind.Variable)
		if !ok {
			return nil, false
		}
		if resolved, found := subs.Find(variable.ID); found {
			return updateKind(subs, resolved, def), true
		}
		if def != nil {
			return def, true
		}
		return nil, false
	})
}
