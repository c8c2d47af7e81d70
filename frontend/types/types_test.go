package types

import (
	"testing"

	"github.com/cottand/ilecheck/frontend/kind"
	"github.com/cottand/ilecheck/frontend/subst"
	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/unify"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	intT    = NewBuiltin(Int)
	stringT = NewBuiltin(String)
	floatT  = NewBuiltin(Float)
)

func sym(name string) symbol.Symbol { return symbol.New(name) }

func field(name string, typ Type) *Field { return NewField(sym(name), typ) }

func TestString(t *testing.T) {
	a := NewGeneric(sym("a"))
	testCases := []struct {
		name     string
		typ      Type
		expected string
	}{
		{"builtin", intT, "Int"},
		{"function", NewFunction([]Type{intT, intT}, intT), "Int -> Int -> Int"},
		{"higher order", NewFunction([]Type{NewFunction([]Type{intT}, intT)}, intT), "(Int -> Int) -> Int"},
		{"array", NewArray(stringT), "Array String"},
		{"nested app", NewApp(NewIdent(sym("List")), NewArray(intT)), "List (Array Int)"},
		{"record", NewRecord(field("x", intT), field("y", stringT)), "{ x : Int, y : String }"},
		{"empty record", NewRecord(), "{}"},
		{"open record", &Record{Row: NewRow([]*Field{field("x", a)}, NewGeneric(sym("r")))}, "{ x : a | r }"},
		{"variant", NewVariant(field("Nil", NewIdent(sym("List"))), field("Cons", NewFunction([]Type{a}, NewIdent(sym("List"))))), "| Nil | Cons a"},
		{"forall", &Forall{Params: []*Generic{a}, Body: NewFunction([]Type{a}, a)}, "forall a . a -> a"},
		{"empty row", &EmptyRow{}, "()"},
		{"variable", NewVariable(3), "?3"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.typ.String())
		})
	}
}

func TestArgIterAndReturnType(t *testing.T) {
	fn := NewFunction([]Type{intT, stringT}, floatT)
	var args []Type
	for arg := range ArgIter(fn) {
		args = append(args, arg)
	}
	assert.Equal(t, []Type{intT, stringT}, args)
	assert.Same(t, floatT, ReturnType(fn))
	assert.Same(t, intT, ReturnType(intT))
}

func TestRowIterFollowsExtensions(t *testing.T) {
	row := &ExtendRow{
		Fields: []*Field{field("x", intT)},
		Rest:   &ExtendRow{Fields: []*Field{field("y", stringT)}, Rest: &EmptyRow{}},
	}
	var names []string
	for f := range RowIter(&Record{Row: row}) {
		names = append(names, f.Name.String())
	}
	assert.Equal(t, []string{"x", "y"}, names)
}

func TestMapSharesUnchangedSubtrees(t *testing.T) {
	unchanged := NewArray(intT)
	typ := NewFunction([]Type{unchanged}, NewGeneric(sym("a")))

	mapped := Map(typ, func(t Type) (Type, bool) {
		if g, ok := t.(*Generic); ok && g.Name == sym("a") {
			return stringT, true
		}
		return nil, false
	})
	assert.Equal(t, "Array Int -> String", mapped.String())
	arg, _, _ := AsFunction(mapped)
	assert.Same(t, unchanged, arg)
	assert.Same(t, typ, Map(typ, func(Type) (Type, bool) { return nil, false }))
}

func TestFreeGenerics(t *testing.T) {
	a, b, c := NewGeneric(sym("a")), NewGeneric(sym("b")), NewGeneric(sym("c"))
	typ := NewRecord(
		field("x", a),
		field("f", &Forall{Params: []*Generic{NewGeneric(sym("c"))}, Body: NewFunction([]Type{c}, b)}),
		field("y", NewGeneric(sym("a"))),
	)
	free := FreeGenerics(typ)
	names := make([]string, len(free))
	for i, g := range free {
		names[i] = g.Name.String()
	}
	assert.Equal(t, []string{"a", "b"}, names, pretty.Sprint(typ))
}

func TestAliasApply(t *testing.T) {
	a := NewGeneric(sym("a"))
	pair := NewAlias(sym("Pair"), []*Generic{a}, NewRecord(field("x", a), field("y", a)))

	applied, ok := pair.Apply([]Type{intT})
	require.True(t, ok)
	assert.Equal(t, "{ x : Int, y : Int }", applied.String())

	_, ok = pair.Apply(nil)
	assert.False(t, ok)

	cache := kind.NewCache()
	assert.Equal(t, "Type -> Type", pair.Kind(cache).String())
}

func TestRemoveAliases(t *testing.T) {
	point := NewAlias(sym("Point"), nil, NewRecord(field("x", intT), field("y", intT)))
	position := NewAlias(sym("Position"), nil, NewIdent(sym("Point")))
	env := NewEnv().WithAlias(point, kind.NewCache().Typ()).WithAlias(position, kind.NewCache().Typ())

	unfolded := RemoveAliases(env, NewIdent(sym("Position")))
	assert.Equal(t, "{ x : Int, y : Int }", unfolded.String())

	unfolded = RemoveAliases(env, &AliasRef{Alias: point})
	assert.Equal(t, "{ x : Int, y : Int }", unfolded.String())

	notAlias := NewIdent(sym("Unknown"))
	assert.Same(t, notAlias, RemoveAliases(env, notAlias))
}

func TestRemoveAliasesStopsOnCycles(t *testing.T) {
	a := NewAlias(sym("A"), nil, NewIdent(sym("B")))
	b := NewAlias(sym("B"), nil, NewIdent(sym("A")))
	env := NewEnv().WithAlias(a, kind.NewCache().Typ()).WithAlias(b, kind.NewCache().Typ())

	unfolded := RemoveAliases(env, NewIdent(sym("A")))
	assert.Equal(t, "A", unfolded.String())

	opaque := NewAlias(sym("Handle"), nil, &Opaque{})
	_, ok := RemoveAlias(NewEnv(), &AliasRef{Alias: opaque})
	assert.False(t, ok)
}

func TestEnvIsPersistent(t *testing.T) {
	empty := NewEnv()
	withInt := empty.WithValue(sym("x"), intT)

	_, found := empty.FindType(sym("x"))
	assert.False(t, found)
	typ, found := withInt.FindType(sym("x"))
	assert.True(t, found)
	assert.Same(t, intT, typ)

	k, found := withInt.WithKind(sym("List"), kind.NewFunction(&kind.Type{}, &kind.Type{})).FindKind(sym("List"))
	assert.True(t, found)
	assert.Equal(t, "Type -> Type", k.String())
}

func TestUnifyTypesThroughSubstitution(t *testing.T) {
	subs := subst.New(NewVariable)
	v := subs.NewVar()

	expected := NewFunction([]Type{v}, stringT)
	merged, err := unify.Unify[Type](subs, expected, NewFunction([]Type{intT}, stringT))
	require.NoError(t, err)
	assert.Equal(t, "Int -> String", merged.String())
	assert.Same(t, intT, subs.Real(v))

	_, err = unify.Unify[Type](subs, NewRecord(field("x", intT)), NewRecord(field("y", intT)))
	assert.Error(t, err)
}

func TestZipMatchIdentAndAliasRef(t *testing.T) {
	point := NewAlias(sym("Point"), nil, NewRecord(field("x", intT)))
	subs := subst.New(NewVariable)

	_, err := unify.Unify[Type](subs, NewIdent(sym("Point")), &AliasRef{Alias: point})
	assert.NoError(t, err)
	_, err = unify.Unify[Type](subs, NewIdent(sym("Other")), &AliasRef{Alias: point})
	assert.Error(t, err)
}
