package cmd

import (
	"go/token"
	"testing"

	"github.com/cottand/ilecheck/frontend/types"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPair(t *testing.T) {
	src := `types:
  - name: Pair
    params: [a, b]
    type: {record: {x: a, y: b}}
`
	fset := token.NewFileSet()
	bindings, err := LoadTypeBindings(fset, "pairs.yaml", []byte(src))
	require.NoError(t, err)
	require.Len(t, bindings, 1)

	pair := bindings[0]
	assert.Equal(t, "Pair", pair.Name.String())
	assert.Equal(t, "pairs.yaml:2:11", fset.Position(pair.Pos()).String())
	require.Len(t, pair.Alias.Params(), 2)
	assert.Equal(t, "a", pair.Alias.Params()[0].Name.String())
	assert.Equal(t, "b", pair.Alias.Params()[1].Name.String())
	assert.Equal(t, "{ x : a, y : b }", pair.Alias.Body().String(), pretty.Sprint(pair.Alias.Body()))
}

func TestLoadVariant(t *testing.T) {
	src := `types:
  - name: Tree
    params: [a]
    type:
      variant:
        Leaf: [a]
        Node: [{app: [Forest, a]}]
        Empty:
  - name: Forest
    params: [a]
    type: {app: [Array, {app: [Tree, a]}]}
`
	bindings, err := LoadTypeBindings(token.NewFileSet(), "tree.yaml", []byte(src))
	require.NoError(t, err)
	require.Len(t, bindings, 2)

	variant, ok := bindings[0].Alias.Body().(*types.Variant)
	require.True(t, ok, pretty.Sprint(bindings[0].Alias.Body()))
	assert.Equal(t, "| Leaf a | Node (Forest a) | Empty", variant.String())

	var ctors []string
	for field := range types.RowIter(variant.Row) {
		ctors = append(ctors, field.Name.String()+" : "+field.Typ.String())
	}
	assert.Equal(t, []string{
		"Leaf : a -> Tree a",
		"Node : Forest a -> Tree a",
		"Empty : Tree a",
	}, ctors)
	assert.Equal(t, "Array (Tree a)", bindings[1].Alias.Body().String())
}

func TestLoadType(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{"Int", "Int"},
		{"_", "_"},
		{"a", "a"},
		{"{app: [Array, Int]}", "Array Int"},
		{"{function: [Int, String, Float]}", "Int -> String -> Float"},
		{"{function: [{function: [Int, Int]}, Int]}", "(Int -> Int) -> Int"},
		{`{record: {x: Int, "|": r}}`, "{ x : Int | r }"},
		{"{row: {fields: {x: Int}, rest: r}}", "(x : Int | r)"},
		{"{row: {}}", "()"},
		{"{forall: {params: [f], type: {app: [f, Int]}}}", "forall f . f Int"},
		{"{opaque: true}", "<opaque>"},
	}
	for _, test := range tests {
		t.Run(test.src, func(t *testing.T) {
			typ, err := LoadType(token.NewFileSet(), "type.yaml", []byte(test.src))
			require.NoError(t, err)
			assert.Equal(t, test.expected, typ.String())
		})
	}
}

func TestLoadGenericsAndIdents(t *testing.T) {
	typ, err := LoadType(token.NewFileSet(), "type.yaml", []byte("{app: [Maybe, a]}"))
	require.NoError(t, err)
	app, ok := typ.(*types.App)
	require.True(t, ok)
	assert.IsType(t, &types.Ident{}, app.Ctor)
	assert.IsType(t, &types.Generic{}, app.Args[0])
}

func TestLoadPositions(t *testing.T) {
	fset := token.NewFileSet()
	typ, err := LoadType(fset, "type.yaml", []byte("{app: [Int, Int]}"))
	require.NoError(t, err)
	arg := typ.(*types.App).Args[1]
	assert.Equal(t, "type.yaml:1:13", fset.Position(arg.Pos()).String())
	assert.Equal(t, 3, int(arg.End()-arg.Pos()))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  string
	}{
		{"unknown top level key", "decls: []", "bad.yaml:1:1: unknown key 'decls'"},
		{"types not a list", "types: Int", "'types' should be a list of declarations"},
		{"no name", "types:\n  - type: Int", "bad.yaml:2:5: declaration has no name"},
		{"lower-case name", "types:\n  - {name: pair, type: Int}", "a declared type should be an upper-case identifier"},
		{"no type", "types:\n  - name: Pair", "declaration of 'Pair' has no type"},
		{"upper-case param", "types:\n  - {name: Pair, params: [A], type: Int}", "parameter should be a lower-case identifier"},
		{"unknown form", "types:\n  - {name: Pair, type: {tuple: [Int]}}", "unknown type form 'tuple'"},
		{"invalid name", "types:\n  - {name: Pair, type: 1abc}", "'1abc' is not a valid type name"},
		{"duplicate", "types:\n  - {name: Pair, type: Int}\n  - {name: Pair, type: Int}", "bad.yaml:3:12: type 'Pair' is declared more than once"},
		{"lower-case constructor", "types:\n  - {name: Pair, type: {variant: {pair: [Int]}}}", "a constructor should be an upper-case identifier"},
		{"short function", "types:\n  - {name: F, type: {function: [Int]}}", "function takes a list of at least 2 types"},
		{"invalid yaml", "types: [", "could not parse bad.yaml"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadTypeBindings(token.NewFileSet(), "bad.yaml", []byte(test.src))
			assert.ErrorContains(t, err, test.err)
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	bindings, err := LoadTypeBindings(token.NewFileSet(), "empty.yaml", nil)
	assert.NoError(t, err)
	assert.Empty(t, bindings)

	_, err = LoadType(token.NewFileSet(), "empty.yaml", nil)
	assert.Error(t, err)
}

func TestVariantOutsideDeclaration(t *testing.T) {
	_, err := LoadType(token.NewFileSet(), "type.yaml", []byte("{variant: {A: []}}"))
	assert.ErrorContains(t, err, "variants can only be declared at the top of a declaration")
}

func TestIsIdent(t *testing.T) {
	assert.True(t, isIdent("a"))
	assert.True(t, isIdent("_private"))
	assert.True(t, isIdent("héllo_2"))
	assert.False(t, isIdent(""))
	assert.False(t, isIdent("2a"))
	assert.False(t, isIdent("a-b"))
}
