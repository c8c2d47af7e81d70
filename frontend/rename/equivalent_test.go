package rename

import (
	"testing"

	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/types"
	"github.com/stretchr/testify/assert"
)

func TestEquivalent(t *testing.T) {
	a := types.NewGeneric(symbol.New("a"))
	myInt := types.NewAlias(symbol.New("MyInt"), nil, intT())
	env := types.NewEnv().WithAlias(myInt, nil)

	cases := []struct {
		name             string
		actual, inferred types.Type
		equivalent       bool
	}{
		{"same builtin", intT(), intT(), true},
		{"different builtin", intT(), floatT(), false},
		{"generic matches anything", fn(a, a), fn(intT(), intT()), true},
		{"generic must match consistently", fn(a, a), fn(intT(), strT()), false},
		{"generic on the inferred side is not bound", fn(intT(), intT()), fn(a, a), false},
		{"alias on the actual side", types.NewIdent(symbol.New("MyInt")), intT(), true},
		{"alias on the inferred side", fn(intT(), intT()), fn(types.NewIdent(symbol.New("MyInt")), intT()), true},
		{"different arity", fn(intT(), intT()), fn(intT(), intT(), intT()), false},
		{
			"records",
			types.NewRecord(types.NewField(symbol.New("x"), a)),
			types.NewRecord(types.NewField(symbol.New("x"), strT())),
			true,
		},
		{
			"records with other fields",
			types.NewRecord(types.NewField(symbol.New("x"), intT())),
			types.NewRecord(types.NewField(symbol.New("y"), intT())),
			false,
		},
		{
			"skolems",
			&types.Skolem{Name: symbol.New("s"), ID: 1},
			types.NewArray(intT()),
			true,
		},
		{
			"skolem and generic of the same name",
			fn(a, &types.Skolem{Name: symbol.New("a"), ID: 1}),
			fn(intT(), strT()),
			true,
		},
		{
			"skolems of the same name with other ids",
			fn(&types.Skolem{Name: symbol.New("s"), ID: 1}, &types.Skolem{Name: symbol.New("s"), ID: 2}),
			fn(intT(), strT()),
			true,
		},
		{
			"skolem must match consistently",
			fn(&types.Skolem{Name: symbol.New("s"), ID: 1}, &types.Skolem{Name: symbol.New("s"), ID: 1}),
			fn(intT(), strT()),
			false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.equivalent, Equivalent(env, c.actual, c.inferred))
		})
	}
}

func TestEquivalentLeavesNoState(t *testing.T) {
	a := types.NewGeneric(symbol.New("a"))
	env := types.NewEnv()
	assert.True(t, Equivalent(env, fn(a, a), fn(intT(), intT())))
	// a is free to match another type in the next check
	assert.True(t, Equivalent(env, fn(a, a), fn(strT(), strT())))
	assert.Nil(t, a.Kind)
}
