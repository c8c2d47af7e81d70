package unify_test

import (
	"errors"
	"testing"

	"github.com/cottand/ilecheck/frontend/kind"
	"github.com/cottand/ilecheck/frontend/subst"
	"github.com/cottand/ilecheck/frontend/unify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubs() *subst.Substitution[kind.Kind] {
	return subst.New(kind.NewVariable)
}

func TestVariableBindsToConcreteKind(t *testing.T) {
	c := kind.NewCache()
	concrete := []kind.Kind{
		c.Typ(),
		c.Row(),
		kind.NewFunction(c.Typ(), c.Typ()),
		kind.Arrow([]kind.Kind{c.Typ(), c.Row()}, c.Typ()),
	}
	for _, k := range concrete {
		t.Run(k.String(), func(t *testing.T) {
			subs := newSubs()
			v := subs.NewVar()

			_, err := unify.Unify(subs, v, k)
			require.NoError(t, err)
			assert.Equal(t, k, subs.Real(v))
			assert.Equal(t, subs.Real(v), subs.Real(subs.Real(v)))

			// and symmetric
			w := subs.NewVar()
			_, err = unify.Unify(subs, k, w)
			require.NoError(t, err)
			assert.True(t, kind.Equal(k, subs.Real(w)))
		})
	}
}

func TestUnifyReturnsExpectedWhenUnchanged(t *testing.T) {
	c := kind.NewCache()
	subs := newSubs()
	expected := kind.NewFunction(c.Typ(), c.Typ())

	merged, err := unify.Unify(subs, expected, kind.NewFunction(c.Typ(), c.Typ()))
	require.NoError(t, err)
	assert.Same(t, expected, merged)
}

func TestUnifyMergesFunctionShape(t *testing.T) {
	c := kind.NewCache()
	subs := newSubs()
	arg, ret := subs.NewVar(), subs.NewVar()

	merged, err := unify.Unify(subs, kind.NewFunction(arg, ret), kind.NewFunction(c.Typ(), c.Row()))
	require.NoError(t, err)
	assert.Equal(t, "Type -> Row", merged.String())
	assert.Equal(t, c.Typ(), subs.Real(arg))
	assert.Equal(t, c.Row(), subs.Real(ret))
}

func TestUnifyTwoVariables(t *testing.T) {
	c := kind.NewCache()
	subs := newSubs()
	a, b := subs.NewVar(), subs.NewVar()

	_, err := unify.Unify(subs, a, b)
	require.NoError(t, err)
	_, err = unify.Unify(subs, b, c.Row())
	require.NoError(t, err)

	assert.Equal(t, c.Row(), subs.Real(a))
	assert.Equal(t, c.Row(), subs.Real(b))
}

func TestUnifySameVariable(t *testing.T) {
	subs := newSubs()
	a := subs.NewVar()
	_, err := unify.Unify(subs, a, a)
	assert.NoError(t, err)
	id, _ := a.VarID()
	assert.False(t, subs.IsBound(id))
}

func TestMismatch(t *testing.T) {
	c := kind.NewCache()
	testCases := []struct {
		name             string
		expected, actual kind.Kind
	}{
		{"type and row", c.Typ(), c.Row()},
		{"arity", kind.NewFunction(c.Typ(), c.Typ()), c.Typ()},
		{"argument", kind.NewFunction(c.Typ(), c.Typ()), kind.NewFunction(c.Row(), c.Typ())},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := unify.Unify(newSubs(), tc.expected, tc.actual)
			require.Error(t, err)
			var mismatch unify.Mismatch[kind.Kind]
			assert.True(t, errors.As(err, &mismatch))
		})
	}
}

func TestMismatchReportsResolvedOperands(t *testing.T) {
	c := kind.NewCache()
	subs := newSubs()
	v := subs.NewVar()
	_, err := unify.Unify(subs, v, c.Row())
	require.NoError(t, err)

	_, err = unify.Unify(subs, c.Typ(), v)
	var mismatch unify.Mismatch[kind.Kind]
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, c.Typ(), mismatch.Expected)
	assert.Equal(t, c.Row(), mismatch.Actual)
	assert.Equal(t, "type mismatch: expected 'Type', found 'Row'", mismatch.Error())
}

func TestMerge(t *testing.T) {
	pair := func(l, r string) string { return l + "," + r }

	_, changed := unify.Merge("a", "", false, "b", "", false, pair)
	assert.False(t, changed)

	merged, changed := unify.Merge("a", "x", true, "b", "", false, pair)
	assert.True(t, changed)
	assert.Equal(t, "x,b", merged)

	merged, changed = unify.Merge("a", "", false, "b", "y", true, pair)
	assert.True(t, changed)
	assert.Equal(t, "a,y", merged)
}

func TestMergeSlice(t *testing.T) {
	items := []int{1, 2, 3}
	same, changed := unify.MergeSlice(items, func(i int) (int, bool) { return 0, false })
	assert.False(t, changed)
	assert.Equal(t, []int{1, 2, 3}, same)

	doubled, changed := unify.MergeSlice(items, func(i int) (int, bool) { return i * 2, i == 2 })
	assert.True(t, changed)
	assert.Equal(t, []int{1, 4, 3}, doubled)
	assert.Equal(t, []int{1, 2, 3}, items, "input is not modified")
}
