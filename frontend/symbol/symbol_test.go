package symbol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterning(t *testing.T) {
	assert.Equal(t, New("x"), New("x"))
	assert.NotEqual(t, New("x"), New("y"))
	assert.True(t, Symbol{}.IsZero())
	assert.Equal(t, "", Symbol{}.String())
}

func TestUnique(t *testing.T) {
	m := NewModule("test")
	x := m.Symbol("x")
	renamed := m.Unique(x, 12)

	assert.Equal(t, "x:12", renamed.String())
	assert.NotEqual(t, x, renamed)
	assert.Equal(t, renamed, m.Unique(x, 12))
}

func TestIsUpper(t *testing.T) {
	assert.True(t, New("Int").IsUpper())
	assert.True(t, New("Élan").IsUpper())
	assert.False(t, New("a").IsUpper())
	assert.False(t, New("_a").IsUpper())
	assert.False(t, Symbol{}.IsUpper())
}

func TestHasher(t *testing.T) {
	h := Hasher{}
	assert.Equal(t, h.Hash(New("List")), h.Hash(New("List")))
	assert.True(t, h.Equal(New("List"), New("List")))
	assert.False(t, h.Equal(New("List"), New("Array")))
}

func TestLitterDump(t *testing.T) {
	sb := &strings.Builder{}
	New("Pair").LitterDump(sb)
	assert.Equal(t, `symbol.New("Pair")`, sb.String())
}
