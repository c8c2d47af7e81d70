package pos

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
)

type node struct{ Range }

func TestRangeOf(t *testing.T) {
	r := Span(3, 7)
	assert.Equal(t, r, RangeOf(r))
	assert.Equal(t, r, RangeOf(&r))
	assert.Equal(t, r, RangeOf(node{r}))
	assert.Equal(t, Range{}, RangeOf(nil))
}

func TestRange(t *testing.T) {
	assert.True(t, Span(1, 2).IsValid())
	assert.False(t, Range{}.IsValid())
	assert.Equal(t, "3-7", Span(3, 7).String())
	assert.Equal(t, "3", Span(3, 3).String())
	assert.Equal(t, token.Pos(7), Span(3, 7).End())
}
