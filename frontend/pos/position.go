// Package pos locates syntax in source files registered in a go/token.FileSet.
package pos

import (
	"fmt"
	"go/token"
)

// Positioner allows finding the location in the original source file.
type Positioner interface {
	Pos() token.Pos // position of first character belonging to the node
	End() token.Pos // position of first character immediately after the node
}

// Range is the half-open span [PosStart, PosEnd). It is embedded in syntax
// nodes to make them Positioners.
type Range struct {
	PosStart token.Pos
	PosEnd   token.Pos
}

func (r Range) Pos() token.Pos { return r.PosStart }

func (r Range) End() token.Pos { return r.PosEnd }

// IsValid reports whether the range points into a source file.
// Bindings declared outside any local scope carry an invalid range.
func (r Range) IsValid() bool { return r.PosStart.IsValid() }

func (r Range) String() string {
	if r.PosStart == r.PosEnd {
		return fmt.Sprintf("%v", r.PosStart)
	}
	return fmt.Sprintf("%v-%v", r.PosStart, r.PosEnd)
}

// Span builds a Range from two file set offsets.
func Span(start, end int) Range {
	return Range{PosStart: token.Pos(start), PosEnd: token.Pos(end)}
}

// RangeOf is the Range p spans. A nil p spans nothing.
func RangeOf(p Positioner) Range {
	switch p := p.(type) {
	case nil:
		return Range{}
	case Range:
		return p
	case *Range:
		return *p
	default:
		return Range{PosStart: p.Pos(), PosEnd: p.End()}
	}
}
