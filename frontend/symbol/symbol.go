// Package symbol provides interned identifiers.
//
// Two Symbol values are equal iff they were created from the same string,
// which makes them usable as map keys and cheap to compare.
package symbol

import (
	"fmt"
	"hash/fnv"
	"io"
	"unicode"
	"unicode/utf8"
	"unique"

	"github.com/benbjohnson/immutable"
)

type Symbol struct {
	h unique.Handle[string]
}

// New interns name.
func New(name string) Symbol {
	return Symbol{h: unique.Make(name)}
}

// IsZero reports whether s was never assigned a name.
func (s Symbol) IsZero() bool { return s == Symbol{} }

// String returns the full interned name of s.
func (s Symbol) String() string {
	if s.IsZero() {
		return ""
	}
	return s.h.Value()
}

// IsUpper reports whether the name starts with an upper-case letter, which is the
// surface convention for type constructors and variant constructors.
func (s Symbol) IsUpper() bool {
	r, _ := utf8.DecodeRuneInString(s.String())
	return unicode.IsUpper(r)
}

// LitterDump prints s as the call that interns it, rather than the handle internals.
func (s Symbol) LitterDump(w io.Writer) {
	_, _ = fmt.Fprintf(w, "symbol.New(%q)", s.String())
}

// IdentEnv maps symbols to the string they are displayed as.
type IdentEnv interface {
	String(s Symbol) string
}

// Module creates symbols on behalf of a single compilation unit.
// Symbols it creates display with the module-relative name.
type Module struct {
	name string
}

func NewModule(name string) *Module {
	return &Module{name: name}
}

func (m *Module) Name() string { return m.name }

// Symbol interns name.
func (m *Module) Symbol(name string) Symbol { return New(name) }

// Unique returns a new symbol for a declaration of s at offset.
func (m *Module) Unique(s Symbol, offset int) Symbol {
	return New(fmt.Sprintf("%s:%d", m.String(s), offset))
}

func (m *Module) String(s Symbol) string {
	return s.String()
}

var _ IdentEnv = (*Module)(nil)

// Hasher allows using Symbol as a key in immutable collections.
type Hasher struct{}

var _ immutable.Hasher[Symbol] = Hasher{}

func (Hasher) Hash(key Symbol) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key.String()))
	return h.Sum32()
}

func (Hasher) Equal(a, b Symbol) bool { return a == b }
