// Package types holds the tree of type expressions shared by the kind checker
// and the renamer.
//
// Nodes are pointers. Apart from the kinds written onto Generic, Skolem and
// Variable nodes by the kind checker, trees are treated as immutable and
// rebuilt functionally, sharing unchanged subtrees.
package types

import (
	"fmt"

	"github.com/cottand/ilecheck/frontend/kind"
	"github.com/cottand/ilecheck/frontend/pos"
	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/unify"
)

// Type is either written in the source (and positioned) or inferred.
type Type interface {
	pos.Positioner
	fmt.Stringer
	// VarID returns the id of the inference variable this type is, if it is one.
	VarID() (uint32, bool)
	ZipMatch(other Type, u unify.Unifier[Type]) (Type, bool, error)
	isType()
}

var (
	_ Type = (*Hole)(nil)
	_ Type = (*Opaque)(nil)
	_ Type = (*Builtin)(nil)
	_ Type = (*Variable)(nil)
	_ Type = (*Generic)(nil)
	_ Type = (*Skolem)(nil)
	_ Type = (*Forall)(nil)
	_ Type = (*App)(nil)
	_ Type = (*Variant)(nil)
	_ Type = (*Record)(nil)
	_ Type = (*ExtendRow)(nil)
	_ Type = (*EmptyRow)(nil)
	_ Type = (*Ident)(nil)
	_ Type = (*AliasRef)(nil)
)

type BuiltinType uint8

const (
	String BuiltinType = iota
	Byte
	Char
	Int
	Float
	Array
	Function
)

func (b BuiltinType) String() string {
	switch b {
	case String:
		return "String"
	case Byte:
		return "Byte"
	case Char:
		return "Char"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Array:
		return "Array"
	case Function:
		return "->"
	default:
		return "invalid"
	}
}

// Hole is a type left for inference to fill in
type Hole struct{ pos.Range }

// Opaque is a type whose structure is hidden
type Opaque struct{ pos.Range }

type Builtin struct {
	pos.Range
	Kind BuiltinType
}

// Variable is an unbound type inference variable.
type Variable struct {
	pos.Range
	ID   uint32
	Kind kind.Kind
}

// Generic is a type variable bound by an enclosing Forall.
// Kind starts out unknown and is filled in by the kind checker.
type Generic struct {
	pos.Range
	Name symbol.Symbol
	Kind kind.Kind
}

// Skolem is a rigid placeholder for a fixed but unknown type.
type Skolem struct {
	pos.Range
	Name symbol.Symbol
	ID   uint32
	Kind kind.Kind
}

// Forall quantifies Params over Body.
type Forall struct {
	pos.Range
	Params []*Generic
	Body   Type
}

// App applies a type constructor to its arguments, in order.
type App struct {
	pos.Range
	Ctor Type
	Args []Type
}

// Variant is a sum type. Each field of Row is a constructor whose type is the
// function from the constructor's arguments to the variant.
type Variant struct {
	pos.Range
	Row Type
}

// Record wraps a Row of fields.
type Record struct {
	pos.Range
	Row Type
}

// ExtendRow adds Fields (and associated Types) in front of Rest.
type ExtendRow struct {
	pos.Range
	Types  []*TypeField
	Fields []*Field
	Rest   Type
}

type EmptyRow struct{ pos.Range }

// Ident refers to a type by name.
type Ident struct {
	pos.Range
	Name symbol.Symbol
}

// AliasRef refers to an alias whose definition is already known.
type AliasRef struct {
	pos.Range
	Alias *Alias
}

type Field struct {
	pos.Range
	Name symbol.Symbol
	Typ  Type
}

// TypeField is a type carried inside a record, as in `{ Point, x : Int }`.
type TypeField struct {
	pos.Range
	Name  symbol.Symbol
	Alias *Alias
}

func (*Hole) isType()      {}
func (*Opaque) isType()    {}
func (*Builtin) isType()   {}
func (*Variable) isType()  {}
func (*Generic) isType()   {}
func (*Skolem) isType()    {}
func (*Forall) isType()    {}
func (*App) isType()       {}
func (*Variant) isType()   {}
func (*Record) isType()    {}
func (*ExtendRow) isType() {}
func (*EmptyRow) isType()  {}
func (*Ident) isType()     {}
func (*AliasRef) isType()  {}

func (t *Variable) VarID() (uint32, bool) { return t.ID, true }
func (*Hole) VarID() (uint32, bool)       { return 0, false }
func (*Opaque) VarID() (uint32, bool)     { return 0, false }
func (*Builtin) VarID() (uint32, bool)    { return 0, false }
func (*Generic) VarID() (uint32, bool)    { return 0, false }
func (*Skolem) VarID() (uint32, bool)     { return 0, false }
func (*Forall) VarID() (uint32, bool)     { return 0, false }
func (*App) VarID() (uint32, bool)        { return 0, false }
func (*Variant) VarID() (uint32, bool)    { return 0, false }
func (*Record) VarID() (uint32, bool)     { return 0, false }
func (*ExtendRow) VarID() (uint32, bool)  { return 0, false }
func (*EmptyRow) VarID() (uint32, bool)   { return 0, false }
func (*Ident) VarID() (uint32, bool)      { return 0, false }
func (*AliasRef) VarID() (uint32, bool)   { return 0, false }

func NewBuiltin(b BuiltinType) *Builtin { return &Builtin{Kind: b} }

// NewVariable creates an unpositioned type variable, for use with subst.New.
func NewVariable(id uint32) Type { return &Variable{ID: id} }

func NewGeneric(name symbol.Symbol) *Generic { return &Generic{Name: name} }

func NewIdent(name symbol.Symbol) *Ident { return &Ident{Name: name} }

func NewApp(ctor Type, args ...Type) *App { return &App{Ctor: ctor, Args: args} }

// NewFunction builds the curried function type args... -> ret.
func NewFunction(args []Type, ret Type) Type {
	for i := len(args) - 1; i >= 0; i-- {
		ret = &App{Ctor: NewBuiltin(Function), Args: []Type{args[i], ret}}
	}
	return ret
}

// NewArray is the type of arrays of elem.
func NewArray(elem Type) Type {
	return &App{Ctor: NewBuiltin(Array), Args: []Type{elem}}
}

// NewRecord builds a closed record from fields.
func NewRecord(fields ...*Field) *Record {
	return &Record{Row: NewRow(fields, &EmptyRow{})}
}

// NewVariant builds a closed variant from constructor fields.
func NewVariant(ctors ...*Field) *Variant {
	return &Variant{Row: NewRow(ctors, &EmptyRow{})}
}

// NewRow prepends fields to rest. Without fields, it returns rest.
func NewRow(fields []*Field, rest Type) Type {
	if len(fields) == 0 {
		return rest
	}
	return &ExtendRow{Fields: fields, Rest: rest}
}

func NewField(name symbol.Symbol, typ Type) *Field {
	return &Field{Name: name, Typ: typ}
}

// Span assigns a source range to a newly built node. It returns t for chaining.
func Span[T interface {
	Type
	setRange(pos.Range)
}](t T, r pos.Range) T {
	t.setRange(r)
	return t
}

func (t *Hole) setRange(r pos.Range)      { t.Range = r }
func (t *Opaque) setRange(r pos.Range)    { t.Range = r }
func (t *Builtin) setRange(r pos.Range)   { t.Range = r }
func (t *Variable) setRange(r pos.Range)  { t.Range = r }
func (t *Generic) setRange(r pos.Range)   { t.Range = r }
func (t *Skolem) setRange(r pos.Range)    { t.Range = r }
func (t *Forall) setRange(r pos.Range)    { t.Range = r }
func (t *App) setRange(r pos.Range)       { t.Range = r }
func (t *Variant) setRange(r pos.Range)   { t.Range = r }
func (t *Record) setRange(r pos.Range)    { t.Range = r }
func (t *ExtendRow) setRange(r pos.Range) { t.Range = r }
func (t *EmptyRow) setRange(r pos.Range)  { t.Range = r }
func (t *Ident) setRange(r pos.Range)     { t.Range = r }
func (t *AliasRef) setRange(r pos.Range)  { t.Range = r }
