package ilerr

import (
	"fmt"
	"go/token"
	"runtime/debug"
	"strings"

	"github.com/cottand/ilecheck/frontend/kind"
	"github.com/cottand/ilecheck/frontend/pos"
	"github.com/cottand/ilecheck/frontend/types"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	KindMismatch
	UndefinedType
	NoMatchingType
)

type IleError interface {
	Error() string
	Code() ErrCode
	pos.Positioner

	withStack([]byte) IleError
	getStack() []byte
}

func FormatWithCode(e IleError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

// FormatWithPosition prefixes FormatWithCode with the source position of e in fset.
func FormatWithPosition(e IleError, fset *token.FileSet) string {
	if fset == nil || !e.Pos().IsValid() {
		return FormatWithCode(e)
	}
	return fmt.Sprintf("%v: %s", fset.Position(e.Pos()), FormatWithCode(e))
}

func New[E IleError](err E) IleError {
	return err.withStack(debug.Stack())
}

type Unclassified struct {
	From error
	pos.Positioner
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) Unwrap() error    { return e.From }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewKindMismatch is reported when a type expression does not have the kind its
// position requires. Expected and Actual are resolved as far as known when the
// mismatch was found.
type NewKindMismatch struct {
	pos.Positioner
	Expected kind.Kind
	Actual   kind.Kind
	stack    []byte
}

func (e NewKindMismatch) Error() string {
	return fmt.Sprintf("kind mismatch: expected '%v', but found '%v'", e.Expected, e.Actual)
}
func (e NewKindMismatch) Code() ErrCode    { return KindMismatch }
func (e NewKindMismatch) getStack() []byte { return e.stack }
func (e NewKindMismatch) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUndefinedType struct {
	pos.Positioner
	Name  string
	stack []byte
}

func (e NewUndefinedType) Error() string {
	return fmt.Sprintf("type '%s' is not defined", e.Name)
}
func (e NewUndefinedType) Code() ErrCode    { return UndefinedType }
func (e NewUndefinedType) getStack() []byte { return e.stack }
func (e NewUndefinedType) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// Candidate is a binding which could have been picked for an overloaded name.
// Bindings declared outside any local scope have an invalid Range.
type Candidate struct {
	pos.Range
	Typ types.Type
}

// NewNoMatchingType is reported when none of the bindings visible for Name has
// the type inferred for its occurrence.
type NewNoMatchingType struct {
	pos.Positioner
	Name       string
	Expected   types.Type
	Candidates []Candidate
	stack      []byte
}

func (e NewNoMatchingType) Error() string {
	sb := &strings.Builder{}
	_, _ = fmt.Fprintf(sb, "could not resolve a binding for '%s' with type '%v'\npossibilities:", e.Name, e.Expected)
	for _, candidate := range e.Candidates {
		if candidate.IsValid() {
			_, _ = fmt.Fprintf(sb, "\n  %v at %v", candidate.Typ, candidate.Pos())
		} else {
			_, _ = fmt.Fprintf(sb, "\n  %v at 'global'", candidate.Typ)
		}
	}
	return sb.String()
}
func (e NewNoMatchingType) Code() ErrCode    { return NoMatchingType }
func (e NewNoMatchingType) getStack() []byte { return e.stack }
func (e NewNoMatchingType) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}
