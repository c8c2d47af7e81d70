package types

import (
	"fmt"
	"strings"
)

func (*Hole) String() string       { return "_" }
func (*Opaque) String() string     { return "<opaque>" }
func (t *Builtin) String() string  { return t.Kind.String() }
func (t *Variable) String() string { return fmt.Sprintf("?%d", t.ID) }
func (t *Generic) String() string  { return t.Name.String() }
func (t *Skolem) String() string   { return t.Name.String() }
func (*EmptyRow) String() string   { return "()" }
func (t *Ident) String() string    { return t.Name.String() }
func (t *AliasRef) String() string { return t.Alias.Name.String() }

func (t *Forall) String() string {
	sb := strings.Builder{}
	sb.WriteString("forall")
	for _, param := range t.Params {
		sb.WriteString(" ")
		sb.WriteString(param.Name.String())
	}
	sb.WriteString(" . ")
	sb.WriteString(t.Body.String())
	return sb.String()
}

func (t *App) String() string {
	if arg, ret, ok := AsFunction(t); ok {
		return showArg(arg, true) + " -> " + ret.String()
	}
	sb := strings.Builder{}
	sb.WriteString(showArg(t.Ctor, false))
	for _, arg := range t.Args {
		sb.WriteString(" ")
		sb.WriteString(showArg(arg, false))
	}
	return sb.String()
}

// showArg parenthesizes applications (and, when onlyFunctions, only function types)
func showArg(t Type, onlyFunctions bool) string {
	app, ok := t.(*App)
	if !ok {
		return t.String()
	}
	if _, _, isFunction := AsFunction(app); onlyFunctions && !isFunction {
		return t.String()
	}
	return "(" + t.String() + ")"
}

func (t *Variant) String() string {
	sb := strings.Builder{}
	for field := range RowIter(t.Row) {
		sb.WriteString("| ")
		sb.WriteString(field.Name.String())
		for arg := range ArgIter(field.Typ) {
			sb.WriteString(" ")
			sb.WriteString(showArg(arg, false))
		}
		sb.WriteString(" ")
	}
	return strings.TrimSpace(sb.String())
}

func (t *Record) String() string {
	body := showRow(t.Row)
	if body == "" {
		return "{}"
	}
	return "{ " + body + " }"
}

func (t *ExtendRow) String() string {
	return "(" + showRow(t) + ")"
}

func showRow(row Type) string {
	var elems []string
	rest := row
	for {
		extend, ok := rest.(*ExtendRow)
		if !ok {
			break
		}
		for _, typeField := range extend.Types {
			elems = append(elems, typeField.Name.String())
		}
		for _, field := range extend.Fields {
			elems = append(elems, field.Name.String()+" : "+field.Typ.String())
		}
		rest = extend.Rest
	}
	body := strings.Join(elems, ", ")
	if _, closed := rest.(*EmptyRow); closed || rest == nil {
		return body
	}
	if body == "" {
		return "| " + rest.String()
	}
	return body + " | " + rest.String()
}
