package cmd

import (
	"fmt"
	"go/token"
	"iter"
	"unicode"
	"unicode/utf8"

	"github.com/cottand/ilecheck/frontend/ast"
	"github.com/cottand/ilecheck/frontend/pos"
	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/types"
	"github.com/smasher164/xid"
	"gopkg.in/yaml.v3"
)

var builtins = map[string]types.BuiltinType{
	"Int":    types.Int,
	"Float":  types.Float,
	"String": types.String,
	"Char":   types.Char,
	"Byte":   types.Byte,
	"Array":  types.Array,
	"->":     types.Function,
}

type loader struct {
	file *token.File
	// name and params of the declaration being loaded, for variant constructors
	name   symbol.Symbol
	params []symbol.Symbol
}

// LoadTypeBindings reads a group of type declarations of the form
//
//	types:
//	  - name: Pair
//	    params: [a, b]
//	    type: {record: {x: a, y: b}}
//
// src is registered in fset under path, so that the positions of the returned
// trees can be resolved to lines and columns.
func LoadTypeBindings(fset *token.FileSet, path string, src []byte) ([]*ast.TypeBinding, error) {
	l, root, err := parse(fset, path, src)
	if err != nil || root == nil {
		return nil, err
	}
	if root.Kind != yaml.MappingNode {
		return nil, l.errorf(root, "expected a mapping with a 'types' key")
	}
	var bindings []*ast.TypeBinding
	for key, value := range pairs(root) {
		if key.Value != "types" {
			return nil, l.errorf(key, "unknown key '%s'", key.Value)
		}
		if value.Kind != yaml.SequenceNode {
			return nil, l.errorf(value, "'types' should be a list of declarations")
		}
		for _, node := range value.Content {
			bind, err := l.binding(node)
			if err != nil {
				return nil, err
			}
			bindings = append(bindings, bind)
		}
	}

	declared := make(map[symbol.Symbol]bool, len(bindings))
	for _, bind := range bindings {
		if declared[bind.Name] {
			return nil, fmt.Errorf("%v: type '%v' is declared more than once", fset.Position(bind.Pos()), bind.Name)
		}
		declared[bind.Name] = true
	}
	return bindings, nil
}

// LoadTypeBinding reads a single declaration, as found in the 'types' list of LoadTypeBindings.
func LoadTypeBinding(fset *token.FileSet, path string, src []byte) (*ast.TypeBinding, error) {
	l, root, err := parse(fset, path, src)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("%s: empty declaration", path)
	}
	return l.binding(root)
}

// LoadType reads a single type expression.
func LoadType(fset *token.FileSet, path string, src []byte) (types.Type, error) {
	l, root, err := parse(fset, path, src)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("%s: empty type", path)
	}
	return l.typ(root)
}

func parse(fset *token.FileSet, path string, src []byte) (*loader, *yaml.Node, error) {
	file := fset.AddFile(path, -1, len(src))
	file.SetLinesForContent(src)
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return &loader{file: file}, nil, nil
	}
	return &loader{file: file}, doc.Content[0], nil
}

func pairs(node *yaml.Node) iter.Seq2[*yaml.Node, *yaml.Node] {
	return func(yield func(*yaml.Node, *yaml.Node) bool) {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if !yield(node.Content[i], node.Content[i+1]) {
				return
			}
		}
	}
}

func (l *loader) rangeOf(node *yaml.Node) pos.Range {
	if node.Line < 1 || node.Line > l.file.LineCount() {
		return pos.Range{}
	}
	start := l.file.LineStart(node.Line) + token.Pos(node.Column-1)
	end := start
	if node.Kind == yaml.ScalarNode {
		end += token.Pos(len(node.Value))
	}
	if last := token.Pos(l.file.Base() + l.file.Size()); end > last {
		end = last
	}
	return pos.Range{PosStart: start, PosEnd: end}
}

func (l *loader) errorf(node *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("%v: %s", l.file.Position(l.rangeOf(node).Pos()), fmt.Sprintf(format, args...))
}

func isIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 && !(r == '_' || xid.Start(r)) {
			return false
		}
		if i > 0 && !(r == '_' || xid.Continue(r)) {
			return false
		}
	}
	return true
}

func isUpper(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// upperIdent checks node is the name of a type or of a constructor
func (l *loader) upperIdent(node *yaml.Node, what string) (symbol.Symbol, error) {
	if node.Kind != yaml.ScalarNode || !isIdent(node.Value) || !isUpper(node.Value) {
		return symbol.Symbol{}, l.errorf(node, "%s should be an upper-case identifier", what)
	}
	return symbol.New(node.Value), nil
}

func (l *loader) generics(node *yaml.Node) ([]*types.Generic, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, l.errorf(node, "parameters should be a list of names")
	}
	params := make([]*types.Generic, 0, len(node.Content))
	for _, param := range node.Content {
		if param.Kind != yaml.ScalarNode || !isIdent(param.Value) || isUpper(param.Value) {
			return nil, l.errorf(param, "parameter should be a lower-case identifier")
		}
		params = append(params, types.Span(types.NewGeneric(symbol.New(param.Value)), l.rangeOf(param)))
	}
	return params, nil
}

func (l *loader) binding(node *yaml.Node) (*ast.TypeBinding, error) {
	if node.Kind != yaml.MappingNode {
		return nil, l.errorf(node, "a declaration should be a mapping with 'name' and 'type'")
	}
	var nameNode, typeNode *yaml.Node
	var params []*types.Generic
	for key, value := range pairs(node) {
		var err error
		switch key.Value {
		case "name":
			nameNode = value
		case "params":
			params, err = l.generics(value)
		case "type":
			typeNode = value
		default:
			err = l.errorf(key, "unknown key '%s' in declaration", key.Value)
		}
		if err != nil {
			return nil, err
		}
	}
	if nameNode == nil {
		return nil, l.errorf(node, "declaration has no name")
	}
	name, err := l.upperIdent(nameNode, "a declared type")
	if err != nil {
		return nil, err
	}
	if typeNode == nil {
		return nil, l.errorf(node, "declaration of '%v' has no type", name)
	}

	l.name = name
	l.params = l.params[:0]
	for _, param := range params {
		l.params = append(l.params, param.Name)
	}
	body, err := l.typ(typeNode)
	if err != nil {
		return nil, err
	}
	return &ast.TypeBinding{
		Range: l.rangeOf(nameNode),
		Name:  name,
		Alias: types.NewAlias(name, params, body),
	}, nil
}

func (l *loader) typ(node *yaml.Node) (types.Type, error) {
	r := l.rangeOf(node)
	switch node.Kind {
	case yaml.ScalarNode:
		return l.scalar(node)
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return nil, l.errorf(node, "a type should be a mapping with a single key")
		}
		key, value := node.Content[0], node.Content[1]
		switch key.Value {
		case "app":
			return l.app(value)
		case "function":
			return l.function(value)
		case "record":
			row, err := l.fields(value)
			if err != nil {
				return nil, err
			}
			return types.Span(&types.Record{Row: row}, r), nil
		case "variant":
			return l.variant(value)
		case "row":
			return l.row(value)
		case "forall":
			return l.forall(value)
		case "opaque":
			return types.Span(&types.Opaque{}, r), nil
		default:
			return nil, l.errorf(key, "unknown type form '%s'", key.Value)
		}
	case yaml.AliasNode:
		return l.typ(node.Alias)
	default:
		return nil, l.errorf(node, "expected a type")
	}
}

func (l *loader) scalar(node *yaml.Node) (types.Type, error) {
	r := l.rangeOf(node)
	if builtin, ok := builtins[node.Value]; ok {
		return types.Span(types.NewBuiltin(builtin), r), nil
	}
	if node.Value == "_" {
		return types.Span(&types.Hole{}, r), nil
	}
	if !isIdent(node.Value) {
		return nil, l.errorf(node, "'%s' is not a valid type name", node.Value)
	}
	name := symbol.New(node.Value)
	if isUpper(node.Value) {
		return types.Span(types.NewIdent(name), r), nil
	}
	return types.Span(types.NewGeneric(name), r), nil
}

func (l *loader) list(node *yaml.Node, min int, what string) ([]types.Type, error) {
	if node.Kind != yaml.SequenceNode || len(node.Content) < min {
		return nil, l.errorf(node, "%s takes a list of at least %d types", what, min)
	}
	list := make([]types.Type, 0, len(node.Content))
	for _, elem := range node.Content {
		typ, err := l.typ(elem)
		if err != nil {
			return nil, err
		}
		list = append(list, typ)
	}
	return list, nil
}

func (l *loader) app(node *yaml.Node) (types.Type, error) {
	list, err := l.list(node, 1, "app")
	if err != nil {
		return nil, err
	}
	return types.Span(types.NewApp(list[0], list[1:]...), l.rangeOf(node)), nil
}

func (l *loader) function(node *yaml.Node) (types.Type, error) {
	list, err := l.list(node, 2, "function")
	if err != nil {
		return nil, err
	}
	return l.curried(l.rangeOf(node), list[:len(list)-1], list[len(list)-1]), nil
}

// curried builds args... -> ret with every node positioned at r
func (l *loader) curried(r pos.Range, args []types.Type, ret types.Type) types.Type {
	for i := len(args) - 1; i >= 0; i-- {
		arrow := types.Span(types.NewBuiltin(types.Function), r)
		ret = types.Span(types.NewApp(arrow, args[i], ret), r)
	}
	return ret
}

// fields reads `{field: type, ...}`, where the optional `|` key is the rest of the row
func (l *loader) fields(node *yaml.Node) (types.Type, error) {
	r := l.rangeOf(node)
	if node.Kind != yaml.MappingNode {
		return nil, l.errorf(node, "expected a mapping of fields")
	}
	var fields []*types.Field
	var rest types.Type = types.Span(&types.EmptyRow{}, r)
	for key, value := range pairs(node) {
		typ, err := l.typ(value)
		if err != nil {
			return nil, err
		}
		if key.Value == "|" {
			rest = typ
			continue
		}
		if !isIdent(key.Value) {
			return nil, l.errorf(key, "'%s' is not a valid field name", key.Value)
		}
		fields = append(fields, &types.Field{Range: l.rangeOf(key), Name: symbol.New(key.Value), Typ: typ})
	}
	if len(fields) == 0 {
		return rest, nil
	}
	return types.Span(&types.ExtendRow{Fields: fields, Rest: rest}, r), nil
}

func (l *loader) row(node *yaml.Node) (types.Type, error) {
	if node.Kind != yaml.MappingNode {
		return nil, l.errorf(node, "a row should be a mapping with 'fields' and 'rest'")
	}
	r := l.rangeOf(node)
	var fields []*types.Field
	var rest types.Type = types.Span(&types.EmptyRow{}, r)
	for key, value := range pairs(node) {
		switch key.Value {
		case "fields":
			row, err := l.fields(value)
			if err != nil {
				return nil, err
			}
			if extend, ok := row.(*types.ExtendRow); ok {
				fields = extend.Fields
			}
		case "rest":
			typ, err := l.typ(value)
			if err != nil {
				return nil, err
			}
			rest = typ
		default:
			return nil, l.errorf(key, "unknown key '%s' in row", key.Value)
		}
	}
	if len(fields) == 0 {
		return rest, nil
	}
	return types.Span(&types.ExtendRow{Fields: fields, Rest: rest}, r), nil
}

// variant reads `{Ctor: [args...]}`. Each constructor has the type of a function
// from its arguments to the declared type applied to its parameters.
func (l *loader) variant(node *yaml.Node) (types.Type, error) {
	r := l.rangeOf(node)
	if node.Kind != yaml.MappingNode {
		return nil, l.errorf(node, "a variant should be a mapping of constructors")
	}
	if l.name.IsZero() {
		return nil, l.errorf(node, "variants can only be declared at the top of a declaration")
	}
	var ctors []*types.Field
	for key, value := range pairs(node) {
		name, err := l.upperIdent(key, "a constructor")
		if err != nil {
			return nil, err
		}
		var args []types.Type
		if value.Tag != "!!null" {
			if args, err = l.list(value, 0, "a constructor"); err != nil {
				return nil, err
			}
		}
		ctorRange := l.rangeOf(key)
		ctors = append(ctors, &types.Field{Range: ctorRange, Name: name, Typ: l.curried(ctorRange, args, l.self(ctorRange))})
	}
	return types.Span(&types.Variant{Row: types.Span(&types.ExtendRow{Fields: ctors, Rest: types.Span(&types.EmptyRow{}, r)}, r)}, r), nil
}

// self is the declared type applied to its parameters
func (l *loader) self(r pos.Range) types.Type {
	ident := types.Span(types.NewIdent(l.name), r)
	if len(l.params) == 0 {
		return ident
	}
	args := make([]types.Type, len(l.params))
	for i, param := range l.params {
		args[i] = types.Span(types.NewGeneric(param), r)
	}
	return types.Span(types.NewApp(ident, args...), r)
}

func (l *loader) forall(node *yaml.Node) (types.Type, error) {
	if node.Kind != yaml.MappingNode {
		return nil, l.errorf(node, "forall should be a mapping with 'params' and 'type'")
	}
	forall := types.Span(&types.Forall{}, l.rangeOf(node))
	for key, value := range pairs(node) {
		var err error
		switch key.Value {
		case "params":
			forall.Params, err = l.generics(value)
		case "type":
			forall.Body, err = l.typ(value)
		default:
			err = l.errorf(key, "unknown key '%s' in forall", key.Value)
		}
		if err != nil {
			return nil, err
		}
	}
	if forall.Body == nil {
		return nil, l.errorf(node, "forall has no type")
	}
	return forall, nil
}
