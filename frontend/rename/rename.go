// Package rename gives every local binding of a module a unique name, and
// resolves each occurrence of an overloaded name to the binding whose type
// matches the type inferred for the occurrence.
//
// Renaming runs once per module, after type inference.
package rename

import (
	"slices"

	"github.com/cottand/ilecheck/frontend/ast"
	"github.com/cottand/ilecheck/frontend/ilerr"
	"github.com/cottand/ilecheck/frontend/pos"
	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/types"
	"github.com/cottand/ilecheck/internal/ice"
	"github.com/cottand/ilecheck/internal/log"
	"github.com/samber/lo"
)

var logger = log.DefaultLogger.With("section", "rename")

// Rename renames expr in place. It returns every resolution failure found in
// expr, or nil if there were none.
func Rename(symbols *symbol.Module, env types.TypeEnv, expr ast.Expr) *ilerr.Errors {
	r := &renamer{
		symbols: symbols,
		env:     newEnvironment(env),
		errs:    ilerr.NewCollector(ilerr.CollectAll),
	}
	r.VisitExpr(expr)
	return r.errs.Errors()
}

type renamer struct {
	symbols *symbol.Module
	env     *environment
	errs    *ilerr.Collector
}

var _ ast.Visitor = (*renamer)(nil)

func (r *renamer) VisitExpr(expr ast.Expr) {
	r.renameExpr(expr)
}

func (r *renamer) report(err ilerr.IleError) {
	logger.Debug("failed to rename", "err", ilerr.FormatWithCode(err))
	r.errs.Report(err)
}

// findFields lists the fields of the record type typ, unfolding aliases
func (r *renamer) findFields(typ types.Type) []*types.Field {
	record := types.RemoveAliases(r.env, types.RemoveForall(typ))
	return slices.Collect(types.RowIter(record))
}

func findField(fields []*types.Field, name symbol.Symbol) (*types.Field, bool) {
	return lo.Find(fields, func(field *types.Field) bool { return field.Name == name })
}

func (r *renamer) newPattern(pattern ast.Pattern) {
	switch pattern := pattern.(type) {
	case *ast.RecordPattern:
		fieldTypes := r.findFields(pattern.Typ)
		for _, field := range pattern.Fields {
			if field.Value != nil {
				r.newPattern(field.Value)
				continue
			}
			fieldType, ok := findField(fieldTypes, field.Name)
			if !ok {
				continue
			}
			field.Value = &ast.IdentPattern{
				Range: field.Range,
				TypedIdent: ast.TypedIdent{
					Name: r.stackVar(field.Name, field.Range, fieldType.Typ),
					Typ:  fieldType.Typ,
				},
			}
		}

		recordType := types.RemoveForall(types.RemoveAliases(r.env, pattern.Typ))
		for _, astField := range pattern.Types {
			typeField, ok := lo.Find(slices.Collect(types.TypeFieldIter(recordType)), func(typeField *types.TypeField) bool {
				return typeField.Name == astField.Name
			})
			if !ok {
				ice.ICE("type '%v' does not have type field '%v'", recordType, astField.Name)
			}
			r.stackType(astField.Name, astField.Range, typeField.Alias)
		}
	case *ast.IdentPattern:
		pattern.Name = r.stackVar(pattern.Name, pattern.Range, pattern.Typ)
	case *ast.AsPattern:
		pattern.Name = r.stackVar(pattern.Name, pattern.Range, r.patternType(pattern.Pattern))
		r.newPattern(pattern.Pattern)
	case *ast.TuplePattern:
		for _, elem := range pattern.Elems {
			r.newPattern(elem)
		}
	case *ast.ConstructorPattern:
		for _, arg := range pattern.Args {
			r.newPattern(arg)
		}
	case *ast.LiteralPattern, *ast.ErrorPattern:
	}
}

// patternType is the type of the values matched by pattern. A constructor with no
// inferred type takes the return type it is declared with.
func (r *renamer) patternType(pattern ast.Pattern) types.Type {
	if typ := pattern.Type(); typ != nil {
		return typ
	}
	switch pattern := pattern.(type) {
	case *ast.AsPattern:
		return r.patternType(pattern.Pattern)
	case *ast.ConstructorPattern:
		if declared, ok := r.env.FindType(pattern.Ctor.Name); ok {
			return types.ReturnType(r.unfold(declared))
		}
	}
	return types.Span(&types.Hole{}, pos.RangeOf(pattern))
}

// stackVar makes id visible as a binding of type typ, and returns the unique name it is renamed to.
func (r *renamer) stackVar(id symbol.Symbol, span pos.Range, typ types.Type) symbol.Symbol {
	newID := r.symbols.Unique(id, int(span.Pos()))
	logger.Debug("rename binding", "old", r.symbols.String(id), "new", r.symbols.String(newID), "type", types.Slog(typ))
	r.env.stack.Insert(id, binding{name: newID, span: span, typ: typ})
	return newID
}

// stackType makes alias visible as id. The constructors of variants become
// visible as values.
func (r *renamer) stackType(id symbol.Symbol, span pos.Range, alias *types.Alias) {
	if variant, ok := types.RemoveForall(alias.Typ).(*types.Variant); ok {
		for field := range types.RowIter(variant) {
			r.env.stack.Insert(field.Name, binding{name: field.Name, span: span, typ: field.Typ})
		}
	}
	// the alias must be reachable both from its own name and the name it is imported as
	r.env.stackTypes.Insert(alias.Name, alias)
	r.env.stackTypes.Insert(id, alias)
}

// rename picks the binding of name whose type is expected. It returns false when
// name has no local binding, as is the case for globals.
func (r *renamer) rename(at pos.Positioner, name symbol.Symbol, expected types.Type) (symbol.Symbol, bool, ilerr.IleError) {
	candidates := slices.Collect(r.env.stack.GetAll(name))
	if len(candidates) == 0 {
		return symbol.Symbol{}, false, nil
	}
	// with a single binding, inference could not have picked another one
	if len(candidates) == 1 {
		return candidates[0].name, true, nil
	}
	inferred := types.RemoveForall(expected)
	for _, candidate := range candidates {
		if Equivalent(r.env, types.RemoveForall(candidate.typ), inferred) {
			return candidate.name, true, nil
		}
	}
	return symbol.Symbol{}, false, ilerr.New(ilerr.NewNoMatchingType{
		Positioner: pos.RangeOf(at),
		Name:       r.symbols.String(name),
		Expected:   expected,
		Candidates: lo.Map(candidates, func(candidate binding, _ int) ilerr.Candidate {
			return ilerr.Candidate{Range: candidate.span, Typ: candidate.typ}
		}),
	})
}

// renameIdent renames id in place, reporting failures against the expression at
func (r *renamer) renameIdent(at pos.Positioner, id *ast.TypedIdent) {
	newID, found, err := r.rename(at, id.Name, id.Typ)
	if err != nil {
		r.report(err)
		return
	}
	if found {
		logger.Debug("rename identifier", "old", r.symbols.String(id.Name), "new", r.symbols.String(newID))
		id.Name = newID
	}
}

func (r *renamer) renameExpr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.Ident:
		r.renameIdent(expr, &expr.TypedIdent)
	case *ast.Record:
		fieldTypes := r.findFields(expr.Typ)
		for _, field := range expr.Exprs {
			if field.Value != nil {
				r.VisitExpr(field.Value)
				continue
			}
			fieldType, ok := findField(fieldTypes, field.Name)
			if !ok {
				continue
			}
			newID, found, err := r.rename(expr, field.Name, fieldType.Typ)
			if err != nil {
				r.report(err)
				continue
			}
			if found {
				logger.Debug("rename record field", "field", r.symbols.String(field.Name), "new", r.symbols.String(newID))
				field.Value = &ast.Ident{
					Range:      field.Range,
					TypedIdent: ast.TypedIdent{Name: newID, Typ: fieldType.Typ},
				}
			}
		}
		if expr.Base != nil {
			r.VisitExpr(expr.Base)
		}
	case *ast.Infix:
		r.renameIdent(expr, &expr.Op.TypedIdent)
		r.VisitExpr(expr.Lhs)
		r.VisitExpr(expr.Rhs)
	case *ast.Match:
		r.VisitExpr(expr.Expr)
		for _, alt := range expr.Alts {
			r.env.enterScope()
			r.newPattern(alt.Pattern)
			r.VisitExpr(alt.Expr)
			r.env.exitScope()
		}
	case *ast.LetBindings:
		r.renameLetBindings(expr)
	case *ast.Lambda:
		r.env.stack.EnterScope()
		r.stackArgs(expr.Args, expr.ID.Typ)
		r.VisitExpr(expr.Body)
		r.env.stack.ExitScope()
	case *ast.TypeBindings:
		r.env.enterScope()
		for _, bind := range expr.Bindings {
			if bind.FinalizedAlias == nil {
				ice.ICE("alias '%v' should have been finalized before renaming", bind.Name)
			}
			r.stackType(bind.Name, bind.Range, bind.FinalizedAlias)
		}
		r.VisitExpr(expr.Body)
		r.env.exitScope()
	case *ast.Do:
		if expr.FlatMapID == nil {
			ice.ICE("flat map identifier not set before renaming")
		}
		r.renameIdent(expr, &expr.FlatMapID.TypedIdent)
		r.VisitExpr(expr.Bound)

		r.env.stack.EnterScope()
		expr.ID.Name = r.stackVar(expr.ID.Name, expr.ID.Range, expr.ID.Typ)
		r.VisitExpr(expr.Body)
		r.env.stack.ExitScope()
	default:
		ast.Walk(r, expr)
	}
}

// renameLetBindings registers bindings which take arguments before visiting
// any binding, so that they can refer to each other. Bindings without
// arguments cannot refer to themselves.
func (r *renamer) renameLetBindings(expr *ast.LetBindings) {
	r.env.enterScope()
	defer r.env.exitScope()

	for _, bind := range expr.Bindings {
		if len(bind.Args) > 0 {
			r.newPattern(bind.Name)
		}
	}
	for _, bind := range expr.Bindings {
		if len(bind.Args) == 0 {
			r.VisitExpr(bind.Expr)
			r.newPattern(bind.Name)
			continue
		}
		r.env.stack.EnterScope()
		r.stackArgs(bind.Args, bind.ResolvedType)
		r.VisitExpr(bind.Expr)
		r.env.stack.ExitScope()
	}
	r.VisitExpr(expr.Body)
}

// stackArgs binds each of args to the matching argument type of the function type fn,
// unfolding aliases of fn as they are met. Arguments past the arity of fn are
// bound with the type inferred for them.
func (r *renamer) stackArgs(args []*ast.Ident, fn types.Type) {
	for _, arg := range args {
		argType, ret, ok := types.AsFunction(r.unfold(fn))
		if !ok {
			argType = arg.Typ
		}
		if argType == nil {
			argType = types.Span(&types.Hole{}, arg.Range)
		}
		arg.Name = r.stackVar(arg.Name, arg.Range, argType)
		fn = ret
	}
}

func (r *renamer) unfold(typ types.Type) types.Type {
	return types.RemoveForall(types.RemoveAliases(r.env, types.RemoveForall(typ)))
}
