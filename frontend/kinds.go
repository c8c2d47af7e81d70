// Package frontend drives the kind checking of type declarations and the
// renaming of typed modules.
package frontend

import (
	"errors"
	"slices"

	"github.com/cottand/ilecheck/frontend/ast"
	"github.com/cottand/ilecheck/frontend/ilerr"
	"github.com/cottand/ilecheck/frontend/kind"
	"github.com/cottand/ilecheck/frontend/kindcheck"
	"github.com/cottand/ilecheck/frontend/pos"
	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/types"
	"github.com/cottand/ilecheck/internal/ice"
	"github.com/cottand/ilecheck/internal/log"
	"github.com/hashicorp/go-set/v3"
	"github.com/samber/lo"
)

var logger = log.DefaultLogger.With("section", "frontend")

// KindcheckTypeBindings kind checks a group of type declarations which may
// refer to each other, and sets the FinalizedAlias of each binding that checks.
//
// Lower-case generics which are used in a declaration without being one of its
// parameters become implicit parameters of the finalized alias.
//
// errs holds the declarations that did not check. err is only set when checking
// had to be aborted because of an internal compiler error.
func KindcheckTypeBindings(check *kindcheck.KindCheck, bindings []*ast.TypeBinding, opts Options) (errs *ilerr.Errors, err error) {
	defer ice.Recover(&err)
	collector := ilerr.NewCollector(opts.policy())
	logger.Debug("kind checking type bindings", "count", len(bindings), "policy", collector.Policy().String())

	nameKinds := make([]kind.Kind, len(bindings))
	for i, bind := range bindings {
		nameKinds[i] = check.Subs.NewVar()
		check.AddLocal(bind.Name, nameKinds[i])
	}

	for i, bind := range bindings {
		if collector.Stopped() {
			break
		}
		if bind.Alias == nil {
			ice.ICE("type binding '%v' has no alias", bind.Name)
		}
		finalized, checkErr := kindcheckBinding(check, bind, nameKinds[i])
		if checkErr != nil {
			collector.Report(asIleError(checkErr, bind))
			continue
		}
		bind.FinalizedAlias = finalized
		logger.Debug("kind checked type binding", "name", bind.Name.String(), "alias", types.Slog(finalized.Typ))
	}
	logger.Debug("kind checked type bindings", "variables", check.Subs.Len())
	return collector.Errors(), nil
}

// kindcheckBinding checks one declaration of a group. Generics it binds
// implicitly are not visible to the other declarations.
func kindcheckBinding(check *kindcheck.KindCheck, bind *ast.TypeBinding, nameKind kind.Kind) (*types.Alias, error) {
	defer check.Restore(check.Mark())

	params := bind.Alias.Params()
	paramKinds := make([]kind.Kind, len(params))
	for i, param := range params {
		param.Kind = check.Subs.NewVar()
		paramKinds[i] = param.Kind
	}
	check.SetVariables(params)

	body := bind.Alias.Body()
	if _, err := check.KindcheckType(body); err != nil {
		return nil, err
	}

	paramNames := set.From(lo.Map(params, func(param *types.Generic, _ int) symbol.Symbol { return param.Name }))
	implicit := lo.Filter(types.FreeGenerics(body), func(generic *types.Generic, _ int) bool {
		return !paramNames.Contains(generic.Name) && !generic.Name.IsUpper()
	})
	for _, generic := range implicit {
		paramKinds = append(paramKinds, generic.Kind)
	}

	if _, err := check.Unify(bind.Range, nameKind, kind.Arrow(paramKinds, check.TypeKind())); err != nil {
		return nil, err
	}

	finalParams := lo.Map(slices.Concat(params, implicit), func(param *types.Generic, _ int) *types.Generic {
		return check.FinalizeGeneric(param)
	})
	return types.NewAlias(bind.Alias.Name, finalParams, body), nil
}

func asIleError(err error, at pos.Positioner) ilerr.IleError {
	var ileErr ilerr.IleError
	if errors.As(err, &ileErr) {
		return ileErr
	}
	return ilerr.New(ilerr.Unclassified{From: err, Positioner: pos.RangeOf(at)})
}

// DeclareTypeBindings returns env extended with the finalized aliases of bindings.
// Bindings which did not check are skipped.
func DeclareTypeBindings(env *types.Env, cache *kind.Cache, bindings []*ast.TypeBinding) *types.Env {
	for _, bind := range bindings {
		if bind.FinalizedAlias != nil {
			env = env.WithAlias(bind.FinalizedAlias, bind.FinalizedAlias.Kind(cache))
		}
	}
	return env
}
