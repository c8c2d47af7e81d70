package frontend

import (
	"github.com/cottand/ilecheck/frontend/ast"
	"github.com/cottand/ilecheck/frontend/ilerr"
	"github.com/cottand/ilecheck/frontend/rename"
	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/types"
	"github.com/cottand/ilecheck/internal/ice"
)

// Rename gives the local bindings of the typed module expr unique names, and
// resolves overloaded names. It must run once, after type inference.
//
// errs holds every name which could not be resolved, ordered by position.
// err is only set when renaming had to be aborted because of an internal compiler error.
func Rename(symbols *symbol.Module, env types.TypeEnv, expr ast.Expr) (errs *ilerr.Errors, err error) {
	defer ice.Recover(&err)
	logger.Info("renaming module", "module", symbols.Name(), "expr", ast.Slog(expr))
	return rename.Rename(symbols, env, expr).Sorted(), nil
}
