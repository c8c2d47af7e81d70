package cmd

import (
	"fmt"
	"go/token"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cottand/ilecheck/frontend"
	"github.com/cottand/ilecheck/frontend/ast"
	"github.com/cottand/ilecheck/frontend/ilerr"
	"github.com/cottand/ilecheck/frontend/kind"
	"github.com/cottand/ilecheck/frontend/kindcheck"
	"github.com/cottand/ilecheck/frontend/symbol"
	"github.com/cottand/ilecheck/frontend/types"
	"github.com/cottand/ilecheck/internal/ice"
	"github.com/cottand/ilecheck/internal/log"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
)

var logger = log.DefaultLogger.With("section", "cmd")

var KindsCmd = &cobra.Command{
	Use:          "kinds FILE.yaml",
	Short:        "Infer the kinds of the type declarations in a file",
	RunE:         runKinds,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	logLevel  *int
	keepGoing *bool
	dump      *bool
)

func init() {
	logLevel = KindsCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
	keepGoing = KindsCmd.Flags().BoolP("keep-going", "k", false, "report every declaration that does not check instead of stopping at the first")
	dump = KindsCmd.Flags().BoolP("dump", "d", false, "dump the finalized declarations")
}

var dumper = litter.Options{
	HidePrivateFields: true,
	HideZeroValues:    true,
}

func runKinds(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))

	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}
	fset := token.NewFileSet()
	bindings, err := LoadTypeBindings(fset, path, src)
	if err != nil {
		return err
	}
	logger.Info("loaded type declarations", "path", path, "count", len(bindings))

	cache := kind.NewCache()
	_, err = declare(cmd.OutOrStdout(), fset, types.NewEnv(), cache, symbol.NewModule(path), bindings, checkSettings{
		opts: frontend.Options{KeepGoing: *keepGoing},
		dump: *dump,
	})
	return err
}

type checkSettings struct {
	opts frontend.Options
	dump bool
}

// declare kind checks bindings as one group, prints the kind of each, and
// returns env extended with the declarations that checked, even when others did not.
func declare(w io.Writer, fset *token.FileSet, env *types.Env, cache *kind.Cache, module *symbol.Module, bindings []*ast.TypeBinding, settings checkSettings) (*types.Env, error) {
	check := kindcheck.New(env, module, cache)
	errs, err := frontend.KindcheckTypeBindings(check, bindings, settings.opts)
	if err != nil {
		return env, fmt.Errorf("could not check kinds (this is a bug and not a kind error): %s", ice.Format(err))
	}

	for _, bind := range bindings {
		if bind.FinalizedAlias == nil {
			continue
		}
		writeKinds(w, bind.FinalizedAlias, cache)
		if settings.dump {
			_, _ = fmt.Fprintln(w, dumper.Sdump(bind.FinalizedAlias))
		}
	}

	env = frontend.DeclareTypeBindings(env, cache, bindings)
	if errs.HasError() {
		return env, formatErrors(fset, errs)
	}
	return env, nil
}

func writeKinds(w io.Writer, alias *types.Alias, cache *kind.Cache) {
	_, _ = fmt.Fprintf(w, "%v : %v\n", alias.Name, alias.Kind(cache))
	for _, param := range alias.Params() {
		_, _ = fmt.Fprintf(w, "  %v : %v\n", param.Name, param.Kind)
	}
}

func formatErrors(fset *token.FileSet, errs *ilerr.Errors) error {
	sb := &strings.Builder{}
	for _, ileError := range errs.Sorted().Errors() {
		sb.WriteString("\n")
		sb.WriteString(ilerr.FormatWithPosition(ileError, fset))
	}
	return fmt.Errorf("errors found while checking kinds:%s", sb.String())
}
