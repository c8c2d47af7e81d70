package cmd

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
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
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".ilecheck_history"
	promptMain  = "kind> "
	replHelp    = `Enter a type in YAML flow style to print its kind, for example {app: [Array, Int]}.

Commands:
  :help                 Show this help
  :quit / :exit         Exit
  :decl DECLARATION     Declare a type, for example :decl {name: Box, params: [a], type: {record: {x: a}}}
  :load FILE            Declare the types of a YAML file
  :env                  List declared types
  :reset                Forget every declared type
`
)

var ReplCmd = &cobra.Command{
	Use:          "repl",
	Short:        "Interactively infer the kinds of types",
	RunE:         runRepl,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

var replLogLevel *int

func init() {
	replLogLevel = ReplCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runRepl(cmd *cobra.Command, _ []string) error {
	log.SetLevel(slog.Level(*replLogLevel))
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "ilecheck kinds, Ctrl+D to exit. Type :help for commands.")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	s := newSession(out)
	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			// io.EOF on Ctrl+D
			_, _ = fmt.Fprintln(out)
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if s.handle(line) {
			break
		}
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return nil
}

// session holds the types declared so far in a REPL
type session struct {
	out    io.Writer
	fset   *token.FileSet
	cache  *kind.Cache
	env    *types.Env
	module *symbol.Module
	// declared is in declaration order, for :env
	declared []*types.Alias
	inputs   int
}

func newSession(out io.Writer) *session {
	return &session{
		out:    out,
		fset:   token.NewFileSet(),
		cache:  kind.NewCache(),
		env:    types.NewEnv(),
		module: symbol.NewModule("repl"),
	}
}

// handle runs one line of input, and reports whether the session should end.
func (s *session) handle(line string) (exit bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		s.printKind(line)
		return false
	}
	command, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch command {
	case ":help":
		_, _ = fmt.Fprint(s.out, replHelp)
	case ":quit", ":exit":
		return true
	case ":reset":
		s.env, s.declared = types.NewEnv(), nil
		_, _ = fmt.Fprintln(s.out, "declarations reset.")
	case ":env":
		for _, alias := range s.declared {
			writeKinds(s.out, alias, s.cache)
		}
	case ":decl":
		if rest == "" {
			_, _ = fmt.Fprintln(s.out, "usage: :decl DECLARATION")
			return false
		}
		bind, err := LoadTypeBinding(s.fset, s.nextInput(), []byte(rest))
		if err != nil {
			_, _ = fmt.Fprintln(s.out, err)
			return false
		}
		s.declare([]*ast.TypeBinding{bind})
	case ":load":
		if rest == "" {
			_, _ = fmt.Fprintln(s.out, "usage: :load FILE")
			return false
		}
		src, err := os.ReadFile(rest)
		if err != nil {
			_, _ = fmt.Fprintf(s.out, "cannot read %s: %v\n", rest, err)
			return false
		}
		bindings, err := LoadTypeBindings(s.fset, rest, src)
		if err != nil {
			_, _ = fmt.Fprintln(s.out, err)
			return false
		}
		s.declare(bindings)
	default:
		_, _ = fmt.Fprintln(s.out, "unknown command. Type :help for help.")
	}
	return false
}

func (s *session) nextInput() string {
	s.inputs++
	return fmt.Sprintf("<repl:%d>", s.inputs)
}

func (s *session) declare(bindings []*ast.TypeBinding) {
	env, err := declare(s.out, s.fset, s.env, s.cache, s.module, bindings, checkSettings{opts: frontend.Options{KeepGoing: true}})
	if err != nil {
		_, _ = fmt.Fprintln(s.out, err)
	}
	s.env = env
	for _, bind := range bindings {
		if bind.FinalizedAlias == nil {
			continue
		}
		s.declared = slices.DeleteFunc(s.declared, func(alias *types.Alias) bool { return alias.Name == bind.Name })
		s.declared = append(s.declared, bind.FinalizedAlias)
	}
}

func (s *session) printKind(line string) {
	typ, err := LoadType(s.fset, s.nextInput(), []byte(line))
	if err != nil {
		_, _ = fmt.Fprintln(s.out, err)
		return
	}
	k, err := s.infer(typ)
	if err != nil {
		_, _ = fmt.Fprintln(s.out, err)
		return
	}
	_, _ = fmt.Fprintf(s.out, "%v : %v\n", typ, k)
}

func (s *session) infer(typ types.Type) (k kind.Kind, err error) {
	defer ice.Recover(&err)
	check := kindcheck.New(s.env, s.module, s.cache)
	k, err = check.KindcheckExpected(typ, check.Subs.NewVar())
	var ileErr ilerr.IleError
	if errors.As(err, &ileErr) {
		return nil, formatErrors(s.fset, (&ilerr.Errors{}).With(ileErr))
	}
	if err != nil {
		return nil, err
	}
	return check.FinalizeKind(k), nil
}
