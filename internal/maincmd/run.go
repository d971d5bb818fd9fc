package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/loxi/internal/config"
	"github.com/mna/loxi/lang/machine"
	"github.com/mna/loxi/lang/parser"
	"github.com/mna/loxi/lang/report"
	"github.com/mna/loxi/lang/resolver"
	"github.com/mna/loxi/lang/scanner"
	"github.com/mna/mainer"
)

// Run executes the Lox script at args[0] (already validated to be exactly
// one path by Cmd.Validate) and returns an error carrying the exit code the
// reference implementation uses: 65 for a syntax or resolution error, 70 for
// a runtime error.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return &exitError{code: ExitUsage, err: err}
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return &exitError{code: ExitUsage, err: err}
	}

	rep := report.NewDefault(stdio.Stdout)
	if err := runSource(ctx, stdio, cfg, rep, src); err != nil {
		if rep.HadRuntimeError() {
			return &exitError{code: ExitSoft, err: err}
		}
		return &exitError{code: ExitDataErr, err: err}
	}
	return nil
}

// runSource drives a single source buffer through every phase: scan, parse,
// resolve, evaluate. It stops after parsing or resolving if either reported
// an error, the same short-circuit the reference implementation applies so a
// program with a static error is never partially executed.
func runSource(ctx context.Context, stdio mainer.Stdio, cfg config.Config, rep report.Reporter, src []byte) error {
	toks := scanner.ScanTokens(src, rep.Error)

	stmts := parser.Parse(toks, rep)
	if rep.HadError() {
		return errStaticFailure
	}

	locals := resolver.Resolve(stmts, rep)
	if rep.HadError() {
		return errStaticFailure
	}

	interp := machine.New(stdio.Stdout, rep)
	interp.MaxCallDepth = cfg.MaxCallDepth
	if err := interp.Interpret(stmts, locals); err != nil {
		return err
	}
	return nil
}

var errStaticFailure = fmt.Errorf("static analysis failed")
