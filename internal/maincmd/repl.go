package maincmd

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/mna/loxi/internal/config"
	"github.com/mna/loxi/lang/ast"
	"github.com/mna/loxi/lang/machine"
	"github.com/mna/loxi/lang/parser"
	"github.com/mna/loxi/lang/report"
	"github.com/mna/loxi/lang/resolver"
	"github.com/mna/loxi/lang/scanner"
	"github.com/mna/mainer"
)

// Repl starts an interactive read-eval-print loop: one Interp persists for
// the whole session so that top-level declarations from earlier lines stay
// visible to later ones, and `.debug on`/`.debug off` toggles printing the
// parsed AST of every line before it runs.
func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return &exitError{code: ExitUsage, err: err}
	}

	rep := report.NewDefault(stdio.Stdout)
	interp := machine.New(stdio.Stdout, rep)
	interp.MaxCallDepth = cfg.MaxCallDepth
	debug := cfg.Debug

	scan := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, cfg.PromptPrefix)
		if !scan.Scan() {
			return scan.Err()
		}
		line := scan.Text()

		switch line {
		case ".debug on":
			debug = true
			continue
		case ".debug off":
			debug = false
			continue
		case ".exit", ".quit":
			return nil
		}

		// A fresh Reporter-error state each line: a mistake on one line should
		// never sour the rest of the session.
		rep.Reset()
		evalLine(stdio.Stdout, interp, rep, line, debug)
	}
}

func evalLine(out io.Writer, interp *machine.Interp, rep report.Reporter, line string, debug bool) {
	toks := scanner.ScanTokens([]byte(line), rep.Error)

	stmts, expr := parser.ParseREPL(toks, rep)
	if rep.HadError() {
		return
	}

	if debug {
		var buf bytes.Buffer
		p := ast.Printer{Output: &buf}
		if expr != nil {
			p.PrintExpr(expr)
		} else {
			p.Print(stmts)
		}
		fmt.Fprint(out, buf.String())
	}

	if expr != nil {
		locals := resolver.Resolve([]ast.Stmt{&ast.Expression{Expr: expr}}, rep)
		if rep.HadError() {
			return
		}
		v, err := interp.EvalExpr(expr, locals)
		if err != nil {
			return
		}
		fmt.Fprintln(out, v.String())
		return
	}

	locals := resolver.Resolve(stmts, rep)
	if rep.HadError() {
		return
	}
	_ = interp.Interpret(stmts, locals)
}
