package machine

import (
	"io"

	"github.com/mna/loxi/lang/ast"
	"github.com/mna/loxi/lang/report"
	"github.com/mna/loxi/lang/resolver"
	"github.com/mna/loxi/lang/token"
)

// Interp is a tree-walking evaluator for a resolved program. One Interp
// persists for the lifetime of a REPL session so that top-level variable and
// function declarations accumulate in its global environment across lines.
type Interp struct {
	Globals *Environment
	Output  io.Writer

	// MaxCallDepth bounds nested Lox calls (see internal/config); a program
	// that recurses past it gets a reported runtime error instead of a Go
	// stack overflow that would crash the whole process.
	MaxCallDepth int

	env       *Environment
	locals    resolver.Resolution
	reporter  report.Reporter
	callDepth int
}

// New returns an Interp with its global environment initialized with the
// native built-ins, writing `print` output to out.
func New(out io.Writer, reporter report.Reporter) *Interp {
	globals := NewEnvironment(nil)
	defineNatives(globals)
	return &Interp{Globals: globals, Output: out, env: globals, reporter: reporter, MaxCallDepth: 255}
}

// Interpret executes stmts using the variable-distance table produced by the
// resolver. A runtime error aborts execution of the remaining statements and
// is reported through the Reporter given to New; it is also returned so
// callers that need the machine.RuntimeError value directly (tests, mainly)
// can inspect it.
func (i *Interp) Interpret(stmts []ast.Stmt, locals resolver.Resolution) error {
	i.locals = locals
	for _, s := range stmts {
		if err := i.execStmt(s); err != nil {
			if rerr, ok := err.(*RuntimeError); ok {
				i.reporter.RuntimeError(rerr.Token, rerr.Message)
			}
			return err
		}
	}
	return nil
}

// EvalExpr evaluates a single bare expression — the REPL's "found_expression"
// mode, where a line with no trailing ';' is treated as an expression to
// print rather than an expression statement to silently discard.
func (i *Interp) EvalExpr(expr ast.Expr, locals resolver.Resolution) (Value, error) {
	i.locals = locals
	v, err := i.evaluate(expr)
	if err != nil {
		if rerr, ok := err.(*RuntimeError); ok {
			i.reporter.RuntimeError(rerr.Token, rerr.Message)
		}
		return nil, err
	}
	return v, nil
}

func (i *Interp) lookUpVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := i.locals[expr]; ok {
		return i.env.GetAt(distance, name.Lexeme), nil
	}
	if v, ok := i.Globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, &RuntimeError{Token: name, Message: "Undefined variable '" + name.Lexeme + "'."}
}

func runtimeErr(tok token.Token, msg string) error {
	return &RuntimeError{Token: tok, Message: msg}
}
