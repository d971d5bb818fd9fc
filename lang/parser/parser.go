// Package parser implements a recursive-descent parser that transforms a
// token stream into an abstract syntax tree.
package parser

import (
	"errors"

	"github.com/mna/loxi/lang/ast"
	"github.com/mna/loxi/lang/report"
	"github.com/mna/loxi/lang/token"
)

// maxArgs is the maximum number of arguments a call or parameters a function
// may have. The limit itself is never observable in well-formed programs; it
// exists to keep the single-byte operand used by some bytecode front ends
// (not this one) representable, and is kept here for parity with it.
const maxArgs = 255

// errPanicMode is the sentinel panicked with by consume and other fatal parse
// errors; it is recovered at the statement level to synchronize and resume
// parsing after the offending statement.
var errPanicMode = errors.New("parse error")

// parser parses a token stream and produces an AST, reporting syntax errors
// to its Reporter and synchronizing to the next statement boundary after
// each one (panic-mode error recovery).
type parser struct {
	toks     []token.Token
	current  int
	reporter report.Reporter

	// allowExpression and foundExpression support the REPL's bare-expression
	// mode: when allowExpression is true and the program is a single
	// expression statement with no trailing semicolon, ParseREPL returns it
	// separately instead of reporting a missing ';'.
	allowExpression bool
	foundExpression bool
}

// Parse parses toks (which must end with an EOF token) into a sequence of
// top-level statements, reporting any syntax errors to reporter.
func Parse(toks []token.Token, reporter report.Reporter) []ast.Stmt {
	p := &parser{toks: toks, reporter: reporter}
	return p.parseProgram()
}

// ParseREPL is like Parse, but additionally supports a bare expression (no
// trailing ';') as the entire input, returning it as expr instead of wrapping
// it in an Expression statement. expr is nil unless the input was exactly one
// such bare expression.
func ParseREPL(toks []token.Token, reporter report.Reporter) (stmts []ast.Stmt, expr ast.Expr) {
	p := &parser{toks: toks, reporter: reporter, allowExpression: true}
	stmts = p.parseProgram()
	if p.foundExpression && len(stmts) == 1 {
		if es, ok := stmts[0].(*ast.Expression); ok {
			return nil, es.Expr
		}
	}
	return stmts, nil
}

func (p *parser) parseProgram() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if d := p.declaration(); d != nil {
			stmts = append(stmts, d)
		}
	}
	return stmts
}

// --- token stream primitives ---

func (p *parser) peek() token.Token     { return p.toks[p.current] }
func (p *parser) previous() token.Token { return p.toks[p.current-1] }
func (p *parser) isAtEnd() bool         { return p.peek().Kind == token.EOF }

func (p *parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) check(k token.Kind) bool {
	if p.isAtEnd() {
		return k == token.EOF
	}
	return p.peek().Kind == k
}

func (p *parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past the current token if it has kind k, otherwise reports
// msg at the current token and panics with errPanicMode.
func (p *parser) consume(k token.Kind, msg string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.errorAt(p.peek(), msg)
	panic(errPanicMode)
}

func (p *parser) errorAt(tok token.Token, msg string) {
	p.reporter.ErrorAt(tok, msg)
}

// synchronize discards tokens until it reaches a likely statement boundary,
// so that a single syntax error doesn't cascade into a wall of spurious ones.
func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.SEMI {
			return
		}
		switch p.peek().Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE,
			token.PRINT, token.RETURN, token.BREAK:
			return
		}
		p.advance()
	}
}
