// Package resolver performs a single static analysis pass over a parsed
// program between parsing and evaluation. It resolves every variable
// reference to the number of enclosing scopes between the reference and the
// scope that declares it (its "distance"), which lets the evaluator step up
// exactly that many enclosing environments instead of searching each one by
// name for every lookup. It also catches the handful of
// static errors Lox defines: reading a local in its own initializer,
// redeclaring a local in the same scope, returning from top level or from a
// class initializer, using `this` outside a method and `break` outside a
// loop.
package resolver

import (
	"github.com/mna/loxi/lang/ast"
	"github.com/mna/loxi/lang/report"
	"github.com/mna/loxi/lang/token"
)

// Resolution maps every Variable and This expression, and every Assign
// expression targeting a local, to the number of scopes between its use and
// the scope that declares it. An entry's absence means the name is global
// and must be looked up dynamically at the outermost environment.
type Resolution map[ast.Expr]int

type functionKind uint8

const (
	noFunction functionKind = iota
	inFunction
	inMethod
	inInitializer
	inGetter
)

type classKind uint8

const (
	noClass classKind = iota
	inClass
)

// variable tracks whether a local has been fully defined (so self-reference
// in its own initializer can be caught) and whether it has since been read,
// so an unused local can be flagged when its scope closes.
type variable struct {
	tok     token.Token
	defined bool
	used    bool
}

type resolver struct {
	reporter report.Reporter
	scopes   []map[string]*variable
	locals   Resolution

	currentFunction functionKind
	currentClass    classKind
	loopDepth       int
}

// Resolve walks stmts and returns the variable-distance side table described
// by Resolution, reporting any static error to reporter.
func Resolve(stmts []ast.Stmt, reporter report.Reporter) Resolution {
	r := &resolver{reporter: reporter, locals: make(Resolution)}
	r.resolveStmts(stmts)
	return r.locals
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]*variable))
}

func (r *resolver) endScope() {
	scope := r.scopes[len(r.scopes)-1]
	for name, v := range scope {
		if !v.used {
			r.reporter.ErrorAt(v.tok, "Unused local variable '"+name+"'")
		}
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reporter.ErrorAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = &variable{tok: name}
}

func (r *resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = &variable{tok: name, defined: true, used: false}
}

// resolveLocal records the scope distance of name as seen from expr, walking
// outward from the innermost scope; if name is never found it is left
// unresolved and treated as global at evaluation time.
func (r *resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if v, ok := r.scopes[i][name.Lexeme]; ok {
			v.used = true
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}
