package resolver

import "github.com/mna/loxi/lang/ast"

func (r *resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()

	case *ast.Break:
		if r.loopDepth == 0 {
			r.reporter.ErrorAt(s.Keyword, "Can't break outside of a loop.")
		}

	case *ast.Class:
		r.resolveClass(s)

	case *ast.Expression:
		r.resolveExpr(s.Expr)

	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, inFunction)

	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.Print:
		r.resolveExpr(s.Expr)

	case *ast.Return:
		if r.currentFunction == noFunction {
			r.reporter.ErrorAt(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == inInitializer {
				r.reporter.ErrorAt(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.Var:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)

	case *ast.While:
		r.loopDepth++
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
		r.loopDepth--

	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *resolver) resolveClass(c *ast.Class) {
	r.declare(c.Name)
	r.define(c.Name)

	previousClass := r.currentClass
	r.currentClass = inClass

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = &variable{defined: true, used: true}
	for _, m := range c.ClassMethods {
		r.resolveFunction(m, inFunction)
	}
	r.endScope()

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = &variable{defined: true, used: true}

	for _, m := range c.Methods {
		kind := inMethod
		if m.Name.Lexeme == "init" {
			kind = inInitializer
		}
		r.resolveFunction(m, kind)
	}
	for _, g := range c.Getters {
		r.resolveFunction(g, inGetter)
	}

	r.endScope()
	r.currentClass = previousClass
}

func (r *resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	previousFunction := r.currentFunction
	previousLoopDepth := r.loopDepth
	r.currentFunction = kind
	r.loopDepth = 0

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = previousFunction
	r.loopDepth = previousLoopDepth
}
