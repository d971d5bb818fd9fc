package parser

import (
	"fmt"

	"github.com/mna/loxi/lang/ast"
	"github.com/mna/loxi/lang/token"
)

// declaration parses a single top-level or block-level declaration,
// recovering from a syntax error by synchronizing to the next statement.
func (p *parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if err := recover(); err != nil {
			if err == errPanicMode {
				p.synchronize()
				stmt = nil
				return
			}
			panic(err)
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDecl()
	case p.match(token.FUN):
		return p.funDecl("function")
	case p.match(token.VAR):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *parser) classDecl() ast.Stmt {
	name := p.consume(token.IDENT, "Expect class name.")
	p.consume(token.LBRACE, "Expect '{' before class body.")

	c := &ast.Class{Name: name}
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		isClassMethod := p.match(token.CLASS)
		fn := p.funDecl("method").(*ast.Function)
		switch {
		case isClassMethod:
			c.ClassMethods = append(c.ClassMethods, fn)
		case fn.IsGetter:
			c.Getters = append(c.Getters, fn)
		default:
			c.Methods = append(c.Methods, fn)
		}
	}
	p.consume(token.RBRACE, "Expect '}' after class body.")
	return c
}

// funDecl parses a function declaration or, when kind is "method", also
// accepts the getter form (an identifier directly followed by a block, with
// no parameter list).
func (p *parser) funDecl(kind string) ast.Stmt {
	name := p.consume(token.IDENT, fmt.Sprintf("Expect %s name.", kind))

	fn := &ast.Function{Name: name}
	if kind == "method" && p.check(token.LBRACE) {
		fn.IsGetter = true
	} else {
		p.consume(token.LPAREN, fmt.Sprintf("Expect '(' after %s name.", kind))
		if !p.check(token.RPAREN) {
			for {
				if len(fn.Params) >= maxArgs {
					p.errorAt(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
				}
				fn.Params = append(fn.Params, p.consume(token.IDENT, "Expect parameter name."))
				if !p.match(token.COMMA) {
					break
				}
			}
		}
		p.consume(token.RPAREN, "Expect ')' after parameters.")
	}

	p.consume(token.LBRACE, fmt.Sprintf("Expect '{' before %s body.", kind))
	fn.Body = p.block()
	return fn
}

func (p *parser) varDecl() ast.Stmt {
	name := p.consume(token.IDENT, "Expect variable name.")
	var init ast.Expr
	if p.match(token.EQ) {
		init = p.expression()
	}
	p.consume(token.SEMI, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, Initializer: init}
}

func (p *parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.PRINT):
		return p.printStmt()
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.BREAK):
		return p.breakStmt()
	case p.match(token.LBRACE):
		return &ast.Block{Stmts: p.block()}
	default:
		return p.exprStmt()
	}
}

func (p *parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		if d := p.declaration(); d != nil {
			stmts = append(stmts, d)
		}
	}
	p.consume(token.RBRACE, "Expect '}' after block.")
	return stmts
}

// forStmt desugars the C-style for loop into a Block wrapping a While, so
// that the resolver and evaluator never need to know about `for` at all.
func (p *parser) forStmt() ast.Stmt {
	p.consume(token.LPAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.SEMI):
		init = nil
	case p.match(token.VAR):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.SEMI) {
		cond = p.expression()
	}
	p.consume(token.SEMI, "Expect ';' after loop condition.")

	var incr ast.Expr
	if !p.check(token.RPAREN) {
		incr = p.expression()
	}
	p.consume(token.RPAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if incr != nil {
		body = &ast.Block{Stmts: []ast.Stmt{body, &ast.Expression{Expr: incr}}}
	}
	if cond == nil {
		cond = &ast.Literal{Value: true}
	}
	body = &ast.While{Cond: cond, Body: body}

	if init != nil {
		body = &ast.Block{Stmts: []ast.Stmt{init, body}}
	}
	return body
}

func (p *parser) ifStmt() ast.Stmt {
	p.consume(token.LPAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RPAREN, "Expect ')' after if condition.")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return &ast.If{Cond: cond, Then: then, Else: els}
}

func (p *parser) printStmt() ast.Stmt {
	val := p.expression()
	p.consume(token.SEMI, "Expect ';' after value.")
	return &ast.Print{Expr: val}
}

func (p *parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var val ast.Expr
	if !p.check(token.SEMI) {
		val = p.expression()
	}
	p.consume(token.SEMI, "Expect ';' after return value.")
	return &ast.Return{Keyword: keyword, Value: val}
}

func (p *parser) whileStmt() ast.Stmt {
	p.consume(token.LPAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RPAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.While{Cond: cond, Body: body}
}

func (p *parser) breakStmt() ast.Stmt {
	keyword := p.previous()
	p.consume(token.SEMI, "Expect ';' after 'break'.")
	return &ast.Break{Keyword: keyword}
}

func (p *parser) exprStmt() ast.Stmt {
	expr := p.expression()
	if p.allowExpression && p.check(token.EOF) {
		p.foundExpression = true
		return &ast.Expression{Expr: expr}
	}
	p.consume(token.SEMI, "Expect ';' after expression.")
	return &ast.Expression{Expr: expr}
}
