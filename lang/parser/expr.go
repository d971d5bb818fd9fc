package parser

import (
	"fmt"

	"github.com/mna/loxi/lang/ast"
	"github.com/mna/loxi/lang/token"
)

func (p *parser) expression() ast.Expr {
	return p.comma()
}

// comma parses the comma operator, which evaluates and discards its left
// operand and yields its right one. It binds looser than assignment so that
// `a = 1, 2` parses as `(a = 1), 2`.
func (p *parser) comma() ast.Expr {
	expr := p.assignment()
	for p.match(token.COMMA) {
		op := p.previous()
		right := p.assignment()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// assignment parses a right-associative `target = value`, reinterpreting the
// already-parsed left-hand side as an assignment target rather than looking
// ahead for one: a bare name becomes a Variable→Assign rewrite, a property
// read becomes a Get→Set rewrite, and anything else is an invalid target —
// reported but not fatal, so parsing can continue.
func (p *parser) assignment() ast.Expr {
	expr := p.conditional()

	if p.match(token.EQ) {
		equals := p.previous()
		value := p.assignment()

		switch e := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: e.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: e.Object, Name: e.Name, Value: value}
		default:
			p.errorAt(equals, "Invalid assignment target.")
		}
	}
	return expr
}

// conditional parses the ternary operator, right-associative: `a ? b : c ? d
// : e` parses as `a ? b : (c ? d : e)`. The `then` branch is parsed with the
// full expression grammar (including comma), matching the reference
// implementation's quirk of allowing a bare comma expression there.
func (p *parser) conditional() ast.Expr {
	expr := p.logicOr()
	if p.match(token.QUESTION) {
		then := p.expression()
		p.consume(token.COLON, "Expect ':' after then branch of conditional expression.")
		els := p.conditional()
		expr = &ast.Conditional{Cond: expr, Then: then, Else: els}
	}
	return expr
}

func (p *parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.OR) {
		op := p.previous()
		right := p.logicAnd()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQ, token.EQ_EQ) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GT, token.GT_EQ, token.LT, token.LT_EQ) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

func (p *parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LPAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENT, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			args = append(args, p.assignment())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RPAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Value: false}
	case p.match(token.TRUE):
		return &ast.Literal{Value: true}
	case p.match(token.NIL):
		return &ast.Literal{Value: nil}
	case p.match(token.NUMBER, token.STRING):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(token.THIS):
		return &ast.This{Keyword: p.previous()}
	case p.match(token.IDENT):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LPAREN):
		expr := p.expression()
		p.consume(token.RPAREN, "Expect ')' after expression.")
		return &ast.Grouping{Inner: expr}
	}

	p.errorAt(p.peek(), "Expect expression.")
	panic(errPanicMode)
}
