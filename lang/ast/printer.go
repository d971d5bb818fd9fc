package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes a parenthesized, Lisp-like rendering of statements and
// expressions to Output, in the style traditionally used to eyeball a Lox AST
// during development (wired to the REPL's `.debug on` toggle).
type Printer struct {
	Output io.Writer
}

// Print writes the textual form of every statement in stmts, one per line.
func (p Printer) Print(stmts []Stmt) {
	for _, s := range stmts {
		fmt.Fprintln(p.Output, p.stmt(s))
	}
}

// PrintExpr writes the textual form of a single bare expression (REPL mode).
func (p Printer) PrintExpr(e Expr) {
	fmt.Fprintln(p.Output, p.expr(e))
}

func (p Printer) paren(name string, parts ...any) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, part := range parts {
		sb.WriteByte(' ')
		switch v := part.(type) {
		case Expr:
			sb.WriteString(p.expr(v))
		case Stmt:
			sb.WriteString(p.stmt(v))
		case []Stmt:
			for i, s := range v {
				if i > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(p.stmt(s))
			}
		case string:
			sb.WriteString(v)
		default:
			fmt.Fprintf(&sb, "%v", v)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

func (p Printer) expr(e Expr) string {
	switch e := e.(type) {
	case *Assign:
		return p.paren("=", e.Name.Lexeme, e.Value)
	case *Binary:
		return p.paren(e.Op.Lexeme, e.Left, e.Right)
	case *Call:
		parts := make([]any, 0, len(e.Args)+1)
		parts = append(parts, e.Callee)
		for _, a := range e.Args {
			parts = append(parts, a)
		}
		return p.paren("call", parts...)
	case *Conditional:
		return p.paren("?:", e.Cond, e.Then, e.Else)
	case *Get:
		return p.paren(".", e.Object, e.Name.Lexeme)
	case *Grouping:
		return p.paren("group", e.Inner)
	case *Literal:
		if e.Value == nil {
			return "nil"
		}
		return fmt.Sprintf("%v", e.Value)
	case *Logical:
		return p.paren(e.Op.Lexeme, e.Left, e.Right)
	case *Set:
		return p.paren("set", e.Object, e.Name.Lexeme, e.Value)
	case *This:
		return "this"
	case *Unary:
		return p.paren(e.Op.Lexeme, e.Right)
	case *Variable:
		return e.Name.Lexeme
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

func (p Printer) stmt(s Stmt) string {
	switch s := s.(type) {
	case *Block:
		return p.paren("block", s.Stmts)
	case *Break:
		return "(break)"
	case *Class:
		return p.paren("class", s.Name.Lexeme)
	case *Expression:
		return p.paren(";", s.Expr)
	case *Function:
		return p.paren("fun", s.Name.Lexeme)
	case *If:
		if s.Else != nil {
			return p.paren("if", s.Cond, s.Then, s.Else)
		}
		return p.paren("if", s.Cond, s.Then)
	case *Print:
		return p.paren("print", s.Expr)
	case *Return:
		if s.Value != nil {
			return p.paren("return", s.Value)
		}
		return "(return)"
	case *Var:
		if s.Initializer != nil {
			return p.paren("var", s.Name.Lexeme, s.Initializer)
		}
		return p.paren("var", s.Name.Lexeme)
	case *While:
		return p.paren("while", s.Cond, s.Body)
	default:
		return fmt.Sprintf("<unknown stmt %T>", s)
	}
}
