package parser_test

import (
	"bytes"
	"testing"

	"github.com/mna/loxi/lang/ast"
	"github.com/mna/loxi/lang/parser"
	"github.com/mna/loxi/lang/report"
	"github.com/mna/loxi/lang/scanner"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) ([]ast.Stmt, *report.Default) {
	t.Helper()
	var ebuf bytes.Buffer
	rep := report.NewDefault(&ebuf)
	toks := scanner.ScanTokens([]byte(src), func(line int, msg string) { rep.Error(line, msg) })
	return parser.Parse(toks, rep), rep
}

func printed(stmts []ast.Stmt) string {
	var buf bytes.Buffer
	(ast.Printer{Output: &buf}).Print(stmts)
	return buf.String()
}

func TestParseArithmeticPrecedence(t *testing.T) {
	stmts, rep := parse(t, `print 1 + 2 * 3 - -4;`)
	require.False(t, rep.HadError())
	require.Equal(t, "(print (- (+ 1 (* 2 3)) (- 4)))\n", printed(stmts))
}

func TestParseCommaOperator(t *testing.T) {
	stmts, rep := parse(t, `1, 2, 3;`)
	require.False(t, rep.HadError())
	require.Equal(t, "(; (, (, 1 2) 3))\n", printed(stmts))
}

func TestParseTernaryRightAssociative(t *testing.T) {
	stmts, rep := parse(t, `a ? 1 : b ? 2 : 3;`)
	require.False(t, rep.HadError())
	require.Equal(t, "(; (?: a 1 (?: b 2 3)))\n", printed(stmts))
}

func TestParseTernaryThenAllowsComma(t *testing.T) {
	stmts, rep := parse(t, `a ? 1, 2 : 3;`)
	require.False(t, rep.HadError())
	require.Equal(t, "(; (?: a (, 1 2) 3))\n", printed(stmts))
}

func TestParseAssignmentTarget(t *testing.T) {
	stmts, rep := parse(t, `a = b.c = 1;`)
	require.False(t, rep.HadError())
	require.Equal(t, "(; (= a (set b c 1)))\n", printed(stmts))
}

func TestParseInvalidAssignmentTargetReportsButDoesNotAbort(t *testing.T) {
	stmts, rep := parse(t, `1 = 2; print "still parsed";`)
	require.True(t, rep.HadError())
	require.Len(t, stmts, 2)
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts, rep := parse(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.False(t, rep.HadError())
	require.Len(t, stmts, 1)

	block, ok := stmts[0].(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Stmts, 2)
	_, ok = block.Stmts[0].(*ast.Var)
	require.True(t, ok)
	while, ok := block.Stmts[1].(*ast.While)
	require.True(t, ok)
	body, ok := while.Body.(*ast.Block)
	require.True(t, ok)
	require.Len(t, body.Stmts, 2)
}

func TestParseClassWithMethodsClassMethodsAndGetters(t *testing.T) {
	stmts, rep := parse(t, `
		class Circle {
			init(radius) { this.radius = radius; }
			area { return 3.14 * this.radius * this.radius; }
			class zero() { return Circle(0); }
		}
	`)
	require.False(t, rep.HadError())
	require.Len(t, stmts, 1)

	c, ok := stmts[0].(*ast.Class)
	require.True(t, ok)
	require.Equal(t, "Circle", c.Name.Lexeme)
	require.Len(t, c.Methods, 1)
	require.Equal(t, "init", c.Methods[0].Name.Lexeme)
	require.Len(t, c.Getters, 1)
	require.True(t, c.Getters[0].IsGetter)
	require.Len(t, c.ClassMethods, 1)
}

func TestParseTooManyParamsReportsButRecovers(t *testing.T) {
	var src bytes.Buffer
	src.WriteString("fun f(")
	for i := 0; i < 256; i++ {
		if i > 0 {
			src.WriteString(", ")
		}
		src.WriteString("a")
		src.WriteString(string(rune('0' + i%10)))
	}
	src.WriteString(") {}")

	stmts, rep := parse(t, src.String())
	require.True(t, rep.HadError())
	require.Len(t, stmts, 1)
}

func TestParseMissingSemicolonReportsError(t *testing.T) {
	_, rep := parse(t, `var a = 1`)
	require.True(t, rep.HadError())
}

func TestParseBreakOutsideLoopIsSyntacticallyValid(t *testing.T) {
	// break is only rejected outside a loop by the resolver, not the parser.
	stmts, rep := parse(t, `break;`)
	require.False(t, rep.HadError())
	require.Len(t, stmts, 1)
}

func TestParseREPLBareExpression(t *testing.T) {
	var ebuf bytes.Buffer
	rep := report.NewDefault(&ebuf)
	toks := scanner.ScanTokens([]byte(`1 + 2`), func(line int, msg string) { rep.Error(line, msg) })
	stmts, expr := parser.ParseREPL(toks, rep)
	require.False(t, rep.HadError())
	require.Nil(t, stmts)
	require.NotNil(t, expr)

	var buf bytes.Buffer
	(ast.Printer{Output: &buf}).PrintExpr(expr)
	require.Equal(t, "(+ 1 2)\n", buf.String())
}

func TestParseREPLStatementIsNotReturnedAsExpression(t *testing.T) {
	var ebuf bytes.Buffer
	rep := report.NewDefault(&ebuf)
	toks := scanner.ScanTokens([]byte(`var a = 1;`), func(line int, msg string) { rep.Error(line, msg) })
	stmts, expr := parser.ParseREPL(toks, rep)
	require.False(t, rep.HadError())
	require.Nil(t, expr)
	require.Len(t, stmts, 1)
}
