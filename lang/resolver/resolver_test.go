package resolver_test

import (
	"bytes"
	"testing"

	"github.com/mna/loxi/lang/ast"
	"github.com/mna/loxi/lang/parser"
	"github.com/mna/loxi/lang/report"
	"github.com/mna/loxi/lang/resolver"
	"github.com/mna/loxi/lang/scanner"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, src string) (resolver.Resolution, *report.Default) {
	t.Helper()
	var ebuf bytes.Buffer
	rep := report.NewDefault(&ebuf)
	toks := scanner.ScanTokens([]byte(src), func(line int, msg string) { rep.Error(line, msg) })
	stmts := parser.Parse(toks, rep)
	require.False(t, rep.HadError(), "parse errors: %s", ebuf.String())
	res := resolver.Resolve(stmts, rep)
	return res, rep
}

func TestResolveLocalDistance(t *testing.T) {
	res, rep := resolve(t, `
		var a = "global";
		{
			var a = "outer";
			{
				print a;
			}
		}
	`)
	require.False(t, rep.HadError())
	require.Len(t, res, 1)
	for _, dist := range res {
		require.Equal(t, 1, dist)
	}
}

func TestResolveGlobalIsUnresolved(t *testing.T) {
	res, rep := resolve(t, `
		var a = "global";
		print a;
	`)
	require.False(t, rep.HadError())
	require.Empty(t, res)
}

func TestResolveSelfReferenceInInitializerIsError(t *testing.T) {
	var ebuf bytes.Buffer
	rep := report.NewDefault(&ebuf)
	toks := scanner.ScanTokens([]byte(`{ var a = a; }`), func(line int, msg string) { rep.Error(line, msg) })
	stmts := parser.Parse(toks, rep)
	require.False(t, rep.HadError())
	resolver.Resolve(stmts, rep)
	require.True(t, rep.HadError())
}

func TestResolveDuplicateLocalIsError(t *testing.T) {
	var ebuf bytes.Buffer
	rep := report.NewDefault(&ebuf)
	toks := scanner.ScanTokens([]byte(`{ var a = 1; var a = 2; }`), func(line int, msg string) { rep.Error(line, msg) })
	stmts := parser.Parse(toks, rep)
	require.False(t, rep.HadError())
	resolver.Resolve(stmts, rep)
	require.True(t, rep.HadError())
}

func TestResolveUnusedLocalIsError(t *testing.T) {
	var ebuf bytes.Buffer
	rep := report.NewDefault(&ebuf)
	toks := scanner.ScanTokens([]byte(`{ var a = 1; }`), func(line int, msg string) { rep.Error(line, msg) })
	stmts := parser.Parse(toks, rep)
	require.False(t, rep.HadError())
	resolver.Resolve(stmts, rep)
	require.True(t, rep.HadError())
}

func TestResolveReturnOutsideFunctionIsError(t *testing.T) {
	var ebuf bytes.Buffer
	rep := report.NewDefault(&ebuf)
	toks := scanner.ScanTokens([]byte(`return 1;`), func(line int, msg string) { rep.Error(line, msg) })
	stmts := parser.Parse(toks, rep)
	require.False(t, rep.HadError())
	resolver.Resolve(stmts, rep)
	require.True(t, rep.HadError())
}

func TestResolveReturnValueFromInitializerIsError(t *testing.T) {
	var ebuf bytes.Buffer
	rep := report.NewDefault(&ebuf)
	toks := scanner.ScanTokens([]byte(`
		class Foo {
			init() { return 1; }
		}
	`), func(line int, msg string) { rep.Error(line, msg) })
	stmts := parser.Parse(toks, rep)
	require.False(t, rep.HadError())
	resolver.Resolve(stmts, rep)
	require.True(t, rep.HadError())
}

func TestResolveBareReturnFromInitializerIsAllowed(t *testing.T) {
	res, rep := resolve(t, `
		class Foo {
			init() { return; }
		}
	`)
	require.False(t, rep.HadError())
	_ = res
}

func TestResolveBreakOutsideLoopIsError(t *testing.T) {
	var ebuf bytes.Buffer
	rep := report.NewDefault(&ebuf)
	toks := scanner.ScanTokens([]byte(`break;`), func(line int, msg string) { rep.Error(line, msg) })
	stmts := parser.Parse(toks, rep)
	require.False(t, rep.HadError())
	resolver.Resolve(stmts, rep)
	require.True(t, rep.HadError())
}

func TestResolveBreakInsideLoopIsAllowed(t *testing.T) {
	_, rep := resolve(t, `while (true) { break; }`)
	require.False(t, rep.HadError())
}

func TestResolveBreakInsideFunctionNestedInLoopIsError(t *testing.T) {
	_, rep := resolve(t, `
		while (true) {
			fun f() { break; }
		}
	`)
	require.True(t, rep.HadError())
}

func TestResolveThisOutsideMethodIsError(t *testing.T) {
	var ebuf bytes.Buffer
	rep := report.NewDefault(&ebuf)
	toks := scanner.ScanTokens([]byte(`print this;`), func(line int, msg string) { rep.Error(line, msg) })
	stmts := parser.Parse(toks, rep)
	require.False(t, rep.HadError())
	resolver.Resolve(stmts, rep)
	require.True(t, rep.HadError())
}

func TestResolveThisInsideMethodIsResolved(t *testing.T) {
	res, rep := resolve(t, `
		class Foo {
			bar() { return this; }
		}
	`)
	require.False(t, rep.HadError())
	found := false
	for e, dist := range res {
		if _, ok := e.(*ast.This); ok {
			found = true
			require.Equal(t, 1, dist) // one scope for the method's parameters sits between the body and the `this` binding
		}
	}
	require.True(t, found)
}

func TestResolveClassMethodWithNoThisReference(t *testing.T) {
	_, rep := resolve(t, `
		class Foo {
			class bar() { return 1; }
		}
	`)
	require.False(t, rep.HadError())
}

func TestResolveThisInsideClassMethodIsResolved(t *testing.T) {
	res, rep := resolve(t, `
		class Foo {
			class bar() { return this; }
		}
	`)
	require.False(t, rep.HadError())
	found := false
	for e, dist := range res {
		if _, ok := e.(*ast.This); ok {
			found = true
			require.Equal(t, 1, dist) // one scope for the class method's parameters sits between the body and the `this` binding
		}
	}
	require.True(t, found)
}
