package machine_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mna/loxi/lang/machine"
	"github.com/mna/loxi/lang/parser"
	"github.com/mna/loxi/lang/report"
	"github.com/mna/loxi/lang/resolver"
	"github.com/mna/loxi/lang/scanner"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (string, *report.Default) {
	t.Helper()
	var out, errs bytes.Buffer
	rep := report.NewDefault(&errs)

	toks := scanner.ScanTokens([]byte(src), func(line int, msg string) { rep.Error(line, msg) })
	stmts := parser.Parse(toks, rep)
	require.False(t, rep.HadError(), "parse errors: %s", errs.String())

	locals := resolver.Resolve(stmts, rep)
	require.False(t, rep.HadError(), "resolve errors: %s", errs.String())

	interp := machine.New(&out, rep)
	interp.Interpret(stmts, locals)
	return out.String(), rep
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestArithmeticAndPrecedence(t *testing.T) {
	out, rep := run(t, `print 1 + 2 * 3;`)
	require.False(t, rep.HadRuntimeError())
	require.Equal(t, []string{"7"}, lines(out))
}

func TestStringConcatenation(t *testing.T) {
	out, _ := run(t, `print "foo" + "bar";`)
	require.Equal(t, []string{"foobar"}, lines(out))
}

func TestDivisionByZeroYieldsNaN(t *testing.T) {
	out, rep := run(t, `print 1 / 0;`)
	require.False(t, rep.HadRuntimeError())
	require.Equal(t, []string{"NaN"}, lines(out))
}

func TestTruthiness(t *testing.T) {
	out, _ := run(t, `
		if (0) print "zero is truthy"; else print "zero is falsy";
		if (nil) print "nil is truthy"; else print "nil is falsy";
		if ("") print "empty string is truthy"; else print "empty string is falsy";
	`)
	require.Equal(t, []string{
		"zero is truthy",
		"nil is falsy",
		"empty string is truthy",
	}, lines(out))
}

func TestVariablesAndScoping(t *testing.T) {
	out, _ := run(t, `
		var a = "outer";
		{
			var a = "inner";
			print a;
		}
		print a;
	`)
	require.Equal(t, []string{"inner", "outer"}, lines(out))
}

func TestClosures(t *testing.T) {
	out, _ := run(t, `
		fun makeCounter() {
			var count = 0;
			fun counter() {
				count = count + 1;
				return count;
			}
			return counter;
		}
		var counter = makeCounter();
		print counter();
		print counter();
	`)
	require.Equal(t, []string{"1", "2"}, lines(out))
}

func TestClassesMethodsAndThis(t *testing.T) {
	out, _ := run(t, `
		class Cake {
			init(flavor) {
				this.flavor = flavor;
			}
			describe() {
				return "a " + this.flavor + " cake";
			}
		}
		var c = Cake("chocolate");
		print c.describe();
	`)
	require.Equal(t, []string{"a chocolate cake"}, lines(out))
}

func TestGetterInvokedWithoutParens(t *testing.T) {
	out, _ := run(t, `
		class Circle {
			init(radius) { this.radius = radius; }
			area { return 3 * this.radius * this.radius; }
		}
		print Circle(2).area;
	`)
	require.Equal(t, []string{"12"}, lines(out))
}

func TestClassMethodWithNoThisReference(t *testing.T) {
	out, _ := run(t, `
		class Math {
			class square(n) { return n * n; }
		}
		print Math.square(4);
	`)
	require.Equal(t, []string{"16"}, lines(out))
}

func TestClassMethodThisBindsToTheClass(t *testing.T) {
	out, _ := run(t, `
		class Math {
			class name() { return this; }
		}
		print Math.name();
	`)
	require.Equal(t, []string{"<class Math>"}, lines(out))
}

func TestBreakExitsLoop(t *testing.T) {
	out, _ := run(t, `
		var i = 0;
		while (true) {
			if (i >= 3) break;
			print i;
			i = i + 1;
		}
	`)
	require.Equal(t, []string{"0", "1", "2"}, lines(out))
}

func TestForLoopDesugaring(t *testing.T) {
	out, _ := run(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.Equal(t, []string{"0", "1", "2"}, lines(out))
}

func TestTernaryConditional(t *testing.T) {
	out, _ := run(t, `print 1 < 2 ? "yes" : "no";`)
	require.Equal(t, []string{"yes"}, lines(out))
}

func TestCommaOperator(t *testing.T) {
	out, _ := run(t, `print (1, 2, 3);`)
	require.Equal(t, []string{"3"}, lines(out))
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, rep := run(t, `print nope;`)
	require.True(t, rep.HadRuntimeError())
}

func TestCallingNonFunctionIsRuntimeError(t *testing.T) {
	_, rep := run(t, `var x = 1; x();`)
	require.True(t, rep.HadRuntimeError())
}

func TestWrongArityIsRuntimeError(t *testing.T) {
	_, rep := run(t, `fun f(a, b) { return a + b; } f(1);`)
	require.True(t, rep.HadRuntimeError())
}

func TestAddingNumberAndStringIsRuntimeError(t *testing.T) {
	_, rep := run(t, `print 1 + "a";`)
	require.True(t, rep.HadRuntimeError())
}
