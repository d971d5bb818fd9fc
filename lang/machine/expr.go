package machine

import (
	"math"
	"strconv"

	"github.com/mna/loxi/lang/ast"
	"github.com/mna/loxi/lang/token"
)

func (i *Interp) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Assign:
		return i.evalAssign(e)
	case *ast.Binary:
		return i.evalBinary(e)
	case *ast.Call:
		return i.evalCall(e)
	case *ast.Conditional:
		return i.evalConditional(e)
	case *ast.Get:
		return i.evalGet(e)
	case *ast.Grouping:
		return i.evaluate(e.Inner)
	case *ast.Literal:
		return literalValue(e.Value), nil
	case *ast.Logical:
		return i.evalLogical(e)
	case *ast.Set:
		return i.evalSet(e)
	case *ast.This:
		return i.lookUpVariable(e.Keyword, e)
	case *ast.Unary:
		return i.evalUnary(e)
	case *ast.Variable:
		return i.lookUpVariable(e.Name, e)
	default:
		panic("machine: unhandled expression type")
	}
}

func literalValue(v any) Value {
	switch v := v.(type) {
	case nil:
		return Nil
	case bool:
		return Bool(v)
	case float64:
		return Number(v)
	case string:
		return String(v)
	default:
		panic("machine: unhandled literal type")
	}
}

func (i *Interp) evalAssign(e *ast.Assign) (Value, error) {
	v, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[e]; ok {
		i.env.AssignAt(distance, e.Name.Lexeme, v)
		return v, nil
	}
	if i.Globals.Assign(e.Name.Lexeme, v) {
		return v, nil
	}
	return nil, runtimeErr(e.Name, "Undefined variable '"+e.Name.Lexeme+"'.")
}

func (i *Interp) evalLogical(e *ast.Logical) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Kind == token.OR {
		if IsTruthy(left) {
			return left, nil
		}
	} else {
		if !IsTruthy(left) {
			return left, nil
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interp) evalConditional(e *ast.Conditional) (Value, error) {
	cond, err := i.evaluate(e.Cond)
	if err != nil {
		return nil, err
	}
	if IsTruthy(cond) {
		return i.evaluate(e.Then)
	}
	return i.evaluate(e.Else)
}

func (i *Interp) evalUnary(e *ast.Unary) (Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case token.BANG:
		return Bool(!IsTruthy(right)), nil
	case token.MINUS:
		n, ok := right.(Number)
		if !ok {
			return nil, runtimeErr(e.Op, "Operand must be a number.")
		}
		return -n, nil
	default:
		panic("machine: unhandled unary operator")
	}
}

// evalBinary implements both the arithmetic/comparison/equality operators and
// the comma operator (also represented as a Binary node): `,` evaluates and
// discards its left operand, then yields its right one.
func (i *Interp) evalBinary(e *ast.Binary) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Op.Kind == token.COMMA {
		return i.evaluate(e.Right)
	}

	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case token.PLUS:
		if ln, ok := left.(Number); ok {
			if rn, ok := right.(Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(String); ok {
			if rs, ok := right.(String); ok {
				return ls + rs, nil
			}
		}
		return nil, runtimeErr(e.Op, "Operands must be two numbers or two strings.")
	case token.MINUS:
		ln, rn, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil
	case token.STAR:
		ln, rn, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil
	case token.SLASH:
		ln, rn, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		if rn == 0 {
			// Any division by zero yields NaN (never +-Inf), and is never a
			// runtime error.
			return Number(math.NaN()), nil
		}
		return ln / rn, nil
	case token.GT:
		ln, rn, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(ln > rn), nil
	case token.GT_EQ:
		ln, rn, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(ln >= rn), nil
	case token.LT:
		ln, rn, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(ln < rn), nil
	case token.LT_EQ:
		ln, rn, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(ln <= rn), nil
	case token.EQ_EQ:
		return Bool(Equal(left, right)), nil
	case token.BANG_EQ:
		return Bool(!Equal(left, right)), nil
	default:
		panic("machine: unhandled binary operator")
	}
}

func numberOperands(op token.Token, left, right Value) (Number, Number, error) {
	ln, ok := left.(Number)
	if !ok {
		return 0, 0, runtimeErr(op, "Operands must be numbers.")
	}
	rn, ok := right.(Number)
	if !ok {
		return 0, 0, runtimeErr(op, "Operands must be numbers.")
	}
	return ln, rn, nil
}

func (i *Interp) evalCall(e *ast.Call) (Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, runtimeErr(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, runtimeErr(e.Paren, fnArityMessage(fn, len(args)))
	}

	if i.MaxCallDepth > 0 && i.callDepth >= i.MaxCallDepth {
		return nil, runtimeErr(e.Paren, "Stack overflow.")
	}
	i.callDepth++
	defer func() { i.callDepth-- }()
	return fn.Call(i, args)
}

func fnArityMessage(fn Callable, got int) string {
	want := fn.Arity()
	if want == 1 {
		return "Expected 1 argument but got " + strconv.Itoa(got) + "."
	}
	return "Expected " + strconv.Itoa(want) + " arguments but got " + strconv.Itoa(got) + "."
}

func (i *Interp) evalGet(e *ast.Get) (Value, error) {
	obj, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	ha, ok := obj.(HasAttrs)
	if !ok {
		return nil, runtimeErr(e.Name, "Only instances have properties.")
	}
	v, found, err := ha.GetAttr(i, e.Name.Lexeme)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, runtimeErr(e.Name, "Undefined property '"+e.Name.Lexeme+"'.")
	}
	return v, nil
}

func (i *Interp) evalSet(e *ast.Set) (Value, error) {
	obj, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	hs, ok := obj.(HasSetAttr)
	if !ok {
		return nil, runtimeErr(e.Name, "Only instances have fields.")
	}
	v, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	hs.SetAttr(e.Name.Lexeme, v)
	return v, nil
}
