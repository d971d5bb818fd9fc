package machine

import "time"

// native wraps a Go function as a Lox Callable, used for the handful of
// built-ins provided directly by the host rather than defined in Lox.
type native struct {
	name  string
	arity int
	fn    func(i *Interp, args []Value) (Value, error)
}

var (
	_ Value    = (*native)(nil)
	_ Callable = (*native)(nil)
)

func (n *native) String() string { return "<native fun>" }
func (n *native) Type() string   { return "function" }
func (n *native) Name() string   { return n.name }
func (n *native) Arity() int     { return n.arity }
func (n *native) Call(i *Interp, args []Value) (Value, error) {
	return n.fn(i, args)
}

// defineNatives binds the global environment's built-in functions: clock
// is the only one the reference implementation defines, used by benchmark
// scripts to measure elapsed wall-clock time.
func defineNatives(globals *Environment) {
	globals.Define("clock", &native{
		name:  "clock",
		arity: 0,
		fn: func(i *Interp, args []Value) (Value, error) {
			return Number(float64(time.Now().UnixNano()) / float64(time.Second)), nil
		},
	})
}
