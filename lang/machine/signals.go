package machine

// returnSignal and breakSignal implement non-local control flow the same way
// the parser implements panic-mode error recovery: panic with a sentinel
// value and recover it at the boundary that knows how to handle it (a
// function call for returnSignal, a loop body for breakSignal). This avoids
// threading a "did we return/break" flag through every statement executor.
type returnSignal struct {
	value Value
}

type breakSignal struct{}
