package ast

// VisitDirection indicates whether a call to Visit enters or exits a node.
type VisitDirection int

// List of visit directions.
const (
	VisitEnter VisitDirection = iota
	VisitExit
)

// Visitor defines the method to implement to walk an AST with Walk. A node's
// children can be skipped by returning a nil Visitor from Visit.
type Visitor interface {
	Visit(n Node, dir VisitDirection) (w Visitor)
}

// VisitorFunc is a function that implements the Visitor interface, visiting
// only on VisitEnter and always descending into children.
type VisitorFunc func(n Node)

// Visit implements the Visitor interface for VisitorFunc.
func (f VisitorFunc) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitEnter {
		f(n)
	}
	return f
}

// Walk visits node with Visitor v: it calls Visit on VisitEnter, and if that
// call returns a non-nil Visitor, recursively walks node's children before
// calling Visit again on VisitExit.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node, VisitEnter); v == nil {
		return
	}
	node.Walk(v)
	v.Visit(node, VisitExit)
}
