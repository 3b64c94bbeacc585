package ast

import "reflect"

// Visitor traverses the owned tree. Visit is called before a node's
// children are offered; returning false skips the subtree. EndVisit is
// called after the children (or immediately, if Visit returned false).
// Visitors passed to Accept may mutate the nodes they are handed; use
// Inspect for read-only traversal.
type Visitor interface {
	Visit(n Node) bool
	EndVisit(n Node)
}

type inspector func(Node) bool

func (f inspector) Visit(n Node) bool { return f(n) }
func (f inspector) EndVisit(Node)     {}

// Inspect traverses the subtree rooted at n in source order, calling f for
// each node. If f returns false the children of the node are skipped.
// The traversal never mutates the tree, so after the mutation passes have
// finished it is safe to run multiple Inspect calls concurrently.
func Inspect(n Node, f func(Node) bool) {
	if isNilNode(n) {
		return
	}
	n.Accept(inspector(f))
}

// acceptList offers an ordered sequence of optionally-absent child slots to
// the visitor, silently skipping absent entries and preserving order.
func acceptList[T Node](v Visitor, list []T) {
	for _, n := range list {
		if !isNilNode(n) {
			n.Accept(v)
		}
	}
}

// acceptChild dispatches into a single optional child slot.
func acceptChild(v Visitor, n Node) {
	if !isNilNode(n) {
		n.Accept(v)
	}
}

// isNilNode also catches typed-nil pointers hiding behind the interface,
// e.g. an absent (*Block)(nil) stored in a Statement slot.
func isNilNode(n Node) bool {
	if n == nil {
		return true
	}
	val := reflect.ValueOf(n)
	return val.Kind() == reflect.Pointer && val.IsNil()
}

// FilteredNodes returns the subsequence of nodes whose dynamic kind is T,
// in the original order. It allocates only the result slice and never
// mutates its input; ContractDefinition derives all of its per-kind member
// views through it so they can never drift from the member list.
func FilteredNodes[T Node](nodes []Node) []T {
	var out []T
	for _, n := range nodes {
		if isNilNode(n) {
			continue
		}
		if t, ok := n.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
