package ast

// SourceLocation is a half-open byte range [Start, End) inside a named
// source. It is fixed when the node is built and never re-derived.
type SourceLocation struct {
	Start  int
	End    int
	Source string
}

// Node is implemented by every AST node. Identity is the node pointer:
// nodes are never copied, so two distinct instances are never equal.
type Node interface {
	// ID returns an identifier unique within the Run that built the node.
	ID() int64
	Location() SourceLocation
	// Accept performs double dispatch: the node offers its children to the
	// visitor in source order, the visitor decides whether to descend.
	Accept(v Visitor)
	isNode()
}

type nodeBase struct {
	id  int64
	loc SourceLocation
}

func (n *nodeBase) ID() int64                { return n.id }
func (n *nodeBase) Location() SourceLocation { return n.loc }
func (*nodeBase) isNode()                    {}

// Run owns node identity for a single compilation run. Every node is built
// through a Run and receives a monotonically increasing id; discarding the
// Run invalidates all ids it handed out. A fresh Run restarts numbering,
// so ids from different runs must never be mixed.
type Run struct {
	nextID int64
}

// NewRun returns an empty identity pool for one compilation run.
func NewRun() *Run {
	return &Run{}
}

func (r *Run) newNode(loc SourceLocation) nodeBase {
	r.nextID++
	return nodeBase{id: r.nextID, loc: loc}
}

// NodeCount reports how many nodes the run has built so far.
func (r *Run) NodeCount() int64 {
	return r.nextID
}
