package mcts

// Node is one arena entry. Unlike Elvenson-alphabeth/mcts/node.go's Node
// (guarded by a per-node sync.Mutex for a tree shared across goroutines),
// this Node carries no locking: this module's concurrency model (see
// selfplay's doc comment) gives one tree to exactly one goroutine for its
// whole lifetime, so plain fields suffice. What's kept from alphabeth is
// the shape: a move signature, Q/P/N bookkeeping, and a status flag
// (Terminal here, Status there) checked before expansion.
type Node[M comparable] struct {
	// Move is the move taken from the parent to reach this node. Undefined
	// (zero value) for the root.
	Move M

	// ChildrenStart/ChildrenLength index into the tree's node slice. A zero
	// length means unexpanded.
	ChildrenStart  NodeIndex
	ChildrenLength int32

	// PolicyPrior is P(s,a): the probability the network assigned to this
	// move at the parent, when this node was created.
	PolicyPrior float32

	// NetValue is the value the network returned for this node's board,
	// set once at expansion time. HasNetValue distinguishes "not yet
	// evaluated" from a genuine zero value.
	NetValue    float32
	HasNetValue bool

	// Terminal marks that this node's board had a decided outcome when it
	// was reached. Terminal nodes are never expanded.
	Terminal bool

	// Visits is N(s,a): confirmed backpropagation count (never includes
	// in-flight virtual loss).
	Visits int32

	// TotalValue is W(s,a): the signed sum of backed-up values, from this
	// node's own side-to-move perspective.
	TotalValue float32

	// VirtualLoss counts in-flight batched-driver walks currently claiming
	// this node. Zero outside of a Search call.
	VirtualLoss int32

	// Pending marks an unexpanded node already queued for evaluation in
	// the current batch — the batched driver's collision check.
	Pending bool
}

// Expanded reports whether this node has children.
func (n *Node[M]) Expanded() bool { return n.ChildrenLength > 0 }

// Q returns W/N for a node with at least one real visit, 0 otherwise —
// the plain (non virtual-loss-adjusted) exploitation term.
func (n *Node[M]) Q() float32 {
	if n.Visits == 0 {
		return 0
	}
	return n.TotalValue / float32(n.Visits)
}
