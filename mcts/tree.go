package mcts

import (
	"fmt"

	"github.com/dendrozero/engine/game"
)

// Tree is the packed, index-addressed arena the search walks, grounded on
// Elvenson-alphabeth/mcts/tree.go's nodes []Node arena (there addressed by
// naughty, here by NodeIndex) and on IlikeChooros-go-mcts/pkg/mcts's
// children_start/children_length contiguous child layout, which this
// module uses literally instead of alphabeth's separate
// children [][]naughty side table — one fewer allocation per expansion.
type Tree[M comparable] struct {
	RootBoard game.Board[M]
	Nodes     []Node[M]
}

// MoveWithPrior pairs a legal move with the network's prior probability for
// it, the shape ExpandNode/push_children consume.
type MoveWithPrior[M comparable] struct {
	Move  M
	Prior float32
}

// New creates a tree with a single, unexpanded root. Panics if the root is
// already terminal — starting a search from a decided position is a
// contract violation, not a runtime condition to handle gracefully.
func New[M comparable](root game.Board[M]) *Tree[M] {
	if root.Outcome() != game.NoOutcome {
		panic("mcts: New called with a terminal root board")
	}
	t := &Tree[M]{
		RootBoard: root,
		Nodes:     make([]Node[M], 1, 1024),
	}
	return t
}

// Get returns a pointer to the node at idx. Out-of-range access is a
// programmer error (arena corruption) — it aborts rather than returning
// an error.
func (t *Tree[M]) Get(idx NodeIndex) *Node[M] {
	if idx < 0 || int(idx) >= len(t.Nodes) {
		panic(fmt.Sprintf("mcts: node index %d out of range [0,%d)", idx, len(t.Nodes)))
	}
	return &t.Nodes[idx]
}

// Root is shorthand for Get(RootIndex).
func (t *Tree[M]) Root() *Node[M] { return t.Get(RootIndex) }

// PushChildren allocates a contiguous run of children for parent and wires
// up parent's ChildrenStart/ChildrenLength. Fails if parent already has
// children or movesWithPriors is empty.
func (t *Tree[M]) PushChildren(parent NodeIndex, movesWithPriors []MoveWithPrior[M]) error {
	p := t.Get(parent)
	if p.Expanded() {
		return fmt.Errorf("mcts: node %d already has children", parent)
	}
	if len(movesWithPriors) == 0 {
		return fmt.Errorf("mcts: PushChildren called with no moves")
	}

	start := NodeIndex(len(t.Nodes))
	for _, mp := range movesWithPriors {
		t.Nodes = append(t.Nodes, Node[M]{
			Move:        mp.Move,
			PolicyPrior: mp.Prior,
		})
	}

	// Re-fetch: the append above may have reallocated the backing array.
	p = t.Get(parent)
	p.ChildrenStart = start
	p.ChildrenLength = int32(len(movesWithPriors))
	return nil
}

// Children returns the index range of a node's children, empty if
// unexpanded.
func (t *Tree[M]) Children(idx NodeIndex) []NodeIndex {
	n := t.Get(idx)
	if !n.Expanded() {
		return nil
	}
	out := make([]NodeIndex, n.ChildrenLength)
	for i := range out {
		out[i] = n.ChildrenStart + NodeIndex(i)
	}
	return out
}

// BestMove returns the index of the root's child with the highest visit
// count, ties broken by lowest child index among the tied maxima —
// arbitrary but stable so tests are reproducible. Returns NoIndex if the
// root has no children.
func (t *Tree[M]) BestMove() NodeIndex {
	root := t.Root()
	if !root.Expanded() {
		return NoIndex
	}
	best := NoIndex
	var bestVisits int32 = -1
	for i := int32(0); i < root.ChildrenLength; i++ {
		idx := root.ChildrenStart + NodeIndex(i)
		if v := t.Get(idx).Visits; v > bestVisits {
			bestVisits = v
			best = idx
		}
	}
	return best
}

// MoveVisits pairs a move with its normalized visit share — the training
// policy target.
type MoveVisits[M comparable] struct {
	Move   M
	Visits int32
	Share  float32
}

// PolicyTarget returns (move, visits, share) for every child of the root,
// where share is the child's visits over the summed visits of all root
// children, so the shares sum to 1. The root's own expansion visit is not
// part of that sum. If no child has been visited yet (a one-iteration
// search), every share is 0. Returns nil if the root has zero visits or no
// children.
func (t *Tree[M]) PolicyTarget() []MoveVisits[M] {
	root := t.Root()
	if !root.Expanded() || root.Visits == 0 {
		return nil
	}
	var childVisits int32
	for i := int32(0); i < root.ChildrenLength; i++ {
		childVisits += t.Get(root.ChildrenStart + NodeIndex(i)).Visits
	}
	out := make([]MoveVisits[M], root.ChildrenLength)
	for i := int32(0); i < root.ChildrenLength; i++ {
		idx := root.ChildrenStart + NodeIndex(i)
		child := t.Get(idx)
		var share float32
		if childVisits > 0 {
			share = float32(child.Visits) / float32(childVisits)
		}
		out[i] = MoveVisits[M]{
			Move:   child.Move,
			Visits: child.Visits,
			Share:  share,
		}
	}
	return out
}
