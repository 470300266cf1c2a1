package mcts

import (
	"math/rand"
)

// SelectMove picks a root move to actually play: sample proportional to
// visit count while ply is strictly below cfg.MoveCountThreshold (the
// AlphaZero-style exploration phase of a game), and argmax visits from
// ply == cfg.MoveCountThreshold onward (the exploitation phase), with
// ties in the argmax case broken by lowest child index — the same rule
// Tree.BestMove uses, since both are "pick the most-visited child"
// under the hood.
//
// rng is caller-supplied so callers (selfplay workers) can each carry
// their own *rand.Rand instead of contending on the global source, the
// same pattern Elvenson-alphabeth/mcts/tree.go uses for its Dirichlet
// noise draws.
func SelectMove[M comparable](t *Tree[M], cfg Config, ply int, rng *rand.Rand) (NodeIndex, M) {
	root := t.Root()
	if !root.Expanded() {
		var zero M
		return NoIndex, zero
	}

	if ply >= cfg.MoveCountThreshold {
		idx := t.BestMove()
		return idx, t.Get(idx).Move
	}

	total := int32(0)
	for i := int32(0); i < root.ChildrenLength; i++ {
		total += t.Get(root.ChildrenStart + NodeIndex(i)).Visits
	}
	if total == 0 {
		// No simulations landed on any child (the case after a single
		// iteration, which only expands the root): fall back to the first
		// child rather than divide by zero.
		idx := root.ChildrenStart
		return idx, t.Get(idx).Move
	}

	r := rng.Int31n(total)
	var cum int32
	for i := int32(0); i < root.ChildrenLength; i++ {
		idx := root.ChildrenStart + NodeIndex(i)
		cum += t.Get(idx).Visits
		if r < cum {
			return idx, t.Get(idx).Move
		}
	}
	// Unreachable, since r < total and cum ends at total; fall back to the
	// last child so the function always returns a legal move.
	last := root.ChildrenStart + NodeIndex(root.ChildrenLength-1)
	return last, t.Get(last).Move
}
