package mcts

import "github.com/dendrozero/engine/game"

// descend walks from the root to a leaf (an unexpanded node, terminal or
// not) by repeatedly selecting the highest-PUCT child. virtualLoss, when
// true, increments VirtualLoss on every node along the path as it's
// claimed — the batched driver's collision-avoidance device; the
// unbatched walk doesn't need it but passing true is harmless since each
// walk runs to completion (collect + backup) before the next starts.
//
// Returns the path from root to leaf (inclusive) and the leaf's board,
// reconstructed by replaying each step's move onto a clone of the root.
func descend[M comparable](t *Tree[M], cfg Config, virtualLoss bool) ([]NodeIndex, game.Board[M]) {
	path := []NodeIndex{RootIndex}
	board := t.RootBoard.Clone()

	idx := NodeIndex(RootIndex)
	if virtualLoss {
		t.Get(idx).VirtualLoss++
	}

	for {
		node := t.Get(idx)
		if node.Terminal || !node.Expanded() {
			break
		}
		child := selectChild(t, idx, cfg.CPuct)
		board.Play(t.Get(child).Move)
		path = append(path, child)
		idx = child
		if virtualLoss {
			t.Get(idx).VirtualLoss++
		}
	}
	return path, board
}

// expandLeaf evaluates board (the leaf reached by path) and expands the
// node with the network's priors. Returns the value to back up, from the
// leaf's own side-to-move perspective.
func expandLeaf[M comparable](t *Tree[M], path []NodeIndex, board game.Board[M], eval game.Evaluation[M]) float32 {
	leafIdx := path[len(path)-1]
	leaf := t.Get(leafIdx)

	moves := board.Moves()
	priors := make([]float32, len(moves))
	for i, m := range moves {
		priors[i] = eval.Policy[m]
	}
	normalizePriors(priors)

	children := make([]MoveWithPrior[M], len(moves))
	for i, m := range moves {
		children[i] = MoveWithPrior[M]{Move: m, Prior: priors[i]}
	}
	if err := t.PushChildren(leafIdx, children); err != nil {
		panic("mcts: expandLeaf: " + err.Error())
	}
	// Re-fetch: PushChildren may have reallocated the node slice.
	leaf = t.Get(leafIdx)
	leaf.NetValue = eval.Value
	leaf.HasNetValue = true
	return eval.Value
}

// terminalValue returns the leaf's own-perspective value for a decided
// board: the outcome as seen by the player who would have moved next, had
// the game not ended.
func terminalValue(o game.Outcome, toMove game.Player) float32 {
	return o.Sign(toMove)
}

// backup propagates value up path, negating at every step: the leaf
// itself receives value unnegated, and each ancestor receives the
// negation of its child's contribution, since adjacent nodes on a path
// always have opposite side-to-move. Each node on path also releases the
// one unit of virtual loss this walk's descend added to it (a no-op for
// unbatched walks, which add none).
func backup[M comparable](t *Tree[M], path []NodeIndex, value float32) {
	for i := len(path) - 1; i >= 0; i-- {
		n := t.Get(path[i])
		n.Visits++
		n.TotalValue += value
		if n.VirtualLoss > 0 {
			n.VirtualLoss--
		}
		value = -value
	}
}

// Search runs cfg.Iterations single-leaf simulations against evaluator,
// growing t in place. It's the unbatched reference implementation —
// BatchSize in cfg is ignored. SearchBatched in batch.go is the
// production driver; Search exists for BatchSize==1 callers and as the
// ground truth batched-vs-unbatched equivalence tests compare against.
func Search[M comparable](t *Tree[M], evaluator game.Evaluator[M], cfg Config) error {
	for i := 0; i < cfg.Iterations; i++ {
		path, board := descend(t, cfg, false)
		leafIdx := path[len(path)-1]
		leaf := t.Get(leafIdx)

		if outcome := board.Outcome(); outcome != game.NoOutcome {
			leaf.Terminal = true
			backup(t, path, terminalValue(outcome, board.NextPlayer()))
			continue
		}

		evals, err := evaluator.EvaluateBatch([]game.Board[M]{board})
		if err != nil {
			return err
		}
		value := expandLeaf(t, path, board, evals[0])
		backup(t, path, value)
	}
	return nil
}
