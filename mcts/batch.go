package mcts

import "github.com/dendrozero/engine/game"

// pendingWalk is one leaf collected into the current batch, awaiting
// evaluation.
type pendingWalk[M comparable] struct {
	path  []NodeIndex
	board game.Board[M]
}

// undoVirtualLoss reverts the virtual loss descend added along path,
// used when a walk collides with an already-pending leaf and has to be
// retried rather than counted.
func undoVirtualLoss[M comparable](t *Tree[M], path []NodeIndex) {
	for _, idx := range path {
		t.Get(idx).VirtualLoss--
	}
}

// SearchBatched runs cfg.Iterations simulations, collecting up to
// cfg.BatchSize non-terminal leaves before calling evaluator.EvaluateBatch
// once per batch. This is the production search driver; Search (walk.go)
// is the unbatched reference.
//
// Each collected leaf is marked Pending so a second walk landing on the
// same node within the same batch is detected as a collision (grounded on
// IlikeChooros-go-mcts/pkg/mcts/search.go's GetVvl/collision handling) and
// retried rather than double-counted. Virtual loss, incremented along every
// walk's path as it descends, makes collisions increasingly unlikely as a
// batch fills since it biases PUCT away from nodes other in-flight walks
// have already claimed.
func SearchBatched[M comparable](t *Tree[M], evaluator game.Evaluator[M], cfg Config) error {
	remaining := cfg.Iterations
	for remaining > 0 {
		batchSize := cfg.BatchSize
		if batchSize > remaining {
			batchSize = remaining
		}
		roundStart := remaining

		var pending []pendingWalk[M]
		attempts := 0
		maxAttempts := batchSize*4 + 4

		for len(pending) < batchSize && len(pending) < remaining && attempts < maxAttempts {
			attempts++
			path, board := descend(t, cfg, true)
			leafIdx := path[len(path)-1]
			leaf := t.Get(leafIdx)

			if outcome := board.Outcome(); outcome != game.NoOutcome {
				leaf.Terminal = true
				backup(t, path, terminalValue(outcome, board.NextPlayer()))
				remaining--
				continue
			}

			if leaf.Pending {
				undoVirtualLoss(t, path)
				continue
			}

			leaf.Pending = true
			pending = append(pending, pendingWalk[M]{path: path, board: board})
		}

		if len(pending) == 0 {
			// Every walk this round either resolved a terminal or collided
			// with an already-pending leaf and the tree has nothing fresh
			// left to offer within maxAttempts; nothing to evaluate.
			if remaining == roundStart {
				// Made zero progress this round — avoid spinning forever.
				break
			}
			continue
		}

		boards := make([]game.Board[M], len(pending))
		for i, p := range pending {
			boards[i] = p.board
		}
		evals, err := evaluator.EvaluateBatch(boards)
		if err != nil {
			return err
		}

		for i, p := range pending {
			leafIdx := p.path[len(p.path)-1]
			leaf := t.Get(leafIdx)
			leaf.Pending = false
			value := expandLeaf(t, p.path, p.board, evals[i])
			backup(t, p.path, value)
			remaining--
		}
	}
	return nil
}
