package selfplay

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/dendrozero/engine/mcts"
)

// Position is one training example: a board encoding, the search's visit
// distribution over root moves at that ply, and (once the game finishes)
// the outcome as seen by the player to move at that ply. Mirrors
// Elvenson-alphabeth/agogo.go's Example, split into a move-type-generic
// shape since this module's games aren't fixed to one board encoding.
type Position[M comparable] struct {
	Encoded []float32
	Policy  []mcts.MoveVisits[M]
	Value   float32
}

// Simulation is one complete game's worth of positions, produced by a
// single worker.
type Simulation[M comparable] struct {
	Positions []Position[M]
}

// backfillValues assigns Value on every position from outcome, alternating
// sign the way the same single-negation convention does in mcts's backup:
// the last position (closest to the decided result) gets outcome.Sign
// from its own mover's perspective, and each position before it gets the
// negation of the one after, since movers alternate every ply.
func backfillValues[M comparable](positions []Position[M], lastMoverSign float32) {
	sign := lastMoverSign
	for i := len(positions) - 1; i >= 0; i-- {
		positions[i].Value = sign
		sign = -sign
	}
}

// EncodedBatch stacks a set of equal-length board encodings into a
// *tensor.Dense of shape (N, featureLen), the input tensor a training step
// would consume — grounded on Elvenson-alphabeth/agogo.go's
// prepareExamples, which does the identical backing-slice-then-WithShape
// construction for its own Xs tensor.
func EncodedBatch(encoded [][]float32) (*tensor.Dense, error) {
	if len(encoded) == 0 {
		return nil, errors.New("selfplay: EncodedBatch called with no positions")
	}
	featureLen := len(encoded[0])
	backing := make([]float32, 0, len(encoded)*featureLen)
	for i, e := range encoded {
		if len(e) != featureLen {
			return nil, errors.Errorf("selfplay: position %d has %d features, want %d", i, len(e), featureLen)
		}
		backing = append(backing, e...)
	}
	return tensor.New(tensor.WithBacking(backing), tensor.WithShape(len(encoded), featureLen)), nil
}

// ValueBatch stacks value targets into a *tensor.Dense of shape (N,).
func ValueBatch(values []float32) *tensor.Dense {
	backing := make([]float32, len(values))
	copy(backing, values)
	return tensor.New(tensor.WithBacking(backing), tensor.WithShape(len(values)))
}

// PolicyBatch scatters each position's sparse visit distribution into a
// dense (N, actionSpace) tensor, using moveIndex to map a move to its
// column — the generic counterpart of agogo.go's Policies tensor, which
// could assume a fixed action space because alphabeth only ever played
// chess.
func PolicyBatch[M comparable](policies [][]mcts.MoveVisits[M], moveIndex func(M) int, actionSpace int) (*tensor.Dense, error) {
	if len(policies) == 0 {
		return nil, errors.New("selfplay: PolicyBatch called with no positions")
	}
	backing := make([]float32, len(policies)*actionSpace)
	for row, mv := range policies {
		base := row * actionSpace
		for _, entry := range mv {
			col := moveIndex(entry.Move)
			if col < 0 || col >= actionSpace {
				return nil, errors.Errorf("selfplay: move index %d out of range [0,%d)", col, actionSpace)
			}
			backing[base+col] = entry.Share
		}
	}
	return tensor.New(tensor.WithBacking(backing), tensor.WithShape(len(policies), actionSpace)), nil
}
