// Package selfplay runs many games of self-play concurrently, using a
// shared mcts.Config and game.Evaluator to produce Position, the (board,
// value target, policy target) training triples a network would train
// on.
//
// The concurrency model is one *mcts.Tree per worker goroutine, owned
// exclusively for that worker's lifetime (mcts.Node's doc comment explains
// why its Node/Tree types carry no locking) — workers never share a tree,
// only the Evaluator, which must be safe for concurrent use the way a
// batched GPU inference server naturally is.
package selfplay

import (
	"github.com/pkg/errors"

	"github.com/dendrozero/engine/mcts"
)

// Config bundles everything a Harness needs to run a self-play job,
// mirroring agogo.Config's role in Elvenson-alphabeth/agogo.go (which
// bundles NN/MCTS/encoder config for one AZ instance) but scoped to
// producing training data rather than also owning training.
type Config struct {
	// GameCount is how many complete games to play in total, claimed by
	// Workers on demand rather than pre-split (see gameCounter).
	GameCount int

	// Workers is how many goroutines play games concurrently. Defaults to
	// runtime.GOMAXPROCS(0) if zero.
	Workers int

	// MCTS is the search configuration every worker's tree uses.
	MCTS mcts.Config

	// MoveCountThreshold governs the exploration/exploitation switch in
	// mcts.SelectMove; duplicated here (rather than read off MCTS) so
	// callers can vary it without touching search tuning.
	MoveCountThreshold int
}

// Validate checks a Config before a Harness starts workers against it,
// following agogo.New's pattern of validating nested config structs up
// front and refusing to proceed rather than failing deep inside a worker.
func (c Config) Validate() error {
	if c.GameCount <= 0 {
		return errors.Errorf("selfplay: GameCount must be positive, got %d", c.GameCount)
	}
	if c.Workers < 0 {
		return errors.Errorf("selfplay: Workers must be non-negative, got %d", c.Workers)
	}
	if err := c.MCTS.IsValid(); err != nil {
		return errors.WithMessage(err, "selfplay: invalid MCTS config")
	}
	return nil
}
