package mcts

import "fmt"

// Config bundles the knobs a search needs, mirroring
// IlikeChooros-go-mcts/pkg/mcts/vars.go's package-level tunables but
// grouped into one value instead of package globals, since this module's
// selfplay harness runs many trees concurrently with potentially different
// settings per worker.
type Config struct {
	// Iterations is the number of simulations run per move.
	Iterations int

	// BatchSize is how many leaves the batched driver collects before
	// calling the evaluator. 1 degenerates to the unbatched walk.
	BatchSize int

	// CPuct scales the exploration term in the PUCT formula.
	CPuct float32

	// DirichletAlpha and DirichletWeight configure root exploration noise.
	// DirichletWeight 0 (the default) disables noise entirely — see
	// AddDirichletNoise.
	DirichletAlpha  float64
	DirichletWeight float64

	// MoveCountThreshold is the ply number strictly below which move
	// selection samples proportional to visit counts; at or above it,
	// selection is greedy argmax.
	MoveCountThreshold int
}

// DefaultConfig mirrors the constants alphabeth hardcodes in
// mcts/tree.go's New (cPUCT, a plain 1.0) and the AlphaZero paper's usual
// self-play defaults for the rest.
func DefaultConfig() Config {
	return Config{
		Iterations:         800,
		BatchSize:          8,
		CPuct:              1.0,
		DirichletAlpha:     0.3,
		DirichletWeight:    0,
		MoveCountThreshold: 30,
	}
}

// IsValid reports whether c can be used to drive a search, following the
// teacher's pattern of validating config before use rather than failing
// deep inside a search loop (agogo's dualnet/config.go's Validate).
func (c Config) IsValid() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("mcts: Iterations must be positive, got %d", c.Iterations)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("mcts: BatchSize must be positive, got %d", c.BatchSize)
	}
	if c.CPuct <= 0 {
		return fmt.Errorf("mcts: CPuct must be positive, got %f", c.CPuct)
	}
	if c.DirichletWeight < 0 || c.DirichletWeight > 1 {
		return fmt.Errorf("mcts: DirichletWeight must be in [0,1], got %f", c.DirichletWeight)
	}
	if c.DirichletWeight > 0 && c.DirichletAlpha <= 0 {
		return fmt.Errorf("mcts: DirichletAlpha must be positive when DirichletWeight > 0, got %f", c.DirichletAlpha)
	}
	if c.MoveCountThreshold < 0 {
		return fmt.Errorf("mcts: MoveCountThreshold must be non-negative, got %d", c.MoveCountThreshold)
	}
	return nil
}
