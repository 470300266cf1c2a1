package selfplay

import (
	"log"
	"os"
	"runtime"
	"sync"

	"github.com/pkg/errors"

	"github.com/dendrozero/engine/game"
)

// Harness wires a Config, a game factory, an evaluator, an encoder, and a
// Sink into a running self-play job — the module's counterpart to
// Elvenson-alphabeth/agogo.go's AZ, minus the training step that file
// bundles in.
type Harness[M comparable] struct {
	cfg       Config
	newRoot   func() game.Board[M]
	evaluator game.Evaluator[M]
	encoder   Encoder[M]
	sink      Sink[M]
	logger    *log.Logger
}

// New constructs a Harness. If logger is nil, New builds its own stderr
// logger with a "selfplay: " prefix, the same fallback Elvenson-alphabeth/arena.go's NewArena effectively applies
// by always constructing its own *log.Logger.
func New[M comparable](cfg Config, newRoot func() game.Board[M], evaluator game.Evaluator[M], encoder Encoder[M], sink Sink[M], logger *log.Logger) (*Harness[M], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if newRoot == nil {
		return nil, errors.New("selfplay: newRoot must not be nil")
	}
	if evaluator == nil {
		return nil, errors.New("selfplay: evaluator must not be nil")
	}
	if sink == nil {
		return nil, errors.New("selfplay: sink must not be nil")
	}
	if logger == nil {
		logger = log.New(os.Stderr, "selfplay: ", log.Ltime)
	}
	return &Harness[M]{
		cfg:       cfg,
		newRoot:   newRoot,
		evaluator: evaluator,
		encoder:   encoder,
		sink:      sink,
		logger:    logger,
	}, nil
}

// Run spawns cfg.Workers goroutines (GOMAXPROCS(0) if unset) against a
// shared gameCounter and a single collector, blocking until every game has
// been played and every result written. Returns the collector's
// aggregated write/close errors, if any.
func (h *Harness[M]) Run() error {
	workers := h.cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	sims := make(chan Simulation[M], workers)
	progress := make(chan Progress, workers)
	counter := newGameCounter(h.cfg.GameCount)

	col := newCollector[M](h.sink, h.logger)
	var collectErr error
	var collectWG sync.WaitGroup
	collectWG.Add(1)
	go func() {
		defer collectWG.Done()
		collectErr = col.run(sims, progress)
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		w := newWorker[M](i, h.newRoot, h.evaluator, h.encoder, h.cfg, h.logger, sims, progress)
		go func() {
			defer wg.Done()
			w.run(counter)
		}()
	}
	wg.Wait()
	close(sims)
	close(progress)

	collectWG.Wait()
	return collectErr
}
