package selfplay

import (
	"log"

	"github.com/hashicorp/go-multierror"
)

// Sink persists finished simulations — an output file, a database, a
// training queue. Kept minimal and caller-supplied rather than baked into
// the collector, since this module has no opinion on the production
// destination.
type Sink[M comparable] interface {
	Write(Simulation[M]) error
	Close() error
}

// collector is the single consumer draining every worker's output and
// progress channels, the counterpart to
// Elvenson-alphabeth/arena.go's Play() loop logging one line per move: here
// one line per finished game, plus a running evaluator-call tally used to
// gauge self-play throughput.
type collector[M comparable] struct {
	sink      Sink[M]
	logger    *log.Logger
	games     int
	totalEval int64
}

func newCollector[M comparable](sink Sink[M], logger *log.Logger) *collector[M] {
	return &collector[M]{sink: sink, logger: logger}
}

// run drains sims and progress until both channels close, then closes the
// sink and returns any write or close errors aggregated together — go-
// multierror.Append, exactly as Elvenson-alphabeth/agent.go's Close
// aggregates per-inferer shutdown errors.
func (c *collector[M]) run(sims <-chan Simulation[M], progress <-chan Progress) error {
	var errs error
	simsOpen, progressOpen := true, true

	for simsOpen || progressOpen {
		select {
		case sim, ok := <-sims:
			if !ok {
				simsOpen = false
				sims = nil
				continue
			}
			if err := c.sink.Write(sim); err != nil {
				errs = multierror.Append(errs, err)
			}
			c.games++

		case p, ok := <-progress:
			if !ok {
				progressOpen = false
				progress = nil
				continue
			}
			c.totalEval += int64(p.Evals)
			if c.logger != nil {
				c.logger.Printf("worker %d finished game %d (%d moves, %d evals) | total games %d, total evals %d",
					p.WorkerID, p.GameIndex, p.Moves, p.Evals, c.games, c.totalEval)
			}
		}
	}

	if err := c.sink.Close(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs
}
