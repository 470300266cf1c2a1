package selfplay

import (
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	distrand "golang.org/x/exp/rand"

	"github.com/dendrozero/engine/game"
	"github.com/dendrozero/engine/mcts"
)

// Encoder turns a board into the flat feature vector a network would
// consume. Supplied by the caller per game, the way
// Elvenson-alphabeth/agogo.go's GameEncoder is threaded through Arena.
type Encoder[M comparable] func(game.Board[M]) []float32

// countingEvaluator wraps an Evaluator to tally how many boards actually
// crossed the batched-evaluation boundary, the number Progress reports —
// distinct from move count, since a single move can cost anywhere from 1
// to Iterations evaluator calls depending on collisions and terminal
// hits.
type countingEvaluator[M comparable] struct {
	inner game.Evaluator[M]
	count int64
}

func (c *countingEvaluator[M]) EvaluateBatch(boards []game.Board[M]) ([]game.Evaluation[M], error) {
	atomic.AddInt64(&c.count, int64(len(boards)))
	return c.inner.EvaluateBatch(boards)
}

// randSource adapts a *math/rand.Rand to x/exp/rand.Source so a worker's
// single RNG can drive both mcts.SelectMove and mcts.AddDirichletNoise
// instead of seeding a second generator per move.
type randSource struct{ r *rand.Rand }

func (s randSource) Uint64() uint64 { return s.r.Uint64() }
func (s randSource) Seed(uint64)    {}

// worker plays games claimed from a shared gameCounter until none remain,
// streaming a Simulation per finished game and a Progress snapshot per
// game onto channels a single collector drains — grounded on
// IlikeChooros-go-mcts/pkg/bench/versus_arena.go's per-goroutine worker
// function, adapted from that file's fixed game-range split to claim-as-
// you-go since gameCounter already gives every worker the work-stealing
// behavior.
type worker[M comparable] struct {
	id        int
	newRoot   func() game.Board[M]
	evaluator *countingEvaluator[M]
	encoder   Encoder[M]
	mctsCfg   mcts.Config
	threshold int
	rng       *rand.Rand
	logger    *log.Logger

	out      chan<- Simulation[M]
	progress chan<- Progress
}

func newWorker[M comparable](id int, newRoot func() game.Board[M], evaluator game.Evaluator[M], encoder Encoder[M], cfg Config, logger *log.Logger, out chan<- Simulation[M], progress chan<- Progress) *worker[M] {
	return &worker[M]{
		id:        id,
		newRoot:   newRoot,
		evaluator: &countingEvaluator[M]{inner: evaluator},
		encoder:   encoder,
		mctsCfg:   cfg.MCTS,
		threshold: cfg.MoveCountThreshold,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano() ^ int64(id)<<32)),
		logger:    logger,
		out:       out,
		progress:  progress,
	}
}

// run drains counter, playing and emitting one Simulation per claimed game
// index, until claim() reports no work left. A game that fails to play out
// (an evaluator or search error) is fatal only to this worker: it logs the
// failure and returns without claiming further games, leaving siblings and
// the collector undisturbed.
func (w *worker[M]) run(counter *gameCounter) {
	for {
		idx, ok := counter.claim()
		if !ok {
			return
		}
		before := atomic.LoadInt64(&w.evaluator.count)
		sim, err := w.playOne()
		after := atomic.LoadInt64(&w.evaluator.count)

		if err != nil {
			if w.logger != nil {
				w.logger.Printf("worker %d: game %d failed, worker exiting: %v", w.id, idx, err)
			}
			return
		}

		w.out <- sim
		w.progress <- Progress{
			WorkerID:  w.id,
			GameIndex: idx,
			Moves:     len(sim.Positions),
			Evals:     int(after - before),
		}
	}
}

// playOne plays a single game to completion, recording one Position per
// ply and backfilling value targets from the final outcome.
func (w *worker[M]) playOne() (Simulation[M], error) {
	board := w.newRoot()
	var positions []Position[M]
	ply := 0

	for board.Outcome() == game.NoOutcome {
		tree := mcts.New[M](board)
		mainCfg := w.mctsCfg
		if w.mctsCfg.DirichletWeight > 0 {
			// Root noise is an exploration device for the move actually
			// played, so the tree needs at least one expansion before
			// AddDirichletNoise has priors to perturb. A single throwaway
			// iteration buys that; it's deducted from the main search's
			// budget below so total root visits still equal
			// w.mctsCfg.Iterations.
			warmup := w.mctsCfg
			warmup.Iterations = 1
			if err := mcts.SearchBatched(tree, w.evaluator, warmup); err != nil {
				return Simulation[M]{}, errors.Wrap(err, "selfplay: warmup search failed")
			}
			mcts.AddDirichletNoise(tree, w.mctsCfg, randSource{w.rng})
			mainCfg.Iterations = w.mctsCfg.Iterations - 1
			if mainCfg.Iterations < 0 {
				mainCfg.Iterations = 0
			}
		}
		if err := mcts.SearchBatched(tree, w.evaluator, mainCfg); err != nil {
			return Simulation[M]{}, errors.Wrap(err, "selfplay: search failed")
		}

		policy := tree.PolicyTarget()
		var encoded []float32
		if w.encoder != nil {
			encoded = w.encoder(board)
		}
		positions = append(positions, Position[M]{Encoded: encoded, Policy: policy})

		selCfg := w.mctsCfg
		selCfg.MoveCountThreshold = w.threshold
		_, move := mcts.SelectMove(tree, selCfg, ply, w.rng)
		board.Play(move)
		ply++
	}

	outcome := board.Outcome()
	// The last recorded position was played by the opponent of whoever is
	// "to move" on the now-terminal board.
	lastMover := board.NextPlayer().Opponent()
	backfillValues(positions, outcome.Sign(lastMover))

	return Simulation[M]{Positions: positions}, nil
}
