// Command selfplay runs a self-play job against the tic-tac-toe reference
// game and writes the resulting positions as JSON lines. Mirrors
// Elvenson-alphabeth/cmd/train/main.go's role as the top-level driver,
// minus the actual training step and minus that file's HDFS upload, which
// had no equivalent destination here and nothing else in the corpus to
// ground a replacement on.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/dendrozero/engine/game"
	"github.com/dendrozero/engine/mcts"
	"github.com/dendrozero/engine/reference/ttt"
	"github.com/dendrozero/engine/selfplay"
)

var (
	games      = flag.Int("games", 20, "number of self-play games to run")
	workers    = flag.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	iterations = flag.Int("iterations", 200, "MCTS iterations per move")
	batchSize  = flag.Int("batch_size", 8, "leaves collected per evaluator call")
	cPuct      = flag.Float64("c_puct", 1.0, "PUCT exploration constant")
	outputPath = flag.String("output", "positions.jsonl", "output JSON-lines path")
	threshold  = flag.Int("move_count_threshold", 6, "ply below which move selection samples rather than argmaxes")
)

// uniformEvaluator stands in for a trained network: no training is shipped
// here, but the search needs *an* Evaluator to run against, so this
// returns a flat value and a uniform policy over legal moves, the same
// placeholder role agogo.go's dual.New(conf) NN would otherwise fill
// before any training has happened.
type uniformEvaluator struct{}

func (uniformEvaluator) EvaluateBatch(boards []game.Board[int]) ([]game.Evaluation[int], error) {
	out := make([]game.Evaluation[int], len(boards))
	for i, b := range boards {
		moves := b.Moves()
		policy := make(map[int]float32, len(moves))
		for _, m := range moves {
			policy[m] = 1 / float32(len(moves))
		}
		out[i] = game.Evaluation[int]{Value: 0, Policy: policy}
	}
	return out, nil
}

func moveLabel(m int) string { return fmt.Sprintf("%d", m) }

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime)

	cfg := selfplay.Config{
		GameCount:          *games,
		Workers:            *workers,
		MoveCountThreshold: *threshold,
		MCTS: mcts.Config{
			Iterations:         *iterations,
			BatchSize:          *batchSize,
			CPuct:              float32(*cPuct),
			MoveCountThreshold: *threshold,
		},
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("selfplay: bad config: %v", err)
	}

	f, err := os.Create(*outputPath)
	if err != nil {
		log.Fatalf("selfplay: opening output file: %v", err)
	}
	sink := selfplay.NewJSONLSink[int](f, moveLabel)

	newRoot := func() game.Board[int] { return ttt.New() }
	encoder := func(b game.Board[int]) []float32 { return b.(*ttt.Board).Encode() }

	h, err := selfplay.New[int](cfg, newRoot, uniformEvaluator{}, encoder, sink, log.Default())
	if err != nil {
		log.Fatalf("selfplay: bad config: %v", err)
	}

	resolvedWorkers := cfg.Workers
	if resolvedWorkers == 0 {
		resolvedWorkers = runtime.GOMAXPROCS(0)
	}
	log.Printf("running %d self-play games across %d workers", cfg.GameCount, resolvedWorkers)
	if err := h.Run(); err != nil {
		log.Fatalf("selfplay: run failed: %v", err)
	}
	log.Printf("wrote positions to %s", *outputPath)
}
