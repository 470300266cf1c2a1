package selfplay

import "sync/atomic"

// gameCounter hands out game indices to workers on demand, the
// work-stealing counterpart to VersusArena's fixed nGames/NThreads split
// (IlikeChooros-go-mcts/pkg/bench/versus_arena.go): instead of
// pre-dividing GameCount across workers, every worker claims the next
// index as it finishes its previous game, so a worker stuck on a long game
// doesn't leave others idle near the end of the run.
type gameCounter struct {
	next  int32
	total int32
}

func newGameCounter(total int) *gameCounter {
	return &gameCounter{total: int32(total)}
}

// claim returns the next game index and true, or (0, false) once every
// game has been claimed.
func (c *gameCounter) claim() (int, bool) {
	i := atomic.AddInt32(&c.next, 1) - 1
	if i >= c.total {
		return 0, false
	}
	return int(i), true
}

// Progress is a periodic throughput snapshot a worker reports to the
// collector, grounded on VersusArenaStats's atomic win/draw counters but
// tracking search cost (evaluator calls, moves played) instead of game
// outcomes, since outcomes here feed straight into value targets rather
// than a tournament scoreboard.
type Progress struct {
	WorkerID  int
	GameIndex int
	Moves     int
	Evals     int
}
