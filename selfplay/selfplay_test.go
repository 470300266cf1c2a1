package selfplay

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendrozero/engine/game"
	"github.com/dendrozero/engine/mcts"
)

// countdownBoard ends exactly depth plies after creation; whoever makes
// the final move wins. Single move "advance" keeps the action space
// trivial so tests exercise harness plumbing, not search quality.
type countdownBoard struct {
	remaining int
	toMove    game.Player
}

func newCountdownBoard(depth int) *countdownBoard {
	return &countdownBoard{remaining: depth, toMove: game.PlayerA}
}

func (b *countdownBoard) NextPlayer() game.Player { return b.toMove }

func (b *countdownBoard) Outcome() game.Outcome {
	if b.remaining > 0 {
		return game.NoOutcome
	}
	// The player who just moved (opponent of toMove) made the last move
	// and wins.
	if b.toMove == game.PlayerA {
		return game.WonByB
	}
	return game.WonByA
}

func (b *countdownBoard) Moves() []int { return []int{0} }

func (b *countdownBoard) Play(int) {
	b.remaining--
	b.toMove = b.toMove.Opponent()
}

func (b *countdownBoard) Clone() game.Board[int] {
	cp := *b
	return &cp
}

type fixedEvaluator struct{}

func (fixedEvaluator) EvaluateBatch(boards []game.Board[int]) ([]game.Evaluation[int], error) {
	out := make([]game.Evaluation[int], len(boards))
	for i, b := range boards {
		out[i] = game.Evaluation[int]{Value: 0, Policy: map[int]float32{0: 1}}
		_ = b
	}
	return out, nil
}

// failingEvaluator errors on every call, standing in for a transient
// evaluator outage.
type failingEvaluator struct{}

func (failingEvaluator) EvaluateBatch([]game.Board[int]) ([]game.Evaluation[int], error) {
	return nil, errors.New("evaluator unavailable")
}

type memSink struct {
	mu     sync.Mutex
	sims   []Simulation[int]
	closed bool
}

func (s *memSink) Write(sim Simulation[int]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sims = append(s.sims, sim)
	return nil
}

func (s *memSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func testMCTSConfig() mcts.Config {
	cfg := mcts.DefaultConfig()
	cfg.Iterations = 8
	cfg.BatchSize = 2
	return cfg
}

func TestHarnessRunProducesOneSimPerGame(t *testing.T) {
	sink := &memSink{}
	cfg := Config{
		GameCount: 5,
		Workers:   2,
		MCTS:      testMCTSConfig(),
	}
	h, err := New[int](cfg, func() game.Board[int] { return newCountdownBoard(3) }, fixedEvaluator{}, nil, sink, nil)
	require.NoError(t, err)
	require.NoError(t, h.Run())

	assert.Len(t, sink.sims, 5)
	assert.True(t, sink.closed)
	for _, sim := range sink.sims {
		assert.Len(t, sim.Positions, 3)
	}
}

func TestHarnessRunSurvivesWorkerFailure(t *testing.T) {
	sink := &memSink{}
	cfg := Config{
		GameCount: 3,
		Workers:   1,
		MCTS:      testMCTSConfig(),
	}
	h, err := New[int](cfg, func() game.Board[int] { return newCountdownBoard(3) }, failingEvaluator{}, nil, sink, nil)
	require.NoError(t, err)
	require.NoError(t, h.Run())

	assert.Empty(t, sink.sims)
	assert.True(t, sink.closed)
}

func TestPlayOneBackfillsAlternatingValues(t *testing.T) {
	cfg := Config{GameCount: 1, Workers: 1, MCTS: testMCTSConfig()}
	w := newWorker[int](0, func() game.Board[int] { return newCountdownBoard(4) }, fixedEvaluator{}, nil, cfg, nil, make(chan Simulation[int], 1), make(chan Progress, 1))
	sim, err := w.playOne()
	require.NoError(t, err)

	require.Len(t, sim.Positions, 4)
	// Values alternate sign consecutively, magnitude 1 (countdownBoard has
	// no draws).
	for i, p := range sim.Positions {
		assert.InDelta(t, float32(1), abs(p.Value), 1e-6, "position %d", i)
	}
	assert.NotEqual(t, sim.Positions[2].Value, sim.Positions[3].Value)
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{GameCount: 1, MCTS: mcts.DefaultConfig()}
	assert.NoError(t, cfg.Validate())

	bad := cfg
	bad.GameCount = 0
	assert.Error(t, bad.Validate())
}

func TestEncodedBatchShapeMismatch(t *testing.T) {
	_, err := EncodedBatch([][]float32{{1, 2}, {1, 2, 3}})
	assert.Error(t, err)
}

func TestEncodedBatchOK(t *testing.T) {
	tensor, err := EncodedBatch([][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.NotNil(t, tensor)
}

// nopWriteCloser adapts a bytes.Buffer to io.WriteCloser for JSONLSink tests.
type nopWriteCloser struct{ *bytes.Buffer }

func (nopWriteCloser) Close() error { return nil }

func TestJSONLSinkWritesGameEndSentinelPerGame(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := NewJSONLSink[int](nopWriteCloser{buf}, func(m int) string { return strconv.Itoa(m) })

	require.NoError(t, sink.Write(Simulation[int]{Positions: []Position[int]{
		{Value: 1, Policy: []mcts.MoveVisits[int]{{Move: 0, Visits: 1, Share: 1}}},
		{Value: -1, Policy: []mcts.MoveVisits[int]{{Move: 1, Visits: 1, Share: 1}}},
	}}))
	require.NoError(t, sink.Write(Simulation[int]{Positions: []Position[int]{
		{Value: 1, Policy: []mcts.MoveVisits[int]{{Move: 0, Visits: 1, Share: 1}}},
	}}))
	require.NoError(t, sink.Close())

	var records []jsonRecord
	dec := json.NewDecoder(buf)
	for dec.More() {
		var rec jsonRecord
		require.NoError(t, dec.Decode(&rec))
		records = append(records, rec)
	}

	require.Len(t, records, 5) // 2 positions + 1 sentinel, then 1 position + 1 sentinel
	endCount := 0
	for _, rec := range records {
		if rec.GameEnd {
			endCount++
		}
	}
	assert.Equal(t, 2, endCount)
	assert.True(t, records[2].GameEnd)
	assert.Equal(t, 0, records[2].GameIndex)
	assert.True(t, records[4].GameEnd)
	assert.Equal(t, 1, records[4].GameIndex)
}
