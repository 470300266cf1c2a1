// Package ttt is a tiny 3x3 tic-tac-toe reference game implementing
// game.Board[int] (move = cell index 0-8), used by this module's own
// tests and cmd/selfplay's default game. Grounded on
// IlikeChooros-go-mcts/examples/tic-tac-toe/ttt: same per-player bitboard
// and winning-pattern-mask approach, but collapsed into a single package
// (no separate history/termination types) since this module's search
// clones boards instead of undoing moves.
package ttt

import "github.com/dendrozero/engine/game"

// winPatterns are the eight ways to fill three cells in a row, encoded as
// bitmasks over a 9-bit board, identical to
// ttt/terminations.go's _winningBitboardPatterns.
var winPatterns = [8]uint16{
	0b111000000, 0b000111000, 0b000000111,
	0b100100100, 0b010010010, 0b001001001,
	0b100010001, 0b001010100,
}

// Board is a 3x3 tic-tac-toe position: two bitboards (one per player) plus
// whose turn it is.
type Board struct {
	marks  [2]uint16 // marks[0] = PlayerA's cells, marks[1] = PlayerB's
	toMove game.Player
}

// New returns an empty board with PlayerA to move.
func New() *Board {
	return &Board{toMove: game.PlayerA}
}

func (b *Board) NextPlayer() game.Player { return b.toMove }

func (b *Board) occupied() uint16 { return b.marks[0] | b.marks[1] }

func (b *Board) wins(player uint16) bool {
	for _, pat := range winPatterns {
		if player&pat == pat {
			return true
		}
	}
	return false
}

func (b *Board) Outcome() game.Outcome {
	if b.wins(b.marks[0]) {
		return game.WonByA
	}
	if b.wins(b.marks[1]) {
		return game.WonByB
	}
	if b.occupied() == 0b111111111 {
		return game.Draw
	}
	return game.NoOutcome
}

// Moves returns every empty cell index, in ascending order.
func (b *Board) Moves() []int {
	occ := b.occupied()
	var out []int
	for i := 0; i < 9; i++ {
		if occ&(1<<uint(i)) == 0 {
			out = append(out, i)
		}
	}
	return out
}

// Play marks cell m for the side to move. Panics if the cell is already
// occupied — a contract violation, since Play is only ever called with a
// move drawn from this same board's Moves().
func (b *Board) Play(m int) {
	if b.occupied()&(1<<uint(m)) != 0 {
		panic("ttt: Play called on an occupied cell")
	}
	idx := 0
	if b.toMove == game.PlayerB {
		idx = 1
	}
	b.marks[idx] |= 1 << uint(m)
	b.toMove = b.toMove.Opponent()
}

func (b *Board) Clone() game.Board[int] {
	cp := *b
	return &cp
}

// Encode returns the board as 18 floats: 9 cells from PlayerA's
// perspective, then 9 from PlayerB's — a minimal feature plane a network
// would consume, in the spirit of Elvenson-alphabeth/game/encoding.go's
// per-square plane encoding.
func (b *Board) Encode() []float32 {
	out := make([]float32, 18)
	for i := 0; i < 9; i++ {
		if b.marks[0]&(1<<uint(i)) != 0 {
			out[i] = 1
		}
		if b.marks[1]&(1<<uint(i)) != 0 {
			out[9+i] = 1
		}
	}
	return out
}
