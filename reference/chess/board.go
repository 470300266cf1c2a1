// Package chess adapts github.com/notnil/chess to game.Board[string],
// using UCI move strings as the move type. Adapted from
// Elvenson-alphabeth/game/chess.go's Chess type, which wraps the same
// library but additionally maintains a fixed action-space index (a
// scanned move-list file mapping every UCI string the training NN's
// output layer could emit to an index) and an undo-capable move history.
// Neither survives here: this module's Board doesn't need a fixed action
// space (Evaluation.Policy is a map keyed by the move itself, see
// game.Evaluator), and the search never undoes a move on the live board —
// it works on clones (see mcts's descend) — so a history stack would just
// be dead weight.
package chess

import (
	"github.com/notnil/chess"

	"github.com/dendrozero/engine/game"
)

// Board wraps a single *chess.Game. Clone deep-copies it so the search can
// walk speculative lines without disturbing the game actually being
// played.
type Board struct {
	g *chess.Game
}

// New starts a fresh game from the standard starting position.
func New() *Board {
	return &Board{g: chess.NewGame(chess.UseNotation(chess.UCINotation{}))}
}

func (b *Board) NextPlayer() game.Player {
	if b.g.Position().Turn() == chess.White {
		return game.PlayerA
	}
	return game.PlayerB
}

func (b *Board) Outcome() game.Outcome {
	switch b.g.Outcome() {
	case chess.NoOutcome:
		return game.NoOutcome
	case chess.Draw:
		return game.Draw
	case chess.WhiteWon:
		return game.WonByA
	default: // chess.BlackWon
		return game.WonByB
	}
}

func (b *Board) Moves() []string {
	valid := b.g.ValidMoves()
	out := make([]string, len(valid))
	for i, m := range valid {
		out[i] = m.String()
	}
	return out
}

// Play applies a move given in UCI notation. Panics on an illegal or
// malformed move — a contract violation, since Play is only ever called
// with a move drawn from this same board's own Moves() or a tree node's
// recorded Move.
func (b *Board) Play(m string) {
	if err := b.g.MoveStr(m); err != nil {
		panic("chess: illegal move " + m + ": " + err.Error())
	}
}

func (b *Board) Clone() game.Board[string] {
	return &Board{g: b.g.Clone()}
}

// String renders the position in Forsyth-Edwards notation, useful for
// logging and for ExportDOT move labels in a pinch.
func (b *Board) String() string {
	return b.g.Position().String()
}
