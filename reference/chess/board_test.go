package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendrozero/engine/game"
)

func TestNewBoardHasTwentyOpeningMoves(t *testing.T) {
	b := New()
	assert.Len(t, b.Moves(), 20)
	assert.Equal(t, game.PlayerA, b.NextPlayer())
	assert.Equal(t, game.NoOutcome, b.Outcome())
}

func TestPlayAdvancesTurn(t *testing.T) {
	b := New()
	moves := b.Moves()
	require.NotEmpty(t, moves)
	b.Play(moves[0])
	assert.Equal(t, game.PlayerB, b.NextPlayer())
}

func TestCloneDoesNotAffectOriginal(t *testing.T) {
	b := New()
	moves := b.Moves()
	clone := b.Clone()
	clone.Play(moves[0])

	assert.Equal(t, game.PlayerA, b.NextPlayer())
	assert.Equal(t, game.PlayerB, clone.NextPlayer())
}

func TestIllegalMovePanics(t *testing.T) {
	b := New()
	assert.Panics(t, func() { b.Play("e2e5") })
}
