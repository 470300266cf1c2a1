package ttt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendrozero/engine/game"
)

func TestFreshBoardHasNineMoves(t *testing.T) {
	b := New()
	assert.Len(t, b.Moves(), 9)
	assert.Equal(t, game.NoOutcome, b.Outcome())
}

func TestTopRowWinsForPlayerA(t *testing.T) {
	b := New()
	// A: 0,1,2 (top row). B: 3,4 (irrelevant cells).
	moves := []int{0, 3, 1, 4, 2}
	for _, m := range moves {
		b.Play(m)
	}
	assert.Equal(t, game.WonByA, b.Outcome())
}

func TestDrawnBoard(t *testing.T) {
	b := New()
	// A classic drawn game.
	seq := []int{0, 1, 2, 4, 3, 5, 7, 6, 8}
	for _, m := range seq {
		b.Play(m)
	}
	assert.Equal(t, game.Draw, b.Outcome())
}

func TestPlayOnOccupiedCellPanics(t *testing.T) {
	b := New()
	b.Play(0)
	assert.Panics(t, func() { b.Play(0) })
}

func TestCloneIsIndependent(t *testing.T) {
	b := New()
	b.Play(0)
	clone := b.Clone()
	clone.Play(1)

	require.Len(t, b.Moves(), 8)
	assert.Len(t, clone.Moves(), 7)
}

func TestEncodeLength(t *testing.T) {
	b := New()
	b.Play(4)
	enc := b.Encode()
	require.Len(t, enc, 18)
	assert.Equal(t, float32(1), enc[4])
}
