package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerOpponent(t *testing.T) {
	assert.Equal(t, PlayerB, PlayerA.Opponent())
	assert.Equal(t, PlayerA, PlayerB.Opponent())
}

func TestOutcomeSign(t *testing.T) {
	assert.Equal(t, float32(1), WonByA.Sign(PlayerA))
	assert.Equal(t, float32(-1), WonByA.Sign(PlayerB))
	assert.Equal(t, float32(1), WonByB.Sign(PlayerB))
	assert.Equal(t, float32(-1), WonByB.Sign(PlayerA))
	assert.Equal(t, float32(0), Draw.Sign(PlayerA))
	assert.Equal(t, float32(0), Draw.Sign(PlayerB))
}

func TestOutcomeSignPanicsWhenUndecided(t *testing.T) {
	assert.Panics(t, func() { NoOutcome.Sign(PlayerA) })
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "NoOutcome", NoOutcome.String())
	assert.Equal(t, "WonByA", WonByA.String())
	assert.Equal(t, "Draw", Draw.String())
}
