package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSigmoid(t *testing.T) {
	assert.InDelta(t, 0.5, sigmoid(0), 0.01)
	assert.Equal(t, float32(1), sigmoid(6))
	assert.Equal(t, float32(1), sigmoid(1e9))
	assert.Equal(t, float32(0), sigmoid(-6))
	assert.Equal(t, float32(0), sigmoid(-1e9))

	for _, x := range []float32{-5.9, -2, -0.5, 0.5, 2, 5.9} {
		exact := 1 / (1 + math.Exp(-float64(x)))
		assert.InDelta(t, exact, sigmoid(x), 0.01, "x=%v", x)
	}
}

func TestSigmoid_Monotonic(t *testing.T) {
	prev := sigmoid(-7)
	for x := float32(-7); x <= 7; x += 0.01 {
		cur := sigmoid(x)
		assert.GreaterOrEqual(t, cur, prev, "x=%v", x)
		prev = cur
	}
}
