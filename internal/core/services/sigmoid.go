package services

import "math"

const (
	sigmoidTableSize = 1000
	// sigmoidMaxExp bounds the table; logits beyond it saturate to 0 or 1.
	sigmoidMaxExp = 6
)

var sigmoidTable = buildSigmoidTable()

func buildSigmoidTable() [sigmoidTableSize]float32 {
	var t [sigmoidTableSize]float32
	for i := range t {
		x := (float64(i)/sigmoidTableSize*2 - 1) * sigmoidMaxExp
		e := math.Exp(x)
		t[i] = float32(e / (e + 1))
	}
	return t
}

// sigmoid approximates the logistic function from the lookup table.
// Inputs outside [-sigmoidMaxExp, sigmoidMaxExp] are clamped.
func sigmoid(x float32) float32 {
	if x >= sigmoidMaxExp {
		return 1
	}
	if x <= -sigmoidMaxExp {
		return 0
	}
	i := int((x + sigmoidMaxExp) * (float32(sigmoidTableSize) / (2 * sigmoidMaxExp)))
	if i >= sigmoidTableSize {
		i = sigmoidTableSize - 1
	}
	return sigmoidTable[i]
}
