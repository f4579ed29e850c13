package optimizations

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

func TestLogisticUpdatePositive(t *testing.T) {
	hidden := []float64{0.5, -0.2, 0.1}
	out := []float64{0.3, 0.4, -0.1}
	grad := []float64{0.01, 0, 0}
	lr := 0.1

	f := 0.5*0.3 + -0.2*0.4 + 0.1*-0.1
	g := (1 - sigmoid(f)) * lr

	loss := LogisticUpdateInPlace(hidden, out, grad, PositiveLabel, lr)

	assert.InDeltaSlice(t, []float64{0.01 + g*0.3, g * 0.4, g * -0.1}, grad, 1e-15)
	assert.InDeltaSlice(t, []float64{0.3 + g*0.5, 0.4 + g*-0.2, -0.1 + g*0.1}, out, 1e-15)
	assert.InDelta(t, -math.Log(sigmoid(f)), loss, 1e-12)
	// the hidden vector is read-only
	assert.Equal(t, []float64{0.5, -0.2, 0.1}, hidden)
}

func TestLogisticUpdateNegative(t *testing.T) {
	hidden := []float64{1, 2}
	out := []float64{0.5, 0.25}
	grad := []float64{0, 0}
	lr := 0.01

	f := 1.0
	g := (0 - sigmoid(f)) * lr

	loss := LogisticUpdateInPlace(hidden, out, grad, NegativeLabel, lr)

	assert.InDeltaSlice(t, []float64{g * 0.5, g * 0.25}, grad, 1e-15)
	assert.InDeltaSlice(t, []float64{0.5 + g, 0.25 + 2*g}, out, 1e-15)
	assert.InDelta(t, -math.Log(1-sigmoid(f)), loss, 1e-12)
}

func TestLogisticUpdateZeroRow(t *testing.T) {
	// a zero output row still moves: sigmoid(0) = 0.5
	hidden := []float64{2, -4}
	out := []float64{0, 0}
	grad := []float64{0, 0}

	LogisticUpdateInPlace(hidden, out, grad, PositiveLabel, 1)

	assert.Equal(t, []float64{0, 0}, grad)
	assert.InDeltaSlice(t, []float64{1, -2}, out, 1e-15)
}

func TestLogisticUpdateLengthMismatch(t *testing.T) {
	assert.Panics(t, func() {
		LogisticUpdateInPlace([]float64{1, 2}, []float64{1}, []float64{0, 0}, PositiveLabel, 0.1)
	})
}
