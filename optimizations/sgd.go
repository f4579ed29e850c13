package optimizations

import (
	"gonum.org/v1/gonum/floats"

	"github.com/manningwu07/CBOW/utils"
)

// Labels for LogisticUpdateInPlace.
const (
	PositiveLabel = 1.0
	NegativeLabel = 0.0
)

// LogisticUpdateInPlace performs one negative-sampling SGD step of an output
// row against the hidden (context) vector:
//
//	f    = hidden · out
//	g    = (label - sigmoid(f)) * lr
//	grad += g * out     (uses out before it is changed)
//	out  += g * hidden
//
// grad accumulates the error sent back to the input rows. The returned value
// is this row's contribution to the negative-sampling loss.
func LogisticUpdateInPlace(hidden, out, grad []float64, label, lr float64) float64 {
	if len(out) != len(hidden) || len(grad) != len(hidden) {
		panic("logisticUpdateInPlace: length mismatch")
	}
	f := floats.Dot(hidden, out)
	g := (label - utils.Sigmoid(f)) * lr

	floats.AddScaled(grad, g, out)
	floats.AddScaled(out, g, hidden)

	if label == PositiveLabel {
		return -utils.LogSigmoid(f)
	}
	return -utils.LogSigmoid(-f)
}
