package utils

import (
	"math"

	"github.com/viterin/vek"
	"gonum.org/v1/gonum/floats"
)

// Sigmoid is the logistic function 1/(1+e^-x).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// LogSigmoid returns log(sigmoid(x)) without overflowing for large |x|.
func LogSigmoid(x float64) float64 {
	if x >= 0 {
		return -math.Log1p(math.Exp(-x))
	}
	return x - math.Log1p(math.Exp(x))
}

// Dot panics if the slices differ in length.
func Dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// CosineSimilarity returns 0 when either vector has zero magnitude.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	magA := math.Sqrt(vek.Dot(a, a))
	magB := math.Sqrt(vek.Dot(b, b))
	if magA == 0 || magB == 0 {
		return 0
	}
	return vek.Dot(a, b) / (magA * magB)
}

// AllFinite reports whether s holds no NaN or ±Inf.
func AllFinite(s []float64) bool {
	if floats.HasNaN(s) {
		return false
	}
	for _, v := range s {
		if math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// RowNorms returns the L2 norm of each row of a row-major rows x cols buffer.
func RowNorms(data []float64, rows, cols int) []float64 {
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = floats.Norm(data[i*cols:(i+1)*cols], 2)
	}
	return out
}
