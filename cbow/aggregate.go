package cbow

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/manningwu07/CBOW/params"
)

// Aggregator combines the input rows of a context into the hidden vector.
// The returned slice is freshly allocated.
type Aggregator interface {
	Aggregate(input *Matrix, context []int) []float64
}

// Sum adds the context rows dimension by dimension.
type Sum struct{}

func (Sum) Aggregate(input *Matrix, context []int) []float64 {
	return ContextEmbedding(input, context)
}

// Mean averages the context rows.
type Mean struct{}

func (Mean) Aggregate(input *Matrix, context []int) []float64 {
	out := ContextEmbedding(input, context)
	if len(context) > 0 {
		floats.Scale(1/float64(len(context)), out)
	}
	return out
}

// ContextEmbedding returns the element-wise sum of the input rows named by
// context. Repeated ids are counted once per occurrence.
func ContextEmbedding(input *Matrix, context []int) []float64 {
	out := make([]float64, input.Cols)
	for _, id := range context {
		floats.Add(out, input.Row(id))
	}
	return out
}

// AggregatorFor maps a config name to its strategy.
func AggregatorFor(name string) (Aggregator, error) {
	switch name {
	case params.AggregateSum:
		return Sum{}, nil
	case params.AggregateMean:
		return Mean{}, nil
	}
	return nil, fmt.Errorf("%w: unknown aggregation %q", params.ErrInvalidConfig, name)
}
