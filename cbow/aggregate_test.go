package cbow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manningwu07/CBOW/params"
)

func fixtureInput() *Matrix {
	return &Matrix{
		Data: []float64{
			0.1, 0.1, 0.1, 0.1,
			0.1, 0.2, 0.1, 0.1,
			1.0, 1.0, 1.0, 1.0,
			0.1, 0.1, 0.3, 0.1,
			0.4, 0.1, 0.1, 0.1,
		},
		Rows: 5,
		Cols: 4,
	}
}

func TestContextEmbedding(t *testing.T) {
	got := ContextEmbedding(fixtureInput(), []int{0, 1, 3, 4})
	assert.InDeltaSlice(t, []float64{0.7, 0.5, 0.6, 0.4}, got, 1e-9)
}

func TestContextEmbeddingRepeatedIDs(t *testing.T) {
	got := ContextEmbedding(fixtureInput(), []int{2, 2, 0})
	assert.InDeltaSlice(t, []float64{2.1, 2.1, 2.1, 2.1}, got, 1e-9)
}

func TestContextEmbeddingEmpty(t *testing.T) {
	got := ContextEmbedding(fixtureInput(), nil)
	assert.Equal(t, []float64{0, 0, 0, 0}, got)
}

func TestMeanAggregator(t *testing.T) {
	got := Mean{}.Aggregate(fixtureInput(), []int{0, 1, 3, 4})
	assert.InDeltaSlice(t, []float64{0.175, 0.125, 0.15, 0.1}, got, 1e-9)

	assert.Equal(t, []float64{0, 0, 0, 0}, Mean{}.Aggregate(fixtureInput(), nil))
}

func TestAggregatorDoesNotAlias(t *testing.T) {
	in := fixtureInput()
	got := Sum{}.Aggregate(in, []int{2})
	got[0] = 42
	assert.Equal(t, 1.0, in.At(2, 0))
}

func TestAggregatorFor(t *testing.T) {
	a, err := AggregatorFor(params.AggregateSum)
	require.NoError(t, err)
	assert.IsType(t, Sum{}, a)

	a, err = AggregatorFor(params.AggregateMean)
	require.NoError(t, err)
	assert.IsType(t, Mean{}, a)

	_, err = AggregatorFor("max")
	assert.ErrorIs(t, err, params.ErrInvalidConfig)
}
