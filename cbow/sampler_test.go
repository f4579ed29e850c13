package cbow

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manningwu07/CBOW/params"
)

func TestSamplerExcludesTarget(t *testing.T) {
	corpora := [][]int{
		{0, 1, 2, 0, 3},
		{1, 1, 1, 2},
		{4, 3, 2, 1, 0, 4, 4, 4, 2},
	}
	for _, corpus := range corpora {
		s, err := NewNegativeSampler(corpus, 30, params.ExcludeTarget, rand.NewPCG(3, 4))
		require.NoError(t, err)
		for i := 0; i < 200; i++ {
			target := corpus[i%len(corpus)]
			for _, id := range s.Sample(target) {
				assert.NotEqual(t, target, id)
				assert.Contains(t, corpus, id)
			}
		}
	}
}

func TestSamplerKeepTarget(t *testing.T) {
	corpus := []int{0, 1, 2, 0, 3, 0}
	s, err := NewNegativeSampler(corpus, 30, params.KeepTarget, rand.NewPCG(3, 4))
	require.NoError(t, err)

	// every position is drawn, so all three occurrences of 0 come back
	got := s.Sample(0)
	assert.Equal(t, []int{0, 0, 0}, got)
	assert.Empty(t, s.Sample(7))
}

func TestSamplerDrawCount(t *testing.T) {
	corpus := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	s, err := NewNegativeSampler(corpus, 4, params.ExcludeTarget, rand.NewPCG(1, 1))
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		got := s.Sample(100)
		assert.Len(t, got, 4)
		seen := map[int]bool{}
		for _, id := range got {
			assert.False(t, seen[id], "positions are drawn without replacement")
			seen[id] = true
		}
	}

	// more draws than positions: every position exactly once
	s, err = NewNegativeSampler(corpus, 50, params.ExcludeTarget, rand.NewPCG(1, 1))
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 2, 4, 5, 6, 7, 8, 9}, s.Sample(3))
}

func TestSamplerEmpty(t *testing.T) {
	s, err := NewNegativeSampler(nil, 30, params.ExcludeTarget, rand.NewPCG(1, 1))
	require.NoError(t, err)
	assert.Empty(t, s.Sample(0))

	s, err = NewNegativeSampler([]int{0, 1}, 0, params.ExcludeTarget, rand.NewPCG(1, 1))
	require.NoError(t, err)
	assert.Empty(t, s.Sample(0))
}

func TestSamplerInvalid(t *testing.T) {
	_, err := NewNegativeSampler([]int{0}, -1, params.ExcludeTarget, rand.NewPCG(1, 1))
	assert.ErrorIs(t, err, params.ErrInvalidConfig)

	_, err = NewNegativeSampler([]int{0}, 1, "sometimes", rand.NewPCG(1, 1))
	assert.ErrorIs(t, err, params.ErrInvalidConfig)
}
