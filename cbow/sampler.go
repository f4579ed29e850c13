package cbow

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/manningwu07/CBOW/params"
)

// NegativeSampler draws noise words from the corpus itself, so a word is
// picked in proportion to how often it occurs.
type NegativeSampler struct {
	corpus []int
	filter string
	src    rand.Source

	positions []int
}

// NewNegativeSampler returns a sampler over corpus that draws up to draws
// distinct positions per call. filter is params.ExcludeTarget or
// params.KeepTarget.
func NewNegativeSampler(corpus []int, draws int, filter string, src rand.Source) (*NegativeSampler, error) {
	if draws < 0 {
		return nil, fmt.Errorf("%w: negative draw count %d", params.ErrInvalidConfig, draws)
	}
	switch filter {
	case params.ExcludeTarget, params.KeepTarget:
	default:
		return nil, fmt.Errorf("%w: unknown negative_filter %q", params.ErrInvalidConfig, filter)
	}
	n := min(draws, len(corpus))
	return &NegativeSampler{
		corpus:    corpus,
		filter:    filter,
		src:       src,
		positions: make([]int, n),
	}, nil
}

// Sample draws min(draws, len(corpus)) corpus positions without replacement
// and returns their ids after filtering against target. The result may be
// empty; callers must handle a step with no negatives.
func (s *NegativeSampler) Sample(target int) []int {
	if len(s.positions) == 0 {
		return nil
	}
	sampleuv.WithoutReplacement(s.positions, len(s.corpus), s.src)

	out := make([]int, 0, len(s.positions))
	for _, pos := range s.positions {
		id := s.corpus[pos]
		if s.keep(id, target) {
			out = append(out, id)
		}
	}
	return out
}

func (s *NegativeSampler) keep(id, target int) bool {
	if s.filter == params.KeepTarget {
		return id == target
	}
	return id != target
}
