package cbow

import (
	"errors"
	"fmt"
	"sort"

	"github.com/manningwu07/CBOW/utils"
)

var ErrUnknownWord = errors.New("word not in vocabulary")

// Neighbor is a word and its cosine similarity to the query.
type Neighbor struct {
	Word       string
	Similarity float64
}

// Nearest returns the k words of r most similar to word, excluding word
// itself, best first. Ties are broken alphabetically.
func Nearest(r Result, word string, k int) ([]Neighbor, error) {
	query, ok := r.Lookup(word)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	if k <= 0 {
		return []Neighbor{}, nil
	}

	out := make([]Neighbor, 0, len(r))
	for _, we := range r {
		if we.Word == word {
			continue
		}
		out = append(out, Neighbor{Word: we.Word, Similarity: utils.CosineSimilarity(query, we.Embedding)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Similarity == out[j].Similarity {
			return out[i].Word < out[j].Word
		}
		return out[i].Similarity > out[j].Similarity
	})
	if k < len(out) {
		out = out[:k]
	}
	return out, nil
}

// Nearest answers the query against the model's input table.
func (m *Model) Nearest(word string, k int) ([]Neighbor, error) {
	res, err := m.Result()
	if err != nil {
		return nil, err
	}
	return Nearest(res, word, k)
}
