package cbow

import (
	"fmt"

	"github.com/manningwu07/CBOW/params"
)

// WordEmbedding is one record of the output file.
type WordEmbedding struct {
	Word      string    `json:"word"`
	Embedding []float64 `json:"embedding"`
}

// Result holds one record per vocabulary word, in id order. The vectors are
// copies, so later changes to the matrix do not leak into a Result.
type Result []WordEmbedding

// ResultWriter persists a finished Result.
type ResultWriter interface {
	WriteResult(Result) error
}

// BuildResult pairs every vocabulary word with its row of the input matrix.
func BuildResult(vocab params.Vocabulary, input *Matrix) (Result, error) {
	if input.Rows != vocab.Size() {
		return nil, fmt.Errorf("%w: input has %d rows, vocabulary has %d words", ErrShapeMismatch, input.Rows, vocab.Size())
	}
	out := make(Result, 0, vocab.Size())
	for id, word := range vocab.IDToToken {
		vec := make([]float64, input.Cols)
		copy(vec, input.Row(id))
		out = append(out, WordEmbedding{Word: word, Embedding: vec})
	}
	return out, nil
}

// Emit builds the Result and hands it to w.
func Emit(vocab params.Vocabulary, input *Matrix, w ResultWriter) (Result, error) {
	res, err := BuildResult(vocab, input)
	if err != nil {
		return nil, err
	}
	if err := w.WriteResult(res); err != nil {
		return nil, fmt.Errorf("error writing result: %w", err)
	}
	return res, nil
}

// Map returns word -> embedding.
func (r Result) Map() map[string][]float64 {
	out := make(map[string][]float64, len(r))
	for _, we := range r {
		out[we.Word] = we.Embedding
	}
	return out
}

// Lookup returns the embedding for word.
func (r Result) Lookup(word string) ([]float64, bool) {
	for _, we := range r {
		if we.Word == word {
			return we.Embedding, true
		}
	}
	return nil, false
}
