package IO

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/manningwu07/CBOW/cbow"
	"github.com/manningwu07/CBOW/params"
)

// JSONWriter is the cbow.ResultWriter that writes result.json.
type JSONWriter struct {
	Path string
}

func (w JSONWriter) WriteResult(r cbow.Result) error {
	return SaveEmbeddingsJSON(w.Path, r)
}

// SaveEmbeddingsJSON truncates path and writes r as an indented JSON array
// of {"word", "embedding"} records.
func SaveEmbeddingsJSON(path string, r cbow.Result) error {
	if r == nil {
		r = cbow.Result{}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("error encoding embeddings: %w", err)
	}
	return f.Close()
}

// LoadEmbeddingsJSON reads a file written by SaveEmbeddingsJSON.
func LoadEmbeddingsJSON(path string) (cbow.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r cbow.Result
	if err := json.NewDecoder(f).Decode(&r); err != nil {
		return nil, fmt.Errorf("error decoding embeddings %s: %w", path, err)
	}
	return r, nil
}

func ExportVocabJSON(path string, v params.Vocabulary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding vocab: %w", err)
	}
	return f.Close()
}

// ImportVocabJSON reads a vocabulary and rebuilds TokenToID from IDToToken.
func ImportVocabJSON(path string) (params.Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return params.Vocabulary{}, err
	}
	defer f.Close()
	var raw params.Vocabulary
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return params.Vocabulary{}, fmt.Errorf("error decoding vocab %s: %w", path, err)
	}
	v := params.NewVocabulary()
	for _, tok := range raw.IDToToken {
		v.Add(tok)
	}
	if v.Size() != len(raw.IDToToken) {
		return params.Vocabulary{}, fmt.Errorf("vocab %s has duplicate tokens", path)
	}
	return v, nil
}
