package cbow

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/manningwu07/CBOW/params"
)

// Model is a trained (or training) CBOW model: its config, vocabulary and
// both embedding tables.
type Model struct {
	Config params.TrainingConfig
	Vocab  params.Vocabulary
	Input  *Matrix
	Output *Matrix
}

// modelData is the gob layout: plain slices and dims only.
type modelData struct {
	Config params.TrainingConfig
	Vocab  []string

	Rows, Cols int
	InputData  []float64
	OutputData []float64
}

// SaveModel writes m to filename with gob, replacing any existing file.
func SaveModel(m *Model, filename string) error {
	if err := m.Config.Validate(); err != nil {
		return err
	}
	if err := checkShape("input", m.Input, m.Config); err != nil {
		return err
	}
	if err := checkShape("output", m.Output, m.Config); err != nil {
		return err
	}
	data := modelData{
		Config:     m.Config,
		Vocab:      m.Vocab.IDToToken,
		Rows:       m.Input.Rows,
		Cols:       m.Input.Cols,
		InputData:  m.Input.Data,
		OutputData: m.Output.Data,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("error encoding model: %w", err)
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("error writing model file: %w", err)
	}
	return nil
}

// LoadModel reads a model written by SaveModel and checks its shapes.
func LoadModel(filename string) (*Model, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading model file: %w", err)
	}
	var data modelData
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding model: %w", err)
	}

	vocab := params.NewVocabulary()
	for _, w := range data.Vocab {
		vocab.Add(w)
	}
	if vocab.Size() != len(data.Vocab) {
		return nil, fmt.Errorf("model vocabulary has duplicate words")
	}
	m := &Model{
		Config: data.Config,
		Vocab:  vocab,
		Input:  &Matrix{Data: data.InputData, Rows: data.Rows, Cols: data.Cols},
		Output: &Matrix{Data: data.OutputData, Rows: data.Rows, Cols: data.Cols},
	}
	if err := m.Config.Validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", filename, err)
	}
	// gob leaves empty slices nil
	if m.Input.Data == nil {
		m.Input.Data = []float64{}
	}
	if m.Output.Data == nil {
		m.Output.Data = []float64{}
	}
	if err := checkShape("input", m.Input, m.Config); err != nil {
		return nil, err
	}
	if err := checkShape("output", m.Output, m.Config); err != nil {
		return nil, err
	}
	if m.Config.VocabSize != vocab.Size() {
		return nil, fmt.Errorf("%w: config vocab size %d, vocabulary has %d words", ErrShapeMismatch, m.Config.VocabSize, vocab.Size())
	}
	return m, nil
}

// Result snapshots the input table as word embeddings.
func (m *Model) Result() (Result, error) {
	return BuildResult(m.Vocab, m.Input)
}
