package IO

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manningwu07/CBOW/cbow"
	"github.com/manningwu07/CBOW/params"
)

func sampleResult() cbow.Result {
	return cbow.Result{
		{Word: "uno", Embedding: []float64{0.1, -0.2}},
		{Word: "dos", Embedding: []float64{1.5, 0}},
	}
}

func TestSaveEmbeddingsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, SaveEmbeddingsJSON(path, sampleResult()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(raw, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "uno", records[0]["word"])
	assert.Equal(t, []any{0.1, -0.2}, records[0]["embedding"])
	assert.Contains(t, string(raw), "\n  {", "output is indented")

	got, err := LoadEmbeddingsJSON(path)
	require.NoError(t, err)
	assert.Equal(t, sampleResult(), got)
}

func TestSaveEmbeddingsJSONTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 4096)), 0o644))

	require.NoError(t, SaveEmbeddingsJSON(path, cbow.Result{{Word: "a", Embedding: []float64{1}}}))
	got, err := LoadEmbeddingsJSON(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "x")
}

func TestSaveEmbeddingsJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, SaveEmbeddingsJSON(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))
}

func TestJSONWriterWithEmit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	vocab := params.NewVocabulary()
	vocab.Add("uno")
	vocab.Add("dos")
	input := &cbow.Matrix{Data: []float64{1, 2, 3, 4}, Rows: 2, Cols: 2}

	_, err := cbow.Emit(vocab, input, JSONWriter{Path: path})
	require.NoError(t, err)

	got, err := LoadEmbeddingsJSON(path)
	require.NoError(t, err)
	assert.Equal(t, cbow.Result{
		{Word: "uno", Embedding: []float64{1, 2}},
		{Word: "dos", Embedding: []float64{3, 4}},
	}, got)
}

func TestLoadEmbeddingsJSONErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadEmbeddingsJSON(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadEmbeddingsJSON(bad)
	assert.Error(t, err)
}

func TestVocabJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.json")
	c := ParseCorpus("uno and dos tres uno cinco", nil)

	require.NoError(t, ExportVocabJSON(path, c.Vocab))
	got, err := ImportVocabJSON(path)
	require.NoError(t, err)
	assert.Equal(t, c.Vocab, got)
}

func TestImportVocabJSONDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"IDToToken": ["a", "b", "a"]}`), 0o644))
	_, err := ImportVocabJSON(path)
	assert.Error(t, err)
}

func TestTrainingLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	l, err := NewTrainingLog(path)
	require.NoError(t, err)

	l.Record(cbow.EpochStats{Epoch: 1, Loss: 2.5, Pairs: 10, NegativeSamples: 40, Elapsed: 3 * time.Millisecond})
	l.Record(cbow.EpochStats{Epoch: 2, Loss: 1.25, Pairs: 10, NegativeSamples: 38, Elapsed: 2 * time.Millisecond})
	require.NoError(t, l.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "epoch,loss,pairs,negatives,elapsed_ms\n1,2.5,10,40,3\n2,1.25,10,38,2\n", string(raw))
}
