package cbow

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/manningwu07/CBOW/params"
	"github.com/manningwu07/CBOW/utils"
)

// Matrix stores a (vocab x dim) table as one contiguous row-major slice.
// Element (id, d) lives at Data[id*Cols+d].
type Matrix struct {
	Data       []float64
	Rows, Cols int
}

// NewMatrix returns a zero-filled matrix. rows may be 0.
func NewMatrix(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic("cbow: negative matrix dimension")
	}
	return &Matrix{
		Data: make([]float64, rows*cols),
		Rows: rows,
		Cols: cols,
	}
}

// At returns element (id, d).
func (m *Matrix) At(id, d int) float64 {
	m.check(id, d)
	return m.Data[id*m.Cols+d]
}

// Set writes element (id, d).
func (m *Matrix) Set(id, d int, v float64) {
	m.check(id, d)
	m.Data[id*m.Cols+d] = v
}

// Row returns a view of row id; writes go through to the matrix.
func (m *Matrix) Row(id int) []float64 {
	if uint(id) >= uint(m.Rows) {
		panic(fmt.Sprintf("cbow: row %d out of range [0,%d)", id, m.Rows))
	}
	start := id * m.Cols
	return m.Data[start : start+m.Cols : start+m.Cols]
}

func (m *Matrix) Clone() *Matrix {
	out := &Matrix{Data: make([]float64, len(m.Data)), Rows: m.Rows, Cols: m.Cols}
	copy(out.Data, m.Data)
	return out
}

// Dense returns a gonum view sharing the same backing slice, or nil for an
// empty matrix (gonum does not allow zero-sized matrices).
func (m *Matrix) Dense() *mat.Dense {
	if m.Rows == 0 || m.Cols == 0 {
		return nil
	}
	return mat.NewDense(m.Rows, m.Cols, m.Data)
}

// Finite reports whether no element is NaN or ±Inf.
func (m *Matrix) Finite() bool {
	return utils.AllFinite(m.Data)
}

func (m *Matrix) check(id, d int) {
	if uint(id) >= uint(m.Rows) {
		panic(fmt.Sprintf("cbow: row %d out of range [0,%d)", id, m.Rows))
	}
	if uint(d) >= uint(m.Cols) {
		panic(fmt.Sprintf("cbow: column %d out of range [0,%d)", d, m.Cols))
	}
}

// CreateMatrices allocates the input and output tables for cfg. The input
// table is drawn i.i.d. from Normal(cfg.Mean, cfg.StdDev) using src; the
// output table starts at zero. An invalid config fails here, before any
// value is drawn.
func CreateMatrices(cfg params.TrainingConfig, src rand.Source) (input, output *Matrix, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	normal := distuv.Normal{Mu: cfg.Mean, Sigma: cfg.StdDev, Src: src}

	input = NewMatrix(cfg.VocabSize, cfg.EmbeddingsDimension)
	for i := range input.Data {
		input.Data[i] = normal.Rand()
	}
	output = NewMatrix(cfg.VocabSize, cfg.EmbeddingsDimension)
	return input, output, nil
}
