package sgemmbench

import (
	"fmt"
	"math/rand/v2"

	"github.com/LynnColeArt/sgemmbench/compute"
)

// Matrix is a dense row-major float32 matrix. Element (i, j) lives at
// Data[i*Stride+j].
type Matrix struct {
	Rows, Cols int
	Stride     int
	Data       []float32
}

// NewMatrix allocates a zeroed rows×cols matrix.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows < 1 || cols < 1 {
		return nil, NewInvalidArgError("NewMatrix", fmt.Sprintf("dimensions must be positive, got %dx%d", rows, cols))
	}
	return &Matrix{
		Rows:   rows,
		Cols:   cols,
		Stride: cols,
		Data:   make([]float32, rows*cols),
	}, nil
}

// NewMatrixFrom wraps row-major data of length rows*cols without copying.
func NewMatrixFrom(rows, cols int, data []float32) (*Matrix, error) {
	if rows < 1 || cols < 1 {
		return nil, NewInvalidArgError("NewMatrixFrom", fmt.Sprintf("dimensions must be positive, got %dx%d", rows, cols))
	}
	if len(data) != rows*cols {
		return nil, NewInvalidArgError("NewMatrixFrom", fmt.Sprintf("have %d values for %dx%d", len(data), rows, cols))
	}
	return &Matrix{Rows: rows, Cols: cols, Stride: cols, Data: data}, nil
}

func (m *Matrix) At(i, j int) float32 {
	return m.Data[i*m.Stride+j]
}

func (m *Matrix) Set(i, j int, v float32) {
	m.Data[i*m.Stride+j] = v
}

// Row returns row i as a slice sharing storage with m.
func (m *Matrix) Row(i int) []float32 {
	return m.Data[i*m.Stride : i*m.Stride+m.Cols]
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) {
	return m.Rows, m.Cols
}

// Multiply returns a freshly allocated a·b computed by backend.
func Multiply(backend compute.Backend, a, b *Matrix) (*Matrix, error) {
	if a.Cols != b.Rows {
		return nil, fmt.Errorf("%dx%d times %dx%d: %w", a.Rows, a.Cols, b.Rows, b.Cols, ErrShapeMismatch)
	}
	c, err := NewMatrix(a.Rows, b.Cols)
	if err != nil {
		return nil, err
	}
	if err := backend.Sgemm(a.Rows, b.Cols, a.Cols, a.Data, a.Stride, b.Data, b.Stride, c.Data, c.Stride); err != nil {
		return nil, NewExecutionError("Multiply", backend.Name()+" sgemm failed", err)
	}
	return c, nil
}

// Generator draws uniformly distributed operands from a source it owns, so
// concurrent benchmarks never share random state.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator with an unpredictable seed. Two runs will
// produce different operands.
func NewGenerator() *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededGenerator returns a reproducible generator for tests.
func NewSeededGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Matrix returns a rows×cols matrix with entries uniform in [0, 1).
func (g *Generator) Matrix(rows, cols int) (*Matrix, error) {
	m, err := NewMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range m.Data {
		m.Data[i] = g.rng.Float32()
	}
	return m, nil
}
