package sgemmbench

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LynnColeArt/sgemmbench/compute"
)

func TestGeneratorShapeAndRange(t *testing.T) {
	gen := NewGenerator()
	for _, n := range []int{1, 2, 7, 64, 130} {
		t.Run(fmt.Sprintf("N=%d", n), func(t *testing.T) {
			m, err := gen.Matrix(n, n)
			require.NoError(t, err)
			assert.Equal(t, n, m.Rows)
			assert.Equal(t, n, m.Cols)
			require.Len(t, m.Data, n*n)
			for i, v := range m.Data {
				if v < 0 || v >= 1 {
					t.Fatalf("element %d = %v outside [0, 1)", i, v)
				}
			}
		})
	}
}

func TestGeneratorRectangular(t *testing.T) {
	m, err := NewGenerator().Matrix(3, 5)
	require.NoError(t, err)
	rows, cols := m.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 5, cols)
}

func TestGeneratorsAreIndependent(t *testing.T) {
	a, err := NewSeededGenerator(42).Matrix(8, 8)
	require.NoError(t, err)
	b, err := NewSeededGenerator(42).Matrix(8, 8)
	require.NoError(t, err)
	assert.Equal(t, a.Data, b.Data, "same seed must give same operands")

	c, err := NewGenerator().Matrix(8, 8)
	require.NoError(t, err)
	d, err := NewGenerator().Matrix(8, 8)
	require.NoError(t, err)
	assert.NotEqual(t, c.Data, d.Data, "unseeded generators must differ")
}

func TestGeneratorRejectsBadDimensions(t *testing.T) {
	_, err := NewGenerator().Matrix(0, 4)
	assert.True(t, IsInvalidArgError(err))

	_, err = NewMatrix(4, -1)
	assert.True(t, IsInvalidArgError(err))

	_, err = NewMatrixFrom(2, 2, []float32{1, 2, 3})
	assert.True(t, IsInvalidArgError(err))
}

func TestMultiplyIdentity(t *testing.T) {
	identity := matrixOrFail(t, [][]float32{{1, 0}, {0, 1}})
	b := matrixOrFail(t, [][]float32{{5, 6}, {7, 8}})

	for _, name := range []string{compute.NameNative, compute.NameGonum, compute.NameReference} {
		t.Run(name, func(t *testing.T) {
			backend, err := compute.New(name, 1)
			require.NoError(t, err)
			defer backend.Close()

			c, err := Multiply(backend, identity, b)
			require.NoError(t, err)
			assert.Equal(t, []float32{5, 6, 7, 8}, c.Data)
			assert.Equal(t, float32(7), c.At(1, 0))
		})
	}
}

func TestMultiplyRectangular(t *testing.T) {
	a := matrixOrFail(t, [][]float32{{1, 2, 3}, {4, 5, 6}})
	b := matrixOrFail(t, [][]float32{{7, 8}, {9, 10}, {11, 12}})

	c, err := Multiply(compute.NewNative(1), a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Rows)
	assert.Equal(t, 2, c.Cols)
	assert.Equal(t, []float32{58, 64, 139, 154}, c.Data)
}

func TestMultiplyShapeMismatch(t *testing.T) {
	a := matrixOrFail(t, [][]float32{{1, 2}})
	b := matrixOrFail(t, [][]float32{{1, 2}})

	_, err := Multiply(compute.NewNative(1), a, b)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.True(t, IsInvalidArgError(err))
}

func TestMultiplyBackendFailure(t *testing.T) {
	a := matrixOrFail(t, [][]float32{{1}})
	_, err := Multiply(newCountingBackend(0), a, a)
	assert.ErrorIs(t, err, errBackend)
	assert.True(t, IsExecutionError(err))
}

func TestMatrixSetAndRow(t *testing.T) {
	m, err := NewMatrix(2, 3)
	require.NoError(t, err)
	m.Set(1, 2, 9)
	assert.Equal(t, float32(9), m.At(1, 2))
	assert.Equal(t, []float32{0, 0, 9}, m.Row(1))
}
