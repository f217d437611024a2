package sgemmbench

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMatrixFormat(t *testing.T) {
	m := matrixOrFail(t, [][]float32{{1, 2}, {3, 4.5}})

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m))
	assert.Equal(t, "1.000000 2.000000\n3.000000 4.500000\n", buf.String())
}

func TestWriteMatrixPromotesFloat32(t *testing.T) {
	// 0.1 is not representable; the float32 nearest to it prints as 0.100000.
	m := matrixOrFail(t, [][]float32{{0.1, 1.0 / 3}})

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m))
	assert.Equal(t, "0.100000 0.333333\n", buf.String())
}

func TestMatrixTextRoundTrip(t *testing.T) {
	m := matrixOrFail(t, [][]float32{{1.0, 2.0}, {3.0, 4.0}})

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m))
	got, err := ReadMatrix(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Rows, got.Rows)
	assert.Equal(t, m.Cols, got.Cols)
	assert.Equal(t, m.Data, got.Data)
}

func TestRandomMatrixRoundTripWithinPrecision(t *testing.T) {
	m, err := NewSeededGenerator(3).Matrix(9, 13)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m))
	got, err := ReadMatrix(&buf)
	require.NoError(t, err)
	require.Equal(t, len(m.Data), len(got.Data))
	for i := range m.Data {
		assert.InDelta(t, m.Data[i], got.Data[i], 6e-7)
	}
}

func TestReadMatrixAcceptsTabsAndBlankLines(t *testing.T) {
	got, err := ReadMatrix(strings.NewReader("1\t2\n\n3 \t 4\n"))
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4}, got.Data)
}

func TestReadMatrixRejectsBadInput(t *testing.T) {
	for name, in := range map[string]string{
		"ragged": "1 2\n3\n",
		"empty":  "\n\n",
		"word":   "1 two\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadMatrix(strings.NewReader(in))
			assert.True(t, IsInvalidArgError(err), "%v", err)
		})
	}
}

func TestSaveOperandsWritesThreeFiles(t *testing.T) {
	dir := t.TempDir()
	a := matrixOrFail(t, [][]float32{{1, 0}, {0, 1}})
	b := matrixOrFail(t, [][]float32{{5, 6}, {7, 8}})

	require.NoError(t, SaveOperands(dir, false, a, b, b))

	for _, name := range []string{FileA, FileB, FileC} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	la, lb, lc, err := LoadOperands(dir)
	require.NoError(t, err)
	assert.Equal(t, a.Data, la.Data)
	assert.Equal(t, b.Data, lb.Data)
	assert.Equal(t, b.Data, lc.Data)
}

func TestSaveOperandsMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	a := matrixOrFail(t, [][]float32{{1}})

	err := SaveOperands(dir, false, a, a, a)
	require.Error(t, err)
	assert.True(t, IsIOError(err))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "directory must not be created implicitly")
}

func TestSaveOperandsCreatesDirectoryWhenAsked(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	a := matrixOrFail(t, [][]float32{{1}})

	require.NoError(t, SaveOperands(dir, true, a, a, a))
	_, err := os.Stat(filepath.Join(dir, FileC))
	assert.NoError(t, err)
}

func TestLoadOperandsMissingFile(t *testing.T) {
	_, _, _, err := LoadOperands(t.TempDir())
	assert.True(t, IsIOError(err))
}
