package sgemmbench

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WriteMatrix writes m as text: one row per line, values in fixed-point
// notation with ValueDigits decimals, separated by single spaces.
func WriteMatrix(w io.Writer, m *Matrix) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32*m.Cols)
	for i := 0; i < m.Rows; i++ {
		buf = buf[:0]
		for j, v := range m.Row(i) {
			if j > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendFloat(buf, float64(v), 'f', ValueDigits, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadMatrix parses the text written by WriteMatrix. Values may be separated
// by any whitespace; blank lines are skipped. Every row must have the same
// number of values.
func ReadMatrix(r io.Reader) (*Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var (
		data []float32
		rows int
		cols = -1
		line int
	)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if cols == -1 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, NewInvalidArgError("ReadMatrix",
				fmt.Sprintf("line %d has %d values, expected %d", line, len(fields), cols))
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, NewInvalidArgError("ReadMatrix", fmt.Sprintf("line %d: %v", line, err))
			}
			data = append(data, float32(v))
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, NewIOError("ReadMatrix", "reading matrix", err)
	}
	if rows == 0 {
		return nil, NewInvalidArgError("ReadMatrix", "no values")
	}
	return NewMatrixFrom(rows, cols, data)
}

// SaveMatrix writes m to path. The parent directory must exist.
func SaveMatrix(path string, m *Matrix) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return NewIOError("SaveMatrix", "creating "+path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = NewIOError("SaveMatrix", "closing "+path, cerr)
		}
	}()
	if err := WriteMatrix(f, m); err != nil {
		return NewIOError("SaveMatrix", "writing "+path, err)
	}
	return nil
}

// LoadMatrix reads a matrix written by SaveMatrix.
func LoadMatrix(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewIOError("LoadMatrix", "opening "+path, err)
	}
	defer f.Close()

	m, err := ReadMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// SaveOperands writes a, b and c to FileA, FileB and FileC inside dir, in
// that order. A missing dir is an error unless create is set.
func SaveOperands(dir string, create bool, a, b, c *Matrix) error {
	if create {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return NewIOError("SaveOperands", "creating "+dir, err)
		}
	}
	for _, out := range []struct {
		name string
		m    *Matrix
	}{
		{FileA, a},
		{FileB, b},
		{FileC, c},
	} {
		if err := SaveMatrix(filepath.Join(dir, out.name), out.m); err != nil {
			return err
		}
	}
	return nil
}

// LoadOperands reads FileA, FileB and FileC from dir.
func LoadOperands(dir string) (a, b, c *Matrix, err error) {
	if a, err = LoadMatrix(filepath.Join(dir, FileA)); err != nil {
		return nil, nil, nil, err
	}
	if b, err = LoadMatrix(filepath.Join(dir, FileB)); err != nil {
		return nil, nil, nil, err
	}
	if c, err = LoadMatrix(filepath.Join(dir, FileC)); err != nil {
		return nil, nil, nil, err
	}
	return a, b, c, nil
}
