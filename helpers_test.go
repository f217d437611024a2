package sgemmbench

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LynnColeArt/sgemmbench/compute"
)

// stepClock advances by step on every reading, so each start/end pair
// measures exactly step.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{now: time.Unix(1700000000, 0), step: step}
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// countingBackend wraps a backend and counts multiplies. After failAfter
// successful calls it returns errBackend; a negative failAfter never fails.
type countingBackend struct {
	compute.Backend
	calls     int
	failAfter int
}

var errBackend = errors.New("backend exploded")

func (cb *countingBackend) Sgemm(m, n, k int, a []float32, lda int, b []float32, ldb int, c []float32, ldc int) error {
	if cb.failAfter >= 0 && cb.calls >= cb.failAfter {
		return errBackend
	}
	cb.calls++
	return cb.Backend.Sgemm(m, n, k, a, lda, b, ldb, c, ldc)
}

func newCountingBackend(failAfter int) *countingBackend {
	return &countingBackend{Backend: compute.NewNative(1), failAfter: failAfter}
}

// matrixOrFail builds a matrix from rows and fails the test if unsuccessful
func matrixOrFail(t testing.TB, rows [][]float32) *Matrix {
	t.Helper()
	var data []float32
	for _, r := range rows {
		data = append(data, r...)
	}
	m, err := NewMatrixFrom(len(rows), len(rows[0]), data)
	require.NoError(t, err)
	return m
}
