// Package compute provides the single-precision matrix multiply backends
// measured by sgemmbench.
//
// Every backend takes its thread count at construction. Nothing in this
// package reads or writes environment variables; the caller decides how many
// threads a backend may use before the first multiply.
package compute

import (
	"errors"
	"fmt"
	"sort"
)

// Backend names accepted by New.
const (
	NameNative    = "native"
	NameGonum     = "gonum"
	NameOpenBLAS  = "openblas"
	NameReference = "reference"
)

var (
	// ErrUnknownBackend is returned by New for an unregistered name.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrNotImplemented is returned when a backend was not compiled in.
	ErrNotImplemented = errors.New("backend not available in this build")

	// ErrThreads is returned for a thread count below one.
	ErrThreads = errors.New("thread count must be at least 1")

	// ErrDimension is returned when operand sizes or strides are inconsistent.
	ErrDimension = errors.New("bad matrix dimension")
)

// Backend computes row-major float32 matrix products.
//
// Sgemm overwrites c with a·b, where a is m×k with stride lda, b is k×n with
// stride ldb and c is m×n with stride ldc. Implementations are not safe for
// concurrent use.
type Backend interface {
	Name() string
	Threads() int
	Sgemm(m, n, k int, a []float32, lda int, b []float32, ldb int, c []float32, ldc int) error
	Close() error
}

type constructor func(threads int) (Backend, error)

var registry = map[string]constructor{
	NameNative:    func(threads int) (Backend, error) { return NewNative(threads), nil },
	NameGonum:     func(threads int) (Backend, error) { return NewGonum(threads), nil },
	NameOpenBLAS:  newOpenBLAS,
	NameReference: func(int) (Backend, error) { return Reference{}, nil },
}

// New constructs the named backend restricted to threads workers.
func New(name string, threads int) (Backend, error) {
	if threads < 1 {
		return nil, fmt.Errorf("%s: %w (got %d)", name, ErrThreads, threads)
	}
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownBackend, name, Names())
	}
	return ctor(threads)
}

// Names lists the registered backends in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkArgs validates a row-major no-transpose product.
func checkArgs(m, n, k int, a []float32, lda int, b []float32, ldb int, c []float32, ldc int) error {
	switch {
	case m < 1 || n < 1 || k < 1:
		return fmt.Errorf("%w: m=%d n=%d k=%d", ErrDimension, m, n, k)
	case lda < k:
		return fmt.Errorf("%w: lda %d < k %d", ErrDimension, lda, k)
	case ldb < n:
		return fmt.Errorf("%w: ldb %d < n %d", ErrDimension, ldb, n)
	case ldc < n:
		return fmt.Errorf("%w: ldc %d < n %d", ErrDimension, ldc, n)
	case len(a) < (m-1)*lda+k:
		return fmt.Errorf("%w: a has %d elements, need %d", ErrDimension, len(a), (m-1)*lda+k)
	case len(b) < (k-1)*ldb+n:
		return fmt.Errorf("%w: b has %d elements, need %d", ErrDimension, len(b), (k-1)*ldb+n)
	case len(c) < (m-1)*ldc+n:
		return fmt.Errorf("%w: c has %d elements, need %d", ErrDimension, len(c), (m-1)*ldc+n)
	}
	return nil
}
