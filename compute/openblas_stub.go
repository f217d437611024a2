//go:build !cgo || !openblas

package compute

import "fmt"

func newOpenBLAS(int) (Backend, error) {
	return nil, fmt.Errorf("%s: %w (build with cgo and -tags openblas)", NameOpenBLAS, ErrNotImplemented)
}
