//go:build cgo && openblas

package compute

/*
#cgo LDFLAGS: -lopenblas
void openblas_set_num_threads(int num_threads);
*/
import "C"

import (
	"gonum.org/v1/netlib/blas/netlib"
)

// newOpenBLAS returns a backend on the system OpenBLAS through netlib. The
// thread count is applied to OpenBLAS before the backend is handed out.
func newOpenBLAS(threads int) (Backend, error) {
	C.openblas_set_num_threads(C.int(threads))
	return &blasBackend{
		name:    NameOpenBLAS,
		threads: threads,
		impl:    netlib.Implementation{},
	}, nil
}
