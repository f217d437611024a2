package compute

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/gonum"
)

// blasBackend runs Sgemm through a gonum BLAS implementation.
type blasBackend struct {
	name    string
	threads int
	impl    blas.Float32Level3
	restore func()
}

// procs tracks the gonum backends holding GOMAXPROCS. The value seen before
// the first one opened is restored when the last one closes.
var procs struct {
	sync.Mutex
	holders int
	saved   int
}

func holdProcs(threads int) {
	procs.Lock()
	defer procs.Unlock()
	prev := runtime.GOMAXPROCS(threads)
	if procs.holders == 0 {
		procs.saved = prev
	}
	procs.holders++
}

func releaseProcs() {
	procs.Lock()
	defer procs.Unlock()
	procs.holders--
	if procs.holders == 0 {
		runtime.GOMAXPROCS(procs.saved)
	}
}

// NewGonum returns a backend on the pure Go gonum BLAS.
//
// Gonum sizes its sgemm worker pool from GOMAXPROCS, so the backend sets
// GOMAXPROCS to threads for its lifetime. While several are open the most
// recently created one wins; GOMAXPROCS goes back to its earlier value once
// all of them are closed.
func NewGonum(threads int) Backend {
	if threads < 1 {
		threads = 1
	}
	holdProcs(threads)
	return &blasBackend{
		name:    NameGonum,
		threads: threads,
		impl:    gonum.Implementation{},
		restore: releaseProcs,
	}
}

func (bb *blasBackend) Name() string { return bb.name }

func (bb *blasBackend) Threads() int { return bb.threads }

// Sgemm computes c = a·b.
func (bb *blasBackend) Sgemm(m, n, k int, a []float32, lda int, b []float32, ldb int, c []float32, ldc int) error {
	if err := checkArgs(m, n, k, a, lda, b, ldb, c, ldc); err != nil {
		return err
	}
	bb.impl.Sgemm(blas.NoTrans, blas.NoTrans, m, n, k, 1, a, lda, b, ldb, 0, c, ldc)
	return nil
}

func (bb *blasBackend) Close() error {
	if bb.restore != nil {
		bb.restore()
		bb.restore = nil
	}
	return nil
}
