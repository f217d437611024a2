package compute

import (
	"golang.org/x/sync/errgroup"
)

// Native implements a cache-oblivious matrix multiplication using recursive
// subdivision. The recursion adapts to any cache hierarchy without knowing
// cache sizes, switching to a tiled kernel once a block fits.
//
// With one thread the whole product runs on the calling goroutine. With more,
// the rows of C are split into bands and each band is multiplied by its own
// worker, at most threads at a time.
type Native struct {
	// Threshold for switching to the tiled kernel
	baseSize int
	threads  int
}

// NewNative creates a cache-oblivious backend using threads workers.
func NewNative(threads int) *Native {
	if threads < 1 {
		threads = 1
	}
	return &Native{
		baseSize: 64,
		threads:  threads,
	}
}

func (n *Native) Name() string { return NameNative }

func (n *Native) Threads() int { return n.threads }

func (n *Native) Close() error { return nil }

// Sgemm computes c = a·b.
func (n *Native) Sgemm(m, nc, k int, a []float32, lda int, b []float32, ldb int, c []float32, ldc int) error {
	if err := checkArgs(m, nc, k, a, lda, b, ldb, c, ldc); err != nil {
		return err
	}

	for i := 0; i < m; i++ {
		row := c[i*ldc : i*ldc+nc]
		for j := range row {
			row[j] = 0
		}
	}

	bands := n.threads
	if bands > m {
		bands = m
	}
	if bands <= 1 || m < n.baseSize {
		n.recursiveMultiply(a, lda, 0, 0, m, k, b, ldb, 0, 0, nc, c, ldc, 0, 0)
		return nil
	}

	var g errgroup.Group
	g.SetLimit(n.threads)
	step := (m + bands - 1) / bands
	for start := 0; start < m; start += step {
		rows := min(step, m-start)
		g.Go(func() error {
			n.recursiveMultiply(a, lda, start, 0, rows, k, b, ldb, 0, 0, nc, c, ldc, start, 0)
			return nil
		})
	}
	return g.Wait()
}

// recursiveMultiply accumulates A[rows×inner]·B[inner×cols] into C, splitting
// the largest of the three dimensions until the block fits the base case.
func (n *Native) recursiveMultiply(
	a []float32, lda int, aRowStart, aColStart, rows, inner int,
	b []float32, ldb int, bRowStart, bColStart, cols int,
	c []float32, ldc int, cRowStart, cColStart int,
) {
	if rows <= n.baseSize && inner <= n.baseSize && cols <= n.baseSize {
		n.baseCase(a, lda, aRowStart, aColStart, rows, inner,
			b, ldb, bRowStart, bColStart, cols,
			c, ldc, cRowStart, cColStart)
		return
	}

	switch {
	case rows >= max(inner, cols):
		// Split A and C horizontally
		mid := rows / 2
		n.recursiveMultiply(a, lda, aRowStart, aColStart, mid, inner,
			b, ldb, bRowStart, bColStart, cols,
			c, ldc, cRowStart, cColStart)
		n.recursiveMultiply(a, lda, aRowStart+mid, aColStart, rows-mid, inner,
			b, ldb, bRowStart, bColStart, cols,
			c, ldc, cRowStart+mid, cColStart)

	case cols >= max(rows, inner):
		// Split B and C vertically
		mid := cols / 2
		n.recursiveMultiply(a, lda, aRowStart, aColStart, rows, inner,
			b, ldb, bRowStart, bColStart, mid,
			c, ldc, cRowStart, cColStart)
		n.recursiveMultiply(a, lda, aRowStart, aColStart, rows, inner,
			b, ldb, bRowStart, bColStart+mid, cols-mid,
			c, ldc, cRowStart, cColStart+mid)

	default:
		// Split along K; both halves accumulate into the same C block
		mid := inner / 2
		n.recursiveMultiply(a, lda, aRowStart, aColStart, rows, mid,
			b, ldb, bRowStart, bColStart, cols,
			c, ldc, cRowStart, cColStart)
		n.recursiveMultiply(a, lda, aRowStart, aColStart+mid, rows, inner-mid,
			b, ldb, bRowStart+mid, bColStart, cols,
			c, ldc, cRowStart, cColStart)
	}
}

// baseCase is an i-k-j kernel over one block. The inner loop walks a row of
// B and a row of C with unit stride.
func (n *Native) baseCase(
	a []float32, lda int, aRowStart, aColStart, rows, inner int,
	b []float32, ldb int, bRowStart, bColStart, cols int,
	c []float32, ldc int, cRowStart, cColStart int,
) {
	for i := 0; i < rows; i++ {
		aRow := a[(aRowStart+i)*lda+aColStart : (aRowStart+i)*lda+aColStart+inner]
		cRow := c[(cRowStart+i)*ldc+cColStart : (cRowStart+i)*ldc+cColStart+cols]
		for p, aip := range aRow {
			bRow := b[(bRowStart+p)*ldb+bColStart : (bRowStart+p)*ldb+bColStart+cols]
			for j, bpj := range bRow {
				cRow[j] += aip * bpj
			}
		}
	}
}
