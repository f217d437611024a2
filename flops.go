package sgemmbench

// FlopCount returns the floating-point operations in an m×k by k×n product:
// m·n outputs, each k multiply-adds counted as two operations.
func FlopCount(m, k, n int) int64 {
	return 2 * int64(m) * int64(k) * int64(n)
}

// GFLOPS converts an operation count and the average seconds per product
// into billions of operations per second. A zero average yields +Inf.
func GFLOPS(flops int64, avgSeconds float64) float64 {
	return float64(flops) / avgSeconds / 1e9
}
