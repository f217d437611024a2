package compute

// Reference contains a simple, correct multiply used to check the other
// backends. It ignores the thread count and always runs on the caller.
type Reference struct{}

func (Reference) Name() string { return NameReference }

func (Reference) Threads() int { return 1 }

func (Reference) Close() error { return nil }

// Sgemm computes c = a·b with a dot product per output element, accumulated
// in float64.
func (Reference) Sgemm(m, n, k int, a []float32, lda int, b []float32, ldb int, c []float32, ldc int) error {
	if err := checkArgs(m, n, k, a, lda, b, ldb, c, ldc); err != nil {
		return err
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for p := 0; p < k; p++ {
				sum += float64(a[i*lda+p]) * float64(b[p*ldb+j])
			}
			c[i*ldc+j] = float32(sum)
		}
	}
	return nil
}
