// Package sgemmbench tolerance-based verification for floating-point comparisons
package sgemmbench

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ToleranceConfig defines tolerance parameters for floating-point comparison
type ToleranceConfig struct {
	// AbsTol is the absolute tolerance for values near zero
	AbsTol float32

	// RelTol is the relative tolerance as a fraction of the larger value
	RelTol float32

	// ULPTol is the maximum allowed difference in ULPs (Units in Last Place)
	ULPTol int

	// CheckNaN determines if NaN values should be considered equal
	CheckNaN bool

	// CheckInf determines if Inf values should be considered equal
	CheckInf bool
}

// DefaultTolerance returns default tolerance configuration
func DefaultTolerance() ToleranceConfig {
	return ToleranceConfig{
		AbsTol:   1e-7,
		RelTol:   1e-5,
		ULPTol:   4,
		CheckNaN: true,
		CheckInf: true,
	}
}

// ProductTolerance suits a product re-derived from saved operands with inner
// dimension k. Saved values are rounded to ValueDigits decimals, so each of
// the k terms may be off by about twice the rounding step.
func ProductTolerance(k int) ToleranceConfig {
	step := float32(math.Pow10(-ValueDigits))
	return ToleranceConfig{
		AbsTol:   2 * step * float32(k),
		RelTol:   1e-3,
		CheckNaN: true,
		CheckInf: true,
	}
}

// Float32NearEqual checks if two float32 values are equal within tolerance
func Float32NearEqual(a, b float32, tol ToleranceConfig) bool {
	if tol.CheckNaN && math.IsNaN(float64(a)) && math.IsNaN(float64(b)) {
		return true
	}

	if tol.CheckInf {
		if math.IsInf(float64(a), 1) && math.IsInf(float64(b), 1) {
			return true
		}
		if math.IsInf(float64(a), -1) && math.IsInf(float64(b), -1) {
			return true
		}
	}

	// Handles ±0
	if a == b {
		return true
	}

	diff := math.Abs(float64(a) - float64(b))
	if diff <= float64(tol.AbsTol) {
		return true
	}

	larger := math.Max(math.Abs(float64(a)), math.Abs(float64(b)))
	if diff <= larger*float64(tol.RelTol) {
		return true
	}

	if tol.ULPTol > 0 && Float32ULPDiff(a, b) <= tol.ULPTol {
		return true
	}

	return false
}

// Float32ULPDiff computes the difference in ULPs between two float32 values
func Float32ULPDiff(a, b float32) int {
	aBits := math.Float32bits(a)
	bBits := math.Float32bits(b)

	// Different signs can't use simple subtraction
	if (aBits^bBits)&0x80000000 != 0 {
		return math.MaxInt32
	}

	if aBits > bBits {
		return int(aBits - bBits)
	}
	return int(bBits - aBits)
}

// VerificationResult summarises an element-wise comparison
type VerificationResult struct {
	MaxAbsError float32
	MaxRelError float32
	MaxULPError int
	NumErrors   int
	TotalItems  int
	FirstError  int // Index of first error, -1 if none
}

// VerifyFloat32Array compares two float32 arrays and returns detailed results
func VerifyFloat32Array(expected, actual []float32, tol ToleranceConfig) VerificationResult {
	result := VerificationResult{
		TotalItems: len(expected),
		FirstError: -1,
	}

	if len(expected) != len(actual) {
		result.NumErrors = len(expected)
		result.FirstError = 0
		return result
	}

	for i := range expected {
		if Float32NearEqual(expected[i], actual[i], tol) {
			continue
		}
		result.NumErrors++
		if result.FirstError == -1 {
			result.FirstError = i
		}

		absDiff := float32(math.Abs(float64(expected[i]) - float64(actual[i])))
		if absDiff > result.MaxAbsError {
			result.MaxAbsError = absDiff
		}

		if expected[i] != 0 {
			relDiff := absDiff / float32(math.Abs(float64(expected[i])))
			if relDiff > result.MaxRelError {
				result.MaxRelError = relDiff
			}
		}

		if ulpDiff := Float32ULPDiff(expected[i], actual[i]); ulpDiff > result.MaxULPError {
			result.MaxULPError = ulpDiff
		}
	}

	return result
}

// Passed reports whether every element matched.
func (r VerificationResult) Passed() bool {
	return r.NumErrors == 0
}

// String formats the verification result for display
func (r VerificationResult) String() string {
	if r.NumErrors == 0 {
		return fmt.Sprintf("PASS: all %d values match within tolerance", r.TotalItems)
	}

	errorRate := float64(r.NumErrors) / float64(r.TotalItems) * 100
	return fmt.Sprintf("FAIL: %d/%d values differ (%.2f%%)\n"+
		"  Max absolute error: %e\n"+
		"  Max relative error: %e\n"+
		"  Max ULP difference: %d\n"+
		"  First error at index: %d",
		r.NumErrors, r.TotalItems, errorRate,
		r.MaxAbsError, r.MaxRelError, r.MaxULPError,
		r.FirstError)
}

// VerifyProduct recomputes a·b in float64 with gonum and compares it to c.
func VerifyProduct(a, b, c *Matrix, tol ToleranceConfig) (VerificationResult, error) {
	if a.Cols != b.Rows {
		return VerificationResult{}, fmt.Errorf("%dx%d times %dx%d: %w", a.Rows, a.Cols, b.Rows, b.Cols, ErrShapeMismatch)
	}
	if c.Rows != a.Rows || c.Cols != b.Cols {
		return VerificationResult{}, NewInvalidArgError("VerifyProduct",
			fmt.Sprintf("product is %dx%d, expected %dx%d", c.Rows, c.Cols, a.Rows, b.Cols))
	}

	var want mat.Dense
	want.Mul(toDense(a), toDense(b))

	expected := make([]float32, 0, c.Rows*c.Cols)
	actual := make([]float32, 0, c.Rows*c.Cols)
	for i := 0; i < c.Rows; i++ {
		for j := 0; j < c.Cols; j++ {
			expected = append(expected, float32(want.At(i, j)))
		}
		actual = append(actual, c.Row(i)...)
	}
	return VerifyFloat32Array(expected, actual, tol), nil
}

func toDense(m *Matrix) *mat.Dense {
	d := mat.NewDense(m.Rows, m.Cols, nil)
	for i := 0; i < m.Rows; i++ {
		for j, v := range m.Row(i) {
			d.Set(i, j, float64(v))
		}
	}
	return d
}
