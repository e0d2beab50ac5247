package blend

import (
	"tileterrain/internal/linalg"

	"github.com/go-gl/mathgl/mgl64"
)

// MinSegment is the shortest run that still has an interior sample to rewrite.
const MinSegment = 3

// FitCubic returns the coefficients {a, b, c, d} of
// f(t) = a t³ + b t² + c t + d with f(0)=y0, f(span)=y1, f'(0)=m0 and
// f'(span)=m1. A degenerate span falls back to whatever the reduced system
// still pins down; missing coefficients read as zero.
func FitCubic(y0, y1, m0, m1, span float64) mgl64.Vec4 {
	x0, x1 := 0.0, span
	m := linalg.FromRows([][]float64{
		{x0 * x0 * x0, x0 * x0, x0, 1, y0},
		{x1 * x1 * x1, x1 * x1, x1, 1, y1},
		{3 * x0 * x0, 2 * x0, 1, 0, m0},
		{3 * x1 * x1, 2 * x1, 1, 0, m1},
	})
	linalg.ReduceInPlace(m)
	return mgl64.Vec4{m.At(0, 4), m.At(1, 4), m.At(2, 4), m.At(3, 4)}
}

// EvalCubic evaluates the cubic with coefficients c at t.
func EvalCubic(c mgl64.Vec4, t float64) float64 {
	return ((c[0]*t+c[1])*t+c[2])*t + c[3]
}

// Segment replaces the interior of points with a cubic that keeps both end
// values and the first-difference slopes at each end. Runs shorter than
// MinSegment are left as they are.
func Segment(points []float32) {
	n := len(points)
	if n < MinSegment {
		return
	}
	last := n - 1
	y0 := float64(points[0])
	y1 := float64(points[last])
	m0 := float64(points[1]) - float64(points[0])
	m1 := float64(points[last]) - float64(points[last-1])

	c := FitCubic(y0, y1, m0, m1, float64(last))
	for i := 1; i < last; i++ {
		points[i] = float32(EvalCubic(c, float64(i)))
	}
}
