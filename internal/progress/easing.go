// Package progress maps panel scroll offsets to the normalized, eased values
// that drive header animation.
package progress

// Curve holds the four control values of a one-dimensional cubic Bézier.
type Curve struct {
	P0, P1, P2, P3 float64
}

var (
	// Expo is the header easing: control points (0,0),(0,0),(0,1).
	Expo = Curve{0, 0, 0, 1}
	// EaseInOut is the smooth scroller's easing.
	EaseInOut = Curve{0, 0, 1, 1}
)

// At evaluates the curve at t.
func (c Curve) At(t float64) float64 {
	return Bezier(t, c.P0, c.P1, c.P2, c.P3)
}

// Bezier evaluates (1−t)³p0 + 3(1−t)²t·p1 + 3(1−t)t²·p2 + t³p3.
func Bezier(t, p0, p1, p2, p3 float64) float64 {
	u := 1 - t
	return u*u*u*p0 + 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t*p3
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
