// Package curve converts user-drawn tone-curve control points into fixed
// resolution lookup tables.
//
// Control points live in the 0-255 domain used by the editing UI. Between
// points the curve is a monotone cubic Hermite spline (Fritsch-Carlson
// slope limiting), so a monotone set of control points always produces a
// monotone curve with no overshoot; two points degrade to straight linear
// interpolation.
//
// LUTs are built once per parameter set and treated as read-only afterwards;
// the pipeline never evaluates a spline per pixel.
package curve

import (
	"sort"

	"github.com/chewxy/math32"
)

// Point is a tone-curve control point in the 0-255 domain.
type Point struct {
	X float32
	Y float32
}

// Identity returns the two-point identity curve.
func Identity() []Point {
	return []Point{{0, 0}, {255, 255}}
}

// IsIdentity reports whether a control-point set describes the identity
// curve (empty, single diagonal point pair, or all points on the diagonal).
func IsIdentity(points []Point) bool {
	if len(points) < 2 {
		return true
	}
	for _, p := range points {
		if p.X != p.Y {
			return false
		}
	}
	return true
}

// spline holds the precomputed Hermite segments for one curve.
type spline struct {
	xs []float32
	ys []float32
	ms []float32 // tangent at each point
}

// newSpline sorts and deduplicates the control points and computes
// Fritsch-Carlson limited tangents.
func newSpline(points []Point) spline {
	pts := make([]Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })

	// Drop points sharing an X coordinate; the last one wins.
	dst := 0
	for i := range pts {
		if dst > 0 && pts[i].X == pts[dst-1].X {
			pts[dst-1] = pts[i]
			continue
		}
		pts[dst] = pts[i]
		dst++
	}
	pts = pts[:dst]

	if len(pts) < 2 {
		pts = Identity()
	}

	n := len(pts)
	s := spline{
		xs: make([]float32, n),
		ys: make([]float32, n),
		ms: make([]float32, n),
	}
	for i, p := range pts {
		s.xs[i] = p.X
		s.ys[i] = p.Y
	}

	// Secant slopes between neighbors.
	d := make([]float32, n-1)
	for i := 0; i < n-1; i++ {
		d[i] = (s.ys[i+1] - s.ys[i]) / (s.xs[i+1] - s.xs[i])
	}

	// Tangents: average of adjacent secants, endpoints one-sided.
	s.ms[0] = d[0]
	s.ms[n-1] = d[n-2]
	for i := 1; i < n-1; i++ {
		if d[i-1]*d[i] <= 0 {
			// Local extremum: flat tangent keeps the curve monotone.
			s.ms[i] = 0
		} else {
			s.ms[i] = (d[i-1] + d[i]) / 2
		}
	}

	// Fritsch-Carlson limiting: keep alpha²+beta² <= 9 so each segment
	// stays monotone.
	for i := 0; i < n-1; i++ {
		if d[i] == 0 {
			s.ms[i] = 0
			s.ms[i+1] = 0
			continue
		}
		alpha := s.ms[i] / d[i]
		beta := s.ms[i+1] / d[i]
		sq := alpha*alpha + beta*beta
		if sq > 9 {
			tau := 3 / math32.Sqrt(sq)
			s.ms[i] = tau * alpha * d[i]
			s.ms[i+1] = tau * beta * d[i]
		}
	}
	return s
}

// eval evaluates the spline at x (0-255 domain), clamping outside the
// covered range to the end-point values.
func (s spline) eval(x float32) float32 {
	n := len(s.xs)
	if x <= s.xs[0] {
		return s.ys[0]
	}
	if x >= s.xs[n-1] {
		return s.ys[n-1]
	}

	// Binary search for the segment containing x.
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if s.xs[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}

	h := s.xs[hi] - s.xs[lo]
	t := (x - s.xs[lo]) / h
	t2 := t * t
	t3 := t2 * t

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*s.ys[lo] + h10*h*s.ms[lo] + h01*s.ys[hi] + h11*h*s.ms[hi]
}

// clamp255 clamps a curve output to the 0-255 domain.
func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
