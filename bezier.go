package camfuse

import "math"

func splitCubicBezier(p0, p1, p2, p3 Point, t float64) (Point, Point, Point, Point, Point, Point, Point, Point) {
	pm := p1.Interpolate(p2, t)

	q0 := p0
	q1 := p0.Interpolate(p1, t)
	q2 := q1.Interpolate(pm, t)

	r3 := p3
	r2 := p2.Interpolate(p3, t)
	r1 := pm.Interpolate(r2, t)

	r0 := q2.Interpolate(r1, t)
	q3 := r0
	return q0, q1, q2, q3, r0, r1, r2, r3
}

// flattenCubicBezier approximates the curve by line segments with maximum
// deviation flatness, subdividing at the midpoint until the control points
// stay within flatness of the chord. The start point is not emitted.
func flattenCubicBezier(p0, p1, p2, p3 Point, flatness float64) []Point {
	var pts []Point
	var recurse func(p0, p1, p2, p3 Point, depth int)
	recurse = func(p0, p1, p2, p3 Point, depth int) {
		if 24 <= depth || cubicFlatEnough(p0, p1, p2, p3, flatness) {
			pts = append(pts, p3)
			return
		}
		q0, q1, q2, q3, r0, r1, r2, r3 := splitCubicBezier(p0, p1, p2, p3, 0.5)
		recurse(q0, q1, q2, q3, depth+1)
		recurse(r0, r1, r2, r3, depth+1)
	}
	recurse(p0, p1, p2, p3, 0)
	return pts
}

// cubicFlatEnough is true when both control points lie within flatness of
// the chord p0-p3.
func cubicFlatEnough(p0, p1, p2, p3 Point, flatness float64) bool {
	chord := p3.Sub(p0)
	length := chord.Length()
	if length < Epsilon {
		return p1.Sub(p0).Length() < flatness && p2.Sub(p0).Length() < flatness
	}
	d1 := math.Abs(chord.PerpDot(p1.Sub(p0))) / length
	d2 := math.Abs(chord.PerpDot(p2.Sub(p0))) / length
	return d1 < flatness && d2 < flatness
}
