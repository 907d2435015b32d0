package camfuse

import "math"

// Vertex is a contour point, optionally tagged with the analytic curve it was
// tessellated from. A zero CurveID means untagged.
type Vertex struct {
	Point
	CurveID uint32
	Segment uint32
	CW      bool
}

// Vtx returns a tagged vertex.
func Vtx(x, y float64, curveID, segment uint32, cw bool) Vertex {
	return Vertex{Point{x, y}, curveID, segment, cw}
}

// ArcSegment describes a run of contour points that has been collapsed to its
// two endpoints plus analytic arc metadata. Start and End index into the
// rewritten contour's point list.
type ArcSegment struct {
	Start, End int
	Center     Point
	Radius     float64
	Theta0     float64 // angle of the start point about the center
	Theta1     float64 // angle of the end point about the center
	Sweep      float64 // signed, positive is CCW
	CW         bool
	CurveID    uint32
}

// Contour is one implicitly-closed ring of points. The canonical orientation
// is counter-clockwise (positive signed area) for outer contours and
// clockwise for holes.
type Contour struct {
	Points  []Vertex
	Hole    bool
	Nesting int
	Parent  int // index of the parent contour within its Path, -1 for outers
	Arcs    []ArcSegment
}

// NewContour returns a non-hole contour over the given points.
func NewContour(points ...Vertex) *Contour {
	return &Contour{Points: points, Parent: -1}
}

// Area returns the signed area of the ring, including the implicit closing
// edge. Positive means counter-clockwise.
func (c *Contour) Area() float64 {
	a := 0.0
	n := len(c.Points)
	for i := 0; i < n; i++ {
		a += c.Points[i].PerpDot(c.Points[(i+1)%n].Point)
	}
	return a / 2.0
}

// CCW returns true if the ring winds counter-clockwise.
func (c *Contour) CCW() bool {
	return 0.0 <= c.Area()
}

// Reverse reverses the point order, flipping the winding. Arc segment indices
// are not remapped; reverse before reconstruction, not after.
func (c *Contour) Reverse() {
	for i, j := 0, len(c.Points)-1; i < j; i, j = i+1, j-1 {
		c.Points[i], c.Points[j] = c.Points[j], c.Points[i]
	}
}

// Bounds returns the bounding box of the ring.
func (c *Contour) Bounds() Rect {
	if len(c.Points) == 0 {
		return Rect{}
	}
	x0, y0 := c.Points[0].X, c.Points[0].Y
	x1, y1 := x0, y0
	for _, p := range c.Points[1:] {
		x0 = math.Min(x0, p.X)
		y0 = math.Min(y0, p.Y)
		x1 = math.Max(x1, p.X)
		y1 = math.Max(y1, p.Y)
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Dense returns the ring's points with collapsed arc segments resampled
// into polygon edges within tol of the true arc.
func (c *Contour) Dense(tol float64) []Point {
	pts := make([]Point, 0, len(c.Points))
	if len(c.Arcs) == 0 {
		for _, p := range c.Points {
			pts = append(pts, p.Point)
		}
		return pts
	}
	arcFrom := map[int]ArcSegment{}
	for _, a := range c.Arcs {
		arcFrom[a.Start] = a
	}
	n := len(c.Points)
	for i := 0; i < n; i++ {
		pts = append(pts, c.Points[i].Point)
		if a, ok := arcFrom[i]; ok && a.End == (i+1)%n {
			m := int(math.Ceil(math.Abs(a.Sweep) / (2.0 * math.Pi) * float64(circleSegments(a.Radius, tol))))
			for j := 1; j < m; j++ {
				theta := a.Theta0 + a.Sweep*float64(j)/float64(m)
				pts = append(pts, a.Center.Add(Point{a.Radius * math.Cos(theta), a.Radius * math.Sin(theta)}))
			}
		}
	}
	return pts
}

// CurveIDs returns the set of curve ids tagged on the ring's points.
func (c *Contour) CurveIDs() map[uint32]bool {
	ids := map[uint32]bool{}
	for _, p := range c.Points {
		if p.CurveID != 0 {
			ids[p.CurveID] = true
		}
	}
	return ids
}

// Valid returns true when the ring has at least three points, all finite.
// Degenerate rings are skipped by the pipeline, never fused.
func (c *Contour) Valid() bool {
	if len(c.Points) < 3 {
		return false
	}
	for _, p := range c.Points {
		if !p.IsFinite() {
			return false
		}
	}
	return true
}
