package camfuse

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func square(x, y, w float64) *Contour {
	return NewContour(
		Vertex{Point: Point{x, y}},
		Vertex{Point: Point{x + w, y}},
		Vertex{Point: Point{x + w, y + w}},
		Vertex{Point: Point{x, y + w}},
	)
}

func TestContourArea(t *testing.T) {
	c := square(0.0, 0.0, 10.0)
	test.Float(t, c.Area(), 100.0)
	test.T(t, c.CCW(), true)

	c.Reverse()
	test.Float(t, c.Area(), -100.0)
	test.T(t, c.CCW(), false)
}

func TestContourBounds(t *testing.T) {
	c := square(-2.0, 3.0, 4.0)
	test.T(t, c.Bounds(), Rect{-2.0, 3.0, 4.0, 4.0})
	test.T(t, NewContour().Bounds(), Rect{})
}

func TestContourCurveIDs(t *testing.T) {
	c := NewContour(
		Vtx(0.0, 0.0, 3, 0, false),
		Vtx(1.0, 0.0, 3, 1, false),
		Vertex{Point: Point{1.0, 1.0}},
		Vtx(0.0, 1.0, 8, 0, true),
	)
	ids := c.CurveIDs()
	test.T(t, len(ids), 2)
	test.T(t, ids[3], true)
	test.T(t, ids[8], true)
}

func TestContourDense(t *testing.T) {
	c := square(0.0, 0.0, 2.0)
	pts := c.Dense(0.01)
	test.T(t, len(pts), 4)

	// a collapsed arc is resampled onto the circle
	c = NewContour(
		Vertex{Point: Point{1, 0}},
		Vertex{Point: Point{-1, 0}},
		Vertex{Point: Point{-1, -1}},
		Vertex{Point: Point{1, -1}},
	)
	c.Arcs = []ArcSegment{{Start: 0, End: 1, Center: Point{}, Radius: 1.0, Theta0: 0.0, Theta1: math.Pi, Sweep: math.Pi}}
	pts = c.Dense(0.01)
	test.That(t, 10 < len(pts))
	for _, p := range pts {
		if 0.0 < p.Y {
			test.That(t, math.Abs(p.Length()-1.0) < 1e-9)
		}
	}
}

func TestContourValid(t *testing.T) {
	test.T(t, square(0.0, 0.0, 1.0).Valid(), true)
	test.T(t, NewContour().Valid(), false)
	test.T(t, NewContour(Vertex{Point: Point{0, 0}}, Vertex{Point: Point{1, 0}}).Valid(), false)

	c := square(0.0, 0.0, 1.0)
	c.Points[2].X = math.NaN()
	test.T(t, c.Valid(), false)

	c = square(0.0, 0.0, 1.0)
	c.Points[0].Y = math.Inf(-1)
	test.T(t, c.Valid(), false)
}
