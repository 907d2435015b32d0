package camfuse

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestAngleNorm(t *testing.T) {
	test.Float(t, angleNorm(0.0), 0.0)
	test.Float(t, angleNorm(1.0*math.Pi), 1.0*math.Pi)
	test.Float(t, angleNorm(2.0*math.Pi), 0.0)
	test.Float(t, angleNorm(3.0*math.Pi), 1.0*math.Pi)
	test.Float(t, angleNorm(-1.0*math.Pi), 1.0*math.Pi)
	test.Float(t, angleNorm(-2.0*math.Pi), 0.0)
}

func TestAngleDelta(t *testing.T) {
	test.Float(t, angleDelta(0.0, 0.5), 0.5)
	test.Float(t, angleDelta(0.5, 0.0), -0.5)
	test.Float(t, angleDelta(0.0, math.Pi), math.Pi)
	test.Float(t, angleDelta(-0.25, 0.25), 0.5)
	test.Float(t, angleDelta(2.0*math.Pi-0.25, 0.25), 0.5)
	test.Float(t, angleDelta(0.25, -0.25), -0.5)
}

func TestAngleBetween(t *testing.T) {
	test.T(t, angleBetween(0.0, 0.0, 1.0), false)
	test.T(t, angleBetween(1.0, 0.0, 1.0), false)
	test.T(t, angleBetween(0.5, 0.0, 1.0), true)
	test.T(t, angleBetween(0.5+2.0*math.Pi, 0.0, 1.0), true)
	test.T(t, angleBetween(0.5, 0.0+2.0*math.Pi, 1.0+2.0*math.Pi), true)
	test.T(t, angleBetween(0.5-2.0*math.Pi, 0.0, 1.0), true)
}

func TestPoint(t *testing.T) {
	p := Point{3, 4}
	test.T(t, p.Mul(2.0), Point{6, 8})
	test.T(t, p.Rot90CW(), Point{4, -3})
	test.T(t, p.Rot90CCW(), Point{-4, 3})
	test.Float(t, p.Dot(Point{3, 0}), 9.0)
	test.Float(t, p.PerpDot(Point{3, 0}), -12.0)
	test.Float(t, p.Length(), 5.0)
	test.Float(t, p.Angle(), 53.130095*math.Pi/180.0)
	test.T(t, p.Norm(5.0), Point{3, 4})
	test.T(t, Point{}.Norm(1.0), Point{0.0, 0.0})
	test.T(t, Point{}.Interpolate(p, 0.5), Point{1.5, 2.0})
	test.T(t, p.IsFinite(), true)
	test.T(t, Point{math.NaN(), 0.0}.IsFinite(), false)
	test.T(t, Point{0.0, math.Inf(1)}.IsFinite(), false)
}

func TestRect(t *testing.T) {
	r := Rect{0, 0, 5, 5}
	test.T(t, r.Add(Rect{2, 2, 8, 8}), Rect{0, 0, 10, 10})
	test.T(t, r.Add(Rect{}), r)
	test.T(t, Rect{}.Add(r), r)
	test.T(t, r.AddPoint(Point{10, -5}), Rect{0, -5, 10, 10})
	test.T(t, Rect{}.AddPoint(Point{3, 4}), Rect{3, 4, 0, 0})
	test.T(t, r.Move(Point{1, 1}), Rect{1, 1, 5, 5})
}
