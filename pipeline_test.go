package camfuse

import (
	"errors"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestPipelineCircleRoundTrip(t *testing.T) {
	reg := NewCurveRegistry()
	reg.Add(Curve{ID: 1, Kind: CurveCircle, Center: Point{5, 5}, Radius: 2.0})

	circle := NewCircle(Point{5, 5}, 2.0)
	circle.CurveID = 1

	p, err := NewPipeline(reg, nil)
	test.Error(t, err)
	out, err := p.Fuse([]Primitive{circle})
	test.Error(t, err)
	test.T(t, len(out), 1)

	// the disc went through tessellation and clipping and came back analytic
	rc, ok := out[0].(*Circle)
	test.That(t, ok)
	test.That(t, math.Abs(rc.Radius-2.0) < 1e-6)
	test.That(t, rc.Center.Sub(Point{5, 5}).Length() < 1e-6)
	test.T(t, rc.CurveID, uint32(1))

	test.T(t, p.Stats().PrimitivesIn, 1)
	test.T(t, p.Stats().PrimitivesOut, 1)
	test.T(t, p.Stats().CurvesReconstructed, 1)
}

func TestPipelineDrilledPad(t *testing.T) {
	reg := NewCurveRegistry()
	reg.Add(Curve{ID: 1, Kind: CurveCircle, Center: Point{5, 5}, Radius: 2.0})

	pad := NewRectangle(Point{5, 5}, 20.0, 20.0)
	drill := NewCircle(Point{5, 5}, 2.0)
	drill.CurveID = 1
	drill.SetPolarity(Clear)

	p, err := NewPipeline(reg, nil)
	test.Error(t, err)
	out, err := p.Fuse([]Primitive{pad, drill})
	test.Error(t, err)
	test.T(t, len(out), 1)

	path := out[0].(*Path)
	test.T(t, len(path.Contours), 2)
	test.T(t, path.Contours[1].Hole, true)
	test.T(t, p.Stats().HolesDetected, 1)

	// the drilled hole collapses back to one analytic arc spanning the ring
	hole := path.Contours[1]
	test.T(t, len(hole.Arcs), 1)
	test.That(t, 0.9*2.0*math.Pi < math.Abs(hole.Arcs[0].Sweep))
	test.That(t, math.Abs(hole.Arcs[0].Radius-2.0) < 1e-6)
	test.T(t, p.Stats().CurvesReconstructed, 1)
}

func TestPipelinePolarityProp(t *testing.T) {
	pad := NewRectangle(Point{5, 5}, 10.0, 10.0)
	cut := NewRectangle(Point{5, 5}, 6.0, 6.0)
	cut.SetProp("polarity", "clear")

	p, _ := NewPipeline(nil, nil)
	out, err := p.Fuse([]Primitive{pad, cut})
	test.Error(t, err)
	test.T(t, len(out), 1)
	test.T(t, p.Stats().HolesDetected, 1)
	test.Float(t, out[0].(*Path).Contours[1].Area(), -36.0)
}

func TestPipelineTrace(t *testing.T) {
	trace := NewTrace(2.0,
		Vertex{Point: Point{0, 0}},
		Vertex{Point: Point{10, 0}})

	p, _ := NewPipeline(nil, nil)
	out, err := p.Fuse([]Primitive{trace})
	test.Error(t, err)
	test.T(t, len(out), 1)
	test.T(t, p.Stats().StrokesConverted, 1)

	// length times width plus two round caps
	area := out[0].(*Path).Contours[0].Area()
	test.That(t, math.Abs(area-(20.0+math.Pi)) < 0.05)
}

func TestPipelineSkipsMalformed(t *testing.T) {
	good := NewRectangle(Point{0, 0}, 10.0, 10.0)
	degenerate := NewCircle(Point{50, 50}, 0.0)
	empty := NewPath()

	p, _ := NewPipeline(nil, nil)
	out, err := p.Fuse([]Primitive{good, degenerate, empty})
	test.Error(t, err)
	test.T(t, len(out), 1)
	test.T(t, p.Stats().PrimitivesIn, 3)
	test.T(t, p.Stats().Skipped, 2)
	test.T(t, p.Stats().PrimitivesOut, 1)
}

func TestPipelineObround(t *testing.T) {
	p, _ := NewPipeline(nil, nil)
	out, err := p.Fuse([]Primitive{NewObround(Point{0, 0}, 10.0, 4.0)})
	test.Error(t, err)
	test.T(t, len(out), 1)

	// stadium area: body rectangle plus a full circle of caps
	area := out[0].(*Path).Contours[0].Area()
	test.That(t, math.Abs(area-(6.0*4.0+math.Pi*4.0)) < 0.2)
	test.That(t, out[0].(*Path).Bounds().W < 10.0+1e-6)
}

func TestPipelineArcTrace(t *testing.T) {
	reg := NewCurveRegistry()
	arc := NewArc(Point{0, 0}, 5.0, 0.0, math.Pi, false, 1.0)

	p, _ := NewPipeline(reg, nil)
	out, err := p.Fuse([]Primitive{arc})
	test.Error(t, err)
	test.T(t, len(out), 1)

	// half annulus of width 1 plus two round caps
	want := math.Pi*(5.5*5.5-4.5*4.5)/2.0 + math.Pi*0.25
	area := 0.0
	for _, c := range out[0].(*Path).Contours {
		area += c.Area()
	}
	test.That(t, math.Abs(area-want) < 0.1)
}

func TestPipelineBezierTrace(t *testing.T) {
	bez := NewBezier(Point{0, 0}, Point{3, 4}, Point{7, 4}, Point{10, 0}, 0.5)
	p, _ := NewPipeline(nil, nil)
	out, err := p.Fuse([]Primitive{bez})
	test.Error(t, err)
	test.T(t, len(out), 1)
	test.T(t, p.Stats().StrokesConverted, 1)
	test.That(t, 0.0 < out[0].(*Path).Contours[0].Area())
}

func TestPipelineStages(t *testing.T) {
	pad := NewRectangle(Point{0, 0}, 10.0, 10.0)
	p, _ := NewPipeline(nil, nil)
	_, err := p.Fuse([]Primitive{pad})
	test.Error(t, err)
	test.T(t, len(p.Original()), 1)
	test.T(t, len(p.Preprocessed()), 1)
	test.T(t, len(p.Fused()), 1)

	// preprocessed primitives remember their source index
	v, ok := p.Preprocessed()[0].Prop("source")
	test.That(t, ok)
	test.T(t, v.(int), 0)

	p.Reset()
	test.T(t, len(p.Fused()), 0)
	test.T(t, p.Stats().PrimitivesIn, 0)
}

func TestPipelineBadScale(t *testing.T) {
	_, err := NewPipeline(nil, &Options{Scale: -1.0})
	test.T(t, errors.Is(err, ErrBadScale), true)
}

func TestCircleSegments(t *testing.T) {
	test.T(t, circleSegments(2.0, 0.01), 32)
	test.T(t, circleSegments(1.0, 0.0), 16)
	test.T(t, circleSegments(0.001, 0.01), 16)
	test.That(t, 12 <= circleSegments(0.1, 0.01))
	test.That(t, circleSegments(1000.0, 1e-9) <= 720)
}
