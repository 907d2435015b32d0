package camfuse

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestWriteSVG(t *testing.T) {
	circle := NewCircle(Point{1, 2}, 3.0)
	pad := NewPath(square(10.0, 1.0, 5.0))
	cut := NewCircle(Point{12.5, 3.5}, 1.0)
	cut.SetPolarity(Clear)

	buf := &bytes.Buffer{}
	err := WriteSVG(buf, []Primitive{circle, pad, cut}, nil)
	test.Error(t, err)

	out := buf.String()
	test.That(t, strings.HasPrefix(out, "<svg"))
	test.That(t, strings.HasSuffix(out, "</svg>"))
	test.That(t, strings.Contains(out, `<circle cx="1" cy="-2" r="3" fill="#000"/>`))
	test.That(t, strings.Contains(out, `fill="#fff"`))
	test.That(t, strings.Contains(out, `<path d="M10 -1`))
}

func TestWriteSVGArcs(t *testing.T) {
	c := NewContour(
		Vertex{Point: Point{1, 2}},
		Vertex{Point: Point{-1, 2}},
		Vertex{Point: Point{-1, 1}},
		Vertex{Point: Point{1, 1}},
	)
	c.Arcs = []ArcSegment{{
		Start:  0,
		End:    1,
		Center: Point{0, 2},
		Radius: 1.0,
		Theta0: 0.0,
		Theta1: math.Pi,
		Sweep:  math.Pi,
	}}

	buf := &bytes.Buffer{}
	err := WriteSVG(buf, []Primitive{NewPath(c)}, nil)
	test.Error(t, err)

	// the collapsed run is written as an arc command, not line segments
	test.That(t, strings.Contains(buf.String(), "A1 1 0 0 0 -1 -2"))
}

func TestWriteSVGMinified(t *testing.T) {
	buf := &bytes.Buffer{}
	err := WriteSVG(buf, []Primitive{NewCircle(Point{0, 0}, 1.0)}, &SVGOptions{Minify: true})
	test.Error(t, err)
	test.That(t, 0 < buf.Len())
	test.That(t, strings.Contains(buf.String(), "svg"))
}
