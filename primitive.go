package camfuse

import (
	"math"
	"strings"
)

// Polarity determines whether a primitive adds or removes copper, and with
// that whether it enters a boolean operation as subject or clip.
type Polarity int

const (
	Dark Polarity = iota
	Clear
)

func (p Polarity) String() string {
	if p == Clear {
		return "clear"
	}
	return "dark"
}

// ParsePolarity parses a polarity property value. Unknown values are not an
// error; the pipeline defaults them to Dark.
func ParsePolarity(s string) (Polarity, bool) {
	switch strings.ToLower(s) {
	case "dark", "d":
		return Dark, true
	case "clear", "c":
		return Clear, true
	}
	return Dark, false
}

// Primitive is a piece of board artwork. The variants are Path, Circle,
// Rectangle, Obround, Arc and Bezier; no other implementations exist.
type Primitive interface {
	Polarity() Polarity
	SetPolarity(Polarity)
	Prop(key string) (interface{}, bool)
	SetProp(key string, value interface{})
	Bounds() Rect
}

// shape carries the fields common to all primitive variants.
type shape struct {
	polarity Polarity
	props    map[string]interface{}
}

func (s *shape) Polarity() Polarity {
	return s.polarity
}

func (s *shape) SetPolarity(p Polarity) {
	s.polarity = p
}

func (s *shape) Prop(key string) (interface{}, bool) {
	v, ok := s.props[key]
	return v, ok
}

func (s *shape) SetProp(key string, value interface{}) {
	if s.props == nil {
		s.props = map[string]interface{}{}
	}
	s.props[key] = value
}

////////////////////////////////////////////////////////////////

// Path is a polygonal region owning one or more contours (an outer boundary
// plus holes and islands), or a stroked centerline when Stroke is positive.
type Path struct {
	shape
	Contours []*Contour
	Stroke   float64 // stroke width, 0 means the contours are region outlines
	Closed   bool    // stroked centerline closes back on its first point
}

func NewPath(contours ...*Contour) *Path {
	return &Path{Contours: contours}
}

// NewTrace returns a stroked centerline of the given width.
func NewTrace(width float64, points ...Vertex) *Path {
	return &Path{Contours: []*Contour{NewContour(points...)}, Stroke: width}
}

func (p *Path) Bounds() Rect {
	r := Rect{}
	for _, c := range p.Contours {
		r = r.Add(c.Bounds())
	}
	if 0.0 < p.Stroke {
		h := p.Stroke / 2.0
		r = Rect{r.X - h, r.Y - h, r.W + p.Stroke, r.H + p.Stroke}
	}
	return r
}

// Circle is a filled disc. CurveID links it to its registry entry so that
// tessellated points can be tagged and later reconstructed.
type Circle struct {
	shape
	Center  Point
	Radius  float64
	CurveID uint32
}

func NewCircle(center Point, radius float64) *Circle {
	return &Circle{Center: center, Radius: radius}
}

func (p *Circle) Bounds() Rect {
	return Rect{p.Center.X - p.Radius, p.Center.Y - p.Radius, 2.0 * p.Radius, 2.0 * p.Radius}
}

// Rectangle is a filled axis-aligned rectangle around a center point.
type Rectangle struct {
	shape
	Center Point
	W, H   float64
}

func NewRectangle(center Point, w, h float64) *Rectangle {
	return &Rectangle{Center: center, W: w, H: h}
}

func (p *Rectangle) Bounds() Rect {
	return Rect{p.Center.X - p.W/2.0, p.Center.Y - p.H/2.0, p.W, p.H}
}

// Obround is a filled stadium shape: a rectangle with semicircular caps on
// its shorter sides. CapIDs optionally link the two caps to registry entries.
type Obround struct {
	shape
	Center Point
	W, H   float64
	CapIDs [2]uint32
}

func NewObround(center Point, w, h float64) *Obround {
	return &Obround{Center: center, W: w, H: h}
}

func (p *Obround) Bounds() Rect {
	return Rect{p.Center.X - p.W/2.0, p.Center.Y - p.H/2.0, p.W, p.H}
}

// Arc is a stroked circular arc between two angles. Theta0 and Theta1 are in
// radians; with CW false the arc runs counter-clockwise from Theta0 to Theta1.
type Arc struct {
	shape
	Center  Point
	Radius  float64
	Theta0  float64
	Theta1  float64
	CW      bool
	Width   float64
	CurveID uint32
}

func NewArc(center Point, radius, theta0, theta1 float64, cw bool, width float64) *Arc {
	return &Arc{Center: center, Radius: radius, Theta0: theta0, Theta1: theta1, CW: cw, Width: width}
}

func (p *Arc) Bounds() Rect {
	r := Rect{}
	r = r.AddPoint(p.Center.Add(Point{p.Radius * math.Cos(p.Theta0), p.Radius * math.Sin(p.Theta0)}))
	r = r.AddPoint(p.Center.Add(Point{p.Radius * math.Cos(p.Theta1), p.Radius * math.Sin(p.Theta1)}))
	lower, upper := p.Theta0, p.Theta1
	if p.CW {
		lower, upper = upper, lower
	}
	for _, theta := range []float64{0.0, 0.5 * math.Pi, math.Pi, 1.5 * math.Pi} {
		if angleBetween(theta, lower, upper) {
			r = r.AddPoint(p.Center.Add(Point{p.Radius * math.Cos(theta), p.Radius * math.Sin(theta)}))
		}
	}
	if 0.0 < p.Width {
		h := p.Width / 2.0
		r = Rect{r.X - h, r.Y - h, r.W + p.Width, r.H + p.Width}
	}
	return r
}

// Bezier is a stroked cubic Bézier trace.
type Bezier struct {
	shape
	P0, P1, P2, P3 Point
	Width          float64
}

func NewBezier(p0, p1, p2, p3 Point, width float64) *Bezier {
	return &Bezier{P0: p0, P1: p1, P2: p2, P3: p3, Width: width}
}

// Bounds returns the control hull bounding box, which contains the curve.
func (p *Bezier) Bounds() Rect {
	r := Rect{}
	for _, q := range []Point{p.P0, p.P1, p.P2, p.P3} {
		r = r.AddPoint(q)
	}
	if 0.0 < p.Width {
		h := p.Width / 2.0
		r = Rect{r.X - h, r.Y - h, r.W + p.Width, r.H + p.Width}
	}
	return r
}
