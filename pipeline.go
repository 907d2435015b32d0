package camfuse

import "math"

// DefaultTolerance is the maximum deviation in model units when tessellating
// curved shapes into polygon contours.
const DefaultTolerance = 0.01

// Options configures a Pipeline. The zero value of Scale and Tolerance
// selects the defaults.
type Options struct {
	Scale           float64 // clip-engine integer units per model unit
	Tolerance       float64 // max tessellation deviation in model units
	ReconstructArcs bool
}

// Stats aggregates what one fusion pass did.
type Stats struct {
	PrimitivesIn        int
	PrimitivesOut       int
	Skipped             int
	StrokesConverted    int
	HolesDetected       int
	CurvesReconstructed int
}

// Pipeline fuses board artwork into a single boolean-merged outline:
// standardize to polygon contours, split by polarity, subtract Clear from
// Dark, and optionally reconstruct the arcs the clipping destroyed. The
// original, preprocessed and fused stages stay cached for inspection.
//
// A Pipeline instance runs one fusion at a time; callers serialize requests
// or use separate instances.
type Pipeline struct {
	opts   Options
	reg    *CurveRegistry
	engine *BoolEngine
	recon  *ArcReconstructor

	original     []Primitive
	preprocessed []Primitive
	fused        []Primitive
	stats        Stats
}

// NewPipeline returns a pipeline reading curve definitions from reg. A nil
// reg gets a fresh empty registry; nil opts selects defaults with arc
// reconstruction enabled.
func NewPipeline(reg *CurveRegistry, opts *Options) (*Pipeline, error) {
	if reg == nil {
		reg = NewCurveRegistry()
	}
	o := Options{ReconstructArcs: true}
	if opts != nil {
		o = *opts
	}
	if o.Scale == 0.0 {
		o.Scale = DefaultScale
	}
	if o.Tolerance == 0.0 {
		o.Tolerance = DefaultTolerance
	}
	engine, err := NewBoolEngine(o.Scale)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		opts:   o,
		reg:    reg,
		engine: engine,
		recon:  NewArcReconstructor(reg),
	}, nil
}

// Registry returns the curve registry the pipeline reads from.
func (p *Pipeline) Registry() *CurveRegistry {
	return p.reg
}

// Stats returns the statistics of the last fusion pass.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// ReconStats returns the accumulated arc reconstruction counters.
func (p *Pipeline) ReconStats() ReconStats {
	return p.recon.Stats()
}

// Original, Preprocessed and Fused return the cached stages of the last
// fusion pass.
func (p *Pipeline) Original() []Primitive     { return p.original }
func (p *Pipeline) Preprocessed() []Primitive { return p.preprocessed }
func (p *Pipeline) Fused() []Primitive        { return p.fused }

// Reset drops the cached stages and statistics and clears the curve
// registry, starting an independent fusion session.
func (p *Pipeline) Reset() {
	p.original, p.preprocessed, p.fused = nil, nil, nil
	p.stats = Stats{}
	p.recon.ResetStats()
	p.reg.Clear()
}

// Fuse runs the full pipeline over the given primitives and returns the
// fused output set: Path primitives with hierarchical hole structure, plus
// Circle primitives where a contour reconstructed to a full circle.
// Malformed primitives are skipped with a diagnostic, never abort the batch.
func (p *Pipeline) Fuse(prims []Primitive) ([]Primitive, error) {
	p.stats = Stats{PrimitivesIn: len(prims)}
	p.original = prims

	var pre []Primitive
	var dark, clear []*Path
	for i, prim := range prims {
		paths := p.standardize(prim, i)
		if len(paths) == 0 {
			p.stats.Skipped++
			continue
		}
		for _, path := range paths {
			pre = append(pre, path)
			if p.polarityOf(path) == Clear {
				clear = append(clear, path)
			} else {
				dark = append(dark, path)
			}
		}
	}
	p.preprocessed = pre

	fused := p.engine.Difference(dark, clear)
	for _, path := range fused {
		for _, contour := range path.Contours {
			if contour.Hole {
				p.stats.HolesDetected++
			}
		}
	}

	out := make([]Primitive, len(fused))
	for i, path := range fused {
		out[i] = path
	}
	if p.opts.ReconstructArcs {
		before := p.recon.Stats()
		out = p.recon.Reconstruct(out)
		after := p.recon.Stats()
		p.stats.CurvesReconstructed = after.FullCircles - before.FullCircles + after.PartialArcs - before.PartialArcs
	}

	p.fused = out
	p.stats.PrimitivesOut = len(out)
	return out, nil
}

// polarityOf returns the primitive's polarity, letting a "polarity" string
// property override the typed field. Unknown property values default to Dark.
func (p *Pipeline) polarityOf(prim Primitive) Polarity {
	if v, ok := prim.Prop("polarity"); ok {
		if s, ok := v.(string); ok {
			pol, valid := ParsePolarity(s)
			if !valid {
				Logger().Warn("camfuse: unknown polarity, defaulting to dark", "polarity", s)
				return Dark
			}
			return pol
		}
	}
	return prim.Polarity()
}

// standardize converts one primitive into polygon Path primitives, tagging
// tessellated points with their curve ids where a registry entry exists and
// expanding stroked centerlines into filled polygons. A nil result means the
// primitive was skipped.
func (p *Pipeline) standardize(prim Primitive, index int) []*Path {
	var out *Path
	switch s := prim.(type) {
	case *Path:
		if 0.0 < s.Stroke {
			var contours []*Contour
			for _, c := range s.Contours {
				expanded := strokeContour(c.Points, s.Stroke, p.opts.Scale, s.Closed)
				contours = append(contours, expanded...)
			}
			if len(contours) == 0 {
				Logger().Warn("camfuse: skipping degenerate stroked path", "index", index)
				return nil
			}
			out = NewPath(contours...)
			p.stats.StrokesConverted++
		} else {
			var contours []*Contour
			for _, c := range s.Contours {
				if c.Valid() {
					contours = append(contours, c)
				} else {
					Logger().Warn("camfuse: skipping degenerate contour", "index", index, "points", len(c.Points))
				}
			}
			if len(contours) == 0 {
				return nil
			}
			out = NewPath(contours...)
		}
	case *Circle:
		if s.Radius <= Epsilon {
			Logger().Warn("camfuse: skipping degenerate circle", "index", index, "radius", s.Radius)
			return nil
		}
		out = NewPath(p.tessellateCircle(s.Center, s.Radius, s.CurveID))
	case *Rectangle:
		if s.W <= Epsilon || s.H <= Epsilon {
			Logger().Warn("camfuse: skipping degenerate rectangle", "index", index)
			return nil
		}
		out = NewPath(NewContour(
			Vertex{Point: Point{s.Center.X - s.W/2.0, s.Center.Y - s.H/2.0}},
			Vertex{Point: Point{s.Center.X + s.W/2.0, s.Center.Y - s.H/2.0}},
			Vertex{Point: Point{s.Center.X + s.W/2.0, s.Center.Y + s.H/2.0}},
			Vertex{Point: Point{s.Center.X - s.W/2.0, s.Center.Y + s.H/2.0}},
		))
	case *Obround:
		if s.W <= Epsilon || s.H <= Epsilon {
			Logger().Warn("camfuse: skipping degenerate obround", "index", index)
			return nil
		}
		out = NewPath(p.tessellateObround(s))
	case *Arc:
		if s.Width <= 0.0 || s.Radius <= Epsilon {
			Logger().Warn("camfuse: skipping unfilled or degenerate arc", "index", index)
			return nil
		}
		pts := p.tessellateArcRun(s)
		contours := strokeContour(pts, s.Width, p.opts.Scale, false)
		if len(contours) == 0 {
			return nil
		}
		out = NewPath(contours...)
		p.stats.StrokesConverted++
	case *Bezier:
		if s.Width <= 0.0 {
			Logger().Warn("camfuse: skipping unfilled bezier", "index", index)
			return nil
		}
		pts := []Vertex{{Point: s.P0}}
		for _, q := range flattenCubicBezier(s.P0, s.P1, s.P2, s.P3, p.opts.Tolerance) {
			pts = append(pts, Vertex{Point: q})
		}
		contours := strokeContour(pts, s.Width, p.opts.Scale, false)
		if len(contours) == 0 {
			return nil
		}
		out = NewPath(contours...)
		p.stats.StrokesConverted++
	default:
		Logger().Warn("camfuse: skipping unknown primitive", "index", index)
		return nil
	}

	out.polarity = prim.Polarity()
	if props := primProps(prim); props != nil {
		out.props = make(map[string]interface{}, len(props))
		for k, v := range props {
			out.props[k] = v
		}
	}
	out.SetProp("source", index)
	return []*Path{out}
}

// circleSegments returns the number of polygon segments needed to stay
// within tol of a circle of radius r.
func circleSegments(r, tol float64) int {
	if tol <= 0.0 || r <= tol {
		return 16
	}
	theta := 2.0 * math.Acos(1.0-tol/r)
	n := int(math.Ceil(2.0 * math.Pi / theta))
	if n < 12 {
		n = 12
	} else if 720 < n {
		n = 720
	}
	return n
}

// tessellateCircle returns a counter-clockwise regular polygon approximating
// the circle. Points are tagged when the curve id has a registry entry.
func (p *Pipeline) tessellateCircle(center Point, radius float64, curveID uint32) *Contour {
	n := circleSegments(radius, p.opts.Tolerance)
	_, registered := p.reg.Curve(curveID)
	contour := NewContour()
	contour.Points = make([]Vertex, n)
	for i := 0; i < n; i++ {
		theta := 2.0 * math.Pi * float64(i) / float64(n)
		v := Vertex{Point: center.Add(Point{radius * math.Cos(theta), radius * math.Sin(theta)})}
		if registered {
			v.CurveID = curveID
			v.Segment = uint32(i)
		}
		contour.Points[i] = v
	}
	return contour
}

// tessellateObround returns a counter-clockwise stadium polygon: two
// semicircular caps joined by straight sides. Cap points are tagged when the
// obround's cap curve ids have registry entries.
func (p *Pipeline) tessellateObround(o *Obround) *Contour {
	r := math.Min(o.W, o.H) / 2.0
	if Equal(o.W, o.H) {
		return p.tessellateCircle(o.Center, r, o.CapIDs[0])
	}
	n := circleSegments(r, p.opts.Tolerance) / 2
	if n < 4 {
		n = 4
	}

	var c0, c1 Point // cap centers: first cap swept CCW from -PI/2, second from PI/2
	if o.H < o.W {
		d := o.W/2.0 - r
		c0, c1 = o.Center.Add(Point{d, 0.0}), o.Center.Add(Point{-d, 0.0})
	} else {
		d := o.H/2.0 - r
		c0, c1 = o.Center.Add(Point{0.0, d}), o.Center.Add(Point{0.0, -d})
	}
	phase := 0.0
	if o.W < o.H {
		phase = 0.5 * math.Pi
	}

	contour := NewContour()
	addCap := func(center Point, theta0 float64, curveID uint32) {
		_, registered := p.reg.Curve(curveID)
		for i := 0; i <= n; i++ {
			theta := theta0 + math.Pi*float64(i)/float64(n)
			v := Vertex{Point: center.Add(Point{r * math.Cos(theta), r * math.Sin(theta)})}
			if registered {
				v.CurveID = curveID
				v.Segment = uint32(i)
			}
			contour.Points = append(contour.Points, v)
		}
	}
	addCap(c0, -0.5*math.Pi+phase, o.CapIDs[0])
	addCap(c1, 0.5*math.Pi+phase, o.CapIDs[1])
	return contour
}

// tessellateArcRun returns the arc's centerline as a tagged polyline, ready
// for stroke expansion.
func (p *Pipeline) tessellateArcRun(a *Arc) []Vertex {
	dir := DirCCW
	if a.CW {
		dir = DirCW
	}
	sweep := branchSweep(a.Theta0, a.Theta1, dir)
	if sweep == 0.0 { // coincident angles describe a full turn
		sweep = 2.0 * math.Pi
		if a.CW {
			sweep = -sweep
		}
	}
	n := int(math.Ceil(math.Abs(sweep) / (2.0 * math.Pi) * float64(circleSegments(a.Radius, p.opts.Tolerance))))
	if n < 2 {
		n = 2
	}
	_, registered := p.reg.Curve(a.CurveID)
	pts := make([]Vertex, n+1)
	for i := 0; i <= n; i++ {
		theta := a.Theta0 + sweep*float64(i)/float64(n)
		v := Vertex{Point: a.Center.Add(Point{a.Radius * math.Cos(theta), a.Radius * math.Sin(theta)})}
		if registered {
			v.CurveID = a.CurveID
			v.Segment = uint32(i)
			v.CW = a.CW
		}
		pts[i] = v
	}
	return pts
}

// primProps returns the property bag of any primitive variant.
func primProps(prim Primitive) map[string]interface{} {
	switch s := prim.(type) {
	case *Path:
		return s.props
	case *Circle:
		return s.props
	case *Rectangle:
		return s.props
	case *Obround:
		return s.props
	case *Arc:
		return s.props
	case *Bezier:
		return s.props
	}
	return nil
}
