package camfuse

import "math"

// fullCircleSweep is the fraction of 2PI a whole-ring curve group must sweep
// to count as a full circle.
const fullCircleSweep = 0.99

// dupEpsSq is the squared distance below which two consecutive rewritten
// points collapse into one.
const dupEpsSq = 1e-12

// ReconStats counts what arc reconstruction did. Observability only; the
// geometry is authoritative.
type ReconStats struct {
	Groups      int
	WrapMerges  int
	FullCircles int
	PartialArcs int
	Failures    int
}

// ArcReconstructor recovers analytic arcs and circles from the tessellated
// point runs that survive boolean fusion. Grouping is driven by the curve ids
// embedded per vertex; the registry supplies each curve's center, radius and
// direction.
type ArcReconstructor struct {
	reg   *CurveRegistry
	stats ReconStats
}

func NewArcReconstructor(reg *CurveRegistry) *ArcReconstructor {
	return &ArcReconstructor{reg: reg}
}

// Stats returns the accumulated reconstruction counters.
func (r *ArcReconstructor) Stats() ReconStats {
	return r.stats
}

// ResetStats zeroes the counters.
func (r *ArcReconstructor) ResetStats() {
	r.stats = ReconStats{}
}

// Reconstruct replaces tessellated curve runs in the given primitives by
// compact arc descriptors. A path whose only contour turns out to be one full
// registered circle becomes a Circle primitive. Primitives with no tagged
// points pass through unchanged, so reconstruction is idempotent on its own
// output. Geometry is never dropped: a group whose curve cannot be resolved
// keeps its dense points.
func (r *ArcReconstructor) Reconstruct(prims []Primitive) []Primitive {
	out := make([]Primitive, 0, len(prims))
	for _, prim := range prims {
		path, ok := prim.(*Path)
		if !ok {
			out = append(out, prim)
			continue
		}
		if len(path.Contours) == 1 && !path.Contours[0].Hole {
			if circle, ok := r.wholeCircle(path.Contours[0]); ok {
				circle.shape = path.shape
				out = append(out, circle)
				continue
			}
		}
		for _, contour := range path.Contours {
			r.rewrite(contour)
		}
		out = append(out, path)
	}
	return out
}

// pointGroup is a maximal run of contour points sharing one curve id, or an
// untagged straight run when curveID is zero.
type pointGroup struct {
	curveID uint32
	pts     []Vertex
}

// groupPoints splits a ring into curve and straight groups. A single untagged
// vertex immediately followed by the group's curve id resuming is a clip seam
// artifact and is absorbed rather than closing the group.
func groupPoints(pts []Vertex) []pointGroup {
	var groups []pointGroup
	var cur pointGroup
	for i := 0; i < len(pts); i++ {
		p := pts[i]
		if len(cur.pts) == 0 {
			cur = pointGroup{curveID: p.CurveID, pts: []Vertex{p}}
			continue
		}
		if p.CurveID == cur.curveID {
			cur.pts = append(cur.pts, p)
			continue
		}
		if p.CurveID == 0 && cur.curveID != 0 && i+1 < len(pts) && pts[i+1].CurveID == cur.curveID {
			cur.pts = append(cur.pts, p, pts[i+1])
			i++
			continue
		}
		groups = append(groups, cur)
		cur = pointGroup{curveID: p.CurveID, pts: []Vertex{p}}
	}
	if 0 < len(cur.pts) {
		groups = append(groups, cur)
	}
	return groups
}

// mergeWrap merges the last group into the first when both belong to the same
// curve: the ring is implicitly closed, so a curve straddling the array seam
// is one run. Returns true if a merge happened.
func mergeWrap(groups []pointGroup) ([]pointGroup, bool) {
	if len(groups) < 2 {
		return groups, false
	}
	first, last := &groups[0], &groups[len(groups)-1]
	if first.curveID == 0 || first.curveID != last.curveID {
		return groups, false
	}
	merged := make([]Vertex, 0, len(last.pts)+len(first.pts))
	merged = append(merged, last.pts...)
	merged = append(merged, first.pts...)
	first.pts = merged
	return groups[:len(groups)-1], true
}

// wholeCircle reports whether the ring reduces to a single curve group whose
// registered kind is Circle and whose points sweep (nearly) the full 2PI,
// including the closing edge back to the first point.
func (r *ArcReconstructor) wholeCircle(c *Contour) (*Circle, bool) {
	groups := groupPoints(c.Points)
	groups, _ = mergeWrap(groups)
	if len(groups) != 1 || groups[0].curveID == 0 {
		return nil, false
	}
	curve, ok := r.reg.Curve(groups[0].curveID)
	if !ok || curve.Kind != CurveCircle || curve.Radius <= Epsilon {
		return nil, false
	}
	sweep := ringSweep(c.Points, curve.Center)
	if math.Abs(sweep) < fullCircleSweep*2.0*math.Pi {
		return nil, false
	}
	r.stats.Groups++
	r.stats.FullCircles++
	circle := NewCircle(curve.Center, curve.Radius)
	circle.CurveID = curve.ID
	return circle, true
}

// rewrite collapses every resolvable curve group of the ring to its two
// endpoints plus an ArcSegment, then removes near-duplicate points introduced
// at group boundaries, shifting recorded indices down accordingly.
func (r *ArcReconstructor) rewrite(c *Contour) {
	tagged := false
	for _, p := range c.Points {
		if p.CurveID != 0 {
			tagged = true
			break
		}
	}
	if !tagged {
		return
	}

	groups := groupPoints(c.Points)
	r.stats.Groups += len(groups)
	groups, wrapped := mergeWrap(groups)
	if wrapped {
		r.stats.WrapMerges++
	}

	var newPts []Vertex
	var arcs []ArcSegment
	for _, g := range groups {
		if g.curveID == 0 || len(g.pts) < 2 {
			for _, p := range g.pts {
				p.CurveID, p.Segment, p.CW = 0, 0, false
				newPts = append(newPts, p)
			}
			continue
		}
		curve, ok := r.reg.Curve(g.curveID)
		if !ok || curve.Radius <= Epsilon {
			r.stats.Failures++
			Logger().Warn("camfuse: cannot resolve curve, keeping dense points", "curve", g.curveID, "points", len(g.pts))
			newPts = append(newPts, g.pts...)
			continue
		}

		first, last := g.pts[0], g.pts[len(g.pts)-1]
		theta0 := first.Sub(curve.Center).Angle()
		theta1 := last.Sub(curve.Center).Angle()
		dir := curve.Dir
		if dir == DirUnknown {
			dir = voteDirection(g.pts, curve.Center)
		}
		var sweep float64
		if 2 < len(g.pts) {
			// The accumulated sweep over the actual points is unambiguous.
			sweep = runSweep(g.pts, curve.Center)
			if math.Abs(sweep) < Epsilon {
				sweep = branchSweep(theta0, theta1, dir)
			}
		} else {
			// Two points leave a +-2PI ambiguity; take the branch matching
			// the traversal direction.
			sweep = branchSweep(theta0, theta1, dir)
		}

		newPts = append(newPts,
			Vertex{Point: first.Point},
			Vertex{Point: last.Point})
		arcs = append(arcs, ArcSegment{
			Start:   len(newPts) - 2,
			End:     len(newPts) - 1,
			Center:  curve.Center,
			Radius:  curve.Radius,
			Theta0:  theta0,
			Theta1:  theta1,
			Sweep:   sweep,
			CW:      sweep < 0.0,
			CurveID: g.curveID,
		})
		r.stats.PartialArcs++
	}

	newPts, arcs = dedupePoints(newPts, arcs)
	c.Points = newPts
	c.Arcs = append(c.Arcs, arcs...)
}

// dedupePoints removes consecutive near-duplicate points, including the
// implicit ring seam between the last and first point, and shifts arc indices
// to match.
func dedupePoints(pts []Vertex, arcs []ArcSegment) ([]Vertex, []ArcSegment) {
	for i := 1; i < len(pts); {
		if pts[i].Sub(pts[i-1].Point).Dot(pts[i].Sub(pts[i-1].Point)) < dupEpsSq {
			pts = append(pts[:i], pts[i+1:]...)
			for j := range arcs {
				if i <= arcs[j].Start {
					arcs[j].Start--
				}
				if i <= arcs[j].End {
					arcs[j].End--
				}
			}
		} else {
			i++
		}
	}
	if n := len(pts); 2 < n && pts[n-1].Sub(pts[0].Point).Dot(pts[n-1].Sub(pts[0].Point)) < dupEpsSq {
		pts = pts[:n-1]
		for j := range arcs {
			if arcs[j].Start == n-1 {
				arcs[j].Start = 0
			}
			if arcs[j].End == n-1 {
				arcs[j].End = 0
			}
		}
	}
	return pts, arcs
}

// runSweep returns the signed angular sweep about center accumulated over
// consecutive point pairs, without the closing edge.
func runSweep(pts []Vertex, center Point) float64 {
	sweep := 0.0
	for i := 1; i < len(pts); i++ {
		sweep += angleDelta(pts[i-1].Sub(center).Angle(), pts[i].Sub(center).Angle())
	}
	return sweep
}

// ringSweep is runSweep plus the closing edge back to the first point.
func ringSweep(pts []Vertex, center Point) float64 {
	if len(pts) < 2 {
		return 0.0
	}
	sweep := runSweep(pts, center)
	sweep += angleDelta(pts[len(pts)-1].Sub(center).Angle(), pts[0].Sub(center).Angle())
	return sweep
}

// branchSweep returns the sweep from theta0 to theta1 along the given
// direction, in (-2PI,2PI).
func branchSweep(theta0, theta1 float64, dir Direction) float64 {
	if dir == DirCW {
		return -angleNorm(theta0 - theta1)
	}
	return angleNorm(theta1 - theta0)
}

// voteDirection samples the angular deltas between consecutive points and
// majority-votes the traversal direction.
func voteDirection(pts []Vertex, center Point) Direction {
	vote := 0
	for i := 1; i < len(pts); i++ {
		d := angleDelta(pts[i-1].Sub(center).Angle(), pts[i].Sub(center).Angle())
		if 0.0 < d {
			vote++
		} else if d < 0.0 {
			vote--
		}
	}
	if vote < 0 {
		return DirCW
	}
	return DirCCW
}
