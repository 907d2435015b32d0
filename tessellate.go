package camfuse

import (
	"github.com/ByteArena/poly2tri-go"
)

// Triangulate triangulates a fused Path primitive into triangles covering
// its outer contours minus their holes, for downstream mesh previews.
// Contours must be in canonical orientation as produced by the boolean
// engine; arc segments are resampled into polygon edges.
func Triangulate(p *Path) [][3]Point {
	var triangles [][3]Point
	var outer *Contour
	var holes []*Contour
	flush := func() {
		if outer == nil {
			return
		}
		triangles = append(triangles, triangulateRing(outer, holes)...)
		outer, holes = nil, nil
	}
	for _, contour := range p.Contours {
		if contour.Hole {
			holes = append(holes, contour)
		} else {
			flush()
			outer = contour
		}
	}
	flush()
	return triangles
}

func triangulateRing(outer *Contour, holes []*Contour) [][3]Point {
	pts := outer.Dense(DefaultTolerance)
	if len(pts) < 3 {
		return nil
	}
	ring := make([]*poly2tri.Point, len(pts))
	for i, p := range pts {
		ring[i] = poly2tri.NewPoint(p.X, p.Y)
	}
	swctx := poly2tri.NewSweepContext(ring, false)
	for _, hole := range holes {
		hpts := hole.Dense(DefaultTolerance)
		if len(hpts) < 3 {
			continue
		}
		hr := make([]*poly2tri.Point, len(hpts))
		for i, p := range hpts {
			hr[i] = poly2tri.NewPoint(p.X, p.Y)
		}
		swctx.AddHole(hr)
	}
	swctx.Triangulate()

	var triangles [][3]Point
	for _, tr := range swctx.GetTriangles() {
		triangles = append(triangles, [3]Point{
			{tr.Points[0].X, tr.Points[0].Y},
			{tr.Points[1].X, tr.Points[1].Y},
			{tr.Points[2].X, tr.Points[2].Y},
		})
	}
	return triangles
}
