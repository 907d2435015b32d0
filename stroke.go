package camfuse

import (
	"math"

	clipper "github.com/ctessum/go.clipper"
)

// strokeContour expands a stroked centerline into filled polygon contours
// with round caps and joins, using the clip engine's integer offsetter. The
// result is a ring set in canonical orientation: outers counter-clockwise,
// holes clockwise (a closed centerline yields an outer ring plus an inner
// hole). Offset vertices are synthesized and carry no curve tags.
func strokeContour(points []Vertex, width, scale float64, closed bool) []*Contour {
	if width <= 0.0 || len(points) < 2 {
		return nil
	}
	path := make(clipper.Path, len(points))
	for i, v := range points {
		path[i] = clipper.NewIntPoint(
			clipper.CInt(math.Round(v.X*scale)),
			clipper.CInt(math.Round(v.Y*scale)))
	}
	endType := clipper.EtOpenRound
	if closed {
		endType = clipper.EtClosedLine
	}
	co := clipper.NewClipperOffset()
	co.AddPath(path, clipper.JtRound, endType)
	tree := co.Execute2(width / 2.0 * scale)

	var contours []*Contour
	for _, node := range tree.Childs() {
		decodeOffsetNode(node, scale, &contours)
	}
	return contours
}

func decodeOffsetNode(node *clipper.PolyNode, scale float64, out *[]*Contour) {
	outer := contourFromClipperPath(node.Contour(), scale)
	if outer != nil {
		if !outer.CCW() {
			outer.Reverse()
		}
		*out = append(*out, outer)
	}
	for _, child := range node.Childs() {
		hole := contourFromClipperPath(child.Contour(), scale)
		if hole != nil {
			if hole.CCW() {
				hole.Reverse()
			}
			hole.Hole = true
			hole.Nesting = 1
			hole.Parent = 0
			*out = append(*out, hole)
		}
		for _, island := range child.Childs() {
			decodeOffsetNode(island, scale, out)
		}
	}
}

func contourFromClipperPath(path clipper.Path, scale float64) *Contour {
	if len(path) < 3 {
		return nil
	}
	contour := NewContour()
	contour.Points = make([]Vertex, len(path))
	for i, ip := range path {
		contour.Points[i] = Vertex{Point: Point{float64(ip.X) / scale, float64(ip.Y) / scale}}
	}
	return contour
}
