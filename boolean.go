package camfuse

import (
	"errors"
	"math"

	clipper "github.com/ctessum/go.clipper"
)

// ErrBadScale is returned when an engine is constructed with a non-positive
// coordinate scale.
var ErrBadScale = errors.New("camfuse: scale must be positive")

// DefaultScale is the default number of clip-engine integer units per model
// unit. At 10^4 a board coordinate of 1000 model units stays well inside the
// clip engine's safe integer range.
const DefaultScale = 1.0e4

// BoolEngine performs Union and Difference over polygon contours while
// preserving per-vertex curve metadata and hierarchical hole structure. It
// wraps the integer-coordinate Clipper port; coordinates are scaled to
// integers on the way in and back on the way out.
//
// The clip engine's IntPoint has no auxiliary data channel, so packed vertex
// metadata travels in a sidecar table keyed by exact integer coordinates.
// Vertices that survive clipping keep their input coordinates and find their
// metadata again; vertices synthesized at intersections miss the table and
// decode as untagged, which downstream stages expect.
//
// A BoolEngine is not safe for concurrent use.
type BoolEngine struct {
	scale float64
}

// NewBoolEngine returns an engine converting model units to clip units by
// scale. A scale of zero selects DefaultScale; a negative scale is refused.
func NewBoolEngine(scale float64) (*BoolEngine, error) {
	if scale == 0.0 {
		scale = DefaultScale
	} else if scale < 0.0 {
		return nil, ErrBadScale
	}
	return &BoolEngine{scale: scale}, nil
}

// Scale returns the engine's integer units per model unit.
func (e *BoolEngine) Scale() float64 {
	return e.scale
}

// Union fuses all dark paths into a minimal set of outer contours and holes.
func (e *BoolEngine) Union(dark []*Path) []*Path {
	return e.clip(dark, nil)
}

// Difference subtracts the clear paths from the fused dark paths. With no
// clear paths this degenerates to a Union of the dark set.
func (e *BoolEngine) Difference(dark, clear []*Path) []*Path {
	return e.clip(dark, clear)
}

type intKey struct {
	x, y clipper.CInt
}

// metaTable is the sidecar carrying packed vertex metadata through the clip
// engine, keyed by scaled integer coordinates.
type metaTable map[intKey]uint64

func (m metaTable) set(k intKey, v uint64) {
	if v == 0 {
		return
	}
	if _, ok := m[k]; !ok { // never let a later vertex overwrite a tag
		m[k] = v
	}
}

func (e *BoolEngine) clip(dark, clear []*Path) []*Path {
	meta := metaTable{}
	subj := e.toClipperPaths(dark, Dark, meta)
	clips := e.toClipperPaths(clear, Clear, meta)
	if len(subj) == 0 {
		return nil
	}

	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(subj, clipper.PtSubject, true)
	if 0 < len(clips) {
		c.AddPaths(clips, clipper.PtClip, true)
	}
	tree, ok := c.Execute2(clipper.CtDifference, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		Logger().Warn("camfuse: boolean operation failed", "subjects", len(subj), "clips", len(clips))
		return nil
	}

	var out []*Path
	for _, node := range tree.Childs() {
		e.decodeNode(node, 0, meta, &out)
	}
	return out
}

// toClipperPaths converts primitives to scaled integer paths, records vertex
// metadata in the sidecar, and enforces the input winding convention: Dark
// outers counter-clockwise, Clear outers clockwise, holes opposite their
// owner. The clip engine's fill rule needs consistent orientation across all
// inputs of one role, not just per-ring correctness.
func (e *BoolEngine) toClipperPaths(prims []*Path, polarity Polarity, meta metaTable) clipper.Paths {
	wantCCW := polarity == Dark
	var paths clipper.Paths
	for _, prim := range prims {
		for _, contour := range prim.Contours {
			if !contour.Valid() {
				Logger().Warn("camfuse: skipping degenerate contour", "points", len(contour.Points), "polarity", polarity.String())
				continue
			}
			path := make(clipper.Path, len(contour.Points))
			for i, v := range contour.Points {
				k := intKey{
					clipper.CInt(math.Round(v.X * e.scale)),
					clipper.CInt(math.Round(v.Y * e.scale)),
				}
				path[i] = clipper.NewIntPoint(k.x, k.y)
				meta.set(k, PackMeta(v.CurveID, v.Segment, v.CW, 0))
			}
			want := wantCCW != contour.Hole
			if clipper.Orientation(path) != want {
				reverseClipperPath(path)
			}
			paths = append(paths, path)
		}
	}
	return paths
}

// decodeNode turns one outer PolyTree node into a Path primitive: the node's
// ring becomes the outer contour, its immediate children become holes, and
// any ring nested inside a hole starts over as a new top-level primitive.
// The tree nests arbitrarily deep.
func (e *BoolEngine) decodeNode(node *clipper.PolyNode, depth int, meta metaTable, out *[]*Path) {
	prim := NewPath()
	outer := e.fromClipperPath(node.Contour(), meta)
	if outer != nil {
		// The engine's output orientation convention is its own; normalize
		// to ours regardless of what was enforced on input.
		if !outer.CCW() {
			outer.Reverse()
		}
		outer.Nesting = depth
		outer.Parent = -1
		prim.Contours = append(prim.Contours, outer)
	}
	for _, child := range node.Childs() {
		hole := e.fromClipperPath(child.Contour(), meta)
		if hole != nil && outer != nil {
			if hole.CCW() {
				hole.Reverse()
			}
			hole.Hole = true
			hole.Nesting = depth + 1
			hole.Parent = 0 // the outer is always the first contour
			prim.Contours = append(prim.Contours, hole)
		}
		for _, island := range child.Childs() {
			e.decodeNode(island, depth+2, meta, out)
		}
	}
	if 0 < len(prim.Contours) {
		*out = append(*out, prim)
	}
}

// fromClipperPath unscales an integer ring and recovers vertex metadata from
// the sidecar. Vertices without a table entry were synthesized by the clip
// engine and stay untagged.
func (e *BoolEngine) fromClipperPath(path clipper.Path, meta metaTable) *Contour {
	if len(path) < 3 {
		return nil
	}
	contour := NewContour()
	contour.Points = make([]Vertex, len(path))
	for i, ip := range path {
		curveID, segment, cw, _ := UnpackMeta(meta[intKey{ip.X, ip.Y}])
		contour.Points[i] = Vertex{
			Point:   Point{float64(ip.X) / e.scale, float64(ip.Y) / e.scale},
			CurveID: curveID,
			Segment: segment,
			CW:      cw,
		}
	}
	return contour
}

func reverseClipperPath(path clipper.Path) {
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
}
