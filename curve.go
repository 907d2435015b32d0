package camfuse

// CurveKind classifies the analytic curves a vertex can be tagged with.
type CurveKind int

const (
	CurveCircle CurveKind = iota
	CurveArc
	CurveEndCap
)

func (k CurveKind) String() string {
	switch k {
	case CurveCircle:
		return "circle"
	case CurveArc:
		return "arc"
	case CurveEndCap:
		return "endcap"
	}
	return "unknown"
}

// Direction is a rotation sense. Contours and curves that never recorded one
// use DirUnknown, in which case the reconstruction falls back to sampling.
type Direction int

const (
	DirUnknown Direction = iota
	DirCW
	DirCCW
)

// Curve is the analytic definition behind a curve id: the circle or arc a
// tessellated point run was generated from.
type Curve struct {
	ID     uint32
	Kind   CurveKind
	Center Point
	Radius float64
	Dir    Direction
}

// CurveStats summarizes the registry contents.
type CurveStats struct {
	Size    int
	Circles int
	Arcs    int
	EndCaps int
}

// CurveRegistry maps curve ids to their analytic definitions. Registration
// happens upstream, when shapes are plotted or tessellated; the fusion
// pipeline only reads it. Its lifetime spans one document session and it is
// cleared between independent fusion passes.
type CurveRegistry struct {
	curves map[uint32]Curve
}

func NewCurveRegistry() *CurveRegistry {
	return &CurveRegistry{curves: map[uint32]Curve{}}
}

// Add registers a curve. Ids of zero or beyond MaxCurveID cannot survive
// metadata packing and are ignored.
func (r *CurveRegistry) Add(c Curve) {
	if c.ID == 0 || MaxCurveID < c.ID {
		return
	}
	r.curves[c.ID] = c
}

// Curve returns the curve registered under id.
func (r *CurveRegistry) Curve(id uint32) (Curve, bool) {
	c, ok := r.curves[id]
	return c, ok
}

// Stats returns counts per curve kind.
func (r *CurveRegistry) Stats() CurveStats {
	stats := CurveStats{Size: len(r.curves)}
	for _, c := range r.curves {
		switch c.Kind {
		case CurveCircle:
			stats.Circles++
		case CurveArc:
			stats.Arcs++
		case CurveEndCap:
			stats.EndCaps++
		}
	}
	return stats
}

// Clear empties the registry.
func (r *CurveRegistry) Clear() {
	r.curves = map[uint32]Curve{}
}
