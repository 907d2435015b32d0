package camfuse

// Vertex metadata is carried through the clip engine as a single 64-bit value
// per vertex. The layout packs the curve identity a vertex was tessellated
// from, its position along that curve, and the traversal direction:
//
//	bits  0-23  curve id, 0 means untagged
//	bits 24-54  segment index along the curve
//	bit     55  clockwise flag
//	bits 56-63  reserved
//
// A zero value is the untagged sentinel: vertices that the clip engine
// synthesizes at intersections carry no metadata and decode to all-zero.

const (
	metaCurveBits     = 24
	metaSegmentBits   = 31
	metaCurveMask     = 1<<metaCurveBits - 1
	metaSegmentMask   = 1<<metaSegmentBits - 1
	metaSegmentShift  = metaCurveBits
	metaCWShift       = metaCurveBits + metaSegmentBits
	metaReservedShift = metaCWShift + 1
)

// MaxCurveID is the largest curve id that survives metadata packing.
const MaxCurveID = metaCurveMask

// PackMeta packs a vertex's curve metadata into a single 64-bit value.
// A zero curve id always packs to zero, whatever the other fields hold.
// Values out of range are masked, not rejected.
func PackMeta(curveID, segment uint32, cw bool, reserved uint8) uint64 {
	if curveID&metaCurveMask == 0 {
		return 0
	}
	v := uint64(curveID & metaCurveMask)
	v |= uint64(segment&metaSegmentMask) << metaSegmentShift
	if cw {
		v |= 1 << metaCWShift
	}
	v |= uint64(reserved) << metaReservedShift
	return v
}

// UnpackMeta is the inverse of PackMeta. UnpackMeta(0) returns the untagged
// sentinel: all fields zero.
func UnpackMeta(v uint64) (curveID, segment uint32, cw bool, reserved uint8) {
	curveID = uint32(v & metaCurveMask)
	segment = uint32(v >> metaSegmentShift & metaSegmentMask)
	cw = v>>metaCWShift&1 == 1
	reserved = uint8(v >> metaReservedShift)
	return
}
