package geometry

// Mask selects which geometry a ray may hit. A triangle is visible to a ray
// when their masks share a bit.
type Mask uint32

// Geometry masks
const (
	MaskTriangle Mask = 1
	MaskLight    Mask = 2
)

// Ray masks. Light geometry is only visible to camera rays so it never
// shadows itself or catches bounces.
const (
	RayMaskPrimary   = MaskTriangle | MaskLight
	RayMaskShadow    = MaskTriangle
	RayMaskSecondary = MaskTriangle
)

// Accepts returns true if geometry with mask m is visible to a ray with rayMask
func (m Mask) Accepts(rayMask Mask) bool {
	return m&rayMask != 0
}
