package core

// haltonPrimes holds the radical-inverse base for each sequence dimension
var haltonPrimes = [...]uint32{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37,
	41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89,
}

// HaltonDimensions is the number of distinct dimensions before the bases repeat
const HaltonDimensions = len(haltonPrimes)

// oneMinusEpsilon is the largest float64 below 1
const oneMinusEpsilon = 0x1.fffffffffffffp-1

// Halton returns the radical inverse of index in the prime base selected by dimension.
// The result is in [0, 1) and depends only on (index, dimension); index 0 maps to 0.
// Dimensions past the prime table wrap around, negative dimensions use base 2.
func Halton(index uint32, dimension int) float64 {
	base := haltonPrimes[0]
	if dimension > 0 {
		base = haltonPrimes[dimension%HaltonDimensions]
	}

	invBase := 1.0 / float64(base)
	f := 1.0
	r := 0.0
	for i := index; i > 0; i /= base {
		f *= invBase
		r += f * float64(i%base)
	}
	return min(r, oneMinusEpsilon)
}

// HaltonSampler draws successive Halton dimensions for a single sample index.
// It holds the caller's (index, dimension) cursor; it is not safe for concurrent use.
type HaltonSampler struct {
	index     uint32
	dimension int
}

// NewHaltonSampler creates a sampler positioned at the given index and first dimension
func NewHaltonSampler(index uint32, dimension int) *HaltonSampler {
	return &HaltonSampler{index: index, dimension: dimension}
}

// Index returns the sample index this sampler draws from
func (h *HaltonSampler) Index() uint32 {
	return h.index
}

// Dimension returns the next dimension that will be drawn
func (h *HaltonSampler) Dimension() int {
	return h.dimension
}

// SetDimension moves the dimension cursor, e.g. to the first dimension of a bounce
func (h *HaltonSampler) SetDimension(dimension int) {
	h.dimension = dimension
}

// Get1D returns the value for the current dimension and advances by one
func (h *HaltonSampler) Get1D() float64 {
	v := Halton(h.index, h.dimension)
	h.dimension++
	return v
}

// Get2D returns values for the next two dimensions
func (h *HaltonSampler) Get2D() Vec2 {
	x := h.Get1D()
	y := h.Get1D()
	return NewVec2(x, y)
}

// Get3D returns values for the next three dimensions
func (h *HaltonSampler) Get3D() Vec3 {
	x := h.Get1D()
	y := h.Get1D()
	z := h.Get1D()
	return NewVec3(x, y, z)
}
