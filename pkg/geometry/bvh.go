package geometry

import (
	"github.com/df07/go-shading-core/pkg/core"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Triangles   []int // Indices into BVH.Triangles for leaf nodes (nil for internal nodes)
}

// BVH is the software traversal over world-space triangles. It produces the
// software Intersection form and answers shadow-ray occlusion queries.
type BVH struct {
	Root      *BVHNode
	Triangles []Triangle
}

// Leaf threshold: if we have this many or fewer triangles, store them in a leaf node
const leafThreshold = 8

// NewBVH constructs a BVH over the given triangles. The slice is retained.
func NewBVH(triangles []Triangle) *BVH {
	bvh := &BVH{Triangles: triangles}
	if len(triangles) == 0 {
		return bvh
	}

	order := make([]int, len(triangles))
	for i := range order {
		order[i] = i
	}
	bvh.Root = bvh.build(order)
	return bvh
}

// build recursively splits at the midpoint of the longest axis of the node bounds
func (bvh *BVH) build(order []int) *BVHNode {
	boundingBox := core.EmptyAABB()
	for _, i := range order {
		boundingBox = boundingBox.Union(bvh.Triangles[i].BoundingBox())
	}

	if len(order) <= leafThreshold {
		return &BVHNode{BoundingBox: boundingBox, Triangles: order}
	}

	axis := boundingBox.LongestAxis()
	minVal, maxVal := boundingBox.Min.Axis(axis), boundingBox.Max.Axis(axis)
	if maxVal <= minVal {
		return &BVHNode{BoundingBox: boundingBox, Triangles: order}
	}
	splitPos := (minVal + maxVal) * 0.5

	var left, right []int
	for _, i := range order {
		if bvh.Triangles[i].BoundingBox().Center().Axis(axis) < splitPos {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	// Ensure we don't create empty partitions
	if len(left) == 0 || len(right) == 0 {
		return &BVHNode{BoundingBox: boundingBox, Triangles: order}
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        bvh.build(left),
		Right:       bvh.build(right),
	}
}

// Intersect returns the closest triangle visible to rayMask within the ray's
// [MinDistance, MaxDistance] segment
func (bvh *BVH) Intersect(ray core.Ray, rayMask Mask) (Intersection, bool) {
	if bvh.Root == nil {
		return Intersection{}, false
	}
	var closest Intersection
	hit := bvh.intersectNode(bvh.Root, ray, rayMask, ray.MinDistance, ray.MaxDistance, &closest)
	return closest, hit
}

func (bvh *BVH) intersectNode(node *BVHNode, ray core.Ray, rayMask Mask, tMin, tMax float64, closest *Intersection) bool {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}

	if node.Triangles != nil {
		hitAnything := false
		closestSoFar := tMax
		for _, i := range node.Triangles {
			tri := &bvh.Triangles[i]
			if !tri.Mask.Accepts(rayMask) {
				continue
			}
			if hit, ok := tri.Hit(ray, tMin, closestSoFar); ok {
				hitAnything = true
				closestSoFar = hit.Distance
				*closest = hit
			}
		}
		return hitAnything
	}

	hitAnything := false
	closestSoFar := tMax
	if node.Left != nil && bvh.intersectNode(node.Left, ray, rayMask, tMin, closestSoFar, closest) {
		hitAnything = true
		closestSoFar = closest.Distance
	}
	if node.Right != nil && bvh.intersectNode(node.Right, ray, rayMask, tMin, closestSoFar, closest) {
		hitAnything = true
	}
	return hitAnything
}

// Occluded returns true if any triangle visible to rayMask lies within the
// ray's segment. It stops at the first hit.
func (bvh *BVH) Occluded(ray core.Ray, rayMask Mask) bool {
	if bvh.Root == nil {
		return false
	}
	return bvh.occludedNode(bvh.Root, ray, rayMask)
}

func (bvh *BVH) occludedNode(node *BVHNode, ray core.Ray, rayMask Mask) bool {
	if !node.BoundingBox.Hit(ray, ray.MinDistance, ray.MaxDistance) {
		return false
	}
	if node.Triangles != nil {
		for _, i := range node.Triangles {
			tri := &bvh.Triangles[i]
			if !tri.Mask.Accepts(rayMask) {
				continue
			}
			if _, ok := tri.Hit(ray, ray.MinDistance, ray.MaxDistance); ok {
				return true
			}
		}
		return false
	}
	return (node.Left != nil && bvh.occludedNode(node.Left, ray, rayMask)) ||
		(node.Right != nil && bvh.occludedNode(node.Right, ray, rayMask))
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

// BVHStats describes the shape of the hierarchy
type BVHStats struct {
	TotalNodes     int
	LeafNodes      int
	MaxDepth       int
	AvgDepth       float64
	TotalTriangles int
}

// Stats walks the hierarchy and returns node and depth statistics
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	bvh.collectStats(bvh.Root, 0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}
	return stats
}

func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.Triangles != nil {
		stats.LeafNodes++
		stats.TotalTriangles += len(node.Triangles)
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
		return
	}
	if node.Left != nil {
		bvh.collectStats(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		bvh.collectStats(node.Right, depth+1, stats)
	}
}
