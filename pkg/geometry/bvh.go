package geometry

import (
	"sort"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
	"github.com/jmallory/go-tiled-raytracer/pkg/material"
)

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 4

// bvhNode is one node of the flat node arena. Internal nodes reference their
// children by index; leaves reference a range of the primitive array. Nodes
// never hold pointers into each other, so the tree and the primitive storage
// have independent, unambiguous lifetimes.
type bvhNode struct {
	bounds core.AABB
	left   int // Child node index, -1 for leaves
	right  int // Child node index, -1 for leaves
	start  int // First primitive index (leaves only)
	count  int // Number of primitives (leaves only)
}

func (n *bvhNode) isLeaf() bool {
	return n.left < 0
}

// BVH is a bounding volume hierarchy over a flat arena of shapes, built once
// per scene and read-only during rendering.
type BVH struct {
	nodes  []bvhNode
	shapes []Shape
	root   int
	time0  float64
	time1  float64
}

// NewBVH constructs a BVH from a slice of shapes over the given time interval.
// The interval matters for moving primitives, whose boxes must cover their
// whole swept extent.
func NewBVH(shapes []Shape, time0, time1 float64) *BVH {
	bvh := &BVH{
		root:  -1,
		time0: time0,
		time1: time1,
	}
	if len(shapes) == 0 {
		return bvh
	}

	// Copy so sorting during the build cannot disturb the caller's slice
	bvh.shapes = make([]Shape, len(shapes))
	copy(bvh.shapes, shapes)

	// 2n-1 nodes for n primitives is the upper bound with binary splits
	bvh.nodes = make([]bvhNode, 0, 2*len(shapes))
	bvh.root = bvh.build(0, len(bvh.shapes))

	return bvh
}

// build recursively partitions shapes[start:end) and returns the new node index
func (b *BVH) build(start, end int) int {
	bounds := b.shapes[start].BoundingBox(b.time0, b.time1)
	for i := start + 1; i < end; i++ {
		bounds = bounds.Union(b.shapes[i].BoundingBox(b.time0, b.time1))
	}

	nodeIndex := len(b.nodes)

	if end-start <= leafThreshold {
		b.nodes = append(b.nodes, bvhNode{
			bounds: bounds,
			left:   -1,
			right:  -1,
			start:  start,
			count:  end - start,
		})
		return nodeIndex
	}

	// Split along the axis with the largest centroid extent, at the median
	axis := b.centroidExtentAxis(start, end)
	b.sortShapesByAxis(start, end, axis)
	mid := (start + end) / 2

	// Reserve our slot before the children claim theirs
	b.nodes = append(b.nodes, bvhNode{bounds: bounds})
	left := b.build(start, mid)
	right := b.build(mid, end)
	b.nodes[nodeIndex].left = left
	b.nodes[nodeIndex].right = right

	return nodeIndex
}

// centroidExtentAxis returns the axis along which the primitive centroids of
// shapes[start:end) spread out the most
func (b *BVH) centroidExtentAxis(start, end int) int {
	first := b.shapes[start].BoundingBox(b.time0, b.time1).Center()
	centroidBounds := core.NewAABB(first, first)
	for i := start + 1; i < end; i++ {
		center := b.shapes[i].BoundingBox(b.time0, b.time1).Center()
		centroidBounds = centroidBounds.Union(core.NewAABB(center, center))
	}
	return centroidBounds.LongestAxis()
}

// sortShapesByAxis sorts shapes[start:end) by bounding box center along the given axis
func (b *BVH) sortShapesByAxis(start, end, axis int) {
	segment := b.shapes[start:end]
	sort.Slice(segment, func(i, j int) bool {
		centerI := segment[i].BoundingBox(b.time0, b.time1).Center()
		centerJ := segment[j].BoundingBox(b.time0, b.time1).Center()
		return centerI.Axis(axis) < centerJ.Axis(axis)
	})
}

// Hit tests if a ray intersects any shape in the BVH
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return b.HitWithPredictor(ray, tMin, tMax, nil)
}

// HitWithPredictor traverses the BVH with an optional traversal predictor.
// The predictor only reorders which child is descended first; every bounding
// box and primitive test still runs, so the closest hit is identical with and
// without it.
func (b *BVH) HitWithPredictor(ray core.Ray, tMin, tMax float64, predictor *Predictor) (*material.HitRecord, bool) {
	if b.root < 0 {
		return nil, false
	}

	var closestHit *material.HitRecord
	closestSoFar := tMax

	// Explicit traversal stack keeps worst-case stack usage constant
	stack := make([]int, 0, 64)
	stack = append(stack, b.root)

	for len(stack) > 0 {
		nodeIndex := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &b.nodes[nodeIndex]

		if !node.bounds.Hit(ray, tMin, closestSoFar) {
			continue
		}

		if node.isLeaf() {
			leafHit := false
			for i := node.start; i < node.start+node.count; i++ {
				if hit, isHit := b.shapes[i].Hit(ray, tMin, closestSoFar); isHit {
					leafHit = true
					closestSoFar = hit.T
					closestHit = hit
				}
			}
			if predictor != nil {
				predictor.RecordLeaf(ray, nodeIndex, leafHit)
			}
			continue
		}

		// Visit the nearer child first so its hits shrink the interval before
		// the farther child is tested
		first, second := node.left, node.right
		geomLeftFirst := b.nearerChild(ray, node)
		leftFirst := geomLeftFirst

		if predictor != nil {
			if outcome, ok := predictor.Lookup(ray, nodeIndex); ok && outcome.IsOrder() {
				// Advisory hint: may reorder the descent, never replaces the
				// geometric test recorded below
				leftFirst = outcome == OutcomeLeftFirst
			}
			if geomLeftFirst {
				predictor.Record(ray, nodeIndex, OutcomeLeftFirst)
			} else {
				predictor.Record(ray, nodeIndex, OutcomeRightFirst)
			}
		}

		if !leftFirst {
			first, second = second, first
		}

		// Push the far child first so the near child pops first
		stack = append(stack, second, first)
	}

	return closestHit, closestHit != nil
}

// nearerChild reports whether the left child should be visited first, by
// comparing slab entry distances of the two child boxes
func (b *BVH) nearerChild(ray core.Ray, node *bvhNode) bool {
	leftEntry := slabEntry(b.nodes[node.left].bounds, ray)
	rightEntry := slabEntry(b.nodes[node.right].bounds, ray)
	return leftEntry <= rightEntry
}

// slabEntry returns the parametric entry distance of the ray into the box,
// without clipping to a query interval. Misses sort last.
func slabEntry(box core.AABB, ray core.Ray) float64 {
	tEnter := -1e308
	tExit := 1e308

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)
		min := box.Min.Axis(axis)
		max := box.Max.Axis(axis)

		if direction == 0 {
			if origin < min || origin > max {
				return 1e308
			}
			continue
		}

		t1 := (min - origin) / direction
		t2 := (max - origin) / direction
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter = t1
		}
		if t2 < tExit {
			tExit = t2
		}
		if tEnter > tExit {
			return 1e308
		}
	}

	return tEnter
}

// BoundingBox returns the root bounding box
func (b *BVH) BoundingBox(time0, time1 float64) core.AABB {
	if b.root < 0 {
		return core.AABB{}
	}
	return b.nodes[b.root].bounds
}

// NodeCount returns the total number of nodes in the tree
func (b *BVH) NodeCount() int {
	return len(b.nodes)
}

// Validate walks the tree and reports whether every node's box contains its
// children's boxes and, for leaves, the boxes of its primitives
func (b *BVH) Validate() bool {
	if b.root < 0 {
		return true
	}
	return b.validateNode(b.root)
}

func (b *BVH) validateNode(nodeIndex int) bool {
	node := &b.nodes[nodeIndex]

	if node.isLeaf() {
		for i := node.start; i < node.start+node.count; i++ {
			// A hair of tolerance for rounding in box unions
			if !node.bounds.Expand(1e-9).Contains(b.shapes[i].BoundingBox(b.time0, b.time1)) {
				return false
			}
		}
		return true
	}

	if !node.bounds.Expand(1e-9).Contains(b.nodes[node.left].bounds) {
		return false
	}
	if !node.bounds.Expand(1e-9).Contains(b.nodes[node.right].bounds) {
		return false
	}
	return b.validateNode(node.left) && b.validateNode(node.right)
}
