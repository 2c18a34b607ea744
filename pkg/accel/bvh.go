// Package accel implements the acceleration structure and traversal engine:
// a Surface Area Heuristic (SAH) binary BVH and the 8-wide OBVH flattened
// from it. Both own two contiguous arrays (Inners, Leaves) and are
// addressed exclusively through core.NodePointer, never raw pointers.
package accel

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/df07/go-bvh-tracer/pkg/core"
)

// BVHInner is one binary BVH node: exactly two children, each with its own
// bounding box, plus the axis the parent split on.
type BVHInner struct {
	BoundsL, BoundsR core.AABB
	Left, Right      core.NodePointer
	Axis             uint8
}

// BVH is a Surface Area Heuristic binary bounding volume hierarchy over a
// fixed set of leaf primitives. It is built once and is immutable
// thereafter; Hit/IsHit are re-entrant and safe to call concurrently from
// any number of worker goroutines. The root is always Inners[0], even for
// an empty or single-primitive scene.
type BVH struct {
	Inners []BVHInner
	Leaves []core.Hitable
}

// maxBVHDepth bounds build recursion; exceeding it is a programmer error
// (a pathologically unbalanced split sequence). buildChild checks it on
// every call and panics when it is reached.
const maxBVHDepth = 64

type sahEntry struct {
	prim     core.Hitable
	box      core.AABB
	centroid core.Vec3
}

type buildStats struct {
	maxDepth         int
	degenerateSplits int
}

// Build constructs a BVH from prims using a Surface Area Heuristic sweep:
// for every axis, sort by centroid and evaluate the SAH cost of every
// split index via prefix/suffix surface areas, minimizing over axis and
// index. logger may be nil.
func Build(prims []core.Hitable, t0, t1 float64, logger core.Logger) *BVH {
	b := &BVH{}
	entries := make([]sahEntry, len(prims))
	for i, p := range prims {
		box, ok := p.BoundingBox(t0, t1)
		if !ok {
			box = core.EmptyAABB()
		}
		entries[i] = sahEntry{prim: p, box: box, centroid: box.Center()}
	}

	stats := buildStats{}

	// The root is always Inners[0], reserved up front regardless of how
	// few primitives the scene has, so an empty or single-primitive scene
	// still produces a root inner node rather than a bare leaf/empty
	// pointer with nowhere to live.
	b.Inners = append(b.Inners, BVHInner{})
	switch len(entries) {
	case 0:
		b.Inners[0] = BVHInner{BoundsL: core.EmptyAABB(), BoundsR: core.EmptyAABB(), Left: core.EmptyLeaf, Right: core.EmptyLeaf}
	case 1:
		b.Inners[0] = BVHInner{BoundsL: entries[0].box, BoundsR: core.EmptyAABB(), Left: b.appendLeaf(entries[0]), Right: core.EmptyLeaf}
	default:
		b.Inners[0] = b.splitInto(entries, 0, &stats)
	}

	if logger != nil {
		logger.Printf("bvh: built %d inner nodes (%d leaves, max depth %d, %d degenerate splits)",
			len(b.Inners), len(b.Leaves), stats.maxDepth, stats.degenerateSplits)
	}
	return b
}

// buildChild constructs the node pointer for one side of a split. A single
// primitive is referenced directly (no wrapping inner node — the whole
// point of a tagged node pointer is to avoid that indirection); two or
// more primitives get their own inner node, self-indexed before recursing
// so child indices are always greater than the parent's.
func (b *BVH) buildChild(entries []sahEntry, depth int, stats *buildStats) core.NodePointer {
	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}
	if depth >= maxBVHDepth {
		panic("accel: BVH recursion exceeded maxBVHDepth — pathological split sequence")
	}

	switch len(entries) {
	case 0:
		return core.EmptyLeaf
	case 1:
		return b.appendLeaf(entries[0])
	}

	idx := uint32(len(b.Inners))
	b.Inners = append(b.Inners, BVHInner{})
	b.Inners[idx] = b.splitInto(entries, depth, stats)
	return core.InnerPointer(idx)
}

// splitInto builds the inner node for a set of two or more primitives:
// directly for exactly two (both children are leaf pointers, an explicit
// base case), or via a full SAH sweep and recursive buildChild calls for
// three or more.
func (b *BVH) splitInto(entries []sahEntry, depth int, stats *buildStats) BVHInner {
	if len(entries) == 2 {
		axis := bestSeparatingAxis(entries[0].centroid, entries[1].centroid)
		if entries[0].centroid.Component(axis) > entries[1].centroid.Component(axis) {
			entries[0], entries[1] = entries[1], entries[0]
		}
		return BVHInner{
			BoundsL: entries[0].box,
			BoundsR: entries[1].box,
			Left:    b.appendLeaf(entries[0]),
			Right:   b.appendLeaf(entries[1]),
			Axis:    uint8(axis),
		}
	}

	axis, split, degenerate := chooseSAHSplit(entries)
	if degenerate {
		stats.degenerateSplits++
	}
	sortByCentroidAxis(entries, axis)
	left, right := entries[:split], entries[split:]

	return BVHInner{
		BoundsL: unionOf(left),
		BoundsR: unionOf(right),
		Left:    b.buildChild(left, depth+1, stats),
		Right:   b.buildChild(right, depth+1, stats),
		Axis:    uint8(axis),
	}
}

func (b *BVH) appendLeaf(e sahEntry) core.NodePointer {
	idx := uint32(len(b.Leaves))
	b.Leaves = append(b.Leaves, e.prim)
	return core.LeafPointer(idx)
}

func unionOf(entries []sahEntry) core.AABB {
	box := core.EmptyAABB()
	for _, e := range entries {
		box = box.Union(e.box)
	}
	return box
}

func sortByCentroidAxis(entries []sahEntry, axis int) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].centroid.Component(axis) < entries[j].centroid.Component(axis)
	})
}

// bestSeparatingAxis returns the axis with the largest centroid separation
// between two points, used to pick a traversal-order axis for a two-leaf
// inner node where a full SAH sweep would be overkill.
func bestSeparatingAxis(a, b core.Vec3) int {
	d := core.Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
	best, bestAxis := 0.0, 0
	for axis := 0; axis < 3; axis++ {
		v := d.Component(axis)
		if v < 0 {
			v = -v
		}
		if v > best {
			best, bestAxis = v, axis
		}
	}
	return bestAxis
}

// chooseSAHSplit evaluates the SAH cost of every (axis, split index) pair
// and returns the minimizing axis and split index. The caller is
// responsible for sorting `entries` by centroid along the returned axis
// before slicing at the returned index — this function only inspects
// per-axis sorted copies so it can evaluate all three axes without
// disturbing the caller's order.
//
// If the minimizing split places every primitive on one side (i == 0 or
// i == n, meaning the SAH failed to discriminate at all), force a median
// split on axis 0 instead, which is stable and prevents pathological
// recursion.
func chooseSAHSplit(entries []sahEntry) (axis int, split int, degenerate bool) {
	n := len(entries)
	costs := make([]float64, 3*(n+1))

	for a := 0; a < 3; a++ {
		cp := make([]sahEntry, n)
		copy(cp, entries)
		sortByCentroidAxis(cp, a)

		left := make([]float64, n+1)  // left[i] = area(union of cp[0:i])
		right := make([]float64, n+1) // right[i] = area(union of cp[i:n])

		leftBox := core.EmptyAABB()
		left[0] = 0
		for i := 1; i <= n; i++ {
			leftBox = leftBox.Union(cp[i-1].box)
			left[i] = leftBox.Area()
		}
		rightBox := core.EmptyAABB()
		right[n] = 0
		for i := n - 1; i >= 0; i-- {
			rightBox = rightBox.Union(cp[i].box)
			right[i] = rightBox.Area()
		}

		for i := 0; i <= n; i++ {
			costs[a*(n+1)+i] = left[i]*float64(i) + right[i]*float64(n-i)
		}
	}

	bestFlat := floats.MinIdx(costs)
	axis = bestFlat / (n + 1)
	split = bestFlat % (n + 1)

	if split == 0 || split == n {
		return 0, n / 2, true
	}
	return axis, split, false
}
