package accel

import (
	"math"

	"github.com/df07/go-bvh-tracer/pkg/core"
)

// maxOBVHStack bounds the traversal stack. 64 entries is generous for any
// OBVH built from this module's builder: each level down consumes at
// most 8 stack slots and OBVH depth is logarithmic in primitive count, so
// exceeding it indicates a malformed tree rather than a legitimate scene.
const maxOBVHStack = 64

// obvhStack is a fixed-capacity, stack-allocated (no heap growth) LIFO of
// pending node pointers. Pushing past capacity is a programmer error: the
// bound is a static, asserted invariant rather than a silently resizing
// slice.
type obvhStack struct {
	items [maxOBVHStack]core.NodePointer
	n     int
}

func (s *obvhStack) push(p core.NodePointer) {
	if s.n >= maxOBVHStack {
		panic("accel: OBVH traversal stack overflow")
	}
	s.items[s.n] = p
	s.n++
}

func (s *obvhStack) pop() (core.NodePointer, bool) {
	if s.n == 0 {
		return 0, false
	}
	s.n--
	return s.items[s.n], true
}

// slabTestMask runs the eight-lane slab test against one OBVH node, using
// ordered comparisons so a NaN lane evaluates to a miss. A NaN bound
// (0 * Inf, from a zero ray-direction component whose origin lies on one
// of the slab's planes) is stored into that lane's tLo; Go's `<`, `>`, and
// `>=` are false whenever either operand is NaN, so the lane never
// tightens again and fails the final hit test. The hit test itself is
// `tHi >= tLo`, not `>`, so a zero-thickness slab the ray grazes exactly
// still counts as a hit.
func slabTestMask(node *OBVHNode, ray core.Ray, tMin, tMax float64) uint8 {
	var tLo, tHi [8]float64
	for c := 0; c < obvhArity; c++ {
		tLo[c] = tMin
		tHi[c] = tMax
	}

	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / ray.Direction.Component(axis)
		origin := ray.Origin.Component(axis)
		neg := invD < 0

		for c := 0; c < obvhArity; c++ {
			t0 := (float64(node.BoundsMin[axis][c]) - origin) * invD
			t1 := (float64(node.BoundsMax[axis][c]) - origin) * invD
			if neg {
				t0, t1 = t1, t0
			}
			if t0 != t0 || t1 != t1 {
				tLo[c] = math.NaN()
				continue
			}
			if t0 > tLo[c] {
				tLo[c] = t0
			}
			if t1 < tHi[c] {
				tHi[c] = t1
			}
		}
	}

	var mask uint8
	for c := 0; c < obvhArity; c++ {
		if tHi[c] >= tLo[c] {
			mask |= 1 << uint(c)
		}
	}
	return mask
}

// Hit walks the OBVH with a fixed-capacity explicit stack, visiting each
// node's hit children in near-to-far order so a close hit tightens tMax
// before farther children are even popped.
func (o *OBVH) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if len(o.Nodes) == 0 {
		return nil, false
	}

	var stack obvhStack
	stack.push(core.InnerPointer(0))

	var best *core.HitRecord
	closest := tMax

	for {
		ptr, ok := stack.pop()
		if !ok {
			break
		}
		if ptr.IsEmptyLeaf() {
			continue
		}
		if ptr.IsLeaf() {
			if rec, ok := o.Leaves[ptr.Index()].Hit(ray, tMin, closest); ok {
				best = rec
				closest = rec.T
			}
			continue
		}

		node := &o.Nodes[ptr.Index()]
		mask := slabTestMask(node, ray, tMin, closest)
		if mask == 0 {
			continue
		}

		prio := priorities(node.AxisBits0, node.AxisBits1, ray.Direction.X >= 0, ray.Direction.Y >= 0, ray.Direction.Z >= 0)

		// Push in reverse priority order so the nearest hit child is
		// popped (and therefore visited) first.
		var order [8]int
		for c := range order {
			order[c] = c
		}
		for i := 0; i < obvhArity; i++ {
			for j := i + 1; j < obvhArity; j++ {
				if prio[order[j]] > prio[order[i]] {
					order[i], order[j] = order[j], order[i]
				}
			}
		}
		for _, c := range order {
			if mask&(1<<uint(c)) != 0 {
				stack.push(node.Children[c])
			}
		}
	}

	return best, best != nil
}

// IsHit is a shadow-ray predicate: the same stack-based descent and slab
// test as Hit, short-circuiting on the first hit found anywhere without
// tightening tMax. Hit children are pushed in child-index order; no
// near-to-far priority ordering is applied.
func (o *OBVH) IsHit(ray core.Ray, tMin, tMax float64) bool {
	if len(o.Nodes) == 0 {
		return false
	}

	var stack obvhStack
	stack.push(core.InnerPointer(0))

	for {
		ptr, ok := stack.pop()
		if !ok {
			return false
		}
		if ptr.IsEmptyLeaf() {
			continue
		}
		if ptr.IsLeaf() {
			if o.Leaves[ptr.Index()].IsHit(ray, tMin, tMax) {
				return true
			}
			continue
		}

		node := &o.Nodes[ptr.Index()]
		mask := slabTestMask(node, ray, tMin, tMax)
		for c := 0; c < obvhArity; c++ {
			if mask&(1<<uint(c)) != 0 {
				stack.push(node.Children[c])
			}
		}
	}
}

// BoundingBox returns the union of the root node's eight child boxes.
func (o *OBVH) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	if len(o.Nodes) == 0 {
		return core.EmptyAABB(), false
	}
	root := &o.Nodes[0]
	box := core.EmptyAABB()
	for c := 0; c < obvhArity; c++ {
		box = box.Union(core.NewAABB(
			core.NewVec3(float64(root.BoundsMin[0][c]), float64(root.BoundsMin[1][c]), float64(root.BoundsMin[2][c])),
			core.NewVec3(float64(root.BoundsMax[0][c]), float64(root.BoundsMax[1][c]), float64(root.BoundsMax[2][c])),
		))
	}
	if box.IsEmpty() {
		return box, false
	}
	return box, true
}
