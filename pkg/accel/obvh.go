package accel

import "github.com/df07/go-bvh-tracer/pkg/core"

// obvhArity is the branching factor of one OBVH node: a depth-3 collapse
// of the binary BVH has exactly 8 leaf slots.
const obvhArity = 8

// OBVHNode is one 8-wide node: eight children, their eight bounding boxes
// laid out axis-major so each axis/min-max slot is a contiguous 8-float
// lane suitable for a single SIMD load, and the two packed axis-bit words
// that drive the branch-free child-priority computation in Priorities.
//
// The bounding boxes are stored as float32, so the node totals 240 bytes
// (48 four-byte floats + 8 four-byte node pointers + 2 uint64 axis words),
// which fits in four 64-byte cache lines. Go does not expose a portable way
// to force 32-byte alignment without unsafe.Pointer tricks, so the node
// has only Go's default alignment.
type OBVHNode struct {
	Children  [obvhArity]core.NodePointer
	BoundsMin [3][obvhArity]float32 // [axis][child]
	BoundsMax [3][obvhArity]float32

	// AxisBits0/AxisBits1 pack, per child byte c, a 2-bit axis code (bit
	// of AxisBits0 is the low bit, bit of AxisBits1 the high bit) at each
	// of the three bit positions within the byte: position 0 is the
	// subtree-root split axis (same for every child), position 1 is the
	// depth-1 split axis relevant to c's path (indexed by c&1), position
	// 2 is the depth-2 split axis relevant to c's path (indexed by c&3).
	// Axis codes: 0=X, 1=Y, 2=Z.
	AxisBits0 uint64
	AxisBits1 uint64
}

// OBVH is the 8-wide SIMD-friendly acceleration structure flattened from a
// built binary BVH. It shares the source BVH's leaf array directly — an
// OBVH never owns or reorders primitives, only re-packages the inner
// nodes — so leaf pointers from the source BVH remain valid indices here.
type OBVH struct {
	Nodes  []OBVHNode
	Leaves []core.Hitable
}

type obvhSlot struct {
	ptr core.NodePointer
	box core.AABB
}

// BuildOBVH flattens a built binary BVH into an 8-wide OBVH, per the
// array-based builder variant: it walks bvh.Inners directly by index
// rather than preserving a separate linked construction record, which
// composes more simply with the node-pointer addressing scheme used
// throughout this module.
func BuildOBVH(bvh *BVH, logger core.Logger) *OBVH {
	o := &OBVH{Leaves: bvh.Leaves}
	if len(bvh.Inners) == 0 {
		return o
	}
	o.Nodes = append(o.Nodes, OBVHNode{})
	o.buildNode(bvh, core.InnerPointer(0), 0)
	if logger != nil {
		logger.Printf("obvh: flattened %d nodes from %d BVH inner nodes", len(o.Nodes), len(bvh.Inners))
	}
	return o
}

// buildNode fills the OBVH node at o.Nodes[nodeIdx] by collecting the
// depth-3 descendants of the BVH inner node at ptr, then recursing into
// every descendant that is itself an inner node deep enough to need its
// own OBVH node.
func (o *OBVH) buildNode(bvh *BVH, ptr core.NodePointer, nodeIdx uint32) {
	inner := bvh.Inners[ptr.Index()]

	var slots [obvhArity]obvhSlot
	var rootAxis uint8
	var depth1Axis [2]uint8
	var depth2Axis [4]uint8

	rootAxis = inner.Axis
	o.collect(bvh, inner.Left, inner.BoundsL, 1, 1, &slots, &depth1Axis, &depth2Axis) // bit0 = 1 (left)
	o.collect(bvh, inner.Right, inner.BoundsR, 1, 0, &slots, &depth1Axis, &depth2Axis) // bit0 = 0 (right)

	node := OBVHNode{}
	for c := 0; c < obvhArity; c++ {
		node.Children[c] = slots[c].ptr
		for axis := 0; axis < 3; axis++ {
			node.BoundsMin[axis][c] = float32(slots[c].box.Min.Component(axis))
			node.BoundsMax[axis][c] = float32(slots[c].box.Max.Component(axis))
		}
	}
	node.AxisBits0, node.AxisBits1 = packAxisBits(rootAxis, depth1Axis, depth2Axis)
	o.Nodes[nodeIdx] = node

	// Recurse into every depth-3 descendant that is itself an inner node;
	// each becomes its own OBVH node, self-indexed before recursing so
	// child indices are always greater than the parent's, matching the
	// BVH's own discipline.
	for c := 0; c < obvhArity; c++ {
		if !slots[c].ptr.IsLeaf() {
			childIdx := uint32(len(o.Nodes))
			o.Nodes = append(o.Nodes, OBVHNode{})
			o.buildNode(bvh, slots[c].ptr, childIdx)
			o.Nodes[nodeIdx].Children[c] = core.InnerPointer(childIdx)
		}
	}
}

// collect descends the BVH from ptr, filling every slot whose child index
// c has its low `level` bits equal to pathBits. It stops early — filling
// all matching slots with the same (ptr, box) pair — whenever ptr
// bottoms out into a leaf, an empty leaf, or level reaches 3. Recording a
// leaf (or empty sentinel) across every slot under an early-terminating
// branch keeps every OBVH node at a fixed 8-wide arity without inventing
// extra empty subtrees that were never in the source BVH.
func (o *OBVH) collect(bvh *BVH, ptr core.NodePointer, box core.AABB, level, pathBits int, slots *[obvhArity]obvhSlot, depth1Axis *[2]uint8, depth2Axis *[4]uint8) {
	if level == 3 || ptr.IsEmptyLeaf() || ptr.IsLeaf() {
		mask := (1 << uint(level)) - 1
		for c := 0; c < obvhArity; c++ {
			if c&mask == pathBits {
				slots[c] = obvhSlot{ptr: ptr, box: box}
			}
		}
		return
	}

	inner := bvh.Inners[ptr.Index()]
	switch level {
	case 1:
		depth1Axis[pathBits] = inner.Axis
	case 2:
		depth2Axis[pathBits] = inner.Axis
	}

	o.collect(bvh, inner.Left, inner.BoundsL, level+1, pathBits|(1<<uint(level)), slots, depth1Axis, depth2Axis)
	o.collect(bvh, inner.Right, inner.BoundsR, level+1, pathBits, slots, depth1Axis, depth2Axis)
}

// packAxisBits builds the two axis-bit words from the three levels' split
// axes, spreading each axis id as a 2-bit code across AxisBits0 (low bit)
// and AxisBits1 (high bit) at the bit position matching its level.
func packAxisBits(rootAxis uint8, depth1Axis [2]uint8, depth2Axis [4]uint8) (bits0, bits1 uint64) {
	setAxis := func(byteIdx int, bitPos uint, axis uint8) {
		if axis&1 != 0 {
			bits0 |= 1 << (uint(byteIdx)*8 + bitPos)
		}
		if axis&2 != 0 {
			bits1 |= 1 << (uint(byteIdx)*8 + bitPos)
		}
	}
	for c := 0; c < obvhArity; c++ {
		setAxis(c, 0, rootAxis)
		setAxis(c, 1, depth1Axis[c&1])
		setAxis(c, 2, depth2Axis[c&3])
	}
	return bits0, bits1
}
