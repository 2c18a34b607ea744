package accel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-bvh-tracer/pkg/core"
)

// TestSlabTestMaskGrazingHitAndNoNaNLeak checks the 8-wide slab test
// directly: a box grazed exactly at its boundary (tLo == tHi on every
// lane) must still register a hit bit, and a ray with a zero direction
// component on an axis where the node's boxes don't degenerate produces
// signed infinities rather than NaN, which must not leak into the mask.
func TestSlabTestMaskGrazingHitAndNoNaNLeak(t *testing.T) {
	node := &OBVHNode{}
	for c := 0; c < obvhArity; c++ {
		node.BoundsMin[0][c], node.BoundsMax[0][c] = -1, 1
		node.BoundsMin[1][c], node.BoundsMax[1][c] = -1, 1
		node.BoundsMin[2][c], node.BoundsMax[2][c] = 0, 0 // zero-thickness z slab, every child
	}

	grazing := core.NewRay(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1))
	mask := slabTestMask(node, grazing, 0, math.Inf(1))
	assert.Equal(t, uint8(0xFF), mask, "a ray grazing a zero-thickness slab at tLo==tHi must still hit every child")

	axisAligned := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	mask = slabTestMask(node, axisAligned, 0, math.Inf(1))
	assert.Equal(t, uint8(0xFF), mask, "dividing by a zero direction component on a non-degenerate slab must not leak NaN into the mask")
}

// TestSphereGridBVHOBVHEquivalence checks 1,000 spheres on a 10x10x10
// grid, hit by a ray through the diagonal: BVH and OBVH must return the
// identical t and point.
func TestSphereGridBVHOBVHEquivalence(t *testing.T) {
	prims := sphereGrid(10, 2.5, 1.0)
	bvh := Build(prims, 0, 1, nil)
	obvh := BuildOBVH(bvh, nil)

	extent := 2.5 * 9.0 / 2
	origin := core.NewVec3(-extent-10, -extent-10, -extent-10)
	target := core.NewVec3(extent, extent, extent)
	ray := core.NewRayTo(origin, target)

	bvhRec, bvhOK := bvh.Hit(ray, 0.001, math.Inf(1))
	obvhRec, obvhOK := obvh.Hit(ray, 0.001, math.Inf(1))

	require.Equal(t, bvhOK, obvhOK)
	if bvhOK {
		assert.InDelta(t, bvhRec.T, obvhRec.T, 1e-9)
		assert.True(t, bvhRec.Point.Equals(obvhRec.Point))
	}
}

// TestBVHOBVHEquivalenceManyRays fires a broad spread of random rays at
// the same grid and checks every one agrees between BVH and OBVH,
// including misses.
func TestBVHOBVHEquivalenceManyRays(t *testing.T) {
	prims := sphereGrid(6, 2.5, 1.0)
	bvh := Build(prims, 0, 1, nil)
	obvh := BuildOBVH(bvh, nil)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		origin := core.NewVec3(rng.Float64()*40-20, rng.Float64()*40-20, rng.Float64()*40-20)
		dir := core.NewVec3(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1).Normalize()
		ray := core.NewRay(origin, dir)

		bvhRec, bvhOK := bvh.Hit(ray, 0.001, math.Inf(1))
		obvhRec, obvhOK := obvh.Hit(ray, 0.001, math.Inf(1))
		require.Equal(t, bvhOK, obvhOK, "mismatch at ray %d", i)
		if bvhOK {
			assert.InDelta(t, bvhRec.T, obvhRec.T, 1e-6, "ray %d", i)
		}
		assert.Equal(t, bvh.IsHit(ray, 0.001, math.Inf(1)), obvh.IsHit(ray, 0.001, math.Inf(1)))
	}
}

// TestOBVHLeafMultisetPreserved checks that, after flattening, the OBVH
// shares the BVH's leaf array, so its reachable leaves are exactly the
// input primitives.
func TestOBVHLeafMultisetPreserved(t *testing.T) {
	prims := sphereGrid(4, 2.5, 1.0)
	bvh := Build(prims, 0, 1, nil)
	obvh := BuildOBVH(bvh, nil)
	assert.Len(t, obvh.Leaves, len(prims))
	assert.Equal(t, len(bvh.Leaves), len(obvh.Leaves))
}

// referencePriority computes child visitation priority by literally
// recursing depth-3 near-first, independent of the branch-free bit-trick
// implementation under test.
func referencePriority(rootAxis uint8, depth1Axis [2]uint8, depth2Axis [4]uint8, pos [3]bool) [8]int {
	var order []int
	var visit func(level, pathBits int)
	visit = func(level, pathBits int) {
		if level == 3 {
			order = append(order, pathBits)
			return
		}
		var axis uint8
		switch level {
		case 0:
			axis = rootAxis
		case 1:
			axis = depth1Axis[pathBits&1]
		case 2:
			axis = depth2Axis[pathBits&3]
		}
		nearBit := 0
		if pos[axis] {
			nearBit = 1
		}
		farBit := 1 - nearBit
		visit(level+1, pathBits|(nearBit<<uint(level)))
		visit(level+1, pathBits|(farBit<<uint(level)))
	}
	visit(0, 0)

	var priority [8]int
	for i, c := range order {
		priority[c] = i
	}
	return priority
}

// TestChildPriorityMatchesReference checks that, for every combination
// of the three split-level axis assignments and the eight ray-sign
// combinations, the branch-free priorities() computation agrees with
// a literal recursive near-first ordering. 3^7 * 2^3 = 17,496 cases.
func TestChildPriorityMatchesReference(t *testing.T) {
	axes := [3]uint8{0, 1, 2}
	cases := 0
	for _, rootAxis := range axes {
		for _, d1a := range axes {
			for _, d1b := range axes {
				depth1Axis := [2]uint8{d1a, d1b}
				for _, d2a := range axes {
					for _, d2b := range axes {
						for _, d2c := range axes {
							for _, d2d := range axes {
								depth2Axis := [4]uint8{d2a, d2b, d2c, d2d}
								bits0, bits1 := packAxisBits(rootAxis, depth1Axis, depth2Axis)

								for mask := 0; mask < 8; mask++ {
									pos := [3]bool{mask&1 != 0, mask&2 != 0, mask&4 != 0}
									got := priorities(bits0, bits1, pos[0], pos[1], pos[2])
									want := referencePriority(rootAxis, depth1Axis, depth2Axis, pos)
									for c := 0; c < 8; c++ {
										if int(got[c]) != want[c] {
											t.Fatalf("rootAxis=%d depth1=%v depth2=%v pos=%v child=%d: got %d want %d",
												rootAxis, depth1Axis, depth2Axis, pos, c, got[c], want[c])
										}
									}
									cases++
								}
							}
						}
					}
				}
			}
		}
	}
	assert.Equal(t, 17496, cases)
}
