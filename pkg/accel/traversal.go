package accel

import "github.com/df07/go-bvh-tracer/pkg/core"

// Hit walks the tree from the root, always descending into the child
// nearer the ray origin first (per the split axis and the sign of the
// ray's direction on that axis) and only descending into the far child if
// its box still intersects the interval tightened by any hit already
// found in the near child. This ordering is what makes early-out
// effective: a hit found near the origin shrinks tMax before the far
// subtree is even tested.
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if len(b.Inners) == 0 {
		return nil, false
	}
	return b.hitNode(core.InnerPointer(0), ray, tMin, tMax)
}

func (b *BVH) hitNode(ptr core.NodePointer, ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if ptr.IsEmptyLeaf() {
		return nil, false
	}
	if ptr.IsLeaf() {
		return b.Leaves[ptr.Index()].Hit(ray, tMin, tMax)
	}

	node := &b.Inners[ptr.Index()]
	near, far := node.Left, node.Right
	nearBox, farBox := node.BoundsL, node.BoundsR
	if ray.Direction.Component(int(node.Axis)) < 0 {
		near, far = far, near
		nearBox, farBox = farBox, nearBox
	}

	var best *core.HitRecord
	closest := tMax

	if nearBox.Hit(ray, tMin, closest) {
		if rec, ok := b.hitNode(near, ray, tMin, closest); ok {
			best = rec
			closest = rec.T
		}
	}
	if farBox.Hit(ray, tMin, closest) {
		if rec, ok := b.hitNode(far, ray, tMin, closest); ok {
			best = rec
			closest = rec.T
		}
	}
	return best, best != nil
}

// IsHit is a shadow-ray predicate: same descent order as Hit, but returns
// on the first intersection found anywhere in the tree without tightening
// tMax, since no distance comparison is needed.
func (b *BVH) IsHit(ray core.Ray, tMin, tMax float64) bool {
	if len(b.Inners) == 0 {
		return false
	}
	return b.isHitNode(core.InnerPointer(0), ray, tMin, tMax)
}

func (b *BVH) isHitNode(ptr core.NodePointer, ray core.Ray, tMin, tMax float64) bool {
	if ptr.IsEmptyLeaf() {
		return false
	}
	if ptr.IsLeaf() {
		return b.Leaves[ptr.Index()].IsHit(ray, tMin, tMax)
	}

	node := &b.Inners[ptr.Index()]
	near, far := node.Left, node.Right
	nearBox, farBox := node.BoundsL, node.BoundsR
	if ray.Direction.Component(int(node.Axis)) < 0 {
		near, far = far, near
		nearBox, farBox = farBox, nearBox
	}
	if nearBox.Hit(ray, tMin, tMax) && b.isHitNode(near, ray, tMin, tMax) {
		return true
	}
	if farBox.Hit(ray, tMin, tMax) && b.isHitNode(far, ray, tMin, tMax) {
		return true
	}
	return false
}

// BoundingBox returns the union of the root's two child boxes, so a BVH
// satisfies core.Hitable itself and can be nested inside another
// acceleration structure or instanced via a transform.
func (b *BVH) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	if len(b.Inners) == 0 {
		return core.EmptyAABB(), false
	}
	root := b.Inners[0]
	box := root.BoundsL.Union(root.BoundsR)
	if box.IsEmpty() {
		return box, false
	}
	return box, true
}
