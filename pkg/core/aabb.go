package core

import "math"

// AABB is an axis-aligned bounding box, stored as two corners. The
// canonical empty box (the identity of Union) has Min = +Inf and
// Max = -Inf on every axis, so that Union with any box returns that box
// unchanged and Area reports zero.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates a new AABB from min and max points. Callers are expected
// to pass componentwise min <= max, or the Empty sentinel; NewAABB does not
// canonicalize.
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns the identity element of Union.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: NewVec3(inf, inf, inf), Max: NewVec3(-inf, -inf, -inf)}
}

// NewAABBFromPoints creates an AABB that bounds all given points.
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return EmptyAABB()
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box.Min = box.Min.Min(point)
		box.Max = box.Max.Max(point)
	}
	return box
}

// IsEmpty reports whether this is the canonical empty box.
func (aabb AABB) IsEmpty() bool {
	return aabb.Min.X > aabb.Max.X || aabb.Min.Y > aabb.Max.Y || aabb.Min.Z > aabb.Max.Z
}

// Hit implements the classical slab test: intersect the ray against each
// pair of parallel planes in turn, tightening [tMin, tMax] and rejecting as
// soon as the interval inverts. A zero-thickness slab (Min[a] == Max[a])
// still registers a hit when the ray grazes the plane, because the
// rejection compares strictly (tMax < tMin), so tMax == tMin still counts
// as a hit. Division by a zero direction component is allowed to produce
// a signed infinity; the tightening step then still yields the correct
// accept/reject.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / ray.Direction.Component(axis)
		t0 := (aabb.Min.Component(axis) - ray.Origin.Component(axis)) * invD
		t1 := (aabb.Max.Component(axis) - ray.Origin.Component(axis)) * invD

		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax < tMin {
			return false
		}
	}
	return true
}

// Union returns the AABB bounding both this AABB and another. Union is
// associative and commutative with EmptyAABB as its identity.
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// UnionPoint returns the AABB bounding this AABB and a single point.
func (aabb AABB) UnionPoint(p Vec3) AABB {
	return AABB{Min: aabb.Min.Min(p), Max: aabb.Max.Max(p)}
}

// Center returns the center point of the AABB.
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the extent of the AABB along each axis.
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Area returns the surface area of the box: 2*(dx*dy + dy*dz + dz*dx). An
// empty box has zero area.
func (aabb AABB) Area() float64 {
	if aabb.IsEmpty() {
		return 0
	}
	d := aabb.Size()
	return 2.0 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent.
func (aabb AABB) LongestAxis() int {
	d := aabb.Size()
	if d.X > d.Y && d.X > d.Z {
		return 0
	}
	if d.Y > d.Z {
		return 1
	}
	return 2
}

// corners returns the eight corners of the box.
func (aabb AABB) corners() [8]Vec3 {
	return [8]Vec3{
		{aabb.Min.X, aabb.Min.Y, aabb.Min.Z},
		{aabb.Max.X, aabb.Min.Y, aabb.Min.Z},
		{aabb.Min.X, aabb.Max.Y, aabb.Min.Z},
		{aabb.Max.X, aabb.Max.Y, aabb.Min.Z},
		{aabb.Min.X, aabb.Min.Y, aabb.Max.Z},
		{aabb.Max.X, aabb.Min.Y, aabb.Max.Z},
		{aabb.Min.X, aabb.Max.Y, aabb.Max.Z},
		{aabb.Max.X, aabb.Max.Y, aabb.Max.Z},
	}
}

// Transform returns the tight box of the eight transformed corners. This
// is required rather than transforming Min/Max directly: an arbitrary
// rotation can shrink an axis-aligned box's bounds unless the corners are
// re-derived individually. Empty maps to empty.
func (aabb AABB) Transform(a Affine) AABB {
	if aabb.IsEmpty() {
		return EmptyAABB()
	}
	pts := aabb.corners()
	box := NewAABBFromPoints(a.Apply(pts[0]))
	for _, p := range pts[1:] {
		box = box.UnionPoint(a.Apply(p))
	}
	return box
}
