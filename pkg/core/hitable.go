package core

// Hitable is the ray-intersection contract shared by every leaf primitive
// and by the BVH/OBVH acceleration structures themselves. Implementations
// must be side-effect free and safe to call concurrently on the same
// instance from arbitrarily many worker goroutines — building a tree
// happens once, serially; every Hit/IsHit call afterwards is read-only.
type Hitable interface {
	// Hit returns the closest intersection with t in (tMin, tMax), or
	// (nil, false) if there is none.
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)

	// IsHit is a shadow-ray predicate. The zero-value behavior (not
	// provided here, since Go has no default method bodies) is
	// `Hit(...)` discarding the record; acceleration structures override
	// it to short-circuit on the first hit found during descent rather
	// than tightening tMax to find the closest one.
	IsHit(ray Ray, tMin, tMax float64) bool

	// BoundingBox returns a conservative box valid over the shutter
	// interval [t0, t1]. ok is false for primitives without finite bounds,
	// and for a BVH/OBVH built from an empty scene.
	BoundingBox(t0, t1 float64) (box AABB, ok bool)
}

// DirectionSampler is an optional capability a Hitable may implement to
// support light-source importance sampling in the outer renderer. Nothing
// in this module calls it; its presence here only preserves the interface
// surface that the outer integrator depends on.
type DirectionSampler interface {
	RandomDirectionFrom(origin Vec3, u, v float64) Vec3
	DirectionDensity(origin Vec3, direction Vec3) float64
}
