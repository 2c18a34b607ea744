package core

// Ray represents a ray with an origin, a (not necessarily unit-length)
// direction, and a shutter time in [0,1] carried through to leaf
// intersectors for motion-blur-aware bounding.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Time      float64
}

// NewRay creates a new ray at time 0.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// NewRayAtTime creates a new ray carrying an explicit shutter time.
func NewRayAtTime(origin, direction Vec3, time float64) Ray {
	return Ray{Origin: origin, Direction: direction, Time: time}
}

// NewRayTo creates a ray from origin towards target with a normalized direction.
func NewRayTo(origin, target Vec3) Ray {
	return NewRay(origin, target.Subtract(origin).Normalize())
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// InvDirection returns the reciprocal of each direction component,
// computed on every call. Axes with a zero direction component produce a
// signed infinity rather than a divide-by-zero panic. The scalar slab test
// (core.AABB.Hit) and the OBVH's 8-wide slab test do not call it; they
// compute the same reciprocals inline and rely on the same signed
// infinities.
func (r Ray) InvDirection() Vec3 {
	return Vec3{X: 1.0 / r.Direction.X, Y: 1.0 / r.Direction.Y, Z: 1.0 / r.Direction.Z}
}
