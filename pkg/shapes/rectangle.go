package shapes

import "github.com/df07/go-bvh-tracer/pkg/core"

// Rectangle is a parallelogram defined by an origin corner and two
// orthogonal edge vectors. Collinear edges are accepted silently by the
// constructor; Hit on a degenerate rectangle never finds a root because
// the plane-intersection denominator or the edge-coordinate test rejects
// first.
type Rectangle struct {
	Origin   core.Vec3
	EdgeU    core.Vec3
	EdgeV    core.Vec3
	Material core.Material

	normal core.Vec3 // unit normal, Cross(EdgeU, EdgeV) normalized
	w      core.Vec3 // n/Dot(n,n) where n = Cross(EdgeU, EdgeV); projects a plane point onto edge coordinates
	dNorm  float64   // Dot(normal, Origin), plane constant
	bbox   core.AABB
}

// NewRectangle creates a new rectangle.
func NewRectangle(origin, edgeU, edgeV core.Vec3, material core.Material) *Rectangle {
	r := &Rectangle{Origin: origin, EdgeU: edgeU, EdgeV: edgeV, Material: material}

	n := edgeU.Cross(edgeV)
	area2 := n.Dot(n)
	r.normal = n.Normalize()
	r.dNorm = r.normal.Dot(origin)
	if area2 != 0 {
		r.w = n.Multiply(1.0 / area2)
	}

	corners := [4]core.Vec3{origin, origin.Add(edgeU), origin.Add(edgeV), origin.Add(edgeU).Add(edgeV)}
	r.bbox = core.NewAABBFromPoints(corners[0], corners[1], corners[2], corners[3])
	return r
}

// Hit intersects the rectangle's plane, then checks both edge coordinates
// lie in [0,1].
func (r *Rectangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	denom := r.normal.Dot(ray.Direction)
	if denom == 0 {
		return nil, false
	}

	t := (r.dNorm - r.normal.Dot(ray.Origin)) / denom
	if t <= tMin || t >= tMax {
		return nil, false
	}

	p := ray.At(t)
	hp := p.Subtract(r.Origin)

	alpha := r.w.Dot(hp.Cross(r.EdgeV))
	beta := r.w.Dot(r.EdgeU.Cross(hp))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	rec := &core.HitRecord{T: t, Point: p, UV: core.NewVec2(alpha, beta), Material: r.Material}
	rec.SetFaceNormal(ray, r.normal)
	return rec, true
}

// IsHit is a shadow-ray predicate.
func (r *Rectangle) IsHit(ray core.Ray, tMin, tMax float64) bool {
	_, ok := r.Hit(ray, tMin, tMax)
	return ok
}

// BoundingBox returns the box of the rectangle's four corners. It is not
// padded, so an axis-aligned rectangle has a zero-thickness box.
func (r *Rectangle) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return r.bbox, true
}
