package shapes

import (
	"math"

	"github.com/df07/go-bvh-tracer/pkg/core"
)

// Sphere is a sphere primitive satisfying the core.Hitable contract.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere. A zero (or negative) radius is accepted
// silently; Hit on it always reports no intersection.
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: material}
}

// Hit solves the ray-sphere quadratic and accepts the first root in
// (tMin, tMax), falling back to the second root.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if s.Radius <= 0 {
		return nil, false
	}
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	outwardNormal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)

	theta := math.Acos(-outwardNormal.Y)
	phi := math.Atan2(-outwardNormal.Z, outwardNormal.X) + math.Pi
	uv := core.NewVec2(phi/(2.0*math.Pi), theta/math.Pi)

	rec := &core.HitRecord{T: root, Point: point, Material: s.Material, UV: uv}
	rec.SetFaceNormal(ray, outwardNormal)
	return rec, true
}

// IsHit is a shadow-ray predicate.
func (s *Sphere) IsHit(ray core.Ray, tMin, tMax float64) bool {
	_, ok := s.Hit(ray, tMin, tMax)
	return ok
}

// BoundingBox returns the sphere's box; spheres are static within the
// shutter interval.
func (s *Sphere) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r)), true
}
