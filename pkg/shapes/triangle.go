// Package shapes implements the leaf-geometry intersectors the BVH and
// OBVH terminate against: triangles, spheres, and axis-oriented
// rectangles. Each satisfies core.Hitable.
package shapes

import (
	"github.com/df07/go-bvh-tracer/pkg/core"
)

// Triangle is a single triangle with optional per-vertex normals for
// Phong/Gouraud shading. Barycentric rejection uses three per-vertex
// "distance to opposite edge" planes precomputed at construction so Hit
// evaluates branch-free once the ray-plane intersection is found.
type Triangle struct {
	A, B, C    core.Vec3
	NA, NB, NC *core.Vec3 // optional per-vertex normals; nil means flat-shaded
	Material   core.Material

	normal   core.Vec3 // unnormalized geometric normal, Cross(B-A, C-A)
	unitNorm core.Vec3
	denom    float64   // Dot(normal, normal) == (2*area)^2, squared-length scale
	edgeA    core.Vec3 // barycentric gradient for vertex A, opposite edge BC
	edgeB    core.Vec3 // opposite edge CA
	edgeC    core.Vec3 // opposite edge AB
	bbox     core.AABB
}

// NewTriangle creates a flat-shaded triangle.
func NewTriangle(a, b, c core.Vec3, material core.Material) *Triangle {
	return newTriangle(a, b, c, nil, nil, nil, material)
}

// NewTriangleSmooth creates a triangle with per-vertex normals; Hit
// interpolates them via the barycentric weights when all three are
// available.
func NewTriangleSmooth(a, b, c, na, nb, nc core.Vec3, material core.Material) *Triangle {
	return newTriangle(a, b, c, &na, &nb, &nc, material)
}

func newTriangle(a, b, c core.Vec3, na, nb, nc *core.Vec3, material core.Material) *Triangle {
	t := &Triangle{A: a, B: b, C: c, NA: na, NB: nb, NC: nc, Material: material}

	t.normal = b.Subtract(a).Cross(c.Subtract(a))
	t.unitNorm = t.normal.Normalize()
	t.denom = t.normal.Dot(t.normal)

	t.edgeA = t.normal.Cross(c.Subtract(b))
	t.edgeB = t.normal.Cross(a.Subtract(c))
	t.edgeC = t.normal.Cross(b.Subtract(a))

	t.bbox = core.NewAABBFromPoints(a, b, c)
	return t
}

// Hit implements core.Hitable. Degenerate (zero-area) triangles have
// denom == 0 and are accepted silently by the constructor; Hit on them
// always reports no intersection because the plane-intersection
// denominator check or the degenerate barycentric weights reject first.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	denomRay := t.normal.Dot(ray.Direction)
	if denomRay == 0 {
		return nil, false
	}

	tHit := t.normal.Dot(t.A.Subtract(ray.Origin)) / denomRay
	if tHit <= tMin || tHit >= tMax {
		return nil, false
	}

	p := ray.At(tHit)

	if t.denom == 0 {
		return nil, false
	}

	u := t.edgeA.Dot(p.Subtract(t.B)) / t.denom
	v := t.edgeB.Dot(p.Subtract(t.C)) / t.denom
	w := t.edgeC.Dot(p.Subtract(t.A)) / t.denom

	if u < 0 || v < 0 || w < 0 {
		return nil, false
	}

	outwardNormal := t.unitNorm
	if t.NA != nil && t.NB != nil && t.NC != nil {
		outwardNormal = t.NA.Multiply(u).Add(t.NB.Multiply(v)).Add(t.NC.Multiply(w)).Normalize()
	}

	rec := &core.HitRecord{
		T:        tHit,
		Point:    p,
		UV:       core.NewVec2(v, w),
		Material: t.Material,
	}
	rec.SetFaceNormal(ray, outwardNormal)
	return rec, true
}

// IsHit is a shadow-ray predicate; for a single leaf primitive this is
// just Hit discarding the record.
func (t *Triangle) IsHit(ray core.Ray, tMin, tMax float64) bool {
	_, ok := t.Hit(ray, tMin, tMax)
	return ok
}

// BoundingBox returns the (static) bounding box; triangles don't move
// within the shutter interval.
func (t *Triangle) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return t.bbox, true
}
