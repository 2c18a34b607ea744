package core

// HitRecord is the minimal intersection descriptor returned by Hit: the
// parametric distance along the ray, the world-space point, the surface
// UV, the unit surface normal, whether the ray hit the front face, and a
// non-owning reference to the hit primitive's material. A HitRecord never
// outlives the scene it was produced from — the Material reference is
// borrowed, not copied.
type HitRecord struct {
	T         float64
	Point     Vec3
	UV        Vec2
	Normal    Vec3
	FrontFace bool
	Material  Material
}

// SetFaceNormal orients Normal against the ray direction and records
// whether the ray arrived from the outward side.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
