package core

// Affine is a 3x3 linear map plus a translation, i.e. a row-major affine
// transform applied as `M*v + T`. It is the minimal collaborator the
// acceleration structure needs from scene construction: just enough to
// compute a tight world-space AABB for a transformed instance.
type Affine struct {
	M [3][3]float64
	T Vec3
}

// Identity returns the identity affine transform.
func Identity() Affine {
	return Affine{M: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Translation returns a pure translation transform.
func Translation(t Vec3) Affine {
	a := Identity()
	a.T = t
	return a
}

// Scale returns a pure axis-aligned scale transform.
func Scale(s Vec3) Affine {
	return Affine{M: [3][3]float64{{s.X, 0, 0}, {0, s.Y, 0}, {0, 0, s.Z}}}
}

// Apply transforms a point by the affine map.
func (a Affine) Apply(p Vec3) Vec3 {
	return Vec3{
		X: a.M[0][0]*p.X + a.M[0][1]*p.Y + a.M[0][2]*p.Z + a.T.X,
		Y: a.M[1][0]*p.X + a.M[1][1]*p.Y + a.M[1][2]*p.Z + a.T.Y,
		Z: a.M[2][0]*p.X + a.M[2][1]*p.Y + a.M[2][2]*p.Z + a.T.Z,
	}
}

// ApplyVector transforms a direction vector (no translation).
func (a Affine) ApplyVector(v Vec3) Vec3 {
	return Vec3{
		X: a.M[0][0]*v.X + a.M[0][1]*v.Y + a.M[0][2]*v.Z,
		Y: a.M[1][0]*v.X + a.M[1][1]*v.Y + a.M[1][2]*v.Z,
		Z: a.M[2][0]*v.X + a.M[2][1]*v.Y + a.M[2][2]*v.Z,
	}
}

// Inverse returns the inverse of the affine transform, assuming M is
// invertible. Used by boundary test 8 (Aabb round-trip through a transform
// and its inverse).
func (a Affine) Inverse() Affine {
	m := a.M
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])

	invDet := 1.0 / det
	var inv [3][3]float64
	inv[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * invDet
	inv[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * invDet
	inv[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * invDet
	inv[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * invDet
	inv[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * invDet
	inv[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * invDet
	inv[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * invDet
	inv[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * invDet
	inv[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * invDet

	inverse := Affine{M: inv}
	inverse.T = inverse.ApplyVector(a.T.Negate())
	return inverse
}
