package shapes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-bvh-tracer/pkg/core"
)

// TestSphereCenterHit checks a unit sphere at the origin, hit along -Z.
func TestSphereCenterHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, nil)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	rec, ok := sphere.Hit(ray, 0, math.Inf(1))
	require.True(t, ok)
	assert.InDelta(t, 4.0, rec.T, 1e-9)
	assert.True(t, core.NewVec3(0, 0, -1).Equals(rec.Point))
	assert.True(t, core.NewVec3(0, 0, -1).Equals(rec.Normal))
}

func TestSphereMiss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(10, 10, 10), 1, nil)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	_, ok := sphere.Hit(ray, 0, math.Inf(1))
	assert.False(t, ok)
}

func TestSphereDegenerateRadius(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	_, ok := sphere.Hit(ray, 0, math.Inf(1))
	assert.False(t, ok, "a zero-radius sphere is accepted silently and simply never hit")
}

func TestTriangleHitAndMiss(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0), nil,
	)

	center := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	rec, ok := tri.Hit(center, 0, math.Inf(1))
	require.True(t, ok)
	assert.InDelta(t, 5.0, rec.T, 1e-9)

	outside := core.NewRay(core.NewVec3(5, 5, -5), core.NewVec3(0, 0, 1))
	_, ok = tri.Hit(outside, 0, math.Inf(1))
	assert.False(t, ok)
}

func TestTriangleDegenerateZeroArea(t *testing.T) {
	tri := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), nil)
	ray := core.NewRay(core.NewVec3(0.5, 1, 0), core.NewVec3(0, -1, 0))
	_, ok := tri.Hit(ray, 0, math.Inf(1))
	assert.False(t, ok, "a collinear (zero-area) triangle is accepted silently and never hit")
}

func TestTriangleSmoothNormalInterpolation(t *testing.T) {
	na := core.NewVec3(0, 0, 1)
	nb := core.NewVec3(0, 0, 1)
	nc := core.NewVec3(0, 0, 1)
	tri := NewTriangleSmooth(
		core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0),
		na, nb, nc, nil,
	)
	ray := core.NewRay(core.NewVec3(0, -0.5, -5), core.NewVec3(0, 0, 1))
	rec, ok := tri.Hit(ray, 0, math.Inf(1))
	require.True(t, ok)
	// The ray arrives from -Z, against the interpolated (0, 0, 1) normal,
	// so SetFaceNormal flips it to face the ray.
	assert.True(t, core.NewVec3(0, 0, -1).Equals(rec.Normal))
}

// TestRectangleUnitCubeFace checks an axis-aligned unit cube built from
// six rectangles, hit on the z=0 face.
func TestRectangleUnitCubeFace(t *testing.T) {
	zFace := NewRectangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)
	ray := core.NewRay(core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, 1))

	rec, ok := zFace.Hit(ray, 0, math.Inf(1))
	require.True(t, ok)
	assert.InDelta(t, 1.0, rec.T, 1e-9)
}

func TestRectangleOutsideEdges(t *testing.T) {
	face := NewRectangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)
	ray := core.NewRay(core.NewVec3(2, 2, -1), core.NewVec3(0, 0, 1))
	_, ok := face.Hit(ray, 0, math.Inf(1))
	assert.False(t, ok)
}

func TestRectangleCollinearEdgesNeverHit(t *testing.T) {
	face := NewRectangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), nil)
	ray := core.NewRay(core.NewVec3(0.5, 1, -1), core.NewVec3(0, 0, 1))
	_, ok := face.Hit(ray, 0, math.Inf(1))
	assert.False(t, ok)
}
