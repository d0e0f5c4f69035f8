package geometry

import (
	"math"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
	"github.com/jmallory/go-tiled-raytracer/pkg/material"
)

// ConstantMedium is a volume of constant density bounded by another shape.
// A ray passing through it scatters at an exponentially distributed free-flight
// distance; if that distance exceeds the geometric extent the ray passes
// through to the boundary instead.
//
// The free-flight sample is derived deterministically from the ray itself, so
// Hit stays a pure function of (ray, interval). This keeps BVH traversal and
// brute-force scans in exact agreement and keeps renders reproducible no
// matter which worker, tile or traversal order tests the medium.
type ConstantMedium struct {
	Boundary Shape
	Phase    material.Material
	Density  float64

	negInvDensity float64
}

// NewConstantMedium creates a constant-density medium with an isotropic phase
// function of the given albedo
func NewConstantMedium(boundary Shape, density float64, albedo core.Vec3) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		Phase:         material.NewIsotropic(albedo),
		Density:       density,
		negInvDensity: -1.0 / density,
	}
}

// NewTexturedConstantMedium creates a constant-density medium with a textured
// isotropic phase function
func NewTexturedConstantMedium(boundary Shape, density float64, albedo material.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		Phase:         material.NewTexturedIsotropic(albedo),
		Density:       density,
		negInvDensity: -1.0 / density,
	}
}

// Hit samples a scattering event inside the boundary. The boundary must be
// convex: the ray is assumed to enter and leave it at most once.
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if m.Density <= 0 {
		return nil, false
	}

	// Entry point, searched from anywhere along the ray so that rays starting
	// inside the medium are handled too
	hit1, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1))
	if !ok {
		return nil, false
	}

	// Exit point, strictly after the entry
	hit2, ok := m.Boundary.Hit(ray, hit1.T+1e-4, math.Inf(1))
	if !ok {
		return nil, false
	}

	t1 := math.Max(hit1.T, tMin)
	t2 := math.Min(hit2.T, tMax)
	if t1 >= t2 {
		return nil, false
	}
	if t1 < 0 {
		t1 = 0
	}

	rayLength := ray.Direction.Length()
	if rayLength == 0 {
		return nil, false
	}
	distanceInsideBoundary := (t2 - t1) * rayLength

	// Exponential free-flight distance with mean 1/density
	hitDistance := m.negInvDensity * math.Log(rayUniform(ray))
	if hitDistance > distanceInsideBoundary {
		return nil, false // Passed through to the far boundary
	}

	t := t1 + hitDistance/rayLength
	hit := &material.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // Arbitrary: scattering is isotropic
		FrontFace: true,
		Material:  m.Phase,
	}

	return hit, true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox(time0, time1 float64) core.AABB {
	return m.Boundary.BoundingBox(time0, time1)
}

// rayUniform maps a ray deterministically to a uniform value in (0, 1].
// The bit mixing follows splitmix64.
func rayUniform(ray core.Ray) float64 {
	h := mix64(math.Float64bits(ray.Origin.X))
	h = mix64(h ^ math.Float64bits(ray.Origin.Y))
	h = mix64(h ^ math.Float64bits(ray.Origin.Z))
	h = mix64(h ^ math.Float64bits(ray.Direction.X))
	h = mix64(h ^ math.Float64bits(ray.Direction.Y))
	h = mix64(h ^ math.Float64bits(ray.Direction.Z))
	h = mix64(h ^ math.Float64bits(ray.Time))

	// 53 high bits to a float in [0, 1), then flip to (0, 1] so Log is finite
	u := float64(h>>11) / float64(1<<53)
	return 1.0 - u
}

func mix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
