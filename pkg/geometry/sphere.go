package geometry

import (
	"math"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
	"github.com/jmallory/go-tiled-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	// Zero-radius spheres never intersect
	if s.Radius <= 0 {
		return nil, false
	}

	root, ok := sphereIntersect(ray, s.Center, s.Radius, tMin, tMax)
	if !ok {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Outward normal points from center to hit point
	outwardNormal := hit.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)
	hit.UV = SphereUV(outwardNormal)

	return hit, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox(time0, time1 float64) core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// sphereIntersect solves the quadratic for a ray against a sphere and returns
// the nearest root within [tMin, tMax]
func sphereIntersect(ray core.Ray, center core.Vec3, radius, tMin, tMax float64) (float64, bool) {
	oc := ray.Origin.Subtract(center)

	a := ray.Direction.LengthSquared()
	if a == 0 {
		return 0, false // Degenerate ray direction
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - radius*radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return 0, false
		}
	}

	return root, true
}

// SphereUV maps a point on the unit sphere to (u, v) surface coordinates.
// u wraps around the Y axis from the -X direction, v runs from the south to
// the north pole.
func SphereUV(point core.Vec3) core.Vec2 {
	theta := math.Acos(-point.Y)
	phi := math.Atan2(-point.Z, point.X) + math.Pi

	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
