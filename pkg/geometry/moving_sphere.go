package geometry

import (
	"github.com/jmallory/go-tiled-raytracer/pkg/core"
	"github.com/jmallory/go-tiled-raytracer/pkg/material"
)

// MovingSphere is a sphere whose center moves linearly from CenterStart at
// TimeStart to CenterEnd at TimeEnd. Movement continues outside those times;
// the two keyframes just define position and velocity.
type MovingSphere struct {
	CenterStart core.Vec3
	CenterEnd   core.Vec3
	TimeStart   float64
	TimeEnd     float64
	Radius      float64
	Material    material.Material
}

// NewMovingSphere creates a new moving sphere
func NewMovingSphere(centerStart, centerEnd core.Vec3, timeStart, timeEnd, radius float64, mat material.Material) *MovingSphere {
	return &MovingSphere{
		CenterStart: centerStart,
		CenterEnd:   centerEnd,
		TimeStart:   timeStart,
		TimeEnd:     timeEnd,
		Radius:      radius,
		Material:    mat,
	}
}

// Center returns the interpolated center at the given time
func (s *MovingSphere) Center(time float64) core.Vec3 {
	if s.TimeEnd == s.TimeStart {
		return s.CenterStart
	}
	t := (time - s.TimeStart) / (s.TimeEnd - s.TimeStart)
	return s.CenterStart.Add(s.CenterEnd.Subtract(s.CenterStart).Multiply(t))
}

// Hit tests if a ray intersects with the sphere at the ray's time
func (s *MovingSphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if s.Radius <= 0 {
		return nil, false
	}

	center := s.Center(ray.Time)
	root, ok := sphereIntersect(ray, center, s.Radius, tMin, tMax)
	if !ok {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hit.Point.Subtract(center).Multiply(1.0 / s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)
	hit.UV = SphereUV(outwardNormal)

	return hit, true
}

// BoundingBox returns a box covering the sphere's positions over the whole
// time interval. Linear motion keeps the swept volume inside the union of the
// two endpoint boxes.
func (s *MovingSphere) BoundingBox(time0, time1 float64) core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	startBox := core.NewAABB(
		s.Center(time0).Subtract(radius),
		s.Center(time0).Add(radius),
	)
	endBox := core.NewAABB(
		s.Center(time1).Subtract(radius),
		s.Center(time1).Add(radius),
	)
	return startBox.Union(endBox)
}
