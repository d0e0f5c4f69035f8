package geometry

import (
	"math"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
	"github.com/jmallory/go-tiled-raytracer/pkg/material"
)

// Translate wraps a shape and moves it by a fixed displacement. The ray is
// shifted into the object's local frame instead of moving the geometry.
type Translate struct {
	Shape        Shape
	Displacement core.Vec3
}

// NewTranslate creates a translated instance of a shape
func NewTranslate(shape Shape, displacement core.Vec3) *Translate {
	return &Translate{Shape: shape, Displacement: displacement}
}

// Hit tests the offset ray against the wrapped shape
func (tr *Translate) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	offsetRay := core.NewRayAt(ray.Origin.Subtract(tr.Displacement), ray.Direction, ray.Time)

	hit, isHit := tr.Shape.Hit(offsetRay, tMin, tMax)
	if !isHit {
		return nil, false
	}

	hit.Point = hit.Point.Add(tr.Displacement)
	return hit, true
}

// BoundingBox returns the wrapped shape's box shifted by the displacement
func (tr *Translate) BoundingBox(time0, time1 float64) core.AABB {
	box := tr.Shape.BoundingBox(time0, time1)
	return core.NewAABB(
		box.Min.Add(tr.Displacement),
		box.Max.Add(tr.Displacement),
	)
}

// RotateY wraps a shape and rotates it about the Y axis by a fixed angle
type RotateY struct {
	Shape    Shape
	sinTheta float64
	cosTheta float64
}

// NewRotateY creates a rotated instance of a shape; angle is in degrees
func NewRotateY(shape Shape, angleDegrees float64) *RotateY {
	radians := angleDegrees * math.Pi / 180.0
	return &RotateY{
		Shape:    shape,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}
}

// rotate applies the rotation to a vector; dir=-1 gives the inverse rotation
func (ry *RotateY) rotate(v core.Vec3, dir float64) core.Vec3 {
	sin := ry.sinTheta * dir
	return core.NewVec3(
		ry.cosTheta*v.X-sin*v.Z,
		v.Y,
		sin*v.X+ry.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space, tests the wrapped shape and rotates
// the hit back into world space
func (ry *RotateY) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	localRay := core.NewRayAt(
		ry.rotate(ray.Origin, -1),
		ry.rotate(ray.Direction, -1),
		ray.Time,
	)

	hit, isHit := ry.Shape.Hit(localRay, tMin, tMax)
	if !isHit {
		return nil, false
	}

	hit.Point = ry.rotate(hit.Point, 1)
	hit.Normal = ry.rotate(hit.Normal, 1)
	return hit, true
}

// BoundingBox returns the box of the rotated extent: all eight corners of the
// wrapped box are rotated and re-bounded
func (ry *RotateY) BoundingBox(time0, time1 float64) core.AABB {
	box := ry.Shape.BoundingBox(time0, time1)

	corners := make([]core.Vec3, 0, 8)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				corner := core.NewVec3(
					float64(i)*box.Max.X+float64(1-i)*box.Min.X,
					float64(j)*box.Max.Y+float64(1-j)*box.Min.Y,
					float64(k)*box.Max.Z+float64(1-k)*box.Min.Z,
				)
				corners = append(corners, ry.rotate(corner, 1))
			}
		}
	}

	return core.NewAABBFromPoints(corners...)
}
