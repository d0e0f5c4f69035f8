package geometry

import (
	"github.com/jmallory/go-tiled-raytracer/pkg/core"
	"github.com/jmallory/go-tiled-raytracer/pkg/material"
)

// Box is an axis-aligned box built from six rectangles
type Box struct {
	MinPoint core.Vec3
	MaxPoint core.Vec3
	sides    *ShapeList
}

// NewBox creates a new box from two opposite corners
func NewBox(minPoint, maxPoint core.Vec3, mat material.Material) *Box {
	sides := NewShapeList(
		NewXYRect(minPoint.X, maxPoint.X, minPoint.Y, maxPoint.Y, maxPoint.Z, mat),
		NewXYRect(minPoint.X, maxPoint.X, minPoint.Y, maxPoint.Y, minPoint.Z, mat),
		NewXZRect(minPoint.X, maxPoint.X, minPoint.Z, maxPoint.Z, maxPoint.Y, mat),
		NewXZRect(minPoint.X, maxPoint.X, minPoint.Z, maxPoint.Z, minPoint.Y, mat),
		NewYZRect(minPoint.Y, maxPoint.Y, minPoint.Z, maxPoint.Z, maxPoint.X, mat),
		NewYZRect(minPoint.Y, maxPoint.Y, minPoint.Z, maxPoint.Z, minPoint.X, mat),
	)

	return &Box{
		MinPoint: minPoint,
		MaxPoint: maxPoint,
		sides:    sides,
	}
}

// Hit tests the ray against the six sides
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return b.sides.Hit(ray, tMin, tMax)
}

// BoundingBox returns the box's own extent
func (b *Box) BoundingBox(time0, time1 float64) core.AABB {
	return core.NewAABB(b.MinPoint, b.MaxPoint)
}
