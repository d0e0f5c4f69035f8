package geometry

import (
	"github.com/jmallory/go-tiled-raytracer/pkg/core"
	"github.com/jmallory/go-tiled-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit must behave as a pure function of the ray and interval so that results
// do not depend on traversal order; stochastic shapes derive their randomness
// from the ray itself.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BoundingBox(time0, time1 float64) core.AABB
}

// ShapeList tests a ray against every shape in order, keeping the closest hit
type ShapeList struct {
	Shapes []Shape
}

// NewShapeList creates a shape list from the given shapes
func NewShapeList(shapes ...Shape) *ShapeList {
	return &ShapeList{Shapes: shapes}
}

// Add appends a shape to the list
func (l *ShapeList) Add(shape Shape) {
	l.Shapes = append(l.Shapes, shape)
}

// Hit tests the ray against all shapes with a linear scan
func (l *ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// BoundingBox returns the union of all contained bounding boxes
func (l *ShapeList) BoundingBox(time0, time1 float64) core.AABB {
	if len(l.Shapes) == 0 {
		return core.AABB{}
	}

	box := l.Shapes[0].BoundingBox(time0, time1)
	for _, shape := range l.Shapes[1:] {
		box = box.Union(shape.BoundingBox(time0, time1))
	}
	return box
}
