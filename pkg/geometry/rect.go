package geometry

import (
	"github.com/jmallory/go-tiled-raytracer/pkg/core"
	"github.com/jmallory/go-tiled-raytracer/pkg/material"
)

// Axis-aligned rectangles. Each variant lies in a plane perpendicular to one
// axis; the bounding box is padded along that axis so it has nonzero volume.

// XYRect is an axis-aligned rectangle in the plane z = K
type XYRect struct {
	X0, X1   float64
	Y0, Y1   float64
	K        float64
	Material material.Material
}

// NewXYRect creates a new rectangle in the z = k plane
func NewXYRect(x0, x1, y0, y1, k float64, mat material.Material) *XYRect {
	return &XYRect{X0: x0, X1: x1, Y0: y0, Y1: y1, K: k, Material: mat}
}

// Hit tests if a ray intersects with the rectangle
func (r *XYRect) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if ray.Direction.Z == 0 {
		return nil, false // Ray parallel to the plane
	}
	t := (r.K - ray.Origin.Z) / ray.Direction.Z
	if t < tMin || t > tMax {
		return nil, false
	}

	x := ray.Origin.X + t*ray.Direction.X
	y := ray.Origin.Y + t*ray.Direction.Y
	if x < r.X0 || x > r.X1 || y < r.Y0 || y > r.Y1 {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		UV:       core.NewVec2((x-r.X0)/(r.X1-r.X0), (y-r.Y0)/(r.Y1-r.Y0)),
		Material: r.Material,
	}
	hit.SetFaceNormal(ray, core.NewVec3(0, 0, 1))

	return hit, true
}

// BoundingBox returns the rectangle's bounding box, padded in Z
func (r *XYRect) BoundingBox(time0, time1 float64) core.AABB {
	return core.NewAABB(
		core.NewVec3(r.X0, r.Y0, r.K),
		core.NewVec3(r.X1, r.Y1, r.K),
	).PadThin(1e-4)
}

// XZRect is an axis-aligned rectangle in the plane y = K
type XZRect struct {
	X0, X1   float64
	Z0, Z1   float64
	K        float64
	Material material.Material
}

// NewXZRect creates a new rectangle in the y = k plane
func NewXZRect(x0, x1, z0, z1, k float64, mat material.Material) *XZRect {
	return &XZRect{X0: x0, X1: x1, Z0: z0, Z1: z1, K: k, Material: mat}
}

// Hit tests if a ray intersects with the rectangle
func (r *XZRect) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if ray.Direction.Y == 0 {
		return nil, false
	}
	t := (r.K - ray.Origin.Y) / ray.Direction.Y
	if t < tMin || t > tMax {
		return nil, false
	}

	x := ray.Origin.X + t*ray.Direction.X
	z := ray.Origin.Z + t*ray.Direction.Z
	if x < r.X0 || x > r.X1 || z < r.Z0 || z > r.Z1 {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		UV:       core.NewVec2((x-r.X0)/(r.X1-r.X0), (z-r.Z0)/(r.Z1-r.Z0)),
		Material: r.Material,
	}
	hit.SetFaceNormal(ray, core.NewVec3(0, 1, 0))

	return hit, true
}

// BoundingBox returns the rectangle's bounding box, padded in Y
func (r *XZRect) BoundingBox(time0, time1 float64) core.AABB {
	return core.NewAABB(
		core.NewVec3(r.X0, r.K, r.Z0),
		core.NewVec3(r.X1, r.K, r.Z1),
	).PadThin(1e-4)
}

// YZRect is an axis-aligned rectangle in the plane x = K
type YZRect struct {
	Y0, Y1   float64
	Z0, Z1   float64
	K        float64
	Material material.Material
}

// NewYZRect creates a new rectangle in the x = k plane
func NewYZRect(y0, y1, z0, z1, k float64, mat material.Material) *YZRect {
	return &YZRect{Y0: y0, Y1: y1, Z0: z0, Z1: z1, K: k, Material: mat}
}

// Hit tests if a ray intersects with the rectangle
func (r *YZRect) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if ray.Direction.X == 0 {
		return nil, false
	}
	t := (r.K - ray.Origin.X) / ray.Direction.X
	if t < tMin || t > tMax {
		return nil, false
	}

	y := ray.Origin.Y + t*ray.Direction.Y
	z := ray.Origin.Z + t*ray.Direction.Z
	if y < r.Y0 || y > r.Y1 || z < r.Z0 || z > r.Z1 {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		UV:       core.NewVec2((y-r.Y0)/(r.Y1-r.Y0), (z-r.Z0)/(r.Z1-r.Z0)),
		Material: r.Material,
	}
	hit.SetFaceNormal(ray, core.NewVec3(1, 0, 0))

	return hit, true
}

// BoundingBox returns the rectangle's bounding box, padded in X
func (r *YZRect) BoundingBox(time0, time1 float64) core.AABB {
	return core.NewAABB(
		core.NewVec3(r.K, r.Y0, r.Z0),
		core.NewVec3(r.K, r.Y1, r.Z1),
	).PadThin(1e-4)
}
