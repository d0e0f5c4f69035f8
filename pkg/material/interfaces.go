package material

import (
	"github.com/jmallory/go-tiled-raytracer/pkg/core"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter returns the attenuated, scattered ray for an incoming ray at a
	// hit point. Returning false means the ray was absorbed and the path ends.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emit(uv core.Vec2, point core.Vec3) core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection, flipped to oppose the ray
	T         float64   // Parameter t along the ray
	UV        core.Vec2 // Surface coordinates at the intersection
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// EmittedLight returns the emitted color at a hit, zero for non-emissive materials
func (h *HitRecord) EmittedLight() core.Vec3 {
	if emitter, isEmissive := h.Material.(Emitter); isEmissive {
		return emitter.Emit(h.UV, h.Point)
	}
	return core.Vec3{}
}
