package material

import (
	"github.com/jmallory/go-tiled-raytracer/pkg/core"
)

// DiffuseLight is an emissive material that absorbs incoming rays and
// contributes its emission texture to the path
type DiffuseLight struct {
	Emission Texture
}

// NewDiffuseLight creates a new diffuse light with solid emission color
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emission: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a new diffuse light with an emission texture
func NewTexturedDiffuseLight(emission Texture) *DiffuseLight {
	return &DiffuseLight{Emission: emission}
}

// Scatter implements the Material interface; lights never scatter
func (d *DiffuseLight) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emit implements the Emitter interface
func (d *DiffuseLight) Emit(uv core.Vec2, point core.Vec3) core.Vec3 {
	return d.Emission.Evaluate(uv, point)
}
