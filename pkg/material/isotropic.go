package material

import (
	"github.com/jmallory/go-tiled-raytracer/pkg/core"
)

// Isotropic scatters uniformly in all directions, used inside constant-density media
type Isotropic struct {
	Albedo Texture
}

// NewIsotropic creates a new isotropic material with solid color
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// NewTexturedIsotropic creates a new isotropic material with a texture
func NewTexturedIsotropic(albedo Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter implements the Material interface for isotropic scattering
func (i *Isotropic) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	direction := core.SampleOnUnitSphere(sampler.Get2D())
	scattered := core.NewRayAt(hit.Point, direction, rayIn.Time)

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: i.Albedo.Evaluate(hit.UV, hit.Point),
	}, true
}
