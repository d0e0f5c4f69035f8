package material

import (
	"github.com/jmallory/go-tiled-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo Texture // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with a texture
func NewTexturedLambertian(albedo Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Cosine-weighted random direction in the hemisphere around the normal.
	// The cosine term of the rendering equation cancels against this sampling
	// density, so the attenuation is the plain albedo.
	scatterDirection := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())

	// Degenerate directions would produce NaNs downstream
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	scattered := core.NewRayAt(hit.Point, scatterDirection, rayIn.Time)
	attenuation := l.Albedo.Evaluate(hit.UV, hit.Point)

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: attenuation,
	}, true
}
