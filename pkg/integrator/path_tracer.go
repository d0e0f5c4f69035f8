package integrator

import (
	"math"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
	"github.com/jmallory/go-tiled-raytracer/pkg/material"
)

// Scene is the world as the integrator sees it: something rays can hit, with
// a background for rays that escape
type Scene interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	Background(ray core.Ray) core.Vec3
}

// Epsilon offset for secondary rays, avoids self-intersection at the origin
const tMinEpsilon = 0.001

// PathTracer estimates radiance along camera rays by repeated intersection
// and material scattering
type PathTracer struct {
	MaxDepth int // Maximum number of scattering events per path
}

// NewPathTracer creates a path tracer with the given bounce limit
func NewPathTracer(maxDepth int) *PathTracer {
	return &PathTracer{MaxDepth: maxDepth}
}

// RayColor computes the radiance estimate for a single ray.
//
// The recursion of the estimator is expressed as a loop with a running
// throughput accumulator, so stack usage stays constant no matter how large
// MaxDepth is. Each iteration adds the emitted light of the hit surface
// weighted by the throughput so far, then folds the scatter attenuation into
// the throughput and continues with the scattered ray. A ray that escapes the
// scene picks up the background; an absorbed ray ends the path.
//
// MaxDepth counts scattering events: with MaxDepth=0 only direct emission and
// background are visible, with MaxDepth=1 one bounce is traced, and so on.
func (pt *PathTracer) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	result := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)
	current := ray

	for bounces := 0; ; bounces++ {
		hit, isHit := scene.Hit(current, tMinEpsilon, math.Inf(1))
		if !isHit {
			result = result.Add(throughput.MultiplyVec(scene.Background(current)))
			break
		}

		result = result.Add(throughput.MultiplyVec(hit.EmittedLight()))

		if bounces >= pt.MaxDepth {
			break
		}

		scatter, didScatter := hit.Material.Scatter(current, *hit, sampler)
		if !didScatter {
			break // Absorbed
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		current = scatter.Scattered
	}

	return result
}
