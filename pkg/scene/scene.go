package scene

import (
	"fmt"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
	"github.com/jmallory/go-tiled-raytracer/pkg/geometry"
	"github.com/jmallory/go-tiled-raytracer/pkg/renderer"
)

// Scene bundles geometry, a background and a camera configuration. Call
// Preprocess once after assembling the shapes to build the acceleration
// structure; the scene is read-only from then on.
type Scene struct {
	Shapes       []geometry.Shape
	Camera       renderer.CameraConfig
	BackgroundFn func(core.Ray) core.Vec3

	bvh *geometry.BVH
}

// Preprocess builds the acceleration structure over the camera's shutter
// interval, so moving shapes are bounded across their whole motion
func (s *Scene) Preprocess() error {
	if len(s.Shapes) == 0 {
		return fmt.Errorf("scene has no shapes")
	}
	if s.BackgroundFn == nil {
		return fmt.Errorf("scene has no background")
	}

	// The camera normalizes the shutter interval, so bound motion over the
	// same interval the camera will actually sample
	shutterOpen, shutterClose := renderer.NewCamera(s.Camera).ShutterInterval()
	s.bvh = geometry.NewBVH(s.Shapes, shutterOpen, shutterClose)
	return nil
}

// Root returns the acceleration structure; Preprocess must have been called
func (s *Scene) Root() *geometry.BVH {
	return s.bvh
}

// Background evaluates the background color for an escaping ray
func (s *Scene) Background(ray core.Ray) core.Vec3 {
	return s.BackgroundFn(ray)
}

// CameraConfig returns the scene's camera setup
func (s *Scene) CameraConfig() renderer.CameraConfig {
	return s.Camera
}

// GradientBackground returns a background that blends from bottom to top
// based on the ray direction's vertical component
func GradientBackground(bottom, top core.Vec3) func(core.Ray) core.Vec3 {
	return func(ray core.Ray) core.Vec3 {
		unit := ray.Direction.Normalize()
		t := 0.5 * (unit.Y + 1.0)
		return bottom.Lerp(top, t)
	}
}

// SolidBackground returns a constant background color
func SolidBackground(c core.Vec3) func(core.Ray) core.Vec3 {
	return func(core.Ray) core.Vec3 {
		return c
	}
}
