package renderer

import (
	"math"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
)

// CameraConfig holds the user-facing camera parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // World up direction
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter, 0 for a pinhole camera
	FocusDistance float64   // Distance to the focal plane, 0 means distance to LookAt
	ShutterOpen   float64   // Shutter open time
	ShutterClose  float64   // Shutter close time, 0 means same as open
}

// DefaultCameraConfig returns a sensible default camera setup
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 1, 4),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 16.0 / 9.0,
	}
}

// Camera generates primary rays for image plane coordinates. It models a thin
// lens for depth of field and an open shutter interval for motion blur.
type Camera struct {
	center          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	shutterOpen     float64
	shutterClose    float64
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}
	shutterClose := config.ShutterClose
	if shutterClose < config.ShutterOpen {
		shutterClose = config.ShutterOpen
	}

	theta := config.VFov * math.Pi / 180.0
	halfHeight := math.Tan(theta / 2)
	viewportHeight := 2.0 * halfHeight
	viewportWidth := config.AspectRatio * viewportHeight

	// Right-handed basis: w points away from the view direction
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		center:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		shutterOpen:     config.ShutterOpen,
		shutterClose:    shutterClose,
	}
}

// GetRay returns the ray through image plane coordinates (s, t), both in
// [0, 1] with (0, 0) at the lower left. With a nonzero aperture the ray
// origin is jittered on the lens disk so points off the focal plane blur;
// the ray time is drawn uniformly from the shutter interval.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.center
	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	time := c.shutterOpen
	if c.shutterClose > c.shutterOpen {
		time += sampler.Get1D() * (c.shutterClose - c.shutterOpen)
	}

	return core.NewRayAt(origin, direction, time)
}

// ShutterInterval returns the camera's shutter open and close times
func (c *Camera) ShutterInterval() (float64, float64) {
	return c.shutterOpen, c.shutterClose
}
