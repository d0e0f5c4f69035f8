package material

import (
	"math"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
)

// Texture provides spatially-varying colors for materials.
// Implementations are pure functions of (uv, point) and are safe for
// concurrent use once constructed.
type Texture interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checker alternates between two sub-textures by the spatial parity of the
// hit point
type Checker struct {
	Scale float64
	Even  Texture
	Odd   Texture
}

// NewChecker creates a checker texture from two sub-textures
func NewChecker(scale float64, even, odd Texture) *Checker {
	return &Checker{Scale: scale, Even: even, Odd: odd}
}

// NewCheckerColors creates a checker texture from two solid colors
func NewCheckerColors(scale float64, even, odd core.Vec3) *Checker {
	return NewChecker(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Evaluate selects the even or odd texture based on the sign of the product
// of sines of the scaled point coordinates
func (c *Checker) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	sines := math.Sin(c.Scale*point.X) * math.Sin(c.Scale*point.Y) * math.Sin(c.Scale*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}
