package renderer

import (
	"image"
	"image/color"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
)

// Framebuffer accumulates linear pixel colors in row-major order. Workers own
// disjoint tiles, so concurrent SetPixel calls never touch the same index and
// no locking is needed.
type Framebuffer struct {
	Width  int
	Height int
	pixels []core.Vec3
}

// NewFramebuffer creates a zeroed framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// SetPixel stores a linear color at (x, y), with (0, 0) the top-left pixel
func (fb *Framebuffer) SetPixel(x, y int, c core.Vec3) {
	fb.pixels[y*fb.Width+x] = c
}

// Pixel returns the linear color at (x, y)
func (fb *Framebuffer) Pixel(x, y int) core.Vec3 {
	return fb.pixels[y*fb.Width+x]
}

// CorrectedPixel returns the color at (x, y) with the given gamma applied,
// clamped to [0, 1]
func (fb *Framebuffer) CorrectedPixel(x, y int, gamma float64) core.Vec3 {
	return fb.Pixel(x, y).GammaCorrect(gamma).Clamp(0, 1)
}

// AverageLuminance returns the mean luminance of the linear pixel values
func (fb *Framebuffer) AverageLuminance() float64 {
	if len(fb.pixels) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range fb.pixels {
		sum += p.Luminance()
	}
	return sum / float64(len(fb.pixels))
}

// ToImage converts the framebuffer to an 8-bit RGBA image, applying the given
// gamma to the linear pixel values
func (fb *Framebuffer) ToImage(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.CorrectedPixel(x, y, gamma)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(c.X * 255.999),
				G: uint8(c.Y * 255.999),
				B: uint8(c.Z * 255.999),
				A: 255,
			})
		}
	}
	return img
}
