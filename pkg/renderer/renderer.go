package renderer

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"golang.org/x/sync/errgroup"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
	"github.com/jmallory/go-tiled-raytracer/pkg/geometry"
	"github.com/jmallory/go-tiled-raytracer/pkg/integrator"
	"github.com/jmallory/go-tiled-raytracer/pkg/material"
)

// Scene is the world from the renderer's point of view: an acceleration
// structure over the geometry, a background for escaping rays and a camera
type Scene interface {
	Root() *geometry.BVH
	Background(ray core.Ray) core.Vec3
	CameraConfig() CameraConfig
}

// Config holds all render settings. Every field must be set explicitly;
// Validate rejects configurations with missing or nonsensical values.
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Rays traced per pixel
	MaxDepth        int   // Bounce limit per ray path
	NumWorkers      int   // Number of worker goroutines
	TileSize        int   // Tile side length in pixels
	Seed            int64 // Root seed for per-tile RNG derivation
	UsePredictor    bool  // Enable the traversal predictor
}

// DefaultConfig returns a config sized to the machine it runs on
func DefaultConfig() Config {
	return Config{
		Width:           800,
		Height:          450,
		SamplesPerPixel: 50,
		MaxDepth:        20,
		NumWorkers:      DefaultWorkerCount(),
		TileSize:        32,
		Seed:            42,
	}
}

// DefaultWorkerCount returns the number of physical CPU cores, falling back
// to the logical count when the probe fails
func DefaultWorkerCount() int {
	if count, err := cpu.Counts(false); err == nil && count > 0 {
		return count
	}
	return runtime.NumCPU()
}

// Validate checks the configuration and returns an error describing the first
// problem found
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must be non-negative, got %d", c.MaxDepth)
	}
	if c.NumWorkers <= 0 {
		return fmt.Errorf("worker count must be positive, got %d", c.NumWorkers)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	}
	return nil
}

// DefaultLogger writes through the standard library logger
type DefaultLogger struct{}

// Printf logs a formatted message
func (DefaultLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// Renderer drives a fixed pool of workers over the image's tiles
type Renderer struct {
	scene      Scene
	config     Config
	camera     *Camera
	integrator *integrator.PathTracer
	predictor  *geometry.Predictor
	logger     core.Logger
}

// NewRenderer creates a renderer for the given scene and configuration.
// The configuration is validated up front; a bad config is an error, never
// a silently patched value.
func NewRenderer(scene Scene, config Config, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	if logger == nil {
		logger = DefaultLogger{}
	}

	r := &Renderer{
		scene:      scene,
		config:     config,
		camera:     NewCamera(scene.CameraConfig()),
		integrator: integrator.NewPathTracer(config.MaxDepth),
		logger:     logger,
	}
	if config.UsePredictor {
		r.predictor = geometry.NewPredictor()
	}
	return r, nil
}

// Predictor returns the traversal predictor, or nil when disabled
func (r *Renderer) Predictor() *geometry.Predictor {
	return r.predictor
}

// tracedScene adapts the renderer's scene and predictor to the integrator
type tracedScene struct {
	root       *geometry.BVH
	background func(core.Ray) core.Vec3
	predictor  *geometry.Predictor
}

func (ts tracedScene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return ts.root.HitWithPredictor(ray, tMin, tMax, ts.predictor)
}

func (ts tracedScene) Background(ray core.Ray) core.Vec3 {
	return ts.background(ray)
}

// Render traces the whole image and returns the framebuffer. Workers pull
// tiles from a shared channel; cancellation is checked between tiles, so a
// canceled render returns the framebuffer with every completed tile intact
// alongside the context's error.
func (r *Renderer) Render(ctx context.Context) (*Framebuffer, error) {
	start := time.Now()
	fb := NewFramebuffer(r.config.Width, r.config.Height)
	tiles := TileGrid(r.config.Width, r.config.Height, r.config.TileSize)

	r.logger.Printf("Rendering %dx%d, %d spp, %d tiles, %d workers\n",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel, len(tiles), r.config.NumWorkers)

	world := tracedScene{
		root:       r.scene.Root(),
		background: r.scene.Background,
		predictor:  r.predictor,
	}

	tileChan := make(chan Tile, len(tiles))
	for _, tile := range tiles {
		tileChan <- tile
	}
	close(tileChan)

	group, groupCtx := errgroup.WithContext(ctx)
	for w := 0; w < r.config.NumWorkers; w++ {
		group.Go(func() error {
			for tile := range tileChan {
				select {
				case <-groupCtx.Done():
					return groupCtx.Err()
				default:
				}
				r.renderTile(tile, world, fb)
			}
			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		r.logger.Printf("Render stopped after %v: %v\n", time.Since(start), err)
		return fb, err
	}

	r.logger.Printf("Render finished in %v\n", time.Since(start))
	return fb, nil
}

// renderTile traces every pixel of one tile with the tile's own deterministic
// RNG stream
func (r *Renderer) renderTile(tile Tile, world tracedScene, fb *Framebuffer) {
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(tileSeed(r.config.Seed, tile.ID))))
	invSamples := 1.0 / float64(r.config.SamplesPerPixel)

	for y := tile.Y; y < tile.Y+tile.Height; y++ {
		for x := tile.X; x < tile.X+tile.Width; x++ {
			accumulated := core.Vec3{}
			for sample := 0; sample < r.config.SamplesPerPixel; sample++ {
				jitter := sampler.Get2D()
				s := (float64(x) + jitter.X) / float64(r.config.Width)
				// Image row 0 is the top of the frame, camera t grows upward
				t := (float64(r.config.Height-1-y) + jitter.Y) / float64(r.config.Height)

				ray := r.camera.GetRay(s, t, sampler)
				accumulated = accumulated.Add(r.integrator.RayColor(ray, world, sampler))
			}
			fb.SetPixel(x, y, accumulated.Multiply(invSamples))
		}
	}
}
