package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmallory/go-tiled-raytracer/pkg/renderer"
	"github.com/jmallory/go-tiled-raytracer/pkg/scene"
)

const outputGamma = 2.0

func main() {
	var (
		sceneName = flag.String("scene", scene.PresetSpheres, "Scene to render: spheres, cornell, cornell-smoke, marble")
		width     = flag.Int("width", 800, "Image width in pixels")
		height    = flag.Int("height", 0, "Image height in pixels (0 = from scene aspect ratio)")
		samples   = flag.Int("samples", 100, "Samples per pixel")
		depth     = flag.Int("depth", 20, "Maximum ray bounces")
		workers   = flag.Int("workers", renderer.DefaultWorkerCount(), "Number of render workers")
		tileSize  = flag.Int("tile-size", 32, "Tile side length in pixels")
		seed      = flag.Int64("seed", 42, "Render seed")
		predictor = flag.Bool("predictor", false, "Enable the traversal predictor")
		output    = flag.String("output", "render.png", "Output PNG path")
	)
	flag.Parse()

	logger := renderer.DefaultLogger{}

	world, err := scene.NewPreset(*sceneName, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	imageHeight := *height
	if imageHeight == 0 {
		imageHeight = int(float64(*width) / world.Camera.AspectRatio)
	}

	config := renderer.Config{
		Width:           *width,
		Height:          imageHeight,
		SamplesPerPixel: *samples,
		MaxDepth:        *depth,
		NumWorkers:      *workers,
		TileSize:        *tileSize,
		Seed:            *seed,
		UsePredictor:    *predictor,
	}

	r, err := renderer.NewRenderer(world, config, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Ctrl-C stops the render between tiles; completed tiles are still written
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fb, renderErr := r.Render(ctx)
	if renderErr != nil {
		logger.Printf("Render incomplete: %v\n", renderErr)
	}

	if p := r.Predictor(); p != nil {
		p.LogStats(logger)
	}

	if err := writePNG(*output, fb); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Printf("Wrote %s (average luminance %.3f)\n", *output, fb.AverageLuminance())

	if renderErr != nil {
		os.Exit(1)
	}
}

func writePNG(path string, fb *renderer.Framebuffer) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, fb.ToImage(outputGamma)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
