package material

import (
	"math/rand"
	"testing"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
)

func TestPerlinNoiseRange(t *testing.T) {
	perlin := NewPerlin(42)
	random := rand.New(rand.NewSource(1))

	for i := 0; i < 10000; i++ {
		point := core.NewVec3(
			100*random.Float64()-50,
			100*random.Float64()-50,
			100*random.Float64()-50,
		)
		n := perlin.Noise(point)
		if n < -1 || n > 1 {
			t.Fatalf("noise %v at %v outside [-1, 1]", n, point)
		}
	}
}

func TestPerlinDeterministicPerSeed(t *testing.T) {
	a := NewPerlin(42)
	b := NewPerlin(42)
	c := NewPerlin(7)

	point := core.NewVec3(1.3, 2.7, -0.4)
	if a.Noise(point) != b.Noise(point) {
		t.Error("same seed must give identical noise")
	}
	if a.Noise(point) == c.Noise(point) {
		t.Error("different seeds should give different noise")
	}
}

func TestPerlinNoiseIsSmooth(t *testing.T) {
	perlin := NewPerlin(42)
	point := core.NewVec3(1.5, 2.5, 3.5)
	base := perlin.Noise(point)

	// Tiny steps move the value only slightly
	for _, eps := range []float64{1e-6, 1e-5, 1e-4} {
		nearby := perlin.Noise(point.Add(core.NewVec3(eps, 0, 0)))
		if diff := nearby - base; diff > 0.01 || diff < -0.01 {
			t.Fatalf("noise jumped by %v over a step of %v", diff, eps)
		}
	}
}

func TestTurbulenceNonNegative(t *testing.T) {
	perlin := NewPerlin(42)
	random := rand.New(rand.NewSource(2))

	for i := 0; i < 1000; i++ {
		point := core.NewVec3(20*random.Float64()-10, 20*random.Float64()-10, 20*random.Float64()-10)
		if perlin.Turbulence(point, 7) < 0 {
			t.Fatal("turbulence must be non-negative")
		}
	}
}

func TestMarbleRange(t *testing.T) {
	marble := NewMarble(4.0, 42)
	random := rand.New(rand.NewSource(3))

	for i := 0; i < 1000; i++ {
		point := core.NewVec3(10*random.Float64()-5, 10*random.Float64()-5, 10*random.Float64()-5)
		c := marble.Evaluate(core.NewVec2(0, 0), point)

		if c.X < 0 || c.X > 1 {
			t.Fatalf("marble value %v at %v outside [0, 1]", c.X, point)
		}
		if c.X != c.Y || c.Y != c.Z {
			t.Fatal("marble should be grayscale")
		}
	}
}
