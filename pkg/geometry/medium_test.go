package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
)

func TestConstantMediumDeterministic(t *testing.T) {
	boundary := NewSphere(core.NewVec3(0, 0, -5), 2, testMaterial())
	medium := NewConstantMedium(boundary, 0.5, core.NewVec3(1, 1, 1))
	ray := core.NewRayAt(core.NewVec3(0.3, 0.1, 0), core.NewVec3(0, 0, -1), 0.7)

	first, ok1 := medium.Hit(ray, 0.001, 1e9)
	second, ok2 := medium.Hit(ray, 0.001, 1e9)

	if ok1 != ok2 {
		t.Fatal("repeated identical queries disagreed")
	}
	if ok1 && (first.T != second.T || first.Point != second.Point) {
		t.Fatal("repeated identical queries returned different scatter points")
	}
}

func TestConstantMediumScatterInsideBoundary(t *testing.T) {
	boundary := NewBox(core.NewVec3(-1, -1, -6), core.NewVec3(1, 1, -4), testMaterial())
	medium := NewConstantMedium(boundary, 5.0, core.NewVec3(1, 1, 1))

	random := rand.New(rand.NewSource(42))
	scatters := 0
	for i := 0; i < 1000; i++ {
		origin := core.NewVec3(2*random.Float64()-1, 2*random.Float64()-1, 0)
		ray := core.NewRay(origin.Multiply(0.99), core.NewVec3(0, 0, -1))

		hit, ok := medium.Hit(ray, 0.001, 1e9)
		if !ok {
			continue
		}
		scatters++
		if hit.T < 4 || hit.T > 6 {
			t.Fatalf("scatter at t=%v is outside the boundary", hit.T)
		}
		if hit.Material != medium.Phase {
			t.Fatal("scatter did not carry the phase material")
		}
	}
	if scatters == 0 {
		t.Fatal("dense medium never scattered")
	}
}

func TestConstantMediumScatterFraction(t *testing.T) {
	// Over many distinct rays crossing a slab of thickness d and density rho,
	// the fraction that scatters converges to 1 - exp(-rho*d)
	const density = 0.5
	const thickness = 2.0
	boundary := NewBox(core.NewVec3(-50, -50, -6), core.NewVec3(50, 50, -4), testMaterial())
	medium := NewConstantMedium(boundary, density, core.NewVec3(1, 1, 1))

	random := rand.New(rand.NewSource(42))
	const trials = 20000
	scatters := 0
	for i := 0; i < trials; i++ {
		origin := core.NewVec3(100*random.Float64()-50, 100*random.Float64()-50, 0)
		if _, ok := medium.Hit(core.NewRay(origin, core.NewVec3(0, 0, -1)), 0.001, 1e9); ok {
			scatters++
		}
	}

	expected := 1 - math.Exp(-density*thickness)
	got := float64(scatters) / float64(trials)
	if math.Abs(got-expected) > 0.02 {
		t.Errorf("scatter fraction %v, expected about %v", got, expected)
	}
}

func TestConstantMediumRayStartsInside(t *testing.T) {
	boundary := NewSphere(core.NewVec3(0, 0, 0), 3, testMaterial())
	medium := NewConstantMedium(boundary, 10.0, core.NewVec3(1, 1, 1))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, ok := medium.Hit(ray, 0.001, 1e9)
	if !ok {
		t.Fatal("dense medium should scatter a ray starting inside it")
	}
	if hit.T < 0 || hit.T > 3 {
		t.Errorf("scatter at t=%v outside the remaining extent", hit.T)
	}
}

func TestConstantMediumMissesPastBoundary(t *testing.T) {
	boundary := NewSphere(core.NewVec3(0, 0, -5), 1, testMaterial())
	medium := NewConstantMedium(boundary, 0.5, core.NewVec3(1, 1, 1))

	if _, ok := medium.Hit(core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, 0, -1)), 0.001, 1e9); ok {
		t.Error("ray missing the boundary should miss the medium")
	}
}

func TestConstantMediumNonPositiveDensity(t *testing.T) {
	boundary := NewSphere(core.NewVec3(0, 0, -5), 1, testMaterial())
	medium := &ConstantMedium{Boundary: boundary, Density: 0}

	if _, ok := medium.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, 1e9); ok {
		t.Error("zero-density medium should never scatter")
	}
}

func TestRayUniformRange(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		ray := randomTestRay(random)
		u := rayUniform(ray)
		if u <= 0 || u > 1 {
			t.Fatalf("rayUniform out of (0, 1]: %v", u)
		}
	}
}
