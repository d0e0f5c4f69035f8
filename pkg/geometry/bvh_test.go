package geometry

import (
	"math/rand"
	"testing"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
	"github.com/jmallory/go-tiled-raytracer/pkg/material"
)

func randomSpheres(random *rand.Rand, count int) []Shape {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	shapes := make([]Shape, 0, count)
	for i := 0; i < count; i++ {
		center := core.NewVec3(
			20*random.Float64()-10,
			20*random.Float64()-10,
			20*random.Float64()-10,
		)
		radius := 0.1 + 1.5*random.Float64()
		shapes = append(shapes, NewSphere(center, radius, mat))
	}
	return shapes
}

func randomTestRay(random *rand.Rand) core.Ray {
	origin := core.NewVec3(
		30*random.Float64()-15,
		30*random.Float64()-15,
		30*random.Float64()-15,
	)
	direction := core.SampleOnUnitSphere(core.NewVec2(random.Float64(), random.Float64()))
	return core.NewRayAt(origin, direction, random.Float64())
}

func TestBVHMatchesLinearScan(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	shapes := randomSpheres(random, 200)
	mat := material.NewLambertian(core.NewVec3(0.8, 0.4, 0.2))
	shapes = append(shapes,
		NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 3, 0), 0, 1, 0.7, mat),
		NewConstantMedium(NewSphere(core.NewVec3(5, 5, 5), 2, mat), 0.8, core.NewVec3(1, 1, 1)),
	)

	bvh := NewBVH(shapes, 0, 1)
	list := NewShapeList(shapes...)

	for i := 0; i < 2000; i++ {
		ray := randomTestRay(random)

		bvhHit, bvhOK := bvh.Hit(ray, 0.001, 1e9)
		listHit, listOK := list.Hit(ray, 0.001, 1e9)

		if bvhOK != listOK {
			t.Fatalf("ray %d: BVH hit=%v, linear scan hit=%v", i, bvhOK, listOK)
		}
		if !bvhOK {
			continue
		}
		if bvhHit.T != listHit.T {
			t.Fatalf("ray %d: BVH t=%v, linear scan t=%v", i, bvhHit.T, listHit.T)
		}
		if bvhHit.Point != listHit.Point {
			t.Fatalf("ray %d: BVH point=%v, linear scan point=%v", i, bvhHit.Point, listHit.Point)
		}
		if bvhHit.Material != listHit.Material {
			t.Fatalf("ray %d: hit different materials", i)
		}
	}
}

func TestBVHRespectsInterval(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	bvh := NewBVH([]Shape{
		NewSphere(core.NewVec3(0, 0, -5), 1, mat),
		NewSphere(core.NewVec3(0, 0, -10), 1, mat),
	}, 0, 0)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, ok := bvh.Hit(ray, 0.001, 1e9)
	if !ok || hit.T != 4 {
		t.Fatalf("expected nearest hit at t=4, got ok=%v t=%v", ok, hit)
	}

	// Excluding the near sphere exposes the far one
	hit, ok = bvh.Hit(ray, 7, 1e9)
	if !ok || hit.T != 9 {
		t.Fatalf("expected far hit at t=9, got ok=%v", ok)
	}

	if _, ok := bvh.Hit(ray, 0.001, 3); ok {
		t.Fatal("hit reported outside the query interval")
	}
}

func TestBVHEmpty(t *testing.T) {
	bvh := NewBVH(nil, 0, 0)
	if _, ok := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0, 1e9); ok {
		t.Fatal("empty BVH reported a hit")
	}
	if !bvh.Validate() {
		t.Fatal("empty BVH failed validation")
	}
	if bvh.NodeCount() != 0 {
		t.Fatalf("empty BVH has %d nodes", bvh.NodeCount())
	}
}

func TestBVHSingleShape(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	bvh := NewBVH([]Shape{NewSphere(core.NewVec3(0, 0, -3), 1, mat)}, 0, 0)

	if bvh.NodeCount() != 1 {
		t.Fatalf("expected a single leaf node, got %d", bvh.NodeCount())
	}
	if _, ok := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, 1e9); !ok {
		t.Fatal("single-shape BVH missed")
	}
}

func TestBVHValidate(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	for _, count := range []int{1, 3, 4, 5, 17, 100, 500} {
		bvh := NewBVH(randomSpheres(random, count), 0, 1)
		if !bvh.Validate() {
			t.Fatalf("BVH over %d shapes failed containment validation", count)
		}
		if upper := 2*count - 1; bvh.NodeCount() > upper {
			t.Fatalf("BVH over %d shapes has %d nodes, upper bound is %d", count, bvh.NodeCount(), upper)
		}
	}
}

func TestBVHBuildLeavesInputUntouched(t *testing.T) {
	random := rand.New(rand.NewSource(3))
	shapes := randomSpheres(random, 50)
	snapshot := make([]Shape, len(shapes))
	copy(snapshot, shapes)

	NewBVH(shapes, 0, 0)

	for i := range shapes {
		if shapes[i] != snapshot[i] {
			t.Fatalf("build reordered the caller's slice at index %d", i)
		}
	}
}

func TestBVHAsShape(t *testing.T) {
	// A BVH is itself a Shape, so subtrees can nest inside other structures
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	inner := NewBVH([]Shape{
		NewSphere(core.NewVec3(0, 0, -5), 1, mat),
		NewSphere(core.NewVec3(3, 0, -5), 1, mat),
	}, 0, 0)

	outer := NewBVH([]Shape{
		inner,
		NewSphere(core.NewVec3(-3, 0, -5), 1, mat),
	}, 0, 0)

	ray := core.NewRay(core.NewVec3(3, 0, 0), core.NewVec3(0, 0, -1))
	hit, ok := outer.Hit(ray, 0.001, 1e9)
	if !ok || hit.T != 4 {
		t.Fatalf("nested BVH missed, ok=%v", ok)
	}
}
