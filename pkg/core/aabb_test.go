package core

import (
	"math"
	"testing"
)

func TestAABBHit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	if !box.Hit(NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 0, 100) {
		t.Error("ray at the box should hit")
	}
	if box.Hit(NewRay(NewVec3(0, 5, 5), NewVec3(0, 0, -1)), 0, 100) {
		t.Error("offset ray should miss")
	}
	if box.Hit(NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), 0, 100) {
		t.Error("ray pointing away should miss")
	}
}

func TestAABBHitRespectsInterval(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -5), NewVec3(1, 1, -3))
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, -1))

	if !box.Hit(ray, 0, 100) {
		t.Error("box inside the interval should hit")
	}
	if box.Hit(ray, 0, 2) {
		t.Error("box beyond tMax should miss")
	}
	if box.Hit(ray, 6, 100) {
		t.Error("box before tMin should miss")
	}
}

func TestAABBHitParallelRay(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	inside := NewRay(NewVec3(0, 0.5, 0), NewVec3(1, 0, 0))
	if !box.Hit(inside, 0, 100) {
		t.Error("parallel ray inside the slab should hit")
	}

	outside := NewRay(NewVec3(0, 2, 0), NewVec3(1, 0, 0))
	if box.Hit(outside, 0, 100) {
		t.Error("parallel ray outside the slab should miss")
	}
}

func TestAABBHitFromInside(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	if !box.Hit(NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1)), 0, 100) {
		t.Error("ray starting inside should hit")
	}
}

func TestAABBUnionAndContains(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, 0.5, 0), NewVec3(0.5, 2, 3))
	u := a.Union(b)

	if !u.Contains(a) || !u.Contains(b) {
		t.Error("union must contain both inputs")
	}
	if u.Min != NewVec3(-1, 0, 0) || u.Max != NewVec3(1, 2, 3) {
		t.Errorf("unexpected union %v", u)
	}
	if a.Contains(b) {
		t.Error("partial overlap must not count as containment")
	}
}

func TestAABBGeometryQueries(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(2, 4, 6))

	if box.Center() != NewVec3(1, 2, 3) {
		t.Errorf("center %v", box.Center())
	}
	if box.Size() != NewVec3(2, 4, 6) {
		t.Errorf("size %v", box.Size())
	}
	if box.LongestAxis() != 2 {
		t.Errorf("longest axis %d", box.LongestAxis())
	}
	want := 2.0 * (2*4 + 4*6 + 6*2)
	if math.Abs(box.SurfaceArea()-want) > 1e-12 {
		t.Errorf("surface area %v, want %v", box.SurfaceArea(), want)
	}
}

func TestAABBPadThin(t *testing.T) {
	flat := NewAABB(NewVec3(0, 0, 2), NewVec3(1, 1, 2))
	padded := flat.PadThin(1e-4)

	if padded.Max.Z-padded.Min.Z <= 0 {
		t.Error("degenerate axis not padded")
	}
	// Non-degenerate axes stay put
	if padded.Min.X != 0 || padded.Max.X != 1 {
		t.Error("padding touched a non-degenerate axis")
	}
}

func TestNewAABBFromPoints(t *testing.T) {
	box := NewAABBFromPoints(
		NewVec3(1, -2, 3),
		NewVec3(-1, 4, 0),
		NewVec3(0, 0, 5),
	)
	if box.Min != NewVec3(-1, -2, 0) || box.Max != NewVec3(1, 4, 5) {
		t.Errorf("unexpected bounds %v", box)
	}
}
