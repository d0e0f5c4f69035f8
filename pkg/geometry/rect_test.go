package geometry

import (
	"testing"

	"github.com/jmallory/go-tiled-raytracer/pkg/core"
)

func TestXYRectHit(t *testing.T) {
	rect := NewXYRect(-1, 1, -1, 1, -3, testMaterial())
	ray := core.NewRay(core.NewVec3(0.5, -0.5, 0), core.NewVec3(0, 0, -1))

	hit, ok := rect.Hit(ray, 0.001, 1e9)
	if !ok {
		t.Fatal("ray through the rectangle missed")
	}
	if hit.T != 3 {
		t.Errorf("expected t=3, got %v", hit.T)
	}
	if hit.Normal != core.NewVec3(0, 0, 1) {
		t.Errorf("expected normal (0,0,1), got %v", hit.Normal)
	}
	if hit.UV != core.NewVec2(0.75, 0.25) {
		t.Errorf("expected uv (0.75, 0.25), got %v", hit.UV)
	}
}

func TestRectMissOutsideBounds(t *testing.T) {
	rect := NewXYRect(-1, 1, -1, 1, -3, testMaterial())
	if _, ok := rect.Hit(core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 0, -1)), 0.001, 1e9); ok {
		t.Error("ray outside the rectangle bounds should miss")
	}
}

func TestRectParallelRayMisses(t *testing.T) {
	xy := NewXYRect(-1, 1, -1, 1, -3, testMaterial())
	if _, ok := xy.Hit(core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(1, 0, 0)), 0.001, 1e9); ok {
		t.Error("in-plane ray should miss the XY rect")
	}

	xz := NewXZRect(-1, 1, -1, 1, 0, testMaterial())
	if _, ok := xz.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), 0.001, 1e9); ok {
		t.Error("in-plane ray should miss the XZ rect")
	}

	yz := NewYZRect(-1, 1, -1, 1, 0, testMaterial())
	if _, ok := yz.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), 0.001, 1e9); ok {
		t.Error("in-plane ray should miss the YZ rect")
	}
}

func TestXZRectHit(t *testing.T) {
	rect := NewXZRect(0, 2, 0, 2, 1, testMaterial())
	ray := core.NewRay(core.NewVec3(1, 5, 1), core.NewVec3(0, -1, 0))

	hit, ok := rect.Hit(ray, 0.001, 1e9)
	if !ok {
		t.Fatal("downward ray missed the floor rect")
	}
	if hit.T != 4 {
		t.Errorf("expected t=4, got %v", hit.T)
	}
	if hit.Normal != core.NewVec3(0, 1, 0) {
		t.Errorf("expected normal (0,1,0), got %v", hit.Normal)
	}
}

func TestYZRectHit(t *testing.T) {
	rect := NewYZRect(0, 2, 0, 2, -1, testMaterial())
	ray := core.NewRay(core.NewVec3(4, 1, 1), core.NewVec3(-1, 0, 0))

	hit, ok := rect.Hit(ray, 0.001, 1e9)
	if !ok {
		t.Fatal("ray missed the wall rect")
	}
	if hit.T != 5 {
		t.Errorf("expected t=5, got %v", hit.T)
	}
	if hit.Normal != core.NewVec3(1, 0, 0) {
		t.Errorf("expected normal (1,0,0), got %v", hit.Normal)
	}
}

func TestRectBoundingBoxHasVolume(t *testing.T) {
	rect := NewXYRect(-1, 1, -1, 1, 2, testMaterial())
	box := rect.BoundingBox(0, 0)

	if box.Max.Z <= box.Min.Z {
		t.Error("planar rect box must be padded to nonzero thickness")
	}
	if box.Min.Z > 2 || box.Max.Z < 2 {
		t.Errorf("padded box no longer contains the plane: %v", box)
	}
}

func TestBoxHit(t *testing.T) {
	box := NewBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), testMaterial())

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	hit, ok := box.Hit(ray, 0.001, 1e9)
	if !ok {
		t.Fatal("ray at the box missed")
	}
	if hit.T != 4 {
		t.Errorf("expected nearest face at t=4, got %v", hit.T)
	}
	if hit.Normal != core.NewVec3(0, 0, 1) {
		t.Errorf("expected facing normal (0,0,1), got %v", hit.Normal)
	}

	if _, ok := box.Hit(core.NewRay(core.NewVec3(0, 5, 5), core.NewVec3(0, 0, -1)), 0.001, 1e9); ok {
		t.Error("ray above the box should miss")
	}
}

func TestBoxHitFromInside(t *testing.T) {
	box := NewBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))

	hit, ok := box.Hit(ray, 0.001, 1e9)
	if !ok {
		t.Fatal("ray from inside missed the box walls")
	}
	if hit.T != 1 {
		t.Errorf("expected exit at t=1, got %v", hit.T)
	}
	if hit.FrontFace {
		t.Error("interior hit should be a back face")
	}
}

func TestBoxBoundingBox(t *testing.T) {
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(2, 3, 4), testMaterial())
	bounds := box.BoundingBox(0, 0)
	if bounds.Min != core.NewVec3(0, 0, 0) || bounds.Max != core.NewVec3(2, 3, 4) {
		t.Errorf("unexpected box bounds %v", bounds)
	}
}
