package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestSampleCosineHemisphereStaysAboveSurface(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(1, 0, 0),
		NewVec3(0, 0, -1),
		NewVec3(1, 1, 1).Normalize(),
	}

	for _, normal := range normals {
		for i := 0; i < 2000; i++ {
			sample := NewVec2(random.Float64(), random.Float64())
			direction := SampleCosineHemisphere(normal, sample)

			if direction.Dot(normal) < -1e-9 {
				t.Fatalf("direction %v below surface with normal %v", direction, normal)
			}
			if math.Abs(direction.Length()-1) > 1e-9 {
				t.Fatalf("direction not unit length: %v", direction.Length())
			}
		}
	}
}

func TestSampleCosineHemisphereIsCosineWeighted(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	normal := NewVec3(0, 0, 1)

	// Mean cosine of a cosine-weighted distribution is 2/3
	sum := 0.0
	const trials = 50000
	for i := 0; i < trials; i++ {
		direction := SampleCosineHemisphere(normal, NewVec2(random.Float64(), random.Float64()))
		sum += direction.Dot(normal)
	}
	mean := sum / trials
	if math.Abs(mean-2.0/3.0) > 0.01 {
		t.Errorf("mean cosine %v, want about 0.667", mean)
	}
}

func TestSampleOnUnitSphere(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	mean := Vec3{}
	const trials = 20000
	for i := 0; i < trials; i++ {
		v := SampleOnUnitSphere(NewVec2(random.Float64(), random.Float64()))
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("point not on the unit sphere: %v", v.Length())
		}
		mean = mean.Add(v)
	}
	if mean.Multiply(1.0 / trials).Length() > 0.02 {
		t.Errorf("sphere sampling is biased: mean %v", mean.Multiply(1.0/trials))
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		p := SamplePointInUnitDisk(NewVec2(random.Float64(), random.Float64()))
		if p.Z != 0 {
			t.Fatal("disk points must lie in the z=0 plane")
		}
		if p.Length() > 1+1e-12 {
			t.Fatalf("point outside the unit disk: %v", p)
		}
	}

	if SamplePointInUnitDisk(NewVec2(0.5, 0.5)) != (Vec3{}) {
		t.Error("the center sample should map to the origin")
	}
}

func TestSamplePointInUnitSphere(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		p := SamplePointInUnitSphere(NewVec3(random.Float64(), random.Float64(), random.Float64()))
		if p.Length() > 1+1e-12 {
			t.Fatalf("point outside the unit sphere: %v", p)
		}
	}
}

func TestRandomSamplerRanges(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))
	for i := 0; i < 1000; i++ {
		if v := sampler.Get1D(); v < 0 || v >= 1 {
			t.Fatalf("Get1D out of range: %v", v)
		}
		v2 := sampler.Get2D()
		if v2.X < 0 || v2.X >= 1 || v2.Y < 0 || v2.Y >= 1 {
			t.Fatalf("Get2D out of range: %v", v2)
		}
		v3 := sampler.Get3D()
		if v3.X < 0 || v3.X >= 1 || v3.Y < 0 || v3.Y >= 1 || v3.Z < 0 || v3.Z >= 1 {
			t.Fatalf("Get3D out of range: %v", v3)
		}
	}
}
