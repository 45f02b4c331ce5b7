package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestRandomInUnitSphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	var sum Vec3
	const n = 2000
	for i := 0; i < n; i++ {
		p := RandomInUnitSphere(sampler)
		if p.LengthSquared() > 1.0 {
			t.Fatalf("Point %v lies outside the unit sphere", p)
		}
		sum = sum.Add(p)
	}

	// Samples must cover all octants, not just the positive one
	mean := sum.Multiply(1.0 / n)
	if mean.Length() > 0.1 {
		t.Errorf("Expected mean near origin, got %v", mean)
	}
}

func TestRandomUnitVector(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(7)))
	for i := 0; i < 500; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit vector, got length %f", v.Length())
		}
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(1)))
	for i := 0; i < 500; i++ {
		p := RandomInUnitDisk(sampler)
		if p.Z != 0 {
			t.Fatalf("Disk sample must lie in the XY plane, got %v", p)
		}
		if p.X*p.X+p.Y*p.Y > 1.0 {
			t.Fatalf("Point %v lies outside the unit disk", p)
		}
	}
}
