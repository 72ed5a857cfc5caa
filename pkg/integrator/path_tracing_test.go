package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// absorber swallows every ray
type absorber struct{}

func (absorber) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

// createTestWorld creates a single diffuse sphere in front of the origin
func createTestWorld(albedo core.Color, background geometry.Background) *geometry.World {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewLambertian(albedo))
	return geometry.NewWorld(geometry.NewShapeList(sphere), background)
}

func TestPathTracing_DepthZeroIsBlack(t *testing.T) {
	world := createTestWorld(core.NewColor(0.7, 0.3, 0.3), geometry.NewSolidBackground(core.White))
	integrator := NewPathTracingIntegrator(0)
	sampler := core.NewSeededSampler(42, 0)

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), // hits the sphere
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),  // escapes
	}
	for _, ray := range rays {
		if got := integrator.RayColor(ray, world, sampler); got != core.Black {
			t.Errorf("Expected black for depth 0, got %v", got)
		}
	}
}

func TestPathTracing_EmptyWorldReturnsBackground(t *testing.T) {
	background := geometry.NewGradientBackground(core.NewColor(0.5, 0.7, 1.0), core.White)
	world := geometry.NewWorld(geometry.NewShapeList(), background)
	integrator := NewPathTracingIntegrator(50)
	sampler := core.NewSeededSampler(42, 1)

	for i := 0; i < 100; i++ {
		direction := core.RandomUnitVector(sampler)
		ray := core.NewRay(core.NewVec3(0, 0, 0), direction)

		expected := background.Evaluate(ray)
		if got := integrator.RayColor(ray, world, sampler); got != expected {
			t.Fatalf("Direction %v: expected background %v, got %v", direction, expected, got)
		}
	}
}

func TestPathTracing_AbsorptionIsBlack(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, absorber{})
	world := geometry.NewWorld(geometry.NewShapeList(sphere), geometry.NewSolidBackground(core.White))
	integrator := NewPathTracingIntegrator(10)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if got := integrator.RayColor(ray, world, core.NewSeededSampler(1, 1)); got != core.Black {
		t.Errorf("Expected black for an absorbed ray, got %v", got)
	}
}

func TestPathTracing_DiffuseSphereUnderWhiteSky(t *testing.T) {
	albedo := core.NewColor(0.7, 0.3, 0.3)
	world := createTestWorld(albedo, geometry.NewSolidBackground(core.White))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name     string
		depth    int
		expected core.Color
	}{
		// The camera ray uses the whole budget, so the hit contributes nothing
		{"depth 1", 1, core.Black},
		// One bounce off a convex sphere always escapes to the white sky
		{"depth 2", 2, albedo},
		{"depth 50", 50, albedo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integrator := NewPathTracingIntegrator(tt.depth)
			sampler := core.NewSeededSampler(42, uint64(tt.depth))

			for i := 0; i < 100; i++ {
				if got := integrator.RayColor(ray, world, sampler); got != tt.expected {
					t.Fatalf("Sample %d: expected %v, got %v", i, tt.expected, got)
				}
			}
		})
	}
}

func TestPathTracing_MirrorReflectsBackground(t *testing.T) {
	albedo := core.NewColor(0.8, 0.6, 0.2)
	background := geometry.NewGradientBackground(core.NewColor(0.5, 0.7, 1.0), core.White)
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewMetal(albedo, 0))
	world := geometry.NewWorld(geometry.NewShapeList(sphere), background)
	integrator := NewPathTracingIntegrator(5)

	// Head-on: the mirror sends the ray straight back along +z
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	got := integrator.RayColor(ray, world, core.NewSeededSampler(3, 3))

	expected := albedo.Multiply(background.Evaluate(core.NewRay(core.NewVec3(0, 0, -2), core.NewVec3(0, 0, 1))))
	const tolerance = 1e-12
	if math.Abs(got.R-expected.R) > tolerance ||
		math.Abs(got.G-expected.G) > tolerance ||
		math.Abs(got.B-expected.B) > tolerance {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

// recursiveRayColor is the textbook recursive formulation used as a reference
func recursiveRayColor(ray core.Ray, world *geometry.World, depth int, sampler core.Sampler) core.Color {
	if depth <= 0 {
		return core.Black
	}
	hit, isHit := world.Hit(ray, MinHitDistance, math.Inf(1))
	if !isHit {
		return world.BackgroundColor(ray)
	}
	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Black
	}
	return scatter.Attenuation.Multiply(recursiveRayColor(scatter.Scattered, world, depth-1, sampler))
}

func TestPathTracing_MatchesRecursiveFormulation(t *testing.T) {
	glass := material.NewDielectric(1.5)
	shapes := geometry.NewShapeList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.4, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.3)),
	)
	world := geometry.NewWorld(shapes, geometry.NewSkyBackground())
	integrator := NewPathTracingIntegrator(8)

	directionSampler := core.NewSeededSampler(99, 0)
	for i := 0; i < 200; i++ {
		d := core.RandomInUnitDisk(directionSampler)
		ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(d.X*1.5, d.Y, -1))

		// Identical streams make both formulations take identical paths
		got := integrator.RayColor(ray, world, core.NewSeededSampler(7, uint64(i)))
		expected := recursiveRayColor(ray, world, 8, core.NewSeededSampler(7, uint64(i)))

		const tolerance = 1e-12
		if math.Abs(got.R-expected.R) > tolerance ||
			math.Abs(got.G-expected.G) > tolerance ||
			math.Abs(got.B-expected.B) > tolerance {
			t.Fatalf("Ray %d: iterative %v differs from recursive %v", i, got, expected)
		}
	}
}
