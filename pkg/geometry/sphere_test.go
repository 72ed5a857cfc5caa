package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 1e-6, math.Inf(1))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "front face hit with unnormalized direction",
			rayOrigin:      core.NewVec3(0, 5, 0),
			rayDirection:   core.NewVec3(0, -2, 0),
			expectedT:      2.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 1, 0),
		},
		{
			name:           "back face hit from center",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "back face hit from off-center interior point",
			rayOrigin:      core.NewVec3(0.5, 0, 0),
			rayDirection:   core.NewVec3(1, 0, 0),
			expectedT:      0.5,
			expectedFront:  false,
			expectedNormal: core.NewVec3(-1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 1e-6, math.Inf(1))

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			tolerance := 1e-9
			if hit.Normal.Subtract(tt.expectedNormal).Length() > tolerance {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}

			// The reported normal always opposes the incoming ray
			if hit.Normal.Dot(tt.rayDirection) >= 0 {
				t.Errorf("Normal %v does not oppose ray direction %v", hit.Normal, tt.rayDirection)
			}
		})
	}
}

func TestSphere_Hit_AimedAtCenterIsAntiParallel(t *testing.T) {
	center := core.NewVec3(1, -2, 3)
	sphere := NewSphere(center, 0.75, nil)
	origin := core.NewVec3(-4, 5, 9)
	direction := center.Subtract(origin)

	hit, isHit := sphere.Hit(core.NewRay(origin, direction), 1e-6, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit from outside")
	}
	if math.Abs(hit.Normal.Dot(direction.Normalize())+1) > 1e-9 {
		t.Errorf("Expected normal anti-parallel to the ray, got %v", hit.Normal)
	}
}

func TestSphere_Hit_TangentRay(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	// oc = (-5,1,0), a = 1, b = -5, c = 25: discriminant exactly zero
	ray := core.NewRay(core.NewVec3(-5, 1, 0), core.NewVec3(1, 0, 0))

	hit, isHit := sphere.Hit(ray, 1e-6, math.Inf(1))
	if !isHit {
		t.Fatal("Expected tangent hit, but got miss")
	}

	// Single root -b/a
	if hit.T != 5.0 {
		t.Errorf("Expected t=5, got t=%v", hit.T)
	}

	expectedPoint := core.NewVec3(0, 1, 0)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-12 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	tests := []struct {
		name      string
		tMin      float64
		tMax      float64
		expectHit bool
		expectedT float64
	}{
		{"full range takes near root", 1e-6, math.Inf(1), true, 1.0},
		{"tMax before near root", 1e-6, 0.5, false, 0},
		{"tMin past both roots", 3.5, math.Inf(1), false, 0},
		{"tMin past near root takes far root", 1.5, math.Inf(1), true, 3.0},
		{"open interval excludes tMax", 1e-6, 1.0, false, 0},
		{"open interval excludes tMin", 1.0, 2.0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(ray, tt.tMin, tt.tMax)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestSphere_Hit_CarriesMaterial(t *testing.T) {
	mat := material.NewLambertian(core.NewColor(0.2, 0.4, 0.6))
	sphere := NewSphere(core.NewVec3(0, 0, -3), 1.0, mat)

	hit, isHit := sphere.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 1e-6, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.Material != mat {
		t.Errorf("Expected hit to reference the sphere's material")
	}
}
