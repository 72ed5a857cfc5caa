package scene

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/material"
)

func TestBuiltinScenes_Valid(t *testing.T) {
	tests := []struct {
		name       string
		scene      *Scene
		primitives int
	}{
		{"default", NewDefaultScene(), 5},
		{"random balls", NewRandomBallsScene(1), 4 + 21*21},
		{"single sphere", NewSingleSphereScene(), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.scene.Validate(); err != nil {
				t.Fatalf("Scene does not validate: %v", err)
			}
			if got := tt.scene.GetPrimitiveCount(); got != tt.primitives {
				t.Errorf("Expected %d primitives, got %d", tt.primitives, got)
			}
			if tt.scene.Background == nil {
				t.Error("Expected a background")
			}
		})
	}
}

func TestScene_SetWidth(t *testing.T) {
	s := NewDefaultScene()

	tests := []struct {
		width          int
		expectedHeight int
	}{
		{400, 225},
		{1280, 720},
		{100, 56},
		{1, 1},
	}

	for _, tt := range tests {
		s.SetWidth(tt.width)
		if s.SamplingConfig.Width != tt.width || s.SamplingConfig.Height != tt.expectedHeight {
			t.Errorf("SetWidth(%d): expected %dx%d, got %dx%d", tt.width, tt.width, tt.expectedHeight,
				s.SamplingConfig.Width, s.SamplingConfig.Height)
		}
	}
}

func TestRandomBallsScene_SeedDeterminesLayout(t *testing.T) {
	a := NewRandomBallsScene(5)
	b := NewRandomBallsScene(5)
	c := NewRandomBallsScene(6)

	if len(a.Shapes.Shapes) != len(b.Shapes.Shapes) {
		t.Fatal("Expected identical shape counts")
	}

	sameAsC := true
	for i := range a.Shapes.Shapes {
		sa, sb := sphereAt(t, a, i), sphereAt(t, b, i)
		if sa.Center != sb.Center || sa.Radius != sb.Radius {
			t.Fatalf("Sphere %d differs between identical seeds", i)
		}
		if sa.Center != sphereAt(t, c, i).Center {
			sameAsC = false
		}
	}
	if sameAsC {
		t.Error("Expected a different seed to move the balls")
	}
}

func TestRandomBallsScene_SharesGlass(t *testing.T) {
	s := NewRandomBallsScene(42)
	glass := sphereAt(t, s, 2).Material

	if _, ok := glass.(*material.Dielectric); !ok {
		t.Fatalf("Expected the center sphere to be glass, got %T", glass)
	}
	for i := 4; i < len(s.Shapes.Shapes); i++ {
		sphere := sphereAt(t, s, i)
		if _, ok := sphere.Material.(*material.Dielectric); ok && sphere.Material != glass {
			t.Fatalf("Small glass ball %d does not share the glass material", i)
		}
		if sphere.Radius != 0.2 || sphere.Center.Y != 0.2 {
			t.Fatalf("Unexpected small ball %+v", sphere)
		}
	}
}

func TestSingleSphereScene_Camera(t *testing.T) {
	s := NewSingleSphereScene()
	if s.CameraConfig.AspectRatio != 1.0 || s.SamplingConfig.Width != s.SamplingConfig.Height {
		t.Errorf("Expected a square image, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}
	if math.Abs(s.CameraConfig.VFov-math.Pi/4) > 1e-12 {
		t.Errorf("Expected a 45 degree field of view, got %f", s.CameraConfig.VFov)
	}
}
