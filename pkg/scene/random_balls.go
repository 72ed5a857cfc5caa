package scene

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewRandomBallsScene creates three large spheres surrounded by a 21x21 grid of
// small randomly placed balls. The layout depends only on seed.
func NewRandomBallsScene(seed uint64) *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.LookFrom = core.NewVec3(11, 2, 6)
	cameraConfig.LookAt = core.NewVec3(0, 0, 0)
	cameraConfig.VFov = math.Pi / 8
	cameraConfig.Aperture = 0.1
	cameraConfig.FocusDistance = 10.0

	s := newScene("random-balls", cameraConfig, 1280, 128, 8)
	s.Background = geometry.NewSkyBackground()

	// Every glass ball shares one material
	glass := material.NewDielectric(1.5)

	s.Shapes.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, -1), 1000, material.NewLambertian(core.NewColor(1.0, 0.8, 0.95))),
		geometry.NewSphere(core.NewVec3(-3, 1, 0), 1, material.NewLambertian(core.NewColor(0.0, 0.9, 0.5))),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, glass),
		geometry.NewSphere(core.NewVec3(3, 1, 0), 1, material.NewMetal(core.NewColor(0.2, 0.5, 0.8), 0.2)),
	)

	random := rand.New(rand.NewPCG(seed, 0))
	between := func(lo, hi float64) float64 {
		return lo + (hi-lo)*random.Float64()
	}
	pastel := func() core.Color {
		return core.NewColor(between(0.7, 1.0), between(0.7, 1.0), between(0.7, 1.0))
	}

	for x := -10; x <= 10; x++ {
		for z := -10; z <= 10; z++ {
			offset := core.NewVec3(between(0, 0.9), 0, between(0, 0.9))
			center := core.NewVec3(float64(x), 0.2, float64(z)).Add(offset)

			var mat material.Material
			switch choice := random.IntN(100); {
			case choice < 80:
				mat = material.NewLambertian(pastel())
			case choice < 95:
				albedo := pastel()
				mat = material.NewMetal(albedo, between(0, 0.3))
			default:
				mat = glass
			}

			s.Shapes.Add(geometry.NewSphere(center, 0.2, mat))
		}
	}

	return s
}
