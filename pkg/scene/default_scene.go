package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewDefaultScene creates three spheres (diffuse, hollow glass, metal) resting on a large ground sphere
func NewDefaultScene() *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.LookFrom = core.NewVec3(-2, 2, 1)
	cameraConfig.LookAt = core.NewVec3(0, 0, -1)
	cameraConfig.VFov = math.Pi / 4
	cameraConfig.Aperture = 0.1
	cameraConfig.FocusDistance = cameraConfig.LookFrom.Subtract(cameraConfig.LookAt).Length()

	s := newScene("default", cameraConfig, 400, 100, 50)
	s.Background = geometry.NewSkyBackground()

	// Create materials
	ground := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.0)

	s.Shapes.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		// A negative radius flips the normals, leaving a hollow glass shell
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold),
	)

	return s
}
