package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewSingleSphereScene creates a grey diffuse unit sphere at the origin against a white background.
// With two ray segments per sample it renders as a flat disk of the gamma-encoded albedo.
func NewSingleSphereScene() *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.LookFrom = core.NewVec3(0, 0, 5)
	cameraConfig.LookAt = core.NewVec3(0, 0, 0)
	cameraConfig.VFov = math.Pi / 4
	cameraConfig.AspectRatio = 1.0
	cameraConfig.FocusDistance = 5.0

	s := newScene("single-sphere", cameraConfig, 128, 16, 2)
	s.Background = geometry.NewSolidBackground(core.White)
	s.Shapes.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))))

	return s
}
