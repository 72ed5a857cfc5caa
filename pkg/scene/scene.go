package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Shapes         *geometry.ShapeList // Objects in the scene
	Background     geometry.Background // Radiance seen by escaping rays
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
}

// World pairs the scene's shapes with its background
func (s *Scene) World() *geometry.World {
	return geometry.NewWorld(s.Shapes, s.Background)
}

// Camera builds the scene camera
func (s *Scene) Camera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// NewRaytracer creates a raytracer for the scene's world, camera and sampling config
func (s *Scene) NewRaytracer() *renderer.Raytracer {
	return renderer.NewRaytracer(s.World(), s.Camera(), s.SamplingConfig)
}

// SetWidth changes the image width and derives the height from the camera aspect ratio
func (s *Scene) SetWidth(width int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = max(1, int(float64(width)/s.CameraConfig.AspectRatio))
}

// Validate checks the camera and sampling configuration
func (s *Scene) Validate() error {
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("invalid camera for scene %q: %w", s.Name, err)
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("invalid sampling config for scene %q: %w", s.Name, err)
	}
	return nil
}

// GetPrimitiveCount returns the number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	if s.Shapes == nil {
		return 0
	}
	return s.Shapes.Len()
}

// newScene fills in the defaults shared by the built-in scenes
func newScene(name string, cameraConfig renderer.CameraConfig, width, samples, depth int) *Scene {
	s := &Scene{
		Name:         name,
		Shapes:       geometry.NewShapeList(),
		CameraConfig: cameraConfig,
		SamplingConfig: renderer.SamplingConfig{
			SamplesPerPixel: samples,
			MaxDepth:        depth,
		},
	}
	s.SetWidth(width)
	return s
}
