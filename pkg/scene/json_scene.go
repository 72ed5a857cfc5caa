package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// SceneFile is the JSON representation of a scene. Optional fields fall back
// to the renderer defaults.
type SceneFile struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Camera      CameraSpec              `json:"camera"`
	Sampling    SamplingSpec            `json:"sampling"`
	Background  BackgroundSpec          `json:"background"`
	Materials   map[string]MaterialSpec `json:"materials"`
	Spheres     []SphereSpec            `json:"spheres"`
}

// CameraSpec describes the camera. Angles are in degrees.
type CameraSpec struct {
	LookFrom      *Vec3Spec `json:"lookFrom"`
	LookAt        *Vec3Spec `json:"lookAt"`
	Up            *Vec3Spec `json:"up"`
	VFov          *float64  `json:"vfov"`
	AspectRatio   *float64  `json:"aspectRatio"`
	Aperture      *float64  `json:"aperture"`
	FocusDistance *float64  `json:"focusDistance"`
}

// SamplingSpec describes image size and sampling. Height follows the camera aspect ratio.
type SamplingSpec struct {
	Width           int `json:"width"`
	SamplesPerPixel int `json:"samplesPerPixel"`
	MaxDepth        int `json:"maxDepth"`
}

// BackgroundSpec is either {"type":"solid","color":...} or {"type":"gradient","top":...,"bottom":...}
type BackgroundSpec struct {
	Type   string     `json:"type"`
	Color  *ColorSpec `json:"color"`
	Top    *ColorSpec `json:"top"`
	Bottom *ColorSpec `json:"bottom"`
}

// MaterialSpec describes one entry of the named material table
type MaterialSpec struct {
	Type   string     `json:"type"` // lambertian, metal or dielectric
	Albedo *ColorSpec `json:"albedo"`
	Fuzz   float64    `json:"fuzz"`
	Index  float64    `json:"index"`
}

// SphereSpec places a sphere that refers to a named material
type SphereSpec struct {
	Center   Vec3Spec `json:"center"`
	Radius   float64  `json:"radius"`
	Material string   `json:"material"`
}

// Vec3Spec is a JSON [x, y, z] triple
type Vec3Spec [3]float64

// Vec3 converts the triple to a vector
func (v Vec3Spec) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// ColorSpec accepts either a [r, g, b] triple in linear [0,1] or an SVG color name
type ColorSpec core.Color

// UnmarshalJSON decodes a triple or a color name
func (c *ColorSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		rgba, ok := colornames.Map[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown color name %q", name)
		}
		*c = ColorSpec(core.NewColor(float64(rgba.R)/255, float64(rgba.G)/255, float64(rgba.B)/255))
		return nil
	}

	var rgb [3]float64
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("color must be a name or [r, g, b]: %w", err)
	}
	*c = ColorSpec(core.NewColor(rgb[0], rgb[1], rgb[2]))
	return nil
}

// Color returns the decoded color
func (c ColorSpec) Color() core.Color {
	return core.Color(c)
}

// LoadSceneFile reads and builds a scene from a JSON file
func LoadSceneFile(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// ParseScene decodes a JSON scene and builds it
func ParseScene(r io.Reader) (*Scene, error) {
	var sf SceneFile
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	return sf.Build()
}

// Build converts the file representation into a renderable scene
func (sf *SceneFile) Build() (*Scene, error) {
	cameraConfig := sf.Camera.config()

	defaults := renderer.DefaultSamplingConfig()
	width := orDefault(sf.Sampling.Width, defaults.Width)
	samples := orDefault(sf.Sampling.SamplesPerPixel, defaults.SamplesPerPixel)
	depth := orDefault(sf.Sampling.MaxDepth, defaults.MaxDepth)

	s := newScene(sf.Name, cameraConfig, width, samples, depth)

	background, err := sf.Background.build()
	if err != nil {
		return nil, err
	}
	s.Background = background

	// Materials are built once so spheres naming the same entry share it
	materials := make(map[string]material.Material, len(sf.Materials))
	for name, spec := range sf.Materials {
		mat, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	for i, sphere := range sf.Spheres {
		mat, ok := materials[sphere.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, sphere.Material)
		}
		if sphere.Radius == 0 {
			return nil, fmt.Errorf("sphere %d: radius must not be zero", i)
		}
		s.Shapes.Add(geometry.NewSphere(sphere.Center.Vec3(), sphere.Radius, mat))
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (cs CameraSpec) config() renderer.CameraConfig {
	config := renderer.DefaultCameraConfig()
	if cs.LookFrom != nil {
		config.LookFrom = cs.LookFrom.Vec3()
	}
	if cs.LookAt != nil {
		config.LookAt = cs.LookAt.Vec3()
	}
	if cs.Up != nil {
		config.Up = cs.Up.Vec3()
	}
	if cs.VFov != nil {
		config.VFov = *cs.VFov * math.Pi / 180
	}
	if cs.AspectRatio != nil {
		config.AspectRatio = *cs.AspectRatio
	}
	if cs.Aperture != nil {
		config.Aperture = *cs.Aperture
	}
	if cs.FocusDistance != nil {
		config.FocusDistance = *cs.FocusDistance
	}
	return config
}

func (bs BackgroundSpec) build() (geometry.Background, error) {
	switch bs.Type {
	case "", "sky":
		return geometry.NewSkyBackground(), nil
	case "solid":
		if bs.Color == nil {
			return nil, fmt.Errorf("solid background requires a color")
		}
		return geometry.NewSolidBackground(bs.Color.Color()), nil
	case "gradient":
		if bs.Top == nil || bs.Bottom == nil {
			return nil, fmt.Errorf("gradient background requires top and bottom colors")
		}
		return geometry.NewGradientBackground(bs.Top.Color(), bs.Bottom.Color()), nil
	default:
		return nil, fmt.Errorf("unknown background type %q", bs.Type)
	}
}

func (ms MaterialSpec) build() (material.Material, error) {
	switch ms.Type {
	case "lambertian", "diffuse":
		if ms.Albedo == nil {
			return nil, fmt.Errorf("lambertian requires an albedo")
		}
		return material.NewLambertian(ms.Albedo.Color()), nil
	case "metal":
		if ms.Albedo == nil {
			return nil, fmt.Errorf("metal requires an albedo")
		}
		return material.NewMetal(ms.Albedo.Color(), ms.Fuzz), nil
	case "dielectric", "glass":
		if ms.Index <= 0 {
			return nil, fmt.Errorf("dielectric requires a positive index, got %f", ms.Index)
		}
		return material.NewDielectric(ms.Index), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", ms.Type)
	}
}

func orDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
