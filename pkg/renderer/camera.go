package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains the parameters a camera is built from
type CameraConfig struct {
	LookFrom      core.Vec3 // Eye position
	LookAt        core.Vec3 // Point the camera is aimed at
	Up            core.Vec3 // World up direction
	VFov          float64   // Vertical field of view in radians
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter, 0 for a pinhole
	FocusDistance float64   // Distance to the plane in perfect focus
}

// DefaultCameraConfig returns a pinhole camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          math.Pi / 2,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.0,
		FocusDistance: 1.0,
	}
}

// Validate reports configurations that would produce a degenerate camera basis
func (c CameraConfig) Validate() error {
	if c.VFov <= 0 || c.VFov >= math.Pi {
		return fmt.Errorf("vertical field of view must be in (0, π), got %f", c.VFov)
	}
	if c.AspectRatio <= 0 {
		return fmt.Errorf("aspect ratio must be positive, got %f", c.AspectRatio)
	}
	if c.Aperture < 0 {
		return fmt.Errorf("aperture must not be negative, got %f", c.Aperture)
	}
	if c.FocusDistance <= 0 {
		return fmt.Errorf("focus distance must be positive, got %f", c.FocusDistance)
	}
	view := c.LookFrom.Subtract(c.LookAt)
	if view.NearZero() {
		return fmt.Errorf("look-from and look-at must differ")
	}
	if c.Up.Cross(view).NearZero() {
		return fmt.Errorf("up vector must not be parallel to the view direction")
	}
	return nil
}

// Camera generates rays through a thin lens
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	config          CameraConfig
}

// NewCamera precomputes the camera basis and viewport from the config
func NewCamera(config CameraConfig) *Camera {
	viewportHeight := 2.0 * math.Tan(config.VFov/2)
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(config.FocusDistance * viewportWidth)
	vertical := v.Multiply(config.FocusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(config.FocusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		config:          config,
	}
}

// GetRay generates a ray for image-plane coordinates (s, t), where (0,0) is the
// lower-left corner and (1,1) the upper-right corner of the viewport
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// GetCenterRay casts the ray through (s, t) from the lens center
func (c *Camera) GetCenterRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)
	return core.NewRay(c.origin, direction)
}

// GetCameraForward returns the unit viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// Config returns the parameters the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
