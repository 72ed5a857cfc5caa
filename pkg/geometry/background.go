package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Background supplies the radiance seen along rays that escape the scene
type Background interface {
	Evaluate(ray core.Ray) core.Color
}

// SolidBackground returns the same color in every direction
type SolidBackground struct {
	Color core.Color
}

// NewSolidBackground creates a uniform background
func NewSolidBackground(color core.Color) *SolidBackground {
	return &SolidBackground{Color: color}
}

// Evaluate implements Background
func (b *SolidBackground) Evaluate(ray core.Ray) core.Color {
	return b.Color
}

// GradientBackground blends vertically from BottomColor (straight down) to TopColor (straight up)
type GradientBackground struct {
	TopColor    core.Color
	BottomColor core.Color
}

// NewGradientBackground creates a vertical gradient background
func NewGradientBackground(topColor, bottomColor core.Color) *GradientBackground {
	return &GradientBackground{TopColor: topColor, BottomColor: bottomColor}
}

// Evaluate implements Background
func (b *GradientBackground) Evaluate(ray core.Ray) core.Color {
	direction := ray.Direction.Normalize()
	t := 0.5 * (direction.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return b.BottomColor.Lerp(b.TopColor, t)
}

// NewSkyBackground returns the white-to-blue sky gradient
func NewSkyBackground() *GradientBackground {
	return NewGradientBackground(core.NewColor(0.5, 0.7, 1.0), core.White)
}
