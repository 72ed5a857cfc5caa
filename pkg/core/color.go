package core

import "math"

// Color is a linear RGB radiance triple. Components are not clamped;
// clamping happens only when the image is encoded.
type Color struct {
	R, G, B float64
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromVec3 reinterprets a vector's components as r, g, b
func ColorFromVec3(v Vec3) Color {
	return Color{R: v.X, G: v.Y, B: v.Z}
}

// Add returns the component-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply returns the component-wise product of two colors
func (c Color) Multiply(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Scale returns the color scaled by a scalar
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Divide returns the color divided by a scalar
func (c Color) Divide(s float64) Color {
	return Color{c.R / s, c.G / s, c.B / s}
}

// Lerp linearly interpolates from c (t=0) to other (t=1)
func (c Color) Lerp(other Color, t float64) Color {
	return c.Scale(1 - t).Add(other.Scale(t))
}

// Gamma applies gamma 2.0 encoding (square root of each component)
func (c Color) Gamma() Color {
	return Color{
		R: math.Sqrt(c.R),
		G: math.Sqrt(c.G),
		B: math.Sqrt(c.B),
	}
}

// Clamp returns a color with components clamped to [minVal, maxVal]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
	}
}
