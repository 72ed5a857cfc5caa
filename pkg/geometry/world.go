package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// World pairs the scene geometry with the background seen by escaping rays.
// It is built once and only read during rendering.
type World struct {
	Shapes     Shape
	Background Background
}

// NewWorld creates a world. A nil background is treated as black.
func NewWorld(shapes Shape, background Background) *World {
	if background == nil {
		background = NewSolidBackground(core.Black)
	}
	return &World{Shapes: shapes, Background: background}
}

// Hit delegates to the wrapped geometry
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if w.Shapes == nil {
		return nil, false
	}
	return w.Shapes.Hit(ray, tMin, tMax)
}

// BackgroundColor returns the background radiance along the ray
func (w *World) BackgroundColor(ray core.Ray) core.Color {
	return w.Background.Evaluate(ray)
}
