package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// MinHitDistance is the smallest t accepted for a hit, suppressing self-intersection
const MinHitDistance = 1e-6

// PathTracingIntegrator implements unidirectional path tracing with a fixed depth limit
type PathTracingIntegrator struct {
	MaxDepth int // Maximum number of ray segments traced per camera ray
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor computes the color for a single ray.
//
// Each bounce multiplies the path throughput by the material attenuation. The
// path ends with the background radiance when it escapes, or with black when a
// material absorbs it or the depth budget runs out.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world *geometry.World, sampler core.Sampler) core.Color {
	throughput := core.White

	for depth := pt.MaxDepth; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, MinHitDistance, math.Inf(1))
		if !isHit {
			return throughput.Multiply(world.BackgroundColor(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Black
		}

		throughput = throughput.Multiply(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce limit exceeded: no more light is gathered
	return core.Black
}
