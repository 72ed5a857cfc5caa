package renderer

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width in pixels
	Height          int // Image height in pixels
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum number of ray segments per sample
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Validate checks that the config describes a renderable image
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

// ProgressCallback is notified after each completed pixel. It is called from
// worker goroutines and must be safe for concurrent use.
type ProgressCallback func(completed, total int)

// Raytracer renders a world through a camera into a pixel buffer
type Raytracer struct {
	world      *geometry.World
	camera     *Camera
	config     SamplingConfig
	integrator integrator.Integrator
	numWorkers int
	seed       uint64
	logger     core.Logger
	progress   ProgressCallback
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world *geometry.World, camera *Camera, config SamplingConfig) *Raytracer {
	return &Raytracer{
		world:      world,
		camera:     camera,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		seed:       42, // Deterministic unless overridden
		logger:     NewDefaultLogger(),
	}
}

// SetNumWorkers sets the worker count; 0 uses one worker per CPU
func (rt *Raytracer) SetNumWorkers(numWorkers int) {
	rt.numWorkers = numWorkers
}

// SetSeed sets the seed all per-pixel random streams derive from
func (rt *Raytracer) SetSeed(seed uint64) {
	rt.seed = seed
}

// SetLogger replaces the logger; nil restores the default
func (rt *Raytracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	rt.logger = logger
}

// SetProgressCallback registers a per-pixel progress observer
func (rt *Raytracer) SetProgressCallback(callback ProgressCallback) {
	rt.progress = callback
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// Render samples every pixel and returns the gamma-encoded colors in row-major
// order, row 0 at the top of the image
func (rt *Raytracer) Render() ([]core.Color, RenderStats) {
	width, height := rt.config.Width, rt.config.Height
	if width <= 0 || height <= 0 {
		return nil, RenderStats{}
	}

	start := time.Now()
	total := width * height
	pixels := make([]core.Color, total)
	var completed atomic.Int64

	pool := NewWorkerPool(rt.numWorkers, width, func(task PixelTask) {
		// Each task owns exactly one slot of pixels
		pixels[task.Index] = rt.renderPixel(task.X, task.Y)

		done := int(completed.Add(1))
		if rt.progress != nil {
			rt.progress(done, total)
		}
	})

	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, max depth %d, %d workers\n",
		width, height, rt.config.SamplesPerPixel, rt.config.MaxDepth, pool.GetNumWorkers())

	pool.Start()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pool.SubmitTask(PixelTask{Index: y*width + x, X: x, Y: y})
		}
	}
	pool.Stop()

	stats := RenderStats{
		TotalPixels:     total,
		TotalSamples:    total * rt.config.SamplesPerPixel,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		MaxDepth:        rt.config.MaxDepth,
		NumWorkers:      pool.GetNumWorkers(),
		Elapsed:         time.Since(start),
	}
	rt.logger.Printf("Render completed in %v (%d samples, %.0f samples/sec)\n",
		stats.Elapsed, stats.TotalSamples, stats.SamplesPerSecond())

	return pixels, stats
}

// renderPixel averages the samples of one pixel and gamma-encodes the result.
// The random stream depends only on the seed and the pixel, never on scheduling.
func (rt *Raytracer) renderPixel(x, y int) core.Color {
	width, height := rt.config.Width, rt.config.Height
	sampler := core.NewSeededSampler(rt.seed, uint64(y*width+x))

	// Camera t grows upwards while rows grow downwards
	row := height - 1 - y

	var stats PixelStats
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		jitter := sampler.Get2D()
		s := (float64(x) + jitter.X) / float64(width)
		t := (float64(row) + jitter.Y) / float64(height)

		ray := rt.camera.GetRay(s, t, sampler)
		stats.AddSample(rt.integrator.RayColor(ray, rt.world, sampler))
	}

	return stats.GetColor().Gamma()
}
