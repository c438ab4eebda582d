package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains the fixed parameters of one render
type Config struct {
	Width           int     // Image width in pixels
	Height          int     // Image height in pixels
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	NumWorkers      int     // Number of parallel workers (0 = use CPU count)
	Seed            int64   // Base seed; row generators derive from it
	TMin            float64 // Self-intersection offset for scene queries
	TMax            float64 // Far bound for scene queries; farther geometry is clipped
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	integratorConfig := integrator.DefaultConfig()
	return Config{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      0,
		Seed:            42,
		TMin:            integratorConfig.TMin,
		TMax:            integratorConfig.TMax,
	}
}

// Validate reports the first parameter that cannot produce an image
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	case c.NumWorkers < 0:
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	case c.TMin < 0 || c.TMax <= c.TMin:
		return fmt.Errorf("ray bounds must satisfy 0 <= tMin < tMax, got [%f, %f]", c.TMin, c.TMax)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene      Scene
	config     Config
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a new raytracer using the path tracing integrator
func NewRaytracer(scene Scene, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		scene:  scene,
		config: config,
		integrator: integrator.NewPathTracingIntegrator(integrator.Config{
			TMin: config.TMin,
			TMax: config.TMax,
		}),
		logger: logger,
	}
}

// Render draws every pixel of the image in parallel row bands and blocks
// until all bands are finished
func (rt *Raytracer) Render() (*Image, RenderStats) {
	start := time.Now()
	img := NewImage(rt.config.Width, rt.config.Height)

	pool := NewWorkerPool(rt, rt.config.Height, rt.config.NumWorkers)
	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, depth %d, %d workers\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth, pool.GetNumWorkers())

	totalSamples := pool.Run(img)

	stats := RenderStats{
		TotalPixels:  rt.config.Width * rt.config.Height,
		TotalSamples: totalSamples,
		Workers:      pool.GetNumWorkers(),
		Elapsed:      time.Since(start),
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	stats.AverageLuminance = CalculateAverageLuminance(img)

	rt.logger.Printf("Render completed in %v (%d samples, average luminance %.3f)\n",
		stats.Elapsed, stats.TotalSamples, stats.AverageLuminance)
	return img, stats
}

// RenderRows renders rows [rowStart, rowEnd) into img and returns the
// number of samples taken. Each row draws from its own generator seeded
// by row index, so output does not depend on which worker runs it.
func (rt *Raytracer) RenderRows(img *Image, rowStart, rowEnd int) int {
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()
	samples := 0

	for j := rowStart; j < rowEnd; j++ {
		sampler := core.NewSeededSampler(core.RowSeed(rt.config.Seed, j))
		for i := 0; i < rt.config.Width; i++ {
			img.Set(i, j, rt.samplePixel(camera, world, i, j, sampler))
			samples += rt.config.SamplesPerPixel
		}
	}

	return samples
}

// samplePixel averages jittered samples for pixel (i, j) and applies
// gamma-2 correction and clamping
func (rt *Raytracer) samplePixel(camera *Camera, world geometry.Shape, i, j int, sampler core.Sampler) core.Vec3 {
	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}

	// Image row 0 is the top, viewport t=0 is the bottom
	row := float64(rt.config.Height - 1 - j)
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		jitter := sampler.Get2D()
		s := (float64(i) + jitter.X) / float64(rt.config.Width)
		t := (row + jitter.Y) / float64(rt.config.Height)

		ray := camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, world, sampler, rt.config.MaxDepth))
	}

	colorVec := colorAccum.Multiply(1.0 / float64(rt.config.SamplesPerPixel))
	return colorVec.GammaCorrect(2.0).Clamp(0.0, maxChannel)
}
