package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// testScene implements Scene for testing
type testScene struct {
	camera *Camera
	world  geometry.Shape
}

func (s testScene) GetCamera() *Camera       { return s.camera }
func (s testScene) GetWorld() geometry.Shape { return s.world }

func newSingleSphereScene(aperture float64) testScene {
	return testScene{
		camera: NewCamera(CameraConfig{
			Center:      core.NewVec3(0, 0, 0),
			LookAt:      core.NewVec3(0, 0, -1),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        60,
			AspectRatio: 1,
			Aperture:    aperture,
		}),
		world: geometry.NewHittableList(
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
		),
	}
}

func TestBands(t *testing.T) {
	tests := []struct {
		name       string
		height     int
		numWorkers int
		expected   []RowBand
	}{
		{"even split", 8, 4, []RowBand{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"remainder to last band", 10, 3, []RowBand{{0, 3}, {3, 6}, {6, 10}}},
		{"single worker", 5, 1, []RowBand{{0, 5}}},
		{"more workers than rows", 3, 8, []RowBand{{0, 1}, {1, 2}, {2, 3}}},
		{"zero workers treated as one", 4, 0, []RowBand{{0, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := Bands(tt.height, tt.numWorkers)
			if len(bands) != len(tt.expected) {
				t.Fatalf("Expected %d bands, got %d: %v", len(tt.expected), len(bands), bands)
			}
			for i := range bands {
				if bands[i] != tt.expected[i] {
					t.Errorf("Band %d: expected %v, got %v", i, tt.expected[i], bands[i])
				}
			}
		})
	}

	if Bands(0, 4) != nil {
		t.Error("Expected no bands for an empty image")
	}
}

func TestBands_CoverEveryRowOnce(t *testing.T) {
	for height := 1; height <= 40; height++ {
		for workers := 1; workers <= 12; workers++ {
			covered := make([]int, height)
			for _, band := range Bands(height, workers) {
				for j := band.Start; j < band.End; j++ {
					covered[j]++
				}
			}
			for j, c := range covered {
				if c != 1 {
					t.Fatalf("height %d, workers %d: row %d covered %d times", height, workers, j, c)
				}
			}
		}
	}
}

func TestRaytracer_DeterministicAcrossWorkerCounts(t *testing.T) {
	for _, aperture := range []float64{0, 0.2} {
		scene := newSingleSphereScene(aperture)
		config := DefaultConfig()
		config.Width = 8
		config.Height = 8
		config.SamplesPerPixel = 4
		config.MaxDepth = 10

		config.NumWorkers = 1
		reference, _ := NewRaytracer(scene, config, nil).Render()

		for _, workers := range []int{2, 3, 8, 16} {
			config.NumWorkers = workers
			img, stats := NewRaytracer(scene, config, nil).Render()

			for k := range reference.Pixels {
				if img.Pixels[k] != reference.Pixels[k] {
					t.Fatalf("aperture %v, %d workers: pixel %d differs: %v vs %v",
						aperture, workers, k, img.Pixels[k], reference.Pixels[k])
				}
			}
			if stats.Workers != min(workers, config.Height) {
				t.Errorf("Expected %d workers, got %d", min(workers, config.Height), stats.Workers)
			}
		}
	}
}

func TestRaytracer_SeedChangesNoise(t *testing.T) {
	scene := newSingleSphereScene(0)
	config := DefaultConfig()
	config.Width, config.Height, config.SamplesPerPixel, config.NumWorkers = 8, 8, 2, 2

	a, _ := NewRaytracer(scene, config, nil).Render()
	config.Seed++
	b, _ := NewRaytracer(scene, config, nil).Render()

	differs := false
	for k := range a.Pixels {
		if a.Pixels[k] != b.Pixels[k] {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("Expected different seeds to produce different noise")
	}
}

func TestRaytracer_EmptySceneIsSkyGradient(t *testing.T) {
	scene := testScene{
		camera: NewCamera(CameraConfig{
			Center:      core.NewVec3(0, 0, 0),
			LookAt:      core.NewVec3(0, 0, -1),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        90,
			AspectRatio: 1,
		}),
		world: geometry.NewHittableList(),
	}

	config := DefaultConfig()
	config.Width, config.Height, config.SamplesPerPixel, config.NumWorkers = 4, 6, 8, 3
	img, stats := NewRaytracer(scene, config, nil).Render()

	if stats.TotalPixels != 24 || stats.TotalSamples != 24*8 || stats.AverageSamples != 8 {
		t.Errorf("Unexpected stats %+v", stats)
	}

	// Top rows look upward, so they are bluer (lower red) than bottom rows
	rowRed := func(j int) float64 {
		sum := 0.0
		for i := 0; i < img.Width; i++ {
			sum += img.At(i, j).X
		}
		return sum
	}
	for j := 1; j < img.Height; j++ {
		if rowRed(j-1) >= rowRed(j) {
			t.Errorf("Row %d should be bluer than row %d: %f vs %f", j-1, j, rowRed(j-1), rowRed(j))
		}
	}

	// The sky's blue channel is 1 everywhere, so it always clamps
	for _, c := range img.Pixels {
		if math.Abs(c.Z-maxChannel) > 1e-9 {
			t.Errorf("Expected clamped blue channel, got %v", c)
		}
	}
}

func TestRaytracer_PixelMatchesAveragedGammaColor(t *testing.T) {
	scene := newSingleSphereScene(0)
	config := DefaultConfig()
	config.Width, config.Height, config.SamplesPerPixel, config.NumWorkers = 3, 3, 5, 1
	config.MaxDepth = 4

	rt := NewRaytracer(scene, config, nil)
	img, _ := rt.Render()

	// Replay row 1's generator by hand
	pt := integrator.NewPathTracingIntegrator(integrator.Config{TMin: config.TMin, TMax: config.TMax})
	sampler := core.NewSeededSampler(core.RowSeed(config.Seed, 1))
	for i := 0; i < config.Width; i++ {
		var sum core.Vec3
		for k := 0; k < config.SamplesPerPixel; k++ {
			jitter := sampler.Get2D()
			s := (float64(i) + jitter.X) / 3
			tt := (1 + jitter.Y) / 3
			ray := scene.camera.GetRay(s, tt, sampler)
			sum = sum.Add(pt.RayColor(ray, scene.world, sampler, config.MaxDepth))
		}
		avg := sum.Multiply(1.0 / 5)
		expected := avg.GammaCorrect(2.0).Clamp(0, maxChannel)
		if img.At(i, 1) != expected {
			t.Errorf("Pixel (%d,1): expected %v, got %v", i, expected, img.At(i, 1))
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name      string
		modify    func(c *Config)
		expectErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"zero samples", func(c *Config) { c.SamplesPerPixel = 0 }, true},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, true},
		{"zero depth allowed", func(c *Config) { c.MaxDepth = 0 }, false},
		{"negative workers", func(c *Config) { c.NumWorkers = -2 }, true},
		{"inverted bounds", func(c *Config) { c.TMax = c.TMin }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.modify(&c)
			err := c.Validate()
			if tt.expectErr && err == nil {
				t.Error("Expected error, got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
