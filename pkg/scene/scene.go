package scene

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	World          *geometry.HittableList // Objects in the scene, in insertion order
	SamplingConfig SamplingConfig
}

// SamplingConfig contains the scene's preferred render parameters
type SamplingConfig struct {
	Width           int     `json:"width,omitempty"`           // Image width; height follows from the camera aspect ratio
	SamplesPerPixel int     `json:"samplesPerPixel,omitempty"` // Number of rays per pixel
	MaxDepth        int     `json:"maxDepth,omitempty"`        // Maximum ray bounce depth
	FarClip         float64 `json:"farClip,omitempty"`         // Far bound for scene queries (0 = renderer default)
}

// newScene builds the camera from cameraConfig and wraps the world
func newScene(cameraConfig renderer.CameraConfig, samplingConfig SamplingConfig, shapes ...geometry.Shape) *Scene {
	return &Scene{
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          geometry.NewHittableList(shapes...),
		SamplingConfig: samplingConfig,
	}
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld returns the scene aggregate
func (s *Scene) GetWorld() geometry.Shape {
	return s.World
}

// ImageHeight returns the image height matching width and the camera aspect ratio
func (s *Scene) ImageHeight(width int) int {
	return max(1, int(float64(width)/s.CameraConfig.AspectRatio))
}

// RenderConfig fills base with the scene's preferred size and sampling.
// Zero fields of the sampling config leave base unchanged.
func (s *Scene) RenderConfig(base renderer.Config) renderer.Config {
	config := base
	if s.SamplingConfig.Width > 0 {
		config.Width = s.SamplingConfig.Width
	}
	if s.SamplingConfig.SamplesPerPixel > 0 {
		config.SamplesPerPixel = s.SamplingConfig.SamplesPerPixel
	}
	if s.SamplingConfig.MaxDepth > 0 {
		config.MaxDepth = s.SamplingConfig.MaxDepth
	}
	if s.SamplingConfig.FarClip > 0 {
		config.TMax = s.SamplingConfig.FarClip
	}
	config.Height = s.ImageHeight(config.Width)
	return config
}

// Validate checks the camera and every sphere in the world
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("scene has no camera")
	}
	if !(s.CameraConfig.VFov > 0 && s.CameraConfig.VFov < 180) {
		return fmt.Errorf("camera vertical field of view must be in (0, 180), got %f", s.CameraConfig.VFov)
	}
	if !(s.CameraConfig.AspectRatio > 0) {
		return fmt.Errorf("camera aspect ratio must be positive, got %f", s.CameraConfig.AspectRatio)
	}
	if s.CameraConfig.Center.Subtract(s.CameraConfig.LookAt).NearZero() {
		return fmt.Errorf("camera center and look-at point coincide at %v", s.CameraConfig.Center)
	}
	if s.CameraConfig.Aperture < 0 {
		return fmt.Errorf("camera aperture must not be negative, got %f", s.CameraConfig.Aperture)
	}

	for i, shape := range s.World.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			continue
		}
		if err := sphere.Validate(); err != nil {
			return fmt.Errorf("sphere %d: %w", i, err)
		}
	}
	return nil
}
