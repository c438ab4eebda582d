package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// NewDefaultScene creates a default scene with three spheres on a large ground sphere
func NewDefaultScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(-2, 2, 1), // Above and to the left of the spheres
		LookAt:        core.NewVec3(0, 0, -1), // Look at the center sphere
		Up:            core.NewVec3(0, 1, 0),  // Standard up direction
		AspectRatio:   16.0 / 9.0,
		VFov:          30.0,
		Aperture:      0.0, // Pinhole
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	samplingConfig := SamplingConfig{
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	// Create materials
	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)
	materialGlass := material.NewDielectric(1.5)

	ground := geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGround)
	sphereCenter := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertianBlue)
	sphereRight := geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, metalGold)

	// Hollow glass sphere: the negative radius flips the inner surface's normals
	hollowGlassOuter := geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialGlass)
	hollowGlassInner := geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, materialGlass)

	return newScene(cameraConfig, samplingConfig,
		ground, sphereCenter, hollowGlassOuter, hollowGlassInner, sphereRight)
}
