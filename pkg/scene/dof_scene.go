package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// dofSphereCount is the number of spheres receding from the camera
const dofSphereCount = 7

// NewDOFScene creates a diagonal row of spheres with a wide aperture focused
// on the middle one, so the near and far spheres blur
func NewDOFScene() *Scene {
	spacing := 1.2
	middle := core.NewVec3(0, 0, -float64(dofSphereCount/2)*spacing-2)

	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(1.5, 0.6, 1),
		LookAt:        middle,
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          35.0,
		Aperture:      0.4, // Strong depth of field blur
		FocusDistance: 0.0, // Focus on the look-at sphere
	}

	samplingConfig := SamplingConfig{
		Width:           400,
		SamplesPerPixel: 150,
		MaxDepth:        30,
	}

	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000.5, 0), 1000, material.NewLambertian(core.NewVec3(0.45, 0.45, 0.5))),
	}

	// Alternate materials along the row
	for i := 0; i < dofSphereCount; i++ {
		center := core.NewVec3(float64(i%2)*0.6-0.3, 0, -float64(i)*spacing-2)

		var mat *material.Material
		switch i % 3 {
		case 0:
			mat = material.NewLambertian(oklchToRGB(0.7, 0.15, float64(i)*360/dofSphereCount))
		case 1:
			mat = material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.05)
		default:
			mat = material.NewDielectric(1.5)
		}
		shapes = append(shapes, geometry.NewSphere(center, 0.5, mat))
	}

	return newScene(cameraConfig, samplingConfig, shapes...)
}
