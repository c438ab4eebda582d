package integrator

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along ray with at most depth bounces
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3
}

// Config bounds the parametric window used for every scene query
type Config struct {
	TMin float64 // Offset that keeps scattered rays off their own surface
	TMax float64 // Far bound; geometry beyond it is clipped to sky
}

// DefaultConfig returns the bounds suited to scenes of roughly 100 units
func DefaultConfig() Config {
	return Config{
		TMin: 0.001,
		TMax: 100.0,
	}
}
