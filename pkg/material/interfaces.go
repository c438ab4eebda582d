package material

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Kind tags which scattering model a Material uses
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

// String returns the lowercase name of the material kind
func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Material is a closed set of surface scattering models.
// Materials are immutable once built and may be shared by many spheres
// across render goroutines.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian and Metal reflectance
	Fuzzness        float64   // Metal only, in [0,1]
	RefractiveIndex float64   // Dielectric only
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, always facing against the ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  *Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Scatter returns the attenuation and scattered ray for rayIn at hit, or
// false when the ray is absorbed
func (m *Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	default:
		panic(fmt.Sprintf("material: unhandled %v", m.Kind))
	}
}

// Validate checks the parameters of the material's kind
func (m *Material) Validate() error {
	switch m.Kind {
	case KindLambertian, KindMetal:
		if !m.Albedo.IsFinite() || m.Albedo.X < 0 || m.Albedo.Y < 0 || m.Albedo.Z < 0 {
			return fmt.Errorf("%v albedo must be finite and non-negative, got %v", m.Kind, m.Albedo)
		}
		if m.Kind == KindMetal && (m.Fuzzness < 0 || m.Fuzzness > 1) {
			return fmt.Errorf("metal fuzzness must be in [0,1], got %f", m.Fuzzness)
		}
	case KindDielectric:
		if !(m.RefractiveIndex > 0) {
			return fmt.Errorf("dielectric refractive index must be positive, got %f", m.RefractiveIndex)
		}
	default:
		return fmt.Errorf("unknown material %v", m.Kind)
	}
	return nil
}
