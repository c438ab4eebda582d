package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Color is a linear RGB triple. In JSON it is either [r, g, b] or a CSS
// color name such as "steelblue".
type Color core.Vec3

func (c *Color) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		rgba, ok := colornames.Map[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown color name %q", name)
		}
		*c = Color{X: float64(rgba.R) / 255, Y: float64(rgba.G) / 255, Z: float64(rgba.B) / 255}
		return nil
	}

	var rgb [3]float64
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("color must be [r, g, b] or a color name: %w", err)
	}
	*c = Color{X: rgb[0], Y: rgb[1], Z: rgb[2]}
	return nil
}

// Vec3 returns the color as a vector
func (c Color) Vec3() core.Vec3 {
	return core.Vec3(c)
}

type CameraCfg struct {
	Center        [3]float64 `json:"center"`
	LookAt        [3]float64 `json:"lookAt"`
	Up            [3]float64 `json:"up,omitempty"` // defaults to +y
	VFov          float64    `json:"vfov"`
	AspectRatio   float64    `json:"aspectRatio,omitempty"` // defaults to 16:9
	Aperture      float64    `json:"aperture,omitempty"`
	FocusDistance float64    `json:"focusDistance,omitempty"`
}

type MaterialCfg struct {
	Type            string  `json:"type"` // lambertian, metal or dielectric
	Albedo          Color   `json:"albedo"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractiveIndex float64 `json:"ir,omitempty"`
}

type SphereCfg struct {
	Center   [3]float64  `json:"center"`
	Radius   float64     `json:"radius"`
	Material MaterialCfg `json:"material"`
}

// FileConfig is the JSON form of a scene
type FileConfig struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Group       string         `json:"group,omitempty"`
	Camera      CameraCfg      `json:"camera"`
	Sampling    SamplingConfig `json:"sampling"`
	Spheres     []SphereCfg    `json:"spheres"`
}

func vec(a [3]float64) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}

// Build validates and constructs the camera configuration.
func (cc CameraCfg) Build() (renderer.CameraConfig, error) {
	up := vec(cc.Up)
	if up.NearZero() {
		up = core.NewVec3(0, 1, 0)
	}
	aspect := cc.AspectRatio
	if aspect == 0 {
		aspect = 16.0 / 9.0
	}
	if !(cc.VFov > 0 && cc.VFov < 180) {
		return renderer.CameraConfig{}, fmt.Errorf("vfov must be in (0, 180), got %f", cc.VFov)
	}
	if aspect < 0 || cc.Aperture < 0 {
		return renderer.CameraConfig{}, fmt.Errorf("aspect ratio and aperture must not be negative")
	}
	return renderer.CameraConfig{
		Center:        vec(cc.Center),
		LookAt:        vec(cc.LookAt),
		Up:            up,
		VFov:          cc.VFov,
		AspectRatio:   aspect,
		Aperture:      cc.Aperture,
		FocusDistance: cc.FocusDistance,
	}, nil
}

// Build validates and constructs the runtime material.
func (mc MaterialCfg) Build() (*material.Material, error) {
	var mat *material.Material
	switch strings.ToLower(mc.Type) {
	case "lambertian", "diffuse":
		mat = material.NewLambertian(mc.Albedo.Vec3())
	case "metal":
		// NewMetal clamps fuzz, so check the raw value first
		mat = &material.Material{Kind: material.KindMetal, Albedo: mc.Albedo.Vec3(), Fuzzness: mc.Fuzz}
	case "dielectric", "glass":
		mat = material.NewDielectric(mc.RefractiveIndex)
	default:
		return nil, fmt.Errorf("unknown material type %q", mc.Type)
	}
	if err := mat.Validate(); err != nil {
		return nil, err
	}
	return mat, nil
}

// Build validates and constructs the runtime sphere.
func (sc SphereCfg) Build() (*geometry.Sphere, error) {
	mat, err := sc.Material.Build()
	if err != nil {
		return nil, err
	}
	sphere := geometry.NewSphere(vec(sc.Center), sc.Radius, mat)
	if err := sphere.Validate(); err != nil {
		return nil, err
	}
	return sphere, nil
}

// Build validates and constructs the scene.
func (fc FileConfig) Build() (*Scene, error) {
	cameraConfig, err := fc.Camera.Build()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	if fc.Sampling.Width < 0 || fc.Sampling.SamplesPerPixel < 0 || fc.Sampling.MaxDepth < 0 || fc.Sampling.FarClip < 0 {
		return nil, fmt.Errorf("sampling parameters must not be negative, got %+v", fc.Sampling)
	}

	shapes := make([]geometry.Shape, 0, len(fc.Spheres))
	for i, sc := range fc.Spheres {
		sphere, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		shapes = append(shapes, sphere)
	}

	s := newScene(cameraConfig, fc.Sampling, shapes...)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseFileConfig decodes a JSON scene, rejecting unknown fields
func ParseFileConfig(data []byte) (*FileConfig, error) {
	var cfg FileConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads and builds a JSON scene file
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	cfg, err := ParseFileConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}
	s, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid scene file %s: %w", path, err)
	}
	return s, nil
}
