package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// maxChannel keeps quantized channels below 256
const maxChannel = 0.999

// Image is a row-major buffer of colors. Row 0 is the top of the viewport.
type Image struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color at column x of row y
func (img *Image) At(x, y int) core.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// Set stores the color at column x of row y
func (img *Image) Set(x, y int, c core.Vec3) {
	img.Pixels[y*img.Width+x] = c
}

// QuantizeChannel maps a [0,1] channel to [0,255] by clamping to
// [0, 0.999] and truncating 256*c
func QuantizeChannel(c float64) uint8 {
	if math.IsNaN(c) {
		return 0
	}
	c = max(0, min(maxChannel, c))
	return uint8(256 * c)
}

// ToRGBA converts the image to an opaque image.RGBA using QuantizeChannel
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			rgba.SetRGBA(x, y, color.RGBA{
				R: QuantizeChannel(c.X),
				G: QuantizeChannel(c.Y),
				B: QuantizeChannel(c.Z),
				A: 255,
			})
		}
	}
	return rgba
}
