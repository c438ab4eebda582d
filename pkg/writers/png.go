package writers

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// SavePNG writes img to a PNG file at path using the same 8-bit
// quantization as the PPM writer
func SavePNG(path string, img *renderer.Image) error {
	if err := gg.SavePNG(path, img.ToRGBA()); err != nil {
		return fmt.Errorf("failed to save PNG %s: %w", path, err)
	}
	return nil
}

// WritePNG encodes img as PNG to w
func WritePNG(w io.Writer, img *renderer.Image) error {
	return gg.NewContextForRGBA(img.ToRGBA()).EncodePNG(w)
}
