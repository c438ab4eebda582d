package writers

import (
	"fmt"
	"io"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Format is an output image encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// ParseFormat accepts "ppm" or "png" in any case
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPPM, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format %q (want ppm or png)", s)
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type of the encoding
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/x-portable-pixmap"
}

// Save writes img to path in format f
func Save(path string, img *renderer.Image, f Format) error {
	if f == FormatPNG {
		return SavePNG(path, img)
	}
	return SavePPM(path, img)
}

// Write encodes img to w in format f
func Write(w io.Writer, img *renderer.Image, f Format) error {
	if f == FormatPNG {
		return WritePNG(w, img)
	}
	return WritePPM(w, img)
}
