package writers

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// WritePPM encodes img as plain-text PPM (P3), one line per image row from
// top to bottom
func WritePPM(w io.Writer, img *renderer.Image) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return err
	}

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if x > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			c := img.At(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d",
				renderer.QuantizeChannel(c.X),
				renderer.QuantizeChannel(c.Y),
				renderer.QuantizeChannel(c.Z)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// SavePPM writes img to a PPM file at path
func SavePPM(path string, img *renderer.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WritePPM(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to write PPM %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
