package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken
	AverageSamples   float64       // Average samples per pixel
	Workers          int           // Number of row bands rendered in parallel
	Elapsed          time.Duration // Wall time from dispatch to join
	AverageLuminance float64       // Mean Rec. 709 luminance of the final image
}

// CalculateAverageLuminance returns the mean luminance of the image using
// Rec. 709 weights
func CalculateAverageLuminance(img *Image) float64 {
	if len(img.Pixels) == 0 {
		return 0
	}

	var sum float64
	for _, c := range img.Pixels {
		sum += 0.2126*c.X + 0.7152*c.Y + 0.0722*c.Z
	}
	return sum / float64(len(img.Pixels))
}
