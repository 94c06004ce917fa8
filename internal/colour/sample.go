package colour

import (
	"image"
	"image/color"
)

// Sample is one 8-bit RGB pixel read from the resized image.
type Sample struct {
	R, G, B uint8
}

// samplePixels flattens the image into a row-major sequence of samples.
// Duplicates are retained: the result is the full pixel population used
// for clustering and frequency counting.
func samplePixels(img image.Image) []Sample {
	bounds := img.Bounds()
	samples := make([]Sample, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// Non-premultiplied conversion so the alpha channel is
			// discarded rather than composited.
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			samples = append(samples, Sample{R: c.R, G: c.G, B: c.B})
		}
	}

	return samples
}

// uniqueSamples returns the distinct samples by exact channel equality,
// in first-seen order.
func uniqueSamples(samples []Sample) []Sample {
	seen := make(map[Sample]struct{}, len(samples))
	unique := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		unique = append(unique, s)
	}
	return unique
}
