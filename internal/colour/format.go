package colour

import "math"

// entryFromCentroid converts a cluster centroid and its population into a
// palette entry. Centroid channels are rounded to the nearest integer and
// clamped to [0,255]; out-of-range values are an expected floating-point
// artifact of clustering, so clamping is silent.
func entryFromCentroid(c point3, population int) Entry {
	rgb := RGB{
		R: clampChannel(c.R),
		G: clampChannel(c.G),
		B: clampChannel(c.B),
	}
	return Entry{
		Hex:       rgb.Hex(),
		RGB:       rgb.String(),
		HSL:       rgb.HSLString(),
		Frequency: population,
	}
}

// clampChannel rounds a float channel to the nearest integer in [0,255].
func clampChannel(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
