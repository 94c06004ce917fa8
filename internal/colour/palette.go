// Package colour implements the palette extraction pipeline: pixel
// sampling, k-means clustering, dominance ranking, and colour formatting.
package colour

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Entry is a single ranked palette colour. Entries are immutable records:
// all fields are computed once from a cluster centroid and its population.
type Entry struct {
	// Hex is the colour as "#RRGGBB" with uppercase hex digits.
	Hex string `json:"hex"`
	// RGB is the colour as "rgb(r, g, b)" with integer channels in [0,255].
	RGB string `json:"rgb"`
	// HSL is the colour as "hsl(h, s%, l%)" with h in [0,360) and s,l in [0,100].
	HSL string `json:"hsl"`
	// Frequency is the number of pixels of the resized image assigned to
	// this colour's cluster.
	Frequency int `json:"frequency"`
}

// Palette is an ordered sequence of entries, descending by frequency.
type Palette struct {
	Entries []Entry
}

// NewPalette creates a new Palette with the given entries.
func NewPalette(entries []Entry) *Palette {
	return &Palette{Entries: entries}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Entries)
}

// TotalFrequency returns the sum of all entry frequencies. For a freshly
// extracted palette this equals the pixel count of the resized image.
func (p *Palette) TotalFrequency() int {
	total := 0
	for _, e := range p.Entries {
		total += e.Frequency
	}
	return total
}

// Get returns the entry at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (Entry, error) {
	if index < 0 || index >= len(p.Entries) {
		return Entry{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.Entries))
	}
	return p.Entries[index], nil
}

// ToHex returns the hex codes of all entries in rank order.
func (p *Palette) ToHex() []string {
	hexes := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		hexes[i] = e.Hex
	}
	return hexes
}

// PaletteJSON is the JSON shape of an extraction result.
type PaletteJSON struct {
	Palette      []Entry `json:"palette"`
	ColoursFound int     `json:"colors_found"`
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(PaletteJSON{
		Palette:      p.Entries,
		ColoursFound: len(p.Entries),
	}, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Entries) == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colours:\n", len(p.Entries))
	for i, e := range p.Entries {
		result += fmt.Sprintf("  %2d: %s %s %s (frequency: %d)\n", i+1, e.Hex, e.RGB, e.HSL, e.Frequency)
	}
	return result
}

// RGB represents a colour in 8-bit RGB.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as an uppercase hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// HSL converts the colour to hue/saturation/lightness.
// Hue is degrees in [0,360), saturation and lightness are in [0,1].
func (rgb RGB) HSL() (h, s, l float64) {
	c := colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
	return c.Hsl()
}

// HSLString returns the colour as "hsl(h, s%, l%)" with rounded integer
// components. A hue that rounds to 360 wraps to 0.
func (rgb RGB) HSLString() string {
	h, s, l := rgb.HSL()
	hue := int(math.Round(h)) % 360
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, int(math.Round(s*100)), int(math.Round(l*100)))
}

// ParseHex parses a "#RRGGBB" hex string into an RGB value.
func ParseHex(s string) (RGB, error) {
	var rgb RGB
	if len(s) != 7 || s[0] != '#' {
		return rgb, fmt.Errorf("invalid hex colour: %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &rgb.R, &rgb.G, &rgb.B); err != nil {
		return rgb, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return rgb, nil
}
