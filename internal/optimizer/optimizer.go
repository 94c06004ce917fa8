// Package optimizer provides the aesthetic-optimizer collaborator
// boundary: discovery, protocol detection, and execution of external
// optimizer plugins that reorder or filter an extracted palette.
package optimizer

import (
	"context"
	"fmt"

	"github.com/chromagen/chromagen/internal/colour"
	"github.com/chromagen/chromagen/pkg/plugin"
)

// Optimizer re-orders or filters a palette. Implementations must not
// grow the palette or alter entry encodings.
type Optimizer interface {
	// Optimize returns the optimized palette. The input palette is never
	// mutated.
	Optimize(ctx context.Context, palette *colour.Palette) (*colour.Palette, error)

	// Name returns the optimizer name for logging.
	Name() string
}

// Noop is the identity optimizer used when none is configured.
type Noop struct{}

// Optimize returns the palette unchanged.
func (Noop) Optimize(_ context.Context, palette *colour.Palette) (*colour.Palette, error) {
	return palette, nil
}

// Name returns the optimizer name.
func (Noop) Name() string { return "noop" }

// toWire converts a palette into the plugin payload shape.
func toWire(palette *colour.Palette) plugin.PaletteData {
	colours := make([]plugin.PaletteColour, len(palette.Entries))
	for i, e := range palette.Entries {
		colours[i] = plugin.PaletteColour{
			Hex:       e.Hex,
			RGB:       e.RGB,
			HSL:       e.HSL,
			Frequency: e.Frequency,
		}
	}
	return plugin.PaletteData{Palette: colours}
}

// fromWire rebuilds a palette from an optimizer response, enforcing the
// collaborator contract: the result may only reorder, filter, or re-tag
// entries of the input. Entry encodings are taken from the matched input
// entry, so a plugin cannot corrupt them.
func fromWire(input *colour.Palette, data plugin.PaletteData) (*colour.Palette, error) {
	if len(data.Palette) == 0 {
		return nil, fmt.Errorf("optimizer returned an empty palette")
	}
	if len(data.Palette) > len(input.Entries) {
		return nil, fmt.Errorf("optimizer grew the palette: %d entries in, %d out",
			len(input.Entries), len(data.Palette))
	}

	byHex := make(map[string]colour.Entry, len(input.Entries))
	for _, e := range input.Entries {
		byHex[e.Hex] = e
	}

	entries := make([]colour.Entry, 0, len(data.Palette))
	seen := make(map[string]bool, len(data.Palette))
	for _, c := range data.Palette {
		source, ok := byHex[c.Hex]
		if !ok {
			return nil, fmt.Errorf("optimizer invented colour %s", c.Hex)
		}
		if seen[c.Hex] {
			return nil, fmt.Errorf("optimizer duplicated colour %s", c.Hex)
		}
		seen[c.Hex] = true
		entries = append(entries, source)
	}

	return colour.NewPalette(entries), nil
}
