// Package plugin provides the public API for chromagen optimizer plugins.
package plugin

import (
	"context"
)

// OptimizerPlugin is the interface optimizer plugins must implement for
// go-plugin RPC.
type OptimizerPlugin interface {
	// Optimize returns a re-ordered or filtered version of the palette.
	// The result must be the same size or smaller and may only contain
	// colours present in the input.
	Optimize(ctx context.Context, palette PaletteData) (PaletteData, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}
