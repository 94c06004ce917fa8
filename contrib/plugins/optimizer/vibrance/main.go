// Vibrance is a chromagen optimizer plugin that reorders a palette by
// saturation, most vivid colours first.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/chromagen/chromagen/pkg/plugin"
)

const (
	pluginName        = "vibrance"
	pluginDescription = "Reorder palette colours by saturation, most vivid first"
	pluginVersion     = "0.1.0"
)

// VibranceOptimizer sorts palette colours by HSL saturation.
type VibranceOptimizer struct{}

// Optimize reorders the palette by descending saturation. Ties keep
// their original relative order.
func (VibranceOptimizer) Optimize(_ context.Context, data plugin.PaletteData) (plugin.PaletteData, error) {
	colours := make([]plugin.PaletteColour, len(data.Palette))
	copy(colours, data.Palette)

	sort.SliceStable(colours, func(i, j int) bool {
		return saturation(colours[i].Hex) > saturation(colours[j].Hex)
	})

	return plugin.PaletteData{Palette: colours, PluginArgs: data.PluginArgs}, nil
}

// GetMetadata returns the plugin's metadata.
func (VibranceOptimizer) GetMetadata() plugin.PluginInfo {
	return pluginInfo()
}

func pluginInfo() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:            pluginName,
		Type:            "optimizer",
		Version:         pluginVersion,
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     pluginDescription,
		PluginProtocol:  string(plugin.PluginTypeGoPlugin),
	}
}

// saturation computes HSL saturation from a #RRGGBB hex string.
// Unparseable values sort last.
func saturation(hex string) float64 {
	if len(hex) != 7 || hex[0] != '#' {
		return -1
	}

	parse := func(s string) float64 {
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return -1
		}
		return float64(v) / 255
	}

	r, g, b := parse(hex[1:3]), parse(hex[3:5]), parse(hex[5:7])
	if r < 0 || g < 0 || b < 0 {
		return -1
	}

	maxC := max(r, g, b)
	minC := min(r, g, b)
	if maxC == minC {
		return 0
	}

	l := (maxC + minC) / 2
	d := maxC - minC
	if l > 0.5 {
		return d / (2 - maxC - minC)
	}
	return d / (maxC + minC)
}

func main() {
	if len(os.Args) >= 2 && os.Args[1] == "--plugin-info" {
		out, err := json.Marshal(pluginInfo())
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to marshal plugin info: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	plugin.Serve(VibranceOptimizer{})
}
