// Package plugin provides the public API for chromagen optimizer plugins.
// External plugins should import this package instead of internal packages.
package plugin

// PaletteData is the palette payload exchanged with optimizer plugins.
type PaletteData struct {
	Palette    []PaletteColour `json:"palette"`
	PluginArgs map[string]any  `json:"plugin_args,omitempty"`
}

// PaletteColour is one ranked palette colour on the wire. Optimizers may
// reorder, drop, or re-tag colours, but must not alter the encodings or
// invent new colours.
type PaletteColour struct {
	Hex       string `json:"hex"`
	RGB       string `json:"rgb"`
	HSL       string `json:"hsl"`
	Frequency int    `json:"frequency"`
	Tag       string `json:"tag,omitempty"`
}

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Type            string `json:"type"` // always "optimizer"
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"` // "json-stdio" or "go-plugin"
}
