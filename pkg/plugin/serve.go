// Package plugin provides the public API for chromagen optimizer plugins.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

// Serve starts the go-plugin server for an optimizer implementation.
// Plugin main functions call this after handling --plugin-info.
func Serve(impl OptimizerPlugin) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			"optimizer": &OptimizerPluginRPC{Impl: impl},
		},
	})
}
