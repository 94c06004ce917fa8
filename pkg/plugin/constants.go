// Package plugin provides the public API for chromagen optimizer plugins.
package plugin

import (
	"fmt"

	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	// - Increment MAJOR for breaking changes (incompatible API changes).
	// - Increment MINOR for backward-compatible additions.
	// - Increment PATCH for backward-compatible bug fixes.
	ProtocolVersion = "0.0.1"

	// MinCompatibleVersion is the oldest protocol version this chromagen
	// version can work with.
	MinCompatibleVersion = "0.0.1"
)

// IsCompatible reports whether a plugin speaking the given protocol
// version can work with this host. Versions are MAJOR.MINOR.PATCH; the
// major component must match and the rest must be at least
// MinCompatibleVersion. An empty version is accepted for plugins that
// predate version reporting.
func IsCompatible(version string) bool {
	if version == "" {
		return true
	}
	v, ok := parseVersion(version)
	if !ok {
		return false
	}
	minimum, _ := parseVersion(MinCompatibleVersion)
	if v[0] != minimum[0] {
		return false
	}
	if v[1] != minimum[1] {
		return v[1] > minimum[1]
	}
	return v[2] >= minimum[2]
}

func parseVersion(s string) ([3]int, bool) {
	var v [3]int
	if _, err := fmt.Sscanf(s, "%d.%d.%d", &v[0], &v[1], &v[2]); err != nil {
		return v, false
	}
	return v, true
}

// Handshake is the handshake configuration for the go-plugin protocol.
// This ensures that plugins using go-plugin can only connect to compatible hosts.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  0, // Major version from ProtocolVersion
	MagicCookieKey:   "CHROMAGEN_PLUGIN",
	MagicCookieValue: "chromagen_palette_optimizer",
}

// PluginType defines the type of plugin communication protocol.
type PluginType string

const (
	// PluginTypeGoPlugin indicates the plugin uses HashiCorp go-plugin RPC protocol.
	PluginTypeGoPlugin PluginType = "go-plugin"

	// PluginTypeJSON indicates the plugin uses simple JSON over stdin/stdout.
	PluginTypeJSON PluginType = "json-stdio"
)
