package optimizer

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/chromagen/chromagen/pkg/plugin"
)

// detectTimeout bounds the --plugin-info query.
const detectTimeout = 5 * time.Second

// DetectorResult describes which protocol a plugin binary speaks.
type DetectorResult struct {
	Type plugin.PluginType
	Info plugin.PluginInfo
}

// DetectProtocol queries a plugin binary for its metadata and determines
// which execution protocol to use.
func DetectProtocol(pluginPath string) (*DetectorResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), detectTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, pluginPath, "--plugin-info")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin: %w", err)
	}

	var info plugin.PluginInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse plugin info: %w", err)
	}

	result := &DetectorResult{Info: info}
	switch info.PluginProtocol {
	case string(plugin.PluginTypeGoPlugin):
		result.Type = plugin.PluginTypeGoPlugin
	case string(plugin.PluginTypeJSON), "":
		// Empty defaults to json-stdio for backward compatibility.
		result.Type = plugin.PluginTypeJSON
	default:
		return nil, fmt.Errorf("unknown plugin_protocol: %s", info.PluginProtocol)
	}

	return result, nil
}
