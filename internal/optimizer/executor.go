package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os/exec"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"
	ps "github.com/mitchellh/go-ps"

	"github.com/chromagen/chromagen/internal/colour"
	"github.com/chromagen/chromagen/pkg/plugin"
)

// Executor runs an external optimizer plugin, speaking whichever
// protocol the binary advertises. Failures at the plugin boundary are
// contained: Optimize logs a warning and returns the input palette
// rather than propagating a broken result.
type Executor struct {
	path         string
	protocolType plugin.PluginType
	info         plugin.PluginInfo
	client       *goplugin.Client
	rpcClient    *plugin.OptimizerPluginRPCClient
	runner       ProcessRunner
	logger       hclog.Logger
	verbose      bool
}

// NewExecutor creates an Executor by detecting the plugin's protocol.
func NewExecutor(pluginPath string) (*Executor, error) {
	return NewExecutorWithVerbose(pluginPath, false)
}

// NewExecutorWithVerbose creates an Executor with verbose logging control.
func NewExecutorWithVerbose(pluginPath string, verbose bool) (*Executor, error) {
	result, err := DetectProtocol(pluginPath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect plugin protocol: %w", err)
	}

	if !plugin.IsCompatible(result.Info.ProtocolVersion) {
		return nil, fmt.Errorf("plugin %s speaks protocol %s, need at least %s",
			result.Info.Name, result.Info.ProtocolVersion, plugin.MinCompatibleVersion)
	}

	var logger hclog.Logger
	if verbose {
		logger = hclog.New(&hclog.LoggerOptions{
			Name:   "optimizer",
			Output: log.Writer(),
			Level:  hclog.Debug,
		})
	} else {
		logger = hclog.New(&hclog.LoggerOptions{
			Name:   "optimizer",
			Output: io.Discard,
			Level:  hclog.Off,
		})
	}

	return &Executor{
		path:         pluginPath,
		protocolType: result.Type,
		info:         result.Info,
		runner:       &RealProcessRunner{},
		logger:       logger,
		verbose:      verbose,
	}, nil
}

// Name returns the plugin's advertised name.
func (e *Executor) Name() string {
	if e.info.Name != "" {
		return e.info.Name
	}
	return filepath.Base(e.path)
}

// Info returns the plugin's metadata.
func (e *Executor) Info() plugin.PluginInfo { return e.info }

// Optimize sends the palette to the plugin and validates the response.
// A plugin that errors, grows the palette, or invents colours is
// ignored: the original palette is returned with a warning logged.
func (e *Executor) Optimize(ctx context.Context, palette *colour.Palette) (*colour.Palette, error) {
	data := toWire(palette)

	var (
		result plugin.PaletteData
		err    error
	)
	switch e.protocolType {
	case plugin.PluginTypeGoPlugin:
		result, err = e.optimizeGoPlugin(ctx, data)
	case plugin.PluginTypeJSON:
		result, err = e.optimizeJSON(ctx, data)
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
	if err != nil {
		e.logger.Warn("optimizer failed, keeping original palette",
			"plugin", e.Name(), "error", err)
		return palette, nil
	}

	optimized, err := fromWire(palette, result)
	if err != nil {
		e.logger.Warn("optimizer returned an invalid palette, keeping original",
			"plugin", e.Name(), "error", err)
		return palette, nil
	}

	return optimized, nil
}

// Close tears down the plugin process if one is running.
func (e *Executor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.rpcClient = nil
	}
	e.warnOrphans()
}

// warnOrphans reports plugin processes that survived shutdown.
func (e *Executor) warnOrphans() {
	name := filepath.Base(e.path)
	procs, err := ps.Processes()
	if err != nil {
		return
	}
	for _, p := range procs {
		if p.Executable() == name {
			e.logger.Warn("plugin process still running after shutdown",
				"pid", p.Pid(), "executable", name)
		}
	}
}

func (e *Executor) getRPCClient() (*plugin.OptimizerPluginRPCClient, error) {
	if e.rpcClient != nil {
		return e.rpcClient, nil
	}

	e.client = goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: plugin.Handshake,
		Plugins: map[string]goplugin.Plugin{
			"optimizer": &plugin.OptimizerPluginRPC{},
		},
		Cmd:              exec.Command(e.path),
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           e.logger,
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense("optimizer")
	if err != nil {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	e.rpcClient = raw.(*plugin.OptimizerPluginRPCClient)
	return e.rpcClient, nil
}

func (e *Executor) optimizeGoPlugin(ctx context.Context, data plugin.PaletteData) (plugin.PaletteData, error) {
	client, err := e.getRPCClient()
	if err != nil {
		return plugin.PaletteData{}, err
	}
	return client.Optimize(ctx, data)
}

func (e *Executor) optimizeJSON(ctx context.Context, data plugin.PaletteData) (plugin.PaletteData, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return plugin.PaletteData{}, fmt.Errorf("failed to marshal palette: %w", err)
	}

	stdout, stderr, err := e.runner.Run(ctx, e.path, nil, bytes.NewReader(payload))
	if err != nil {
		if len(stderr) > 0 {
			return plugin.PaletteData{}, fmt.Errorf("plugin execution failed: %w\nstderr: %s", err, stderr)
		}
		return plugin.PaletteData{}, fmt.Errorf("plugin execution failed: %w", err)
	}

	var result plugin.PaletteData
	if err := json.Unmarshal(stdout, &result); err != nil {
		return plugin.PaletteData{}, fmt.Errorf("failed to parse plugin output: %w", err)
	}

	return result, nil
}
