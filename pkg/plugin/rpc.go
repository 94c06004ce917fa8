// Package plugin provides the public API for chromagen optimizer plugins.
package plugin

import (
	"context"
	"encoding/json"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// OptimizerPluginRPC implements the go-plugin Plugin interface for
// optimizer plugins.
type OptimizerPluginRPC struct {
	plugin.Plugin
	Impl OptimizerPlugin
}

// Server returns an RPC server for this plugin.
func (p *OptimizerPluginRPC) Server(*plugin.MuxBroker) (any, error) {
	return &OptimizerPluginRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *OptimizerPluginRPC) Client(b *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &OptimizerPluginRPCClient{client: c}, nil
}

// OptimizerPluginRPCServer is the RPC server implementation for
// optimizer plugins.
type OptimizerPluginRPCServer struct {
	Impl OptimizerPlugin
}

// Optimize implements the RPC method for palette optimization.
// The payload crosses the wire as JSON so plugin authors can evolve
// PaletteData fields without breaking gob compatibility.
func (s *OptimizerPluginRPCServer) Optimize(args []byte, resp *[]byte) error {
	var palette PaletteData
	if err := json.Unmarshal(args, &palette); err != nil {
		return err
	}

	result, err := s.Impl.Optimize(context.Background(), palette)
	if err != nil {
		return err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	*resp = data
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *OptimizerPluginRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// OptimizerPluginRPCClient is the RPC client implementation for
// optimizer plugins.
type OptimizerPluginRPCClient struct {
	client *rpc.Client
}

// Optimize calls the remote Optimize method.
func (c *OptimizerPluginRPCClient) Optimize(_ context.Context, palette PaletteData) (PaletteData, error) {
	args, err := json.Marshal(palette)
	if err != nil {
		return PaletteData{}, err
	}

	var respBytes []byte
	if err := c.client.Call("Plugin.Optimize", args, &respBytes); err != nil {
		return PaletteData{}, err
	}

	var result PaletteData
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return PaletteData{}, err
	}

	return result, nil
}

// GetMetadata calls the remote GetMetadata method.
func (c *OptimizerPluginRPCClient) GetMetadata() (PluginInfo, error) {
	var info PluginInfo
	err := c.client.Call("Plugin.GetMetadata", new(any), &info)
	return info, err
}
