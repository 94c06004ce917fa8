package optimizer

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/chromagen/chromagen/pkg/plugin"
)

// fakePlugin writes a shell script that answers --plugin-info with the
// given JSON payload.
func fakePlugin(t *testing.T, payload string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script plugins not supported on windows")
	}

	path := filepath.Join(t.TempDir(), "fake-optimizer")
	script := fmt.Sprintf("#!/bin/sh\necho '%s'\n", payload)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDetectProtocol(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantType plugin.PluginType
		wantErr  bool
	}{
		{
			"go-plugin",
			`{"name":"vibrance","type":"optimizer","version":"0.1.0","protocol_version":"0.0.1","plugin_protocol":"go-plugin"}`,
			plugin.PluginTypeGoPlugin,
			false,
		},
		{
			"json-stdio",
			`{"name":"reverse","type":"optimizer","plugin_protocol":"json-stdio"}`,
			plugin.PluginTypeJSON,
			false,
		},
		{
			"empty protocol defaults to json-stdio",
			`{"name":"legacy","type":"optimizer"}`,
			plugin.PluginTypeJSON,
			false,
		},
		{
			"unknown protocol",
			`{"name":"odd","plugin_protocol":"grpc"}`,
			"",
			true,
		},
		{
			"not json",
			`hello`,
			"",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := fakePlugin(t, tt.payload)
			result, err := DetectProtocol(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectProtocol error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if result.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", result.Type, tt.wantType)
			}
		})
	}
}

func TestDetectProtocol_MissingBinary(t *testing.T) {
	if _, err := DetectProtocol(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("DetectProtocol should fail for a missing binary")
	}
}
