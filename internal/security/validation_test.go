package security

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid https", "https://github.com/owner/repo/releases/plugin.tar.gz", false},
		{"http rejected", "http://example.com/plugin", true},
		{"empty", "", true},
		{"no host", "https://", true},
		{"localhost", "https://localhost/x", true},
		{"loopback ip", "https://127.0.0.1/x", true},
		{"private ip", "https://192.168.1.10/x", true},
		{"ten range", "https://10.0.0.5/x", true},
		{"link local", "https://169.254.0.1/x", true},
		{"file scheme", "file:///etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHTTPURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePluginPath(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		path    string
		wantErr bool
	}{
		{"inside", "/opt/plugins", "/opt/plugins/vibrance", false},
		{"base itself", "/opt/plugins", "/opt/plugins", false},
		{"escape with dotdot", "/opt/plugins", "/opt/plugins/../../etc/passwd", true},
		{"sibling prefix", "/opt/plugins", "/opt/plugins-evil/x", true},
		{"empty", "/opt/plugins", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePluginPath(tt.base, tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePluginPath(%q, %q) error = %v, wantErr %v", tt.base, tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple", "plugin", false},
		{"nested", "bin/plugin", false},
		{"traversal", "../evil", true},
		{"hidden traversal", "a/../../evil", true},
		{"absolute", "/etc/passwd", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.path, "/tmp/extract")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestLimitedReader(t *testing.T) {
	src := strings.NewReader("0123456789")
	var out bytes.Buffer

	_, err := io.Copy(&out, NewLimitedReader(src, 4))
	if err == nil {
		t.Fatal("copy past the limit should fail")
	}
	if out.Len() > 4 {
		t.Errorf("read %d bytes, limit was 4", out.Len())
	}
}

func TestLimitedReader_UnderLimit(t *testing.T) {
	src := strings.NewReader("data")
	var out bytes.Buffer

	if _, err := io.Copy(&out, NewLimitedReader(src, 100)); err != nil {
		t.Fatalf("copy under the limit failed: %v", err)
	}
	if out.String() != "data" {
		t.Errorf("read %q, want %q", out.String(), "data")
	}
}
