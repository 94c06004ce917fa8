package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/chromagen/chromagen/internal/colour"
)

func formatTestPalette() *colour.Palette {
	return colour.NewPalette([]colour.Entry{
		{Hex: "#FF0000", RGB: "rgb(255, 0, 0)", HSL: "hsl(0, 100%, 50%)", Frequency: 30},
		{Hex: "#00FF00", RGB: "rgb(0, 255, 0)", HSL: "hsl(120, 100%, 50%)", Frequency: 10},
	})
}

func TestFormatPalette_Hex(t *testing.T) {
	out, err := formatPalette(formatTestPalette(), "hex", false)
	if err != nil {
		t.Fatalf("formatPalette returned error: %v", err)
	}
	if out != "#FF0000\n#00FF00\n" {
		t.Errorf("hex output = %q", out)
	}
}

func TestFormatPalette_RGB(t *testing.T) {
	out, err := formatPalette(formatTestPalette(), "rgb", false)
	if err != nil {
		t.Fatalf("formatPalette returned error: %v", err)
	}
	if out != "rgb(255, 0, 0)\nrgb(0, 255, 0)\n" {
		t.Errorf("rgb output = %q", out)
	}
}

func TestFormatPalette_JSON(t *testing.T) {
	out, err := formatPalette(formatTestPalette(), "json", false)
	if err != nil {
		t.Fatalf("formatPalette returned error: %v", err)
	}

	var decoded struct {
		Palette      []map[string]any `json:"palette"`
		ColoursFound int              `json:"colors_found"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("json output is not valid JSON: %v", err)
	}
	if decoded.ColoursFound != 2 {
		t.Errorf("colors_found = %d, want 2", decoded.ColoursFound)
	}
	if decoded.Palette[0]["hex"] != "#FF0000" {
		t.Errorf("first palette entry = %v", decoded.Palette[0])
	}
}

func TestFormatPalette_Table(t *testing.T) {
	out, err := formatPalette(formatTestPalette(), "table", false)
	if err != nil {
		t.Fatalf("formatPalette returned error: %v", err)
	}
	if !strings.Contains(out, "HEX") || !strings.Contains(out, "FREQUENCY") {
		t.Errorf("table output missing headers:\n%s", out)
	}
	if !strings.Contains(out, "#FF0000") || !strings.Contains(out, "hsl(120, 100%, 50%)") {
		t.Errorf("table output missing entries:\n%s", out)
	}
}

func TestFormatPalette_UnknownFormat(t *testing.T) {
	if _, err := formatPalette(formatTestPalette(), "yaml", false); err == nil {
		t.Error("unknown format should return an error")
	}
}
