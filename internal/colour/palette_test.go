package colour

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"
)

func TestRGB_Hex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{"black", RGB{0, 0, 0}, "#000000"},
		{"white", RGB{255, 255, 255}, "#FFFFFF"},
		{"red", RGB{255, 0, 0}, "#FF0000"},
		{"mixed", RGB{26, 43, 60}, "#1A2B3C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRGB_String(t *testing.T) {
	rgb := RGB{R: 12, G: 200, B: 0}
	want := "rgb(12, 200, 0)"
	if got := rgb.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRGB_HSLString(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{"red", RGB{255, 0, 0}, "hsl(0, 100%, 50%)"},
		{"green", RGB{0, 255, 0}, "hsl(120, 100%, 50%)"},
		{"blue", RGB{0, 0, 255}, "hsl(240, 100%, 50%)"},
		{"white", RGB{255, 255, 255}, "hsl(0, 0%, 100%)"},
		{"black", RGB{0, 0, 0}, "hsl(0, 0%, 0%)"},
		{"grey", RGB{128, 128, 128}, "hsl(0, 0%, 50%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.HSLString(); got != tt.want {
				t.Errorf("HSLString() = %q, want %q", got, tt.want)
			}
		})
	}
}

// A hue that rounds up to 360 must wrap to 0 so hue stays in [0,360).
func TestRGB_HSLString_HueWraps(t *testing.T) {
	// RGB(255, 0, 1) has hue 359.76, which rounds to 360.
	got := RGB{255, 0, 1}.HSLString()
	if !strings.HasPrefix(got, "hsl(0, ") {
		t.Errorf("HSLString() = %q, want hue wrapped to 0", got)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{"valid uppercase", "#FF8000", RGB{255, 128, 0}, false},
		{"valid lowercase", "#ff8000", RGB{255, 128, 0}, false},
		{"black", "#000000", RGB{0, 0, 0}, false},
		{"missing hash", "FF8000", RGB{}, true},
		{"too short", "#FFF", RGB{}, true},
		{"empty", "", RGB{}, true},
		{"garbage", "#ZZZZZZ", RGB{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPalette_Get(t *testing.T) {
	p := NewPalette([]Entry{
		{Hex: "#FF0000", Frequency: 10},
		{Hex: "#00FF00", Frequency: 5},
	})

	entry, err := p.Get(1)
	if err != nil {
		t.Fatalf("Get(1) returned error: %v", err)
	}
	if entry.Hex != "#00FF00" {
		t.Errorf("Get(1).Hex = %q, want %q", entry.Hex, "#00FF00")
	}

	if _, err := p.Get(2); err == nil {
		t.Error("Get(2) should return error for out-of-bounds index")
	}
	if _, err := p.Get(-1); err == nil {
		t.Error("Get(-1) should return error for negative index")
	}
}

func TestPalette_ToJSON(t *testing.T) {
	p := NewPalette([]Entry{
		{Hex: "#FF0000", RGB: "rgb(255, 0, 0)", HSL: "hsl(0, 100%, 50%)", Frequency: 8},
		{Hex: "#0000FF", RGB: "rgb(0, 0, 255)", HSL: "hsl(240, 100%, 50%)", Frequency: 4},
	})

	data, err := p.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() returned error: %v", err)
	}

	var decoded struct {
		Palette []struct {
			Hex       string `json:"hex"`
			RGB       string `json:"rgb"`
			HSL       string `json:"hsl"`
			Frequency int    `json:"frequency"`
		} `json:"palette"`
		ColoursFound int `json:"colors_found"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal ToJSON output: %v", err)
	}

	if decoded.ColoursFound != 2 {
		t.Errorf("colors_found = %d, want 2", decoded.ColoursFound)
	}
	if len(decoded.Palette) != 2 {
		t.Fatalf("palette length = %d, want 2", len(decoded.Palette))
	}
	if decoded.Palette[0].Hex != "#FF0000" || decoded.Palette[0].Frequency != 8 {
		t.Errorf("first entry = %+v, want #FF0000 with frequency 8", decoded.Palette[0])
	}
}

func TestPalette_TotalFrequency(t *testing.T) {
	p := NewPalette([]Entry{
		{Frequency: 8}, {Frequency: 4}, {Frequency: 0},
	})
	if got := p.TotalFrequency(); got != 12 {
		t.Errorf("TotalFrequency() = %d, want 12", got)
	}
}

var hexPattern = regexp.MustCompile(`^#[0-9A-F]{6}$`)

func TestEntryFromCentroid(t *testing.T) {
	entry := entryFromCentroid(point3{R: 254.6, G: 0.4, B: 300}, 7)

	if !hexPattern.MatchString(entry.Hex) {
		t.Errorf("Hex = %q, want uppercase #RRGGBB", entry.Hex)
	}
	// Channels round (254.6 -> 255, 0.4 -> 0) and clamp (300 -> 255).
	if entry.Hex != "#FF00FF" {
		t.Errorf("Hex = %q, want #FF00FF", entry.Hex)
	}
	if entry.RGB != "rgb(255, 0, 255)" {
		t.Errorf("RGB = %q, want rgb(255, 0, 255)", entry.RGB)
	}
	if entry.Frequency != 7 {
		t.Errorf("Frequency = %d, want 7", entry.Frequency)
	}
}

func TestClampChannel(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-5, 0}, {0, 0}, {0.5, 1}, {127.4, 127}, {255, 255}, {260, 255},
	}
	for _, tt := range tests {
		if got := clampChannel(tt.in); got != tt.want {
			t.Errorf("clampChannel(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
