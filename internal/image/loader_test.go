package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	img, err := Decode(testPNG(t, 10, 10))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Errorf("decoded bounds = %v, want 10x10", img.Bounds())
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("not an image at all")},
		{"truncated png header", []byte("\x89PNG\r\n\x1a\n\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			if err == nil {
				t.Fatal("Decode should fail")
			}
			if !errors.Is(err, ErrDecode) {
				t.Errorf("error = %v, want ErrDecode", err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		wantW, wantH   int
	}{
		{"small image untouched", 50, 80, 50, 80},
		{"exactly at bound", 200, 200, 200, 200},
		{"wide image downscaled", 400, 200, 200, 100},
		{"tall image downscaled", 100, 400, 50, 200},
		{"square oversized", 800, 800, 200, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, tt.width, tt.height))
			got := Normalize(img)
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("Normalize(%dx%d) bounds = %dx%d, want %dx%d",
					tt.width, tt.height, got.Bounds().Dx(), got.Bounds().Dy(), tt.wantW, tt.wantH)
			}
			if got.Bounds().Dx() > MaxDimension || got.Bounds().Dy() > MaxDimension {
				t.Errorf("Normalize result exceeds MaxDimension: %v", got.Bounds())
			}
		})
	}
}

func TestNormalize_PreservesPixelsWithinBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(2, 3, color.NRGBA{R: 9, G: 8, B: 7, A: 255})

	got := Normalize(img)
	if c := got.NRGBAAt(2, 3); c.R != 9 || c.G != 8 || c.B != 7 {
		t.Errorf("pixel (2,3) = %v, want {9 8 7 255}", c)
	}
}

func TestFileLoader_Read(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	data := testPNG(t, 5, 5)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewFileLoader()
	got, err := loader.Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("Read returned different bytes than written")
	}
}

func TestFileLoader_Read_Errors(t *testing.T) {
	loader := NewFileLoader()

	if _, err := loader.Read(""); err == nil {
		t.Error("Read with empty path should fail")
	}
	if _, err := loader.Read(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Read of missing file should fail")
	}
	if _, err := loader.Read(t.TempDir()); err == nil {
		t.Error("Read of directory should fail")
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "ok.png")
	if err := os.WriteFile(valid, testPNG(t, 3, 3), 0o644); err != nil {
		t.Fatal(err)
	}
	bogus := filepath.Join(dir, "bogus.png")
	if err := os.WriteFile(bogus, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateImagePath(valid); err != nil {
		t.Errorf("ValidateImagePath(valid png) = %v", err)
	}
	if err := ValidateImagePath(dir); err != nil {
		t.Errorf("ValidateImagePath(directory) = %v", err)
	}
	if err := ValidateImagePath("https://example.com/image.png"); err != nil {
		t.Errorf("ValidateImagePath(url) = %v", err)
	}
	if err := ValidateImagePath(""); err == nil {
		t.Error("ValidateImagePath(empty) should fail")
	}
	if err := ValidateImagePath(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("ValidateImagePath(missing) should fail")
	}
	if err := ValidateImagePath(bogus); !errors.Is(err, ErrDecode) {
		t.Errorf("ValidateImagePath(bogus) = %v, want ErrDecode", err)
	}
}

func TestScanDirectoryForImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.jpg", "notes.txt", "c.webp"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := ScanDirectoryForImages(dir)
	if err != nil {
		t.Fatalf("ScanDirectoryForImages returned error: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("found %d images, want 3: %v", len(files), files)
	}
}

func TestScanDirectoryForImages_Empty(t *testing.T) {
	if _, err := ScanDirectoryForImages(t.TempDir()); err == nil {
		t.Error("empty directory should return an error")
	}
}

func TestResolveImagePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "only.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A file resolves to itself.
	got, err := ResolveImagePath(path)
	if err != nil {
		t.Fatalf("ResolveImagePath(file) returned error: %v", err)
	}
	if got != path {
		t.Errorf("ResolveImagePath(file) = %q, want %q", got, path)
	}

	// A directory resolves to one of its images.
	got, err = ResolveImagePath(dir)
	if err != nil {
		t.Fatalf("ResolveImagePath(dir) returned error: %v", err)
	}
	if got != path {
		t.Errorf("ResolveImagePath(dir) = %q, want %q", got, path)
	}

	// URLs pass through untouched.
	url := "https://example.com/wallpaper.jpg"
	got, err = ResolveImagePath(url)
	if err != nil {
		t.Fatalf("ResolveImagePath(url) returned error: %v", err)
	}
	if got != url {
		t.Errorf("ResolveImagePath(url) = %q, want %q", got, url)
	}
}
