package imagecache

import (
	"bytes"
	"strings"
	"testing"
)

func TestPutAndGet(t *testing.T) {
	opts := CacheOptions{CacheDir: t.TempDir()}
	url := "https://example.com/wallpaper.png"
	data := []byte("image bytes")

	if _, err := Get(url, opts); err == nil {
		t.Fatal("Get before Put should fail")
	}

	if err := Put(url, data, opts); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, err := Get(url, opts)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Get = %q, want %q", got, data)
	}
}

func TestPut_KeepsExistingEntry(t *testing.T) {
	opts := CacheOptions{CacheDir: t.TempDir()}
	url := "https://example.com/a.jpg"

	if err := Put(url, []byte("first"), opts); err != nil {
		t.Fatal(err)
	}
	if err := Put(url, []byte("second"), opts); err != nil {
		t.Fatal(err)
	}

	got, err := Get(url, opts)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "first" {
		t.Errorf("cache entry overwritten without AllowOverwrite: %q", got)
	}

	overwrite := opts
	overwrite.AllowOverwrite = true
	if err := Put(url, []byte("third"), overwrite); err != nil {
		t.Fatal(err)
	}
	got, err = Get(url, opts)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "third" {
		t.Errorf("AllowOverwrite did not replace entry: %q", got)
	}
}

func TestGenerateFilename(t *testing.T) {
	a := generateFilename("https://example.com/photo.png")
	b := generateFilename("https://example.com/photo.png")
	c := generateFilename("https://example.com/other.png")

	if a != b {
		t.Error("same URL should produce the same filename")
	}
	if a == c {
		t.Error("different URLs should produce different filenames")
	}
	if !strings.HasSuffix(a, ".png") {
		t.Errorf("filename %q should keep the .png extension", a)
	}

	// Query strings and weird extensions fall back to .img.
	if got := generateFilename("https://example.com/image"); !strings.HasSuffix(got, ".img") {
		t.Errorf("extensionless URL filename = %q, want .img suffix", got)
	}
}

func TestCachePath_DistinctURLsDistinctPaths(t *testing.T) {
	opts := CacheOptions{CacheDir: "/cache"}
	a, err := cachePath("https://a.example/x.png", opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := cachePath("https://b.example/x.png", opts)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("different URLs should cache to different paths")
	}
}
