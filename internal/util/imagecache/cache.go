// Package imagecache provides an on-disk cache for remote image bytes,
// keyed by source URL.
package imagecache

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CacheOptions configures image caching behavior.
type CacheOptions struct {
	// CacheDir is the directory where images will be cached.
	// If empty, defaults to the user cache dir under chromagen/images.
	CacheDir string

	// Filename is the filename to use for the cached image.
	// If empty, uses a hash of the URL + original extension.
	Filename string

	// AllowOverwrite determines if existing cached files can be overwritten.
	// Default: false (reuse existing cached files).
	AllowOverwrite bool
}

// DefaultCacheDir returns the default cache directory path.
func DefaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to home directory if cache dir not available.
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "chromagen", "images"), nil
	}
	return filepath.Join(cacheDir, "chromagen", "images"), nil
}

// generateFilename creates a deterministic filename from a URL.
// Uses SHA256 hash of URL + original file extension.
func generateFilename(url string) string {
	hash := sha256.Sum256([]byte(url))
	hashStr := fmt.Sprintf("%x", hash[:16])

	ext := filepath.Ext(url)
	// Strip query parameters from the extension.
	if idx := strings.IndexByte(ext, '?'); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 {
		ext = ".img"
	}

	return hashStr + ext
}

// cachePath resolves the on-disk path for a URL under the given options.
func cachePath(url string, opts CacheOptions) (string, error) {
	cacheDir := opts.CacheDir
	if cacheDir == "" {
		defaultDir, err := DefaultCacheDir()
		if err != nil {
			return "", err
		}
		cacheDir = defaultDir
	}

	filename := opts.Filename
	if filename == "" {
		filename = generateFilename(url)
	}

	return filepath.Join(cacheDir, filename), nil
}

// Get returns the cached bytes for a URL, or an error if not cached.
func Get(url string, opts CacheOptions) ([]byte, error) {
	path, err := cachePath(url, opts)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 - Cache path derived from hashed URL
	if err != nil {
		return nil, fmt.Errorf("image not cached: %w", err)
	}

	return data, nil
}

// Put stores image bytes for a URL in the cache. An existing entry is
// kept unless AllowOverwrite is set.
func Put(url string, data []byte, opts CacheOptions) error {
	path, err := cachePath(url, opts)
	if err != nil {
		return err
	}

	if !opts.AllowOverwrite {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - Cache files need standard read permissions
		return fmt.Errorf("failed to write cached image: %w", err)
	}

	return nil
}
