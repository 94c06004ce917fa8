// Package compression extracts optimizer plugin binaries from
// downloaded archives and compressed files.
package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// maxDecompressedSize caps extraction output to guard against
// decompression bombs.
const maxDecompressedSize = 100 * 1024 * 1024

// ExtractResult describes where the plugin file ended up.
type ExtractResult struct {
	// Path to the extracted plugin file.
	Path string
	// WasArchive is true when the input was an archive rather than a
	// direct file.
	WasArchive bool
}

// archiveExts lists recognised archive and compression suffixes.
var archiveExts = []string{
	".tar.gz", ".tgz", ".tar.xz", ".txz", ".tar.bz2", ".tbz", ".tbz2",
	".zip", ".gz", ".xz", ".bz2",
}

// Extract detects the format of downloaded plugin data by filename and
// extracts the plugin binary into destDir. Unrecognised formats are
// written out as direct plugin files.
func Extract(data []byte, filename, destDir string) (*ExtractResult, error) {
	switch {
	case hasSuffix(filename, ".tar.gz", ".tgz"):
		return extractTar(gzipOpener(data), destDir)
	case hasSuffix(filename, ".tar.xz", ".txz"):
		return extractTar(xzOpener(data), destDir)
	case hasSuffix(filename, ".tar.bz2", ".tbz", ".tbz2"):
		return extractTar(bzip2Opener(data), destDir)
	case hasSuffix(filename, ".zip"):
		return extractZip(data, destDir)
	case hasSuffix(filename, ".gz"):
		return decompressSingle(gzipOpener(data), strings.TrimSuffix(filename, ".gz"), destDir)
	case hasSuffix(filename, ".xz"):
		return decompressSingle(xzOpener(data), strings.TrimSuffix(filename, ".xz"), destDir)
	case hasSuffix(filename, ".bz2"):
		return decompressSingle(bzip2Opener(data), strings.TrimSuffix(filename, ".bz2"), destDir)
	}

	// Not an archive, treat as a direct plugin file.
	destPath := filepath.Join(destDir, filename)
	if err := os.WriteFile(destPath, data, 0o755); err != nil {
		return nil, fmt.Errorf("failed to write plugin file: %w", err)
	}
	return &ExtractResult{Path: destPath, WasArchive: false}, nil
}

// BaseName strips archive extensions and release suffixes from a
// filename, e.g. "chromagen-optimizer-vibrance_0.1.0_Linux_x86_64.tar.gz"
// becomes "chromagen-optimizer-vibrance".
func BaseName(filename string) string {
	base := filename
	for _, ext := range archiveExts {
		if before, ok := strings.CutSuffix(base, ext); ok {
			base = before
			break
		}
	}
	if idx := strings.Index(base, "_"); idx > 0 {
		return base[:idx]
	}
	return base
}

func hasSuffix(name string, exts ...string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// opener produces a fresh decompressing reader over the raw data. Tar
// extraction needs two passes, so the stream must be reopenable.
type opener func() (io.Reader, error)

func gzipOpener(data []byte) opener {
	return func() (io.Reader, error) {
		return gzip.NewReader(bytes.NewReader(data))
	}
}

func xzOpener(data []byte) opener {
	return func() (io.Reader, error) {
		return xz.NewReader(bytes.NewReader(data))
	}
}

func bzip2Opener(data []byte) opener {
	return func() (io.Reader, error) {
		return bzip2.NewReader(bytes.NewReader(data)), nil
	}
}
