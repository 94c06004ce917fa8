package compression

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chromagen/chromagen/internal/security"
)

// extractTar extracts the plugin binary from a compressed tar archive.
// The first pass picks the best candidate, the second extracts it.
func extractTar(open opener, destDir string) (*ExtractResult, error) {
	r, err := open()
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	tr := tar.NewReader(r)
	var (
		target   string
		priority int
		found    []string
	)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		found = append(found, header.Name)
		p := candidatePriority(header.Name, header.FileInfo().Mode())
		if target == "" || p > priority {
			target, priority = header.Name, p
		}
	}

	if target == "" {
		return nil, fmt.Errorf("no files found in archive")
	}
	if priority < 50 && len(found) > 1 {
		return nil, fmt.Errorf("multiple files in archive and none is executable (found: %v)", found)
	}

	r, err = open()
	if err != nil {
		return nil, fmt.Errorf("failed to reopen archive: %w", err)
	}
	tr = tar.NewReader(r)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("file %q vanished from archive", target)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}
		if header.Name != target {
			continue
		}

		if err := security.ValidateFilePath(header.Name, destDir); err != nil {
			return nil, err
		}
		destPath := filepath.Join(destDir, filepath.Base(target))
		if err := writePluginFile(destPath, tr); err != nil {
			return nil, err
		}
		return &ExtractResult{Path: destPath, WasArchive: true}, nil
	}
}

// extractZip extracts the plugin binary from a zip archive.
func extractZip(data []byte, destDir string) (*ExtractResult, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read zip archive: %w", err)
	}

	var (
		target   *zip.File
		priority int
		found    []string
	)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		found = append(found, f.Name)
		p := candidatePriority(f.Name, f.Mode())
		if target == nil || p > priority {
			target, priority = f, p
		}
	}

	if target == nil {
		return nil, fmt.Errorf("no files found in archive")
	}
	if priority < 50 && len(found) > 1 {
		return nil, fmt.Errorf("multiple files in archive and none is executable (found: %v)", found)
	}

	if err := security.ValidateFilePath(target.Name, destDir); err != nil {
		return nil, err
	}

	rc, err := target.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open archive entry: %w", err)
	}
	defer rc.Close()

	destPath := filepath.Join(destDir, filepath.Base(target.Name))
	if err := writePluginFile(destPath, rc); err != nil {
		return nil, err
	}
	return &ExtractResult{Path: destPath, WasArchive: true}, nil
}

// decompressSingle handles standalone compressed files (.gz, .xz, .bz2).
func decompressSingle(open opener, filename, destDir string) (*ExtractResult, error) {
	r, err := open()
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed file: %w", err)
	}

	destPath := filepath.Join(destDir, filename)
	if err := writePluginFile(destPath, r); err != nil {
		return nil, err
	}
	return &ExtractResult{Path: destPath, WasArchive: false}, nil
}

// candidatePriority ranks archive entries: executables win, anything
// else is a weak fallback.
func candidatePriority(name string, mode os.FileMode) int {
	if mode&0o111 != 0 {
		return 80
	}
	return 10
}

// writePluginFile copies plugin data to destPath with a size cap and
// makes it executable.
func writePluginFile(destPath string, r io.Reader) error {
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create plugin file: %w", err)
	}

	limited := security.NewLimitedReader(r, maxDecompressedSize)
	_, copyErr := io.Copy(out, limited)
	closeErr := out.Close()

	if copyErr != nil {
		return fmt.Errorf("failed to extract plugin: %w", copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close plugin file: %w", closeErr)
	}

	if err := os.Chmod(destPath, 0o755); err != nil {
		return fmt.Errorf("failed to make plugin executable: %w", err)
	}
	return nil
}
