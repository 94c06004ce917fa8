package optimizer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chromagen/chromagen/internal/compression"
	"github.com/chromagen/chromagen/internal/security"
	httputil "github.com/chromagen/chromagen/internal/util/http"
	"github.com/chromagen/chromagen/pkg/plugin"
)

// pluginDirEnv overrides the default plugin directory.
const pluginDirEnv = "CHROMAGEN_PLUGIN_DIR"

// InstalledPlugin describes a plugin binary found in the plugin directory.
type InstalledPlugin struct {
	Path string
	Info plugin.PluginInfo
}

// PluginDir returns the directory optimizer plugins are installed to.
func PluginDir() (string, error) {
	if dir := os.Getenv(pluginDirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "chromagen", "plugins"), nil
}

// Resolve locates a plugin by name or path. A value containing a path
// separator or pointing at an existing file is used directly; otherwise
// the plugin directory is searched.
func Resolve(nameOrPath string) (string, error) {
	if strings.ContainsRune(nameOrPath, os.PathSeparator) {
		return nameOrPath, nil
	}
	if _, err := os.Stat(nameOrPath); err == nil {
		return nameOrPath, nil
	}

	dir, err := PluginDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, nameOrPath)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("optimizer %q not found in %s", nameOrPath, dir)
	}
	return path, nil
}

// List returns the plugins installed in the plugin directory, sorted by
// name. Binaries that do not answer --plugin-info are skipped.
func List() ([]InstalledPlugin, error) {
	dir, err := PluginDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read plugin directory: %w", err)
	}

	var plugins []InstalledPlugin
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		result, err := DetectProtocol(path)
		if err != nil {
			continue
		}
		plugins = append(plugins, InstalledPlugin{Path: path, Info: result.Info})
	}

	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Info.Name < plugins[j].Info.Name
	})
	return plugins, nil
}

// Install fetches a plugin from a local path or HTTP URL, extracts it if
// archived, verifies that it answers --plugin-info, and places it in the
// plugin directory. It returns the installed path.
func Install(ctx context.Context, source string) (string, error) {
	dir, err := PluginDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create plugin directory: %w", err)
	}

	var (
		data []byte
		name string
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if err := security.ValidateHTTPURL(source); err != nil {
			return "", err
		}
		data, err = httputil.Fetch(ctx, source, httputil.FetchOptions{})
		if err != nil {
			return "", fmt.Errorf("failed to download plugin: %w", err)
		}
		name = filepath.Base(source)
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("failed to read plugin source: %w", err)
		}
		name = filepath.Base(source)
	}

	tmpDir, err := os.MkdirTemp("", "chromagen-plugin-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	result, err := compression.Extract(data, name, tmpDir)
	if err != nil {
		return "", fmt.Errorf("failed to extract plugin: %w", err)
	}

	detected, err := DetectProtocol(result.Path)
	if err != nil {
		return "", fmt.Errorf("extracted binary is not a valid plugin: %w", err)
	}
	if !plugin.IsCompatible(detected.Info.ProtocolVersion) {
		return "", fmt.Errorf("plugin %s speaks protocol %s, need at least %s",
			detected.Info.Name, detected.Info.ProtocolVersion, plugin.MinCompatibleVersion)
	}

	installName := detected.Info.Name
	if installName == "" {
		installName = compression.BaseName(name)
	}
	target := filepath.Join(dir, installName)
	if err := copyFile(result.Path, target); err != nil {
		return "", fmt.Errorf("failed to install plugin: %w", err)
	}

	return target, nil
}

// Remove deletes an installed plugin by name.
func Remove(name string) error {
	dir, err := PluginDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	if err := security.ValidatePluginPath(dir, path); err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("optimizer %q is not installed", name)
	}
	return os.Remove(path)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
