// Package version provides build-time version information for chromagen.
// Version, Commit and Date are injected at build time using ldflags, with
// module build info as a fallback for plain go install builds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the semantic version of the application.
	// Injected via: -ldflags "-X github.com/chromagen/chromagen/internal/version.Version=x.y.z".
	Version = "dev"

	// Commit is the git commit hash of the build.
	Commit = "unknown"

	// Date is the build date in RFC3339 format.
	Date = "unknown"
)

// Short returns the bare version string suitable for CLI output and
// User-Agent headers. When no version was injected at build time it
// falls back to the module version recorded by the Go toolchain.
func Short() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// String returns a human-readable version line including commit, build
// date, Go version and platform where known.
func String() string {
	s := fmt.Sprintf("chromagen version %s", Short())
	if c := commit(); c != "" {
		s += fmt.Sprintf(" (commit %s)", c)
	}
	if Date != "unknown" {
		s += fmt.Sprintf(" built %s", Date)
	}
	return fmt.Sprintf("%s %s %s/%s", s, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// commit returns the short commit hash, preferring the injected value
// over the vcs revision stamped into the build info.
func commit() string {
	c := Commit
	if c == "unknown" {
		c = ""
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					c = s.Value
					break
				}
			}
		}
	}
	if len(c) > 8 {
		c = c[:8]
	}
	return c
}
