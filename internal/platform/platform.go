// ABOUTME: Host platform queries used to compute preference defaults.
// ABOUTME: Reports the OS and its version, and locates the user data directory.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// AppName names the per-user data directory.
const AppName = "minidiary"

// Info describes the operating system the program runs on.
type Info interface {
	// GOOS returns the operating system name as reported by runtime.GOOS.
	GOOS() string

	// OSVersion returns the product version, e.g. "10.14.6". Empty if unknown.
	OSVersion() string
}

type host struct{}

// Host returns Info for the running machine.
func Host() Info {
	return host{}
}

func (host) GOOS() string      { return runtime.GOOS }
func (host) OSVersion() string { return osVersion() }

// Static is a fixed Info, used for overrides and tests.
type Static struct {
	OS      string
	Version string
}

func (s Static) GOOS() string      { return s.OS }
func (s Static) OSVersion() string { return s.Version }

// AtLeastMojave reports whether info is macOS 10.14 or newer, the first
// release with a system-wide dark mode.
func AtLeastMojave(info Info) bool {
	if info.GOOS() != "darwin" {
		return false
	}
	major, minor, ok := parseVersion(info.OSVersion())
	if !ok {
		return false
	}
	return major > 10 || (major == 10 && minor >= 14)
}

// parseVersion extracts major and minor numbers from a dotted version string.
// A missing minor component counts as zero.
func parseVersion(v string) (int, int, bool) {
	parts := strings.Split(strings.TrimSpace(v), ".")
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minor := 0
	if len(parts) > 1 {
		minor, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, false
		}
	}
	return major, minor, true
}

// UserDataDir returns the per-user application data directory.
func UserDataDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}
