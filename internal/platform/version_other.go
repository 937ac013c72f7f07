//go:build !darwin

// ABOUTME: OS version stub for platforms without a macOS product version.
// ABOUTME: Reports an empty version so the light theme default applies.
package platform

func osVersion() string {
	return ""
}
