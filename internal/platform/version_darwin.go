// ABOUTME: macOS product version lookup through sysctl.
// ABOUTME: Feeds the Mojave check behind the theme default.
package platform

import "golang.org/x/sys/unix"

func osVersion() string {
	v, err := unix.Sysctl("kern.osproductversion")
	if err != nil {
		return ""
	}
	return v
}
