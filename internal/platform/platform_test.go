// ABOUTME: Tests for platform version checks and the user data directory.
// ABOUTME: Uses Static Info values to cover each OS/version combination.
package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtLeastMojave(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want bool
	}{
		{"high sierra", Static{OS: "darwin", Version: "10.13.6"}, false},
		{"mojave", Static{OS: "darwin", Version: "10.14"}, true},
		{"catalina", Static{OS: "darwin", Version: "10.15.7"}, true},
		{"big sur", Static{OS: "darwin", Version: "11.2.3"}, true},
		{"sonoma major only", Static{OS: "darwin", Version: "14"}, true},
		{"unknown version", Static{OS: "darwin", Version: ""}, false},
		{"garbage version", Static{OS: "darwin", Version: "ten.fourteen"}, false},
		{"linux", Static{OS: "linux", Version: "6.1"}, false},
		{"windows", Static{OS: "windows", Version: "10.0"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AtLeastMojave(tt.info))
		})
	}
}

func TestHostReportsGOOS(t *testing.T) {
	assert.NotEmpty(t, Host().GOOS())
}

func TestUserDataDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "cfg"))

	dir, err := UserDataDir()
	require.NoError(t, err)
	assert.Equal(t, AppName, filepath.Base(dir))
}
