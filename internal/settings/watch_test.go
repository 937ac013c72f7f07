// ABOUTME: Tests for settings file change notifications.
// ABOUTME: Uses a temp directory and real fsnotify events.
package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatch_NotifiesOnExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	require.NoError(t, Watch(ctx, path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}))

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.json"), []byte("{}"), 0o600))
	select {
	case <-changed:
		t.Fatal("unexpected notification for unrelated file")
	case <-time.After(3 * watchDebounce):
	}

	require.NoError(t, NewFileStore(path).Set("theme", "dark"))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected change notification")
	}
}

func TestWatch_StopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	ctx, cancel := context.WithCancel(context.Background())

	changed := make(chan struct{}, 1)
	require.NoError(t, Watch(ctx, path, func() { changed <- struct{}{} }))
	cancel()
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"light"}`), 0o600))

	select {
	case <-changed:
		t.Fatal("unexpected notification after cancel")
	case <-time.After(3 * watchDebounce):
	}
}
