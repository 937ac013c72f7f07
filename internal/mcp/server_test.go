// ABOUTME: Tests for MCP server creation and validation.
// ABOUTME: Verifies server requires an entry store and preferences, and indexes existing entries.
package mcp

import (
	"testing"

	"github.com/2389-research/minidiary/internal/models"
	"github.com/2389-research/minidiary/internal/platform"
	"github.com/2389-research/minidiary/internal/prefs"
	"github.com/2389-research/minidiary/internal/settings"
	"github.com/2389-research/minidiary/internal/storage"
)

func newPrefs(t *testing.T) *prefs.Service {
	t.Helper()
	svc, err := prefs.New(settings.NewMemoryStore(), platform.Static{OS: "linux"}, prefs.WithDefaultDir(t.TempDir()))
	if err != nil {
		t.Fatalf("prefs.New error: %v", err)
	}
	return svc
}

func TestNewServerRequiresEntryStore(t *testing.T) {
	_, err := NewServer(nil, newPrefs(t))
	if err == nil {
		t.Error("expected error when entry store is nil")
	}
}

func TestNewServerRequiresPreferences(t *testing.T) {
	store, _ := storage.NewMDStore(t.TempDir())

	_, err := NewServer(store, nil)
	if err == nil {
		t.Error("expected error when preferences service is nil")
	}
}

func TestNewServerIndexesExistingEntries(t *testing.T) {
	store, _ := storage.NewMDStore(t.TempDir())
	if err := store.WriteEntry(models.NewEntry("2024-03-09", "Lake", "swam")); err != nil {
		t.Fatalf("WriteEntry error: %v", err)
	}

	server, err := NewServer(store, newPrefs(t))
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	t.Cleanup(func() { _ = server.Close() })

	n, err := server.index.Len()
	if err != nil {
		t.Fatalf("Len error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 indexed entry, got %d", n)
	}
}
