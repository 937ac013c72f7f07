// ABOUTME: Tests for CLI helpers shared by the entry and search commands.
// ABOUTME: Covers entry store selection per command and entry markdown formatting.
package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/2389-research/minidiary/internal/i18n"
	"github.com/2389-research/minidiary/internal/models"
)

func TestNeedsEntryStore(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		want bool
	}{
		{writeCmd, true},
		{searchCmd, true},
		{mcpCmd, true},
		{setupCmd, false},
		{prefsShowCmd, false},
		{prefsSetCmd, false},
		{configShowCmd, false},
		{configSetCmd, false},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.CommandPath(), func(t *testing.T) {
			if got := needsEntryStore(tt.cmd); got != tt.want {
				t.Errorf("needsEntryStore(%s) = %v, want %v", tt.cmd.CommandPath(), got, tt.want)
			}
		})
	}
}

func TestEntryMarkdown(t *testing.T) {
	tr := i18n.New("en")

	md := entryMarkdown(models.Entry{Date: "2024-03-09", Title: "Market", Text: "Bought pears."}, tr)
	want := "# Market\n\n_Saturday, March 9, 2024_\n\nBought pears.\n"
	if md != want {
		t.Errorf("entryMarkdown = %q, want %q", md, want)
	}

	md = entryMarkdown(models.Entry{Date: "2024-03-10"}, tr)
	if !strings.HasPrefix(md, "# No title\n") {
		t.Errorf("expected placeholder title, got %q", md)
	}
	if strings.Contains(md, "\n\n\n") {
		t.Errorf("expected no empty body block, got %q", md)
	}
}
