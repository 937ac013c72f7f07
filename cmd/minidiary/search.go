// ABOUTME: CLI command for full-text search over the diary.
// ABOUTME: Prints the results view, or opens the interactive search TUI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/minidiary/internal/models"
	"github.com/2389-research/minidiary/internal/search"
	"github.com/2389-research/minidiary/internal/settings"
	"github.com/2389-research/minidiary/internal/tui"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search entries",
	Long: `Search entry titles and text. Results are listed newest first and the
selected day (--date, default today) is highlighted.

With --interactive the search opens in a terminal UI. Activating a result
selects its day and ctrl+d deletes its entry; on exit the selected day is
printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

// Flags
var (
	searchDate        string
	searchLimit       int
	searchInteractive bool
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchDate, "date", "", "Selected day in YYYY-MM-DD format (default today)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum number of results (0 for all)")
	searchCmd.Flags().BoolVarP(&searchInteractive, "interactive", "i", false, "Open the interactive search")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	if !searchInteractive && strings.TrimSpace(query) == "" {
		return fmt.Errorf("a query is required unless --interactive is set")
	}

	selected := time.Now()
	if searchDate != "" {
		d, err := models.ParseIndexDate(searchDate)
		if err != nil {
			return err
		}
		selected = d
	}

	entries, err := globalEntryStore.Entries()
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}

	index, err := search.New()
	if err != nil {
		return err
	}
	defer func() { _ = index.Close() }()
	if err := index.Build(entries); err != nil {
		return err
	}
	slog.Debug("search index built", "entries", len(entries))

	styles, err := loadStyles()
	if err != nil {
		return err
	}

	if searchInteractive {
		return runInteractiveSearch(cmd.Context(), index, entries, selected, styles, query)
	}

	results, err := index.Search(query, searchLimit)
	if err != nil {
		return err
	}
	view := tui.BuildResults(selected, entries, results, globalTranslator)
	fmt.Println(view.Render(styles, -1))
	return nil
}

func runInteractiveSearch(ctx context.Context, index *search.Index, entries models.Entries, selected time.Time, styles tui.Styles, query string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	picked := false
	model := tui.NewSearchModel(tui.SearchConfig{
		Searcher:     index,
		Entries:      entries,
		DateSelected: selected,
		Translator:   globalTranslator,
		Styles:       styles,
		LoadStyles:   loadStyles,
		Preview: func(e models.Entry) string {
			out, err := renderMarkdown(entryMarkdown(e, globalTranslator), 72)
			if err != nil {
				return e.Text
			}
			return out
		},
		Delete: func(date string) error {
			if err := globalEntryStore.DeleteEntry(date); err != nil {
				return err
			}
			return index.Remove(date)
		},
		OnSelect: func(time.Time) { picked = true },
		Query:    query,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Re-apply the theme when the settings file is edited elsewhere.
	err := settings.Watch(ctx, globalSettings.Path(), func() {
		p.Send(tui.ThemeChangedMsg{})
	})
	if err != nil {
		slog.Warn("settings watch unavailable", "error", err)
	}

	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if final, ok := result.(tui.SearchModel); ok && picked {
		fmt.Println(models.IndexDate(final.DateSelected()))
	}
	return nil
}
