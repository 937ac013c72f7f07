// ABOUTME: CLI commands for diary entries.
// ABOUTME: Provides write, read, list, and delete subcommands keyed by day.
package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/2389-research/minidiary/internal/i18n"
	"github.com/2389-research/minidiary/internal/models"
	"github.com/2389-research/minidiary/internal/storage"
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the entry for a day",
	Long:  "Write the entry for a day, replacing its previous content. An empty title and text deletes the day's entry.",
	Args:  cobra.NoArgs,
	RunE:  runWrite,
}

var readCmd = &cobra.Command{
	Use:   "read <date>",
	Short: "Read the entry for a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <date>",
	Short: "Delete the entry for a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

// Flags
var (
	entryDate  string
	entryTitle string
	entryText  string
	readPlain  bool
	listLimit  int
)

func init() {
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)

	writeCmd.Flags().StringVar(&entryDate, "date", "", "Day in YYYY-MM-DD format (default today)")
	writeCmd.Flags().StringVar(&entryTitle, "title", "", "Entry title")
	writeCmd.Flags().StringVar(&entryText, "text", "", "Entry text, or - to read from stdin")

	readCmd.Flags().BoolVar(&readPlain, "plain", false, "Print raw markdown without rendering")

	listCmd.Flags().IntVar(&listLimit, "limit", 10, "Maximum number of entries to show (0 for all)")
}

func runWrite(cmd *cobra.Command, args []string) error {
	now := time.Now()
	date := entryDate
	if date == "" {
		date = models.IndexDate(now)
	}

	text := entryText
	if text == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = strings.TrimRight(string(data), "\n")
	}

	allowFuture, err := globalPrefs.LoadFutureEntries()
	if err != nil {
		return err
	}
	if err := storage.CheckDate(date, now, allowFuture); err != nil {
		return fmt.Errorf("cannot write %s: %w", date, err)
	}

	entry := models.NewEntry(date, entryTitle, text)
	if err := storage.InheritID(globalEntryStore, entry); err != nil {
		return err
	}
	if err := globalEntryStore.WriteEntry(entry); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}

	if entry.IsEmpty() {
		fmt.Printf("Entry for %s is empty and was removed.\n", date)
		return nil
	}
	fmt.Printf("Entry written: %s\n", entry.FilePath)
	return nil
}

func runRead(cmd *cobra.Command, args []string) error {
	entry, err := globalEntryStore.ReadEntry(args[0])
	if err != nil {
		return fmt.Errorf("failed to read entry: %w", err)
	}

	md := entryMarkdown(*entry, globalTranslator)
	if readPlain {
		fmt.Print(md)
		return nil
	}

	out, err := renderMarkdown(md, 80)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	entries, err := globalEntryStore.Entries()
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	dates := entries.Dates()
	if listLimit > 0 && len(dates) > listLimit {
		dates = dates[:listLimit]
	}
	for _, date := range dates {
		fmt.Printf("%s  %s\n", date, displayTitle(entries[date], globalTranslator))
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := globalEntryStore.DeleteEntry(args[0]); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no entry for %s", args[0])
		}
		return err
	}
	fmt.Printf("Entry for %s deleted.\n", args[0])
	return nil
}

// entryMarkdown formats an entry as a markdown document.
func entryMarkdown(e models.Entry, tr *i18n.Translator) string {
	var b strings.Builder
	b.WriteString("# " + displayTitle(e, tr) + "\n\n")
	if date, err := models.ParseIndexDate(e.Date); err == nil {
		b.WriteString("_" + tr.FormatDate(date) + "_\n\n")
	}
	if e.Text != "" {
		b.WriteString(e.Text + "\n")
	}
	return b.String()
}

func displayTitle(e models.Entry, tr *i18n.Translator) string {
	if e.Title == "" {
		return tr.T(i18n.KeyNoTitle)
	}
	return e.Title
}

// renderMarkdown renders md for the terminal using the theme preference.
// The auto style falls back to plain output when stdout is not a terminal.
func renderMarkdown(md string, width int) (string, error) {
	theme, err := globalPrefs.LoadTheme()
	if err != nil {
		return "", err
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if theme == models.ThemeAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(string(theme)))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render entry: %w", err)
	}
	return out, nil
}

