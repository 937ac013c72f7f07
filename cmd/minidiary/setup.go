// ABOUTME: Cobra command for interactive preference setup.
// ABOUTME: Launches a bubbletea TUI wizard to choose the diary directory, future entries, and theme.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/minidiary/internal/platform"
	"github.com/2389-research/minidiary/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Choose the diary directory and preferences",
	Long:  "Interactive wizard to set the diary directory, whether future entries are allowed, and the theme.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	current, err := globalPrefs.Load()
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	defaultDir, err := platform.UserDataDir()
	if err != nil {
		return err
	}

	model := tui.NewSetupModel(current, defaultDir)

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Println("Setup cancelled.")
		return nil
	}

	if err := globalPrefs.Save(final.Result()); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	fmt.Printf("Preferences saved to %s\n", globalSettings.Path())
	return nil
}
