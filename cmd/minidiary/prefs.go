// ABOUTME: CLI commands for viewing and changing preferences.
// ABOUTME: Provides prefs show, get, and set over the preferences service.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/minidiary/internal/prefs"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "View and change preferences",
	Long: fmt.Sprintf(`View and change preferences.

Preferences: %s
  dir             diary directory
  future-entries  allow entries for days after today (true/false)
  theme           auto, light, or dark`, strings.Join(prefs.Names, ", ")),
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all preferences",
	Args:  cobra.NoArgs,
	RunE:  runPrefsShow,
}

var prefsGetCmd = &cobra.Command{
	Use:       "get <name>",
	Short:     "Print one preference",
	Args:      cobra.ExactArgs(1),
	ValidArgs: prefs.Names,
	RunE:      runPrefsGet,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Change one preference",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrefsSet,
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	for _, name := range prefs.Names {
		value, err := globalPrefs.GetByName(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-15s %s\n", name, value)
	}
	fmt.Printf("\nSettings file: %s\n", globalSettings.Path())
	return nil
}

func runPrefsGet(cmd *cobra.Command, args []string) error {
	value, err := globalPrefs.GetByName(args[0])
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	if err := globalPrefs.SetByName(args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("%s set to %s\n", args[0], args[1])
	return nil
}
