// ABOUTME: Root Cobra command and global flags for the minidiary CLI.
// ABOUTME: Sets up lifecycle hooks for config, logging, preferences, and entry store.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/2389-research/minidiary/internal/config"
	"github.com/2389-research/minidiary/internal/i18n"
	"github.com/2389-research/minidiary/internal/logging"
	"github.com/2389-research/minidiary/internal/platform"
	"github.com/2389-research/minidiary/internal/prefs"
	"github.com/2389-research/minidiary/internal/settings"
	"github.com/2389-research/minidiary/internal/storage"
	"github.com/2389-research/minidiary/internal/tui"
)

var globalConfig *config.Config
var globalSettings *settings.FileStore
var globalPrefs *prefs.Service
var globalTranslator *i18n.Translator
var globalEntryStore storage.EntryStore

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "minidiary",
	Short: "A small private diary for the terminal",
	Long: `minidiary keeps one markdown entry per day in a local directory,
with full-text search, themes, and an MCP server for agents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg

		level := cfg.Log.Level
		if logLevel != "" {
			level = logLevel
		}
		logger := logging.Setup(level, cfg.Log.Format, os.Stderr)

		locale := cfg.Locale
		if locale == "" {
			locale = i18n.DetectLocale()
		}
		globalTranslator = i18n.New(locale)

		settingsPath, err := cfg.GetSettingsPath()
		if err != nil {
			return fmt.Errorf("failed to resolve settings path: %w", err)
		}
		globalSettings = settings.NewFileStore(settingsPath)

		p, err := prefs.New(globalSettings, platform.Host(), prefs.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to create preferences: %w", err)
		}
		globalPrefs = p

		if !needsEntryStore(cmd) {
			return nil
		}

		dir, err := p.LoadDir()
		if err != nil {
			return fmt.Errorf("failed to load diary directory: %w", err)
		}
		dir, err = config.ExpandPath(dir)
		if err != nil {
			return err
		}
		store, err := storage.NewMDStore(dir)
		if err != nil {
			return fmt.Errorf("failed to open diary: %w", err)
		}
		globalEntryStore = store
		logger.Debug("diary opened", "dir", dir, "settings", settingsPath)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if globalEntryStore != nil {
			_ = globalEntryStore.Close()
			globalEntryStore = nil
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config, else warn)")
}

// needsEntryStore reports whether cmd reads or writes entries. Preference and
// config commands must work even when the stored diary directory is broken.
func needsEntryStore(cmd *cobra.Command) bool {
	if cmd.Name() == "setup" {
		return false
	}
	parent := cmd.Parent()
	return parent == nil || (parent != prefsCmd && parent != configCmd)
}

// loadStyles resolves the theme preference and theme overrides into styles.
func loadStyles() (tui.Styles, error) {
	theme, err := globalPrefs.LoadTheme()
	if err != nil {
		return tui.Styles{}, err
	}
	path, err := globalConfig.GetThemesPath()
	if err != nil {
		return tui.Styles{}, err
	}
	palettes, err := tui.LoadPalettes(path)
	if err != nil {
		slog.Warn("ignoring theme overrides", "path", path, "error", err)
	}
	return palettes.StylesFor(theme), nil
}
