// ABOUTME: Light and dark palettes for the terminal UI, with optional TOML overrides.
// ABOUTME: Resolves the "auto" theme preference from the terminal background.
package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/2389-research/minidiary/internal/models"
)

// Palette holds the colors of one theme.
type Palette struct {
	Text          string `toml:"text"`
	Faint         string `toml:"faint"`
	Accent        string `toml:"accent"`
	SelectionBg   string `toml:"selection_bg"`
	SelectionText string `toml:"selection_text"`
	Info          string `toml:"info"`
	Border        string `toml:"border"`
}

// Palettes maps concrete themes (light, dark) to colors.
type Palettes map[models.ThemePref]Palette

// DefaultPalettes returns the built-in light and dark palettes.
func DefaultPalettes() Palettes {
	return Palettes{
		models.ThemeLight: {
			Text:          "#1f2328",
			Faint:         "#8c959f",
			Accent:        "#0969da",
			SelectionBg:   "#0969da",
			SelectionText: "#ffffff",
			Info:          "#0550ae",
			Border:        "#d0d7de",
		},
		models.ThemeDark: {
			Text:          "#e6edf3",
			Faint:         "#7d8590",
			Accent:        "#58a6ff",
			SelectionBg:   "#1f6feb",
			SelectionText: "#ffffff",
			Info:          "#79c0ff",
			Border:        "#30363d",
		},
	}
}

type paletteFile struct {
	Light *Palette `toml:"light"`
	Dark  *Palette `toml:"dark"`
}

// LoadPalettes reads color overrides from a TOML file with [light] and [dark]
// tables. Fields left out keep their built-in value. A missing file yields
// the built-in palettes.
func LoadPalettes(path string) (Palettes, error) {
	palettes := DefaultPalettes()
	if path == "" {
		return palettes, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return palettes, nil
		}
		return palettes, fmt.Errorf("failed to read themes: %w", err)
	}

	var file paletteFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return palettes, fmt.Errorf("failed to parse themes %s: %w", path, err)
	}

	if file.Light != nil {
		palettes[models.ThemeLight] = merge(palettes[models.ThemeLight], *file.Light)
	}
	if file.Dark != nil {
		palettes[models.ThemeDark] = merge(palettes[models.ThemeDark], *file.Dark)
	}
	return palettes, nil
}

func merge(base, override Palette) Palette {
	pick := func(b, o string) string {
		if o != "" {
			return o
		}
		return b
	}
	return Palette{
		Text:          pick(base.Text, override.Text),
		Faint:         pick(base.Faint, override.Faint),
		Accent:        pick(base.Accent, override.Accent),
		SelectionBg:   pick(base.SelectionBg, override.SelectionBg),
		SelectionText: pick(base.SelectionText, override.SelectionText),
		Info:          pick(base.Info, override.Info),
		Border:        pick(base.Border, override.Border),
	}
}

// ResolveTheme maps a preference to a concrete theme. ThemeAuto follows the
// terminal: dark if hasDarkBackground reports so, light otherwise.
func ResolveTheme(pref models.ThemePref, hasDarkBackground func() bool) models.ThemePref {
	switch pref {
	case models.ThemeDark, models.ThemeLight:
		return pref
	}
	if hasDarkBackground != nil && hasDarkBackground() {
		return models.ThemeDark
	}
	return models.ThemeLight
}

// StylesFor resolves pref against the terminal and returns its styles.
func (p Palettes) StylesFor(pref models.ThemePref) Styles {
	theme := ResolveTheme(pref, lipgloss.HasDarkBackground)
	palette, ok := p[theme]
	if !ok {
		palette = DefaultPalettes()[theme]
	}
	return palette.Styles()
}

// Styles contains pre-built Lipgloss styles for a palette.
type Styles struct {
	Text     lipgloss.Style
	Faint    lipgloss.Style
	Accent   lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Banner   lipgloss.Style
	Border   lipgloss.Style
}

// Styles returns Lipgloss styles for this palette.
func (p Palette) Styles() Styles {
	return Styles{
		Text:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text)),
		Faint: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Faint)),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.SelectionBg)).
			Foreground(lipgloss.Color(p.SelectionText)),
		Cursor: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Info)).
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)),
	}
}

// PlainStyles renders text without any decoration.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Text:     plain,
		Faint:    plain,
		Accent:   plain,
		Selected: plain,
		Cursor:   plain,
		Banner:   plain,
		Border:   plain,
	}
}
