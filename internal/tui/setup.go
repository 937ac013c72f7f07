// ABOUTME: Interactive TUI wizard for the diary preferences.
// ABOUTME: 3-step bubbletea model collecting diary directory, future entries, and theme.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/2389-research/minidiary/internal/models"
	"github.com/2389-research/minidiary/internal/prefs"
)

// Step represents the current wizard step.
type Step int

const (
	StepDir Step = iota
	StepFutureEntries
	StepTheme
	StepValidating
	StepDone
	StepFailed
)

// validationResultMsg carries the result of an async validation attempt.
type validationResultMsg struct {
	err error
}

// ValidateFn is the function signature for diary directory validation.
type ValidateFn func(ctx context.Context, dir string) error

// cancelHolder shares a cancel function across bubbletea model copies.
// This MUST be stored as a pointer field on SetupModel so that value-receiver
// methods (required by tea.Model) can store the cancel func and have it
// visible to all copies of the model.
type cancelHolder struct {
	cancel context.CancelFunc
}

// SetupModel is the bubbletea model for the setup wizard.
type SetupModel struct {
	step          Step
	dirInput      textinput.Model
	defaultDir    string
	allowFuture   bool
	theme         models.ThemePref
	spinner       spinner.Model
	validateFn    ValidateFn
	cancelCtx     *cancelHolder
	validationErr error
	quitting      bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	choiceStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// NewSetupModel creates a new setup wizard model, pre-filled with the current
// preferences. defaultDir is used when the directory is left empty.
func NewSetupModel(current prefs.Preferences, defaultDir string) SetupModel {
	dirInput := textinput.New()
	dirInput.Placeholder = defaultDir
	dirInput.Focus()
	dirInput.Width = 60
	if current.Dir != "" {
		dirInput.SetValue(current.Dir)
	}

	theme := current.Theme
	if !theme.Valid() {
		theme = prefs.DefaultTheme
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return SetupModel{
		step:        StepDir,
		dirInput:    dirInput,
		defaultDir:  defaultDir,
		allowFuture: current.AllowFutureEntries,
		theme:       theme,
		spinner:     s,
		validateFn:  ValidateDiaryDir,
		cancelCtx:   &cancelHolder{},
	}
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			if m.cancelCtx.cancel != nil {
				m.cancelCtx.cancel()
			}
			return m, tea.Quit
		}

		switch m.step {
		case StepDir:
			return m.updateDir(msg)
		case StepFutureEntries:
			return m.updateFutureEntries(msg)
		case StepTheme:
			return m.updateTheme(msg)
		case StepFailed:
			return m.updateFailed(msg)
		}

	case validationResultMsg:
		m.cancelCtx.cancel = nil
		if msg.err == nil {
			m.step = StepDone
			return m, tea.Quit
		}
		m.validationErr = msg.err
		m.step = StepFailed
		return m, nil

	case spinner.TickMsg:
		if m.step == StepValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) updateDir(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		val := strings.TrimSpace(m.dirInput.Value())
		if val == "" {
			val = m.defaultDir
		}
		// Don't advance without a directory
		if val == "" {
			return m, nil
		}
		m.dirInput.SetValue(val)
		m.dirInput.Blur()
		m.step = StepFutureEntries
		return m, nil
	}

	var cmd tea.Cmd
	m.dirInput, cmd = m.dirInput.Update(msg)
	return m, cmd
}

func (m SetupModel) updateFutureEntries(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		m.allowFuture = true
	case "n":
		m.allowFuture = false
	case "left", "right", " ", "h", "l":
		m.allowFuture = !m.allowFuture
	case "enter":
		m.step = StepTheme
	}
	return m, nil
}

func (m SetupModel) updateTheme(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx := lo.IndexOf(models.ThemePrefs, m.theme)
	n := len(models.ThemePrefs)

	switch msg.String() {
	case "right", "l", " ":
		m.theme = models.ThemePrefs[(idx+1)%n]
	case "left", "h":
		m.theme = models.ThemePrefs[(idx-1+n)%n]
	case "enter":
		m.step = StepValidating
		return m, tea.Batch(m.startValidation(), m.spinner.Tick)
	}
	return m, nil
}

func (m SetupModel) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes {
		switch msg.Runes[0] {
		case 'r':
			m.step = StepValidating
			m.validationErr = nil
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		case 's':
			m.step = StepDone
			return m, tea.Quit
		case 'q':
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SetupModel) startValidation() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelCtx.cancel = cancel
	dir := m.dirInput.Value()
	fn := m.validateFn
	return func() tea.Msg {
		return validationResultMsg{err: fn(ctx, dir)}
	}
}

// View implements tea.Model.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   minidiary"))
	b.WriteString(titleStyle.Render(" - Setup"))
	b.WriteString("\n\n")
	b.WriteString("Choose where your diary lives and how it looks.\n\n")

	switch m.step {
	case StepDir:
		b.WriteString(stepStyle.Render("Step 1 of 3: Diary directory"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(press Enter for default)"))
		b.WriteString("\n")
		b.WriteString(m.dirInput.View())
		b.WriteString("\n")

	case StepFutureEntries:
		b.WriteString(fmt.Sprintf("  Directory: %s\n\n", m.dirInput.Value()))
		b.WriteString(stepStyle.Render("Step 2 of 3: Allow entries for future days?"))
		b.WriteString("\n")
		b.WriteString(renderChoices([]string{"yes", "no"}, lo.Ternary(m.allowFuture, "yes", "no")))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("[y]es  [n]o  ←/→ toggle  enter next"))
		b.WriteString("\n")

	case StepTheme:
		b.WriteString(fmt.Sprintf("  Directory: %s\n", m.dirInput.Value()))
		b.WriteString(fmt.Sprintf("  Future entries: %t\n\n", m.allowFuture))
		b.WriteString(stepStyle.Render("Step 3 of 3: Theme"))
		b.WriteString("\n")
		names := lo.Map(models.ThemePrefs, func(t models.ThemePref, _ int) string { return string(t) })
		b.WriteString(renderChoices(names, string(m.theme)))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("←/→ choose  enter save"))
		b.WriteString("\n")

	case StepValidating:
		b.WriteString(fmt.Sprintf("  Directory: %s\n", m.dirInput.Value()))
		b.WriteString(fmt.Sprintf("  Future entries: %t\n", m.allowFuture))
		b.WriteString(fmt.Sprintf("  Theme: %s\n\n", m.theme))
		b.WriteString(m.spinner.View())
		b.WriteString(" Checking diary directory...")
		b.WriteString("\n")

	case StepDone:
		b.WriteString(successStyle.Render("✓ Preferences ready!"))
		b.WriteString("\n")

	case StepFailed:
		errMsg := "unknown error"
		if m.validationErr != nil {
			errMsg = m.validationErr.Error()
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Directory check failed: %s", errMsg)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [s]ave anyway  [q]uit"))
		b.WriteString("\n")
	}

	return b.String()
}

func renderChoices(options []string, current string) string {
	parts := lo.Map(options, func(o string, _ int) string {
		if o == current {
			return choiceStyle.Render("[" + o + "]")
		}
		return promptStyle.Render(" " + o + " ")
	})
	return "  " + strings.Join(parts, " ")
}

// Result returns the chosen preferences.
func (m SetupModel) Result() prefs.Preferences {
	return prefs.Preferences{
		Dir:                m.dirInput.Value(),
		AllowFutureEntries: m.allowFuture,
		Theme:              m.theme,
	}
}

// ShouldSave returns true if the wizard completed (via validation success or
// "save anyway") and the user did not cancel with Ctrl+C, Escape, or 'q'.
func (m SetupModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
