// ABOUTME: Unit tests for the setup TUI wizard bubbletea model.
// ABOUTME: Uses synthetic tea.Msg values to test state machine transitions.
package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/minidiary/internal/models"
	"github.com/2389-research/minidiary/internal/prefs"
)

func enter(m SetupModel) (SetupModel, tea.Cmd) {
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(SetupModel), cmd
}

func runeKey(m SetupModel, r rune) SetupModel {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return updated.(SetupModel)
}

func TestNewSetupModel_DefaultValues(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{}, "/data/minidiary")
	if m.step != StepDir {
		t.Errorf("expected initial step StepDir, got %d", m.step)
	}
	if m.dirInput.Value() != "" {
		t.Error("expected empty dir input for new preferences")
	}
	if m.theme != prefs.DefaultTheme {
		t.Errorf("expected default theme %q, got %q", prefs.DefaultTheme, m.theme)
	}
	if m.allowFuture {
		t.Error("expected future entries off by default")
	}
}

func TestNewSetupModel_ExistingPreferences(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{
		Dir:                "/home/me/diary",
		AllowFutureEntries: true,
		Theme:              models.ThemeDark,
	}, "/data/minidiary")
	if m.dirInput.Value() != "/home/me/diary" {
		t.Errorf("expected pre-filled dir, got %q", m.dirInput.Value())
	}
	if !m.allowFuture {
		t.Error("expected future entries pre-selected")
	}
	if m.theme != models.ThemeDark {
		t.Errorf("expected dark theme, got %q", m.theme)
	}
}

func TestNewSetupModel_InvalidThemeFallsBack(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{Theme: "purple"}, "")
	if m.theme != prefs.DefaultTheme {
		t.Errorf("expected fallback theme, got %q", m.theme)
	}
}

func TestSetupModel_StepTransitions(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{}, "")
	m.dirInput.SetValue("/tmp/diary")

	m, _ = enter(m)
	if m.step != StepFutureEntries {
		t.Fatalf("expected StepFutureEntries, got %d", m.step)
	}

	m, _ = enter(m)
	if m.step != StepTheme {
		t.Fatalf("expected StepTheme, got %d", m.step)
	}

	m.validateFn = func(context.Context, string) error { return nil }
	m, cmd := enter(m)
	if m.step != StepValidating {
		t.Errorf("expected StepValidating, got %d", m.step)
	}
	if cmd == nil {
		t.Error("expected validation cmd")
	}
}

func TestSetupModel_EmptyDirUsesDefault(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{}, "/data/minidiary")
	m, _ = enter(m)
	if m.step != StepFutureEntries {
		t.Fatalf("expected StepFutureEntries, got %d", m.step)
	}
	if m.dirInput.Value() != "/data/minidiary" {
		t.Errorf("expected default dir, got %q", m.dirInput.Value())
	}
}

func TestSetupModel_EmptyDirWithoutDefaultBlocked(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{}, "")
	m, _ = enter(m)
	if m.step != StepDir {
		t.Errorf("expected to stay on StepDir, got %d", m.step)
	}
}

func TestSetupModel_FutureEntriesToggle(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{}, "")
	m.step = StepFutureEntries

	m = runeKey(m, 'y')
	if !m.allowFuture {
		t.Error("expected 'y' to enable future entries")
	}
	m = runeKey(m, 'n')
	if m.allowFuture {
		t.Error("expected 'n' to disable future entries")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(SetupModel)
	if !m.allowFuture {
		t.Error("expected right arrow to toggle future entries")
	}
}

func TestSetupModel_ThemeCycles(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{Theme: models.ThemeAuto}, "")
	m.step = StepTheme

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(SetupModel)
	if m.theme != models.ThemeLight {
		t.Errorf("expected light after right, got %q", m.theme)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(SetupModel)
	if m.theme != models.ThemeDark {
		t.Errorf("expected dark after right, got %q", m.theme)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(SetupModel)
	if m.theme != models.ThemeAuto {
		t.Errorf("expected wrap to auto, got %q", m.theme)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(SetupModel)
	if m.theme != models.ThemeDark {
		t.Errorf("expected wrap back to dark, got %q", m.theme)
	}
}

func TestSetupModel_ValidationSuccess(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{}, "")
	m.step = StepValidating

	updated, cmd := m.Update(validationResultMsg{err: nil})
	m = updated.(SetupModel)
	if m.step != StepDone {
		t.Errorf("expected StepDone, got %d", m.step)
	}
	if cmd == nil {
		t.Error("expected quit cmd after success")
	}
}

func TestSetupModel_ValidationFailure(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{}, "")
	m.step = StepValidating

	updated, _ := m.Update(validationResultMsg{err: fmt.Errorf("permission denied")})
	m = updated.(SetupModel)
	if m.step != StepFailed {
		t.Errorf("expected StepFailed, got %d", m.step)
	}
	if m.validationErr == nil {
		t.Error("expected validation error to be stored")
	}
}

func TestSetupModel_FailedRetry(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{}, "")
	m.validateFn = func(context.Context, string) error { return nil }
	m.step = StepFailed
	m.validationErr = fmt.Errorf("boom")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(SetupModel)
	if m.step != StepValidating {
		t.Errorf("expected StepValidating after retry, got %d", m.step)
	}
	if m.validationErr != nil {
		t.Error("expected validation error cleared on retry")
	}
	if cmd == nil {
		t.Error("expected non-nil cmd on retry")
	}
}

func TestSetupModel_FailedSaveAnyway(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{}, "")
	m.step = StepFailed

	m = runeKey(m, 's')
	if m.step != StepDone {
		t.Errorf("expected StepDone after save anyway, got %d", m.step)
	}
	if !m.ShouldSave() {
		t.Error("expected ShouldSave true after save anyway")
	}
}

func TestSetupModel_FailedQuit(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{}, "")
	m.step = StepFailed

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(SetupModel)
	if cmd == nil {
		t.Error("expected quit cmd")
	}
	if !m.quitting {
		t.Error("expected quitting to be true after 'q'")
	}
	if m.ShouldSave() {
		t.Error("expected ShouldSave false after quit")
	}
}

func TestSetupModel_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEscape} {
		m := NewSetupModel(prefs.Preferences{}, "")
		updated, cmd := m.Update(tea.KeyMsg{Type: key})
		m = updated.(SetupModel)
		if cmd == nil {
			t.Errorf("expected quit cmd on %v", key)
		}
		if !m.quitting {
			t.Errorf("expected quitting after %v", key)
		}
		if m.ShouldSave() {
			t.Errorf("expected ShouldSave false after %v", key)
		}
	}
}

func TestSetupModel_Result(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{}, "")
	m.dirInput.SetValue("/srv/diary")
	m.allowFuture = true
	m.theme = models.ThemeDark
	m.step = StepDone

	got := m.Result()
	want := prefs.Preferences{Dir: "/srv/diary", AllowFutureEntries: true, Theme: models.ThemeDark}
	if got != want {
		t.Errorf("Result() = %+v, want %+v", got, want)
	}
}

func TestSetupModel_ViewShowsCurrentStep(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{}, "")

	cases := map[Step]string{
		StepDir:           "Diary directory",
		StepFutureEntries: "future days",
		StepTheme:         "Theme",
		StepValidating:    "Checking diary directory",
		StepDone:          "Preferences ready",
	}
	for step, want := range cases {
		m.step = step
		if !strings.Contains(m.View(), want) {
			t.Errorf("expected step %d view to contain %q", step, want)
		}
	}
}

func TestSetupModel_ViewFailed(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{}, "")
	m.step = StepFailed
	m.validationErr = fmt.Errorf("read-only file system")
	view := m.View()
	for _, want := range []string{"Directory check failed", "read-only file system", "[r]etry", "[s]ave anyway", "[q]uit"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected StepFailed view to contain %q", want)
		}
	}
}

func TestSetupModel_ViewFailedNilError(t *testing.T) {
	m := NewSetupModel(prefs.Preferences{}, "")
	m.step = StepFailed
	view := m.View()
	if strings.Contains(view, "<nil>") {
		t.Error("expected nil error to be rendered gracefully, not as <nil>")
	}
	if !strings.Contains(view, "unknown error") {
		t.Error("expected nil error to show 'unknown error' fallback")
	}
}

func TestSetupModel_CtrlCDuringValidation(t *testing.T) {
	cancelled := false
	m := NewSetupModel(prefs.Preferences{Dir: "/tmp/diary"}, "")
	m.validateFn = func(ctx context.Context, _ string) error {
		<-ctx.Done()
		cancelled = true
		return ctx.Err()
	}
	m.step = StepTheme

	m, batchCmd := enter(m)
	if m.step != StepValidating {
		t.Fatalf("expected StepValidating, got %d", m.step)
	}

	// batchMsg[0] is the validation cmd, batchMsg[1] is the spinner tick
	batchMsg := batchCmd().(tea.BatchMsg)
	done := make(chan tea.Msg)
	go func() {
		done <- batchMsg[0]()
	}()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(SetupModel)
	if !m.quitting {
		t.Error("expected quitting to be true after Ctrl+C during validation")
	}

	<-done
	if !cancelled {
		t.Error("expected validation context to be cancelled")
	}
}

func TestSetupModel_ValidationPassesDir(t *testing.T) {
	var gotDir string
	m := NewSetupModel(prefs.Preferences{Dir: "/srv/diary"}, "")
	m.validateFn = func(_ context.Context, dir string) error {
		gotDir = dir
		return nil
	}
	m.step = StepTheme

	_, batchCmd := enter(m)
	batchMsg := batchCmd().(tea.BatchMsg)
	batchMsg[0]()

	if gotDir != "/srv/diary" {
		t.Errorf("expected dir %q, got %q", "/srv/diary", gotDir)
	}
}

func TestSetupModel_FullFlowWithTeaProgram(t *testing.T) {
	dir := t.TempDir()
	m := NewSetupModel(prefs.Preferences{Dir: dir}, "")
	m.validateFn = func(context.Context, string) error {
		time.Sleep(50 * time.Millisecond)
		return nil
	}

	p := tea.NewProgram(m, tea.WithInput(nil), tea.WithoutRenderer())

	go func() {
		// dir, future entries, theme, then validate -> done -> quit
		p.Send(tea.KeyMsg{Type: tea.KeyEnter})
		p.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
		p.Send(tea.KeyMsg{Type: tea.KeyEnter})
		p.Send(tea.KeyMsg{Type: tea.KeyRight})
		p.Send(tea.KeyMsg{Type: tea.KeyEnter})
	}()

	result, err := p.Run()
	if err != nil {
		t.Fatalf("tea.Program error: %v", err)
	}

	final := result.(SetupModel)
	if !final.ShouldSave() {
		t.Fatalf("expected ShouldSave=true, got false (step=%d, quitting=%v)", final.step, final.quitting)
	}
	got := final.Result()
	if got.Dir != dir || !got.AllowFutureEntries {
		t.Errorf("unexpected result %+v", got)
	}
	if got.Theme != models.ThemeDark {
		t.Errorf("expected theme dark after one right from light, got %q", got.Theme)
	}
}
