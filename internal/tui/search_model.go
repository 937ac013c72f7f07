// ABOUTME: Interactive bubbletea model for searching the diary.
// ABOUTME: Query input, the results view, and a preview of the selected day's entry.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/2389-research/minidiary/internal/i18n"
	"github.com/2389-research/minidiary/internal/models"
)

// Searcher runs full-text queries over the diary.
type Searcher interface {
	Search(q string, limit int) ([]models.SearchResult, error)
}

// ThemeChangedMsg asks the model to reload its styles.
type ThemeChangedMsg struct{}

// EntriesChangedMsg replaces the entries snapshot. Results from the last
// search are kept and refiltered against the new snapshot.
type EntriesChangedMsg struct {
	Entries models.Entries
}

// searchDoneMsg carries the results of an async search.
type searchDoneMsg struct {
	query   string
	results []models.SearchResult
	err     error
}

// deleteFailedMsg reports a failed delete from the results list.
type deleteFailedMsg struct {
	err error
}

type searchFocus int

const (
	focusInput searchFocus = iota
	focusList
)

// SearchConfig holds the collaborators of a SearchModel.
type SearchConfig struct {
	Searcher     Searcher
	Entries      models.Entries
	DateSelected time.Time
	Translator   *i18n.Translator
	Styles       Styles
	// LoadStyles is called on ThemeChangedMsg. Optional.
	LoadStyles func() (Styles, error)
	// Preview renders the selected day's entry. Optional.
	Preview func(models.Entry) string
	// OnSelect is called after a result row is activated. Optional.
	OnSelect SelectDateFunc
	// Delete removes the entry for an index date. Optional; without it the
	// delete key does nothing.
	Delete func(date string) error
	Query    string
}

// SearchModel is the bubbletea model for interactive search.
type SearchModel struct {
	cfg          SearchConfig
	input        textinput.Model
	entries      models.Entries
	results      []models.SearchResult
	view         Results
	dateSelected time.Time
	styles       Styles
	focus        searchFocus
	cursor       int
	searched     bool
	err          error
	width        int
}

// NewSearchModel creates the search model. A non-empty cfg.Query is run on Init.
func NewSearchModel(cfg SearchConfig) SearchModel {
	input := textinput.New()
	input.Placeholder = "Search"
	input.Prompt = "/ "
	input.Width = 40
	input.SetValue(cfg.Query)
	input.Focus()

	if cfg.Translator == nil {
		cfg.Translator = i18n.New("")
	}
	if cfg.Entries == nil {
		cfg.Entries = models.Entries{}
	}

	return SearchModel{
		cfg:          cfg,
		input:        input,
		entries:      cfg.Entries,
		dateSelected: cfg.DateSelected,
		styles:       cfg.Styles,
	}
}

// Init implements tea.Model.
func (m SearchModel) Init() tea.Cmd {
	if strings.TrimSpace(m.cfg.Query) != "" {
		return tea.Batch(textinput.Blink, m.runSearch(m.cfg.Query))
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.focus == focusList {
			return m.updateList(msg)
		}
		return m.updateInput(msg)

	case searchDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.searched = true
		m.results = msg.results
		m.rebuild()
		m.cursor = 0
		if !m.view.Empty() {
			m.focus = focusList
			m.input.Blur()
		}
		return m, nil

	case EntriesChangedMsg:
		m.err = nil
		m.entries = msg.Entries
		m.rebuild()
		return m, nil

	case deleteFailedMsg:
		m.err = msg.err
		return m, nil

	case ThemeChangedMsg:
		if m.cfg.LoadStyles != nil {
			styles, err := m.cfg.LoadStyles()
			if err != nil {
				m.err = fmt.Errorf("failed to reload theme: %w", err)
				return m, nil
			}
			m.styles = styles
		}
		return m, nil
	}

	return m, nil
}

func (m SearchModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		return m, m.runSearch(m.input.Value())
	case tea.KeyTab, tea.KeyDown:
		if !m.view.Empty() {
			m.focus = focusList
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m SearchModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab", "/":
		m.focus = focusInput
		m.input.Focus()
		return m, textinput.Blink
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.Rows)-1 {
			m.cursor++
		}
	case "ctrl+d":
		return m, m.deleteRow(m.cursor)
	case "enter":
		var picked time.Time
		if m.view.Activate(m.cursor, func(d time.Time) { picked = d }) {
			m.setDateSelected(picked)
		}
	}
	return m, nil
}

func (m SearchModel) runSearch(query string) tea.Cmd {
	searcher := m.cfg.Searcher
	return func() tea.Msg {
		if searcher == nil {
			return searchDoneMsg{query: query}
		}
		results, err := searcher.Search(query, 0)
		return searchDoneMsg{query: query, results: results, err: err}
	}
}

// deleteRow removes the entry behind row i. The held results keep its ref;
// the returned EntriesChangedMsg filters it out until the next search.
func (m SearchModel) deleteRow(i int) tea.Cmd {
	if m.cfg.Delete == nil || i < 0 || i >= len(m.view.Rows) {
		return nil
	}
	date := m.view.Rows[i].IndexDate
	entries := m.entries
	del := m.cfg.Delete
	return func() tea.Msg {
		if err := del(date); err != nil {
			return deleteFailedMsg{err: fmt.Errorf("failed to delete %s: %w", date, err)}
		}
		return EntriesChangedMsg{Entries: lo.OmitByKeys(entries, []string{date})}
	}
}

func (m *SearchModel) setDateSelected(date time.Time) {
	m.dateSelected = date
	m.rebuild()
	if m.cfg.OnSelect != nil {
		m.cfg.OnSelect(date)
	}
}

func (m *SearchModel) rebuild() {
	m.view = BuildResults(m.dateSelected, m.entries, m.results, m.cfg.Translator)
	if m.cursor >= len(m.view.Rows) {
		m.cursor = max(len(m.view.Rows)-1, 0)
	}
	if m.view.Empty() && m.focus == focusList {
		m.focus = focusInput
		m.input.Focus()
	}
}

// DateSelected returns the currently selected day.
func (m SearchModel) DateSelected() time.Time {
	return m.dateSelected
}

// Results returns the current results view.
func (m SearchModel) Results() Results {
	return m.view
}

// View implements tea.Model.
func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.styles.Accent.Render("minidiary"))
	b.WriteString(m.styles.Faint.Render(" - " + m.cfg.Translator.FormatDate(m.dateSelected)))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.searched {
		cursor := -1
		if m.focus == focusList {
			cursor = m.cursor
		}
		b.WriteString(m.view.Render(m.styles, cursor))
		b.WriteString("\n")
	}

	if entry, ok := m.entries[models.IndexDate(m.dateSelected)]; ok && m.cfg.Preview != nil {
		b.WriteString("\n")
		preview := m.styles.Border
		if m.width > 4 {
			preview = preview.Width(m.width - 4)
		}
		b.WriteString(preview.Render(strings.TrimSpace(m.cfg.Preview(entry))))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Accent.Render(fmt.Sprintf("✗ %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Faint.Render("enter search/select  tab switch focus  ↑/↓ move  ctrl+d delete  esc quit"))
	b.WriteString("\n")
	return b.String()
}
