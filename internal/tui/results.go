// ABOUTME: Search results view: turns search hits into selectable date rows.
// ABOUTME: Pure function of the selected date, the entries, and the results.
package tui

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/2389-research/minidiary/internal/i18n"
	"github.com/2389-research/minidiary/internal/models"
)

// SelectDateFunc is called with a row's date when the row is activated.
type SelectDateFunc func(date time.Time)

// ResultRow is one selectable search result.
type ResultRow struct {
	IndexDate string
	Date      time.Time
	DateLabel string
	Title     string
	Untitled  bool
	Selected  bool
}

// Results is the rendered state of a search. Banner is set, and Rows empty,
// when no result refers to an existing entry.
type Results struct {
	Rows   []ResultRow
	Banner string
}

// BuildResults keeps the results whose ref is a key of entries, in order.
// Refs to deleted entries are dropped without error: a deletion after a
// search leaves stale refs until the next search.
func BuildResults(dateSelected time.Time, entries models.Entries, results []models.SearchResult, tr *i18n.Translator) Results {
	rows := lo.FilterMap(results, func(r models.SearchResult, _ int) (ResultRow, bool) {
		entry, ok := entries[r.Ref]
		if !ok {
			return ResultRow{}, false
		}
		date, err := models.ParseIndexDate(r.Ref)
		if err != nil {
			return ResultRow{}, false
		}

		row := ResultRow{
			IndexDate: r.Ref,
			Date:      date,
			DateLabel: tr.FormatDate(date),
			Title:     entry.Title,
			Selected:  models.SameDay(date, dateSelected),
		}
		if entry.Title == "" {
			row.Title = tr.T(i18n.KeyNoTitle)
			row.Untitled = true
		}
		return row, true
	})

	if len(rows) == 0 {
		return Results{Banner: tr.T(i18n.KeyNoResults)}
	}
	return Results{Rows: rows}
}

// Empty reports whether the view shows the no-results banner.
func (r Results) Empty() bool {
	return len(r.Rows) == 0
}

// Activate calls selectDate with the date of row i. It returns false if i is
// out of range.
func (r Results) Activate(i int, selectDate SelectDateFunc) bool {
	if i < 0 || i >= len(r.Rows) {
		return false
	}
	selectDate(r.Rows[i].Date)
	return true
}

// Render draws the rows, or the banner when there are none. cursor marks the
// focused row; pass -1 for none.
func (r Results) Render(s Styles, cursor int) string {
	if r.Empty() {
		return s.Banner.Render("i " + r.Banner)
	}

	var b strings.Builder
	for i, row := range r.Rows {
		if i > 0 {
			b.WriteString("\n")
		}

		marker := "  "
		if i == cursor {
			marker = s.Cursor.Render("> ")
		}

		label := s.Faint.Render(row.DateLabel)
		title := s.Text.Render(row.Title)
		if row.Untitled {
			title = s.Faint.Render(row.Title)
		}
		if row.Selected {
			label = s.Selected.Render(row.DateLabel)
			title = s.Selected.Render(row.Title)
		}

		b.WriteString(marker)
		b.WriteString(label)
		b.WriteString("\n  ")
		b.WriteString(title)
	}
	return b.String()
}
