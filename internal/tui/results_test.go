// ABOUTME: Tests for the search results view.
// ABOUTME: Covers stale ref filtering, title placeholders, day-level selection, and the banner.
package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/minidiary/internal/i18n"
	"github.com/2389-research/minidiary/internal/models"
)

var en = i18n.New("en")

func sampleEntries() models.Entries {
	return models.Entries{
		"2024-03-09": {Date: "2024-03-09", Title: "Farmers market"},
		"2024-03-10": {Date: "2024-03-10", Title: ""},
		"2024-03-11": {Date: "2024-03-11", Title: "  "},
	}
}

func results(refs ...string) []models.SearchResult {
	out := make([]models.SearchResult, len(refs))
	for i, ref := range refs {
		out[i] = models.SearchResult{Ref: ref, Score: 1}
	}
	return out
}

func TestBuildResults_DropsStaleRefs(t *testing.T) {
	selected := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	view := BuildResults(selected, sampleEntries(), results("2024-03-09", "2024-01-01", "2024-03-10", "2023-07-04"), en)

	require.Len(t, view.Rows, 2)
	assert.Equal(t, "2024-03-09", view.Rows[0].IndexDate)
	assert.Equal(t, "2024-03-10", view.Rows[1].IndexDate)
	assert.Empty(t, view.Banner)
	assert.False(t, view.Empty())
}

func TestBuildResults_RowCountMatchesExistingRefs(t *testing.T) {
	entries := sampleEntries()
	selected := time.Now()

	all := results("2024-03-09", "2024-03-10", "2024-03-11", "1999-01-01", "2000-02-02")
	for n := 0; n <= len(all); n++ {
		subset := all[:n]
		want := 0
		for _, r := range subset {
			if _, ok := entries[r.Ref]; ok {
				want++
			}
		}
		view := BuildResults(selected, entries, subset, en)
		assert.Len(t, view.Rows, want, "first %d results", n)
		assert.Equal(t, want == 0, view.Empty())
	}
}

func TestBuildResults_TitlePlaceholder(t *testing.T) {
	view := BuildResults(time.Now(), sampleEntries(), results("2024-03-09", "2024-03-10", "2024-03-11"), en)
	require.Len(t, view.Rows, 3)

	assert.Equal(t, "Farmers market", view.Rows[0].Title)
	assert.False(t, view.Rows[0].Untitled)

	assert.Equal(t, "No title", view.Rows[1].Title)
	assert.True(t, view.Rows[1].Untitled)

	assert.Equal(t, "  ", view.Rows[2].Title, "non-empty titles are shown verbatim")
	assert.False(t, view.Rows[2].Untitled)

	de := BuildResults(time.Now(), sampleEntries(), results("2024-03-10"), i18n.New("de"))
	assert.Equal(t, "Kein Titel", de.Rows[0].Title)
}

func TestBuildResults_SelectionIgnoresTimeOfDay(t *testing.T) {
	entries := sampleEntries()
	refs := results("2024-03-09", "2024-03-10")

	for _, selected := range []time.Time{
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local),
		time.Date(2024, 3, 10, 13, 37, 0, 0, time.Local),
		time.Date(2024, 3, 10, 23, 59, 59, 999, time.Local),
	} {
		view := BuildResults(selected, entries, refs, en)
		require.Len(t, view.Rows, 2)
		assert.False(t, view.Rows[0].Selected, "selected %v", selected)
		assert.True(t, view.Rows[1].Selected, "selected %v", selected)
	}

	view := BuildResults(time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local), entries, refs, en)
	for _, row := range view.Rows {
		assert.False(t, row.Selected)
	}
}

func TestBuildResults_DateLabel(t *testing.T) {
	view := BuildResults(time.Now(), sampleEntries(), results("2024-03-09"), en)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "Saturday, March 9, 2024", view.Rows[0].DateLabel)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local), view.Rows[0].Date)
}

func TestBuildResults_EmptyInputsShowBanner(t *testing.T) {
	selected := time.Now()

	cases := map[string]Results{
		"no entries": BuildResults(selected, models.Entries{}, results("2024-03-09"), en),
		"no results": BuildResults(selected, sampleEntries(), nil, en),
		"all stale":  BuildResults(selected, sampleEntries(), results("2020-01-01"), en),
	}
	for name, view := range cases {
		assert.True(t, view.Empty(), name)
		assert.Empty(t, view.Rows, name)
		assert.Equal(t, "No results", view.Banner, name)
	}
}

func TestResults_Activate(t *testing.T) {
	view := BuildResults(time.Now(), sampleEntries(), results("2024-03-10", "2024-03-09"), en)

	var got []time.Time
	selectDate := func(d time.Time) { got = append(got, d) }

	assert.True(t, view.Activate(1, selectDate))
	assert.False(t, view.Activate(2, selectDate))
	assert.False(t, view.Activate(-1, selectDate))

	require.Len(t, got, 1)
	assert.Equal(t, "2024-03-09", models.IndexDate(got[0]))
}

func TestResults_Render(t *testing.T) {
	selected := time.Date(2024, 3, 9, 18, 0, 0, 0, time.Local)
	view := BuildResults(selected, sampleEntries(), results("2024-03-09", "2024-03-10"), en)

	out := stripansi.Strip(view.Render(DefaultPalettes()[models.ThemeDark].Styles(), 1))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "  Saturday, March 9, 2024", lines[0])
	assert.Equal(t, "  Farmers market", lines[1])
	assert.Equal(t, "> Sunday, March 10, 2024", lines[2])
	assert.Equal(t, "  No title", lines[3])
}

func TestResults_RenderBanner(t *testing.T) {
	view := BuildResults(time.Now(), models.Entries{}, nil, en)
	out := stripansi.Strip(view.Render(PlainStyles(), -1))
	assert.Equal(t, "i No results", out)
}
