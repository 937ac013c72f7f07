// ABOUTME: Core data models for diary entries, search results, and theme preferences.
// ABOUTME: Provides index date helpers shared by storage, search, and the TUI.
package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// IndexDateLayout is the layout of the date keys entries are stored under.
const IndexDateLayout = "2006-01-02"

// ErrInvalidDate is returned for strings that are not valid index dates.
var ErrInvalidDate = errors.New("invalid index date")

// Entry is a single diary record. Each calendar day holds at most one entry.
type Entry struct {
	ID        uuid.UUID
	Date      string // index date, YYYY-MM-DD
	Title     string
	Text      string
	UpdatedAt time.Time
	FilePath  string
}

// NewEntry creates an entry for the given index date with a generated UUID.
func NewEntry(date, title, text string) *Entry {
	return &Entry{
		ID:        uuid.New(),
		Date:      date,
		Title:     title,
		Text:      text,
		UpdatedAt: time.Now(),
	}
}

// IsEmpty reports whether the entry has neither a title nor any text.
func (e Entry) IsEmpty() bool {
	return strings.TrimSpace(e.Title) == "" && strings.TrimSpace(e.Text) == ""
}

// Entries maps index dates to entries.
type Entries map[string]Entry

// Dates returns the index dates in the mapping, newest first.
func (e Entries) Dates() []string {
	dates := lo.Keys(e)
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// SearchResult references an entry by its index date. The referenced entry
// may have been deleted since the search ran.
type SearchResult struct {
	Ref   string
	Score float64
}

// IndexDate formats t as an index date in t's location.
func IndexDate(t time.Time) string {
	return t.Format(IndexDateLayout)
}

// ParseIndexDate parses an index date as local midnight.
func ParseIndexDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(IndexDateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
	}
	return t, nil
}

// IsFutureDate reports whether the index date lies after now's calendar day.
func IsFutureDate(date string, now time.Time) (bool, error) {
	if _, err := ParseIndexDate(date); err != nil {
		return false, err
	}
	return date > IndexDate(now), nil
}

// SameDay reports whether a and b fall on the same calendar day, each read in
// its own location. Time of day is ignored.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ThemePref is the user's theme choice. ThemeAuto follows the system theme.
type ThemePref string

const (
	ThemeAuto  ThemePref = "auto"
	ThemeLight ThemePref = "light"
	ThemeDark  ThemePref = "dark"
)

// ThemePrefs lists the accepted theme preferences.
var ThemePrefs = []ThemePref{ThemeAuto, ThemeLight, ThemeDark}

// Valid reports whether t is one of ThemePrefs.
func (t ThemePref) Valid() bool {
	return lo.Contains(ThemePrefs, t)
}

// ParseThemePref converts a string to a ThemePref.
func ParseThemePref(s string) (ThemePref, bool) {
	t := ThemePref(s)
	return t, t.Valid()
}
