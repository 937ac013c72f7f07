// ABOUTME: Localized UI strings and long date labels.
// ABOUTME: Matches the user's locale against the bundled tables with x/text/language.
package i18n

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Keys of the localized strings.
const (
	KeyNoTitle   = "no-title"
	KeyNoResults = "no-results"
)

type table struct {
	strings  map[string]string
	months   [12]string
	weekdays [7]string // Sunday first, like time.Weekday
	// pattern uses {weekday}, {day}, {month}, {year}
	pattern string
}

var tables = map[language.Tag]table{
	language.English: {
		strings: map[string]string{
			KeyNoTitle:   "No title",
			KeyNoResults: "No results",
		},
		months:   [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		weekdays: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		pattern:  "{weekday}, {month} {day}, {year}",
	},
	language.German: {
		strings: map[string]string{
			KeyNoTitle:   "Kein Titel",
			KeyNoResults: "Keine Ergebnisse",
		},
		months:   [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
		weekdays: [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
		pattern:  "{weekday}, {day}. {month} {year}",
	},
	language.Spanish: {
		strings: map[string]string{
			KeyNoTitle:   "Sin título",
			KeyNoResults: "No hay resultados",
		},
		months:   [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		weekdays: [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
		pattern:  "{weekday}, {day} de {month} de {year}",
	},
	language.French: {
		strings: map[string]string{
			KeyNoTitle:   "Sans titre",
			KeyNoResults: "Aucun résultat",
		},
		months:   [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		weekdays: [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
		pattern:  "{weekday} {day} {month} {year}",
	},
}

// English is first so that it wins when nothing matches.
var supported = []language.Tag{language.English, language.German, language.Spanish, language.French}

var matcher = language.NewMatcher(supported)

// Translator looks up strings for one locale.
type Translator struct {
	tag   language.Tag
	table table
}

// New returns a Translator for the best match of locale, which may be a BCP 47
// tag ("de-AT") or a POSIX locale ("de_AT.UTF-8"). Unknown locales get English.
func New(locale string) *Translator {
	_, idx := language.MatchStrings(matcher, normalize(locale))
	tag := supported[idx]
	return &Translator{tag: tag, table: tables[tag]}
}

// DetectLocale returns the locale from LC_ALL, LC_MESSAGES or LANG, in that order.
func DetectLocale() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func normalize(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "C" || locale == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(locale, "_", "-")
}

// Language returns the matched language tag.
func (t *Translator) Language() language.Tag {
	return t.tag
}

// T returns the string for key, falling back to English and then to the key.
func (t *Translator) T(key string) string {
	if s, ok := t.table.strings[key]; ok {
		return s
	}
	if s, ok := tables[language.English].strings[key]; ok {
		return s
	}
	return key
}

// FormatDate renders d as a long date label, e.g. "Monday, January 2, 2006".
func (t *Translator) FormatDate(d time.Time) string {
	r := strings.NewReplacer(
		"{weekday}", t.table.weekdays[d.Weekday()],
		"{day}", strconv.Itoa(d.Day()),
		"{month}", t.table.months[d.Month()-1],
		"{year}", strconv.Itoa(d.Year()),
	)
	return r.Replace(t.table.pattern)
}
