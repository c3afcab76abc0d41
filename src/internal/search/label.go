package search

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// styles used to decorate a result row. Mirrors the original Qt delegate's
// start/end HTML tags (bold for Artist, italic for Album, plain otherwise)
// but targets a terminal via lipgloss instead of QTextDocument HTML.
var (
	styleArtist = lipgloss.NewStyle().Bold(true)
	styleAlbum  = lipgloss.NewStyle().Italic(true)
	styleDim    = lipgloss.NewStyle().Faint(true)
)

// Pluralize returns the English singular or plural form of noun for count n.
// The teacher carries no i18n layer either (muserv's WriteStatus and friends
// are plain fmt.Sprintf); full gettext-style plural rules are out of scope
// per spec Non-goals on language-aware behavior, so this stays a simple
// English n==1 rule.
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// printer formats integers with locale-appropriate grouping, the same role
// golang.org/x/text/message plays in the teacher's WriteStatus (there, for
// HeapAlloc byte counts).
var printer = message.NewPrinter(language.English)

// formatCount renders n with thousands separators.
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// Label renders a result row. When rich is true, field-appropriate styling
// is applied (the terminal analogue of the original's HTML delegate);
// otherwise a plain-text rendering is returned, e.g. for export or logging.
func Label(item *Item, rich bool) string {
	var b strings.Builder

	name := item.Name
	if item.Field == Genre {
		name = strings.ToUpper(name)
	}

	switch {
	case rich && item.Field == Artist:
		b.WriteString(styleArtist.Render(name))
	case rich && item.Field == Album:
		b.WriteString(styleAlbum.Render(name))
	default:
		b.WriteString(name)
	}

	detail := labelDetail(item)
	if detail == "" {
		return b.String()
	}

	b.WriteString("  ")
	if rich {
		b.WriteString(styleDim.Render(detail))
	} else {
		b.WriteString(detail)
	}

	return b.String()
}

// labelDetail builds the secondary line: a song count (unless the item is a
// Title, which names exactly one song) followed by "of this genre" for
// Genre nodes or "by <artist>"/"on <album>" for nodes with a parent.
func labelDetail(item *Item) string {
	var b strings.Builder

	if item.Field != Title {
		n := len(item.Matches)
		b.WriteString(formatCount(n))
		b.WriteString(" ")
		b.WriteString(Pluralize(n, "song", "songs"))

		if item.Field == Genre || item.Parent != nil {
			b.WriteString(" ")
		}
	}

	switch {
	case item.Field == Genre:
		b.WriteString("of this genre")

	case item.Parent != nil:
		// prefer the grandparent (e.g. Artist, for a Title row) when one
		// exists, so rows consistently attribute "by <artist>" rather than
		// "on <album>"; only a parent with no further ancestor is used
		// directly.
		parent := item.Parent
		if parent.Parent != nil {
			parent = parent.Parent
		}

		if parent.Field == Album {
			b.WriteString("on ")
		} else {
			b.WriteString("by ")
		}
		b.WriteString(parent.Name)
	}

	return b.String()
}

// StatsLabel renders the "N result(s)" / "V of T result(s) shown" stats
// line per spec §4.6, pluralizing on the pre-trim total T.
func StatsLabel(r Result) string {
	total := r.Total()
	if r.HiddenItems == 0 {
		return formatCount(total) + " " + Pluralize(total, "result", "results")
	}
	return formatCount(len(r.Items)) + " of " + formatCount(total) + " " +
		Pluralize(total, "result", "results") + " shown"
}
