// Package labels holds the entity label → display colour map shared by the
// highlighter, the legend and the terminal renderer.
//
// The map is declared once, in display order, and never mutated afterwards.
package labels

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Fallback is the colour used for labels that are not in the map.
const Fallback = "#888"

// Entry is one legend row.
type Entry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// entries is the canonical map, in declaration (legend) order.
var entries = []Entry{
	// Personal identifiers
	{"NAME", "#e74c3c"},
	{"SURNAME", "#c0392b"},
	{"AGE", "#9b59b6"},
	{"DATE-OF-BIRTH", "#8e44ad"},
	{"DATE", "#3498db"},
	{"SEX", "#e91e63"},

	// Sensitive attributes
	{"RELIGION", "#f39c12"},
	{"POLITICAL-VIEW", "#d35400"},
	{"ETHNICITY", "#16a085"},
	{"SEXUAL-ORIENTATION", "#e84393"},
	{"HEALTH", "#27ae60"},
	{"RELATIVE", "#2980b9"},

	// Location
	{"CITY", "#1abc9c"},
	{"ADDRESS", "#00bcd4"},

	// Contact
	{"EMAIL", "#4ecdc4"},
	{"PHONE", "#45b7d1"},

	// Documents & IDs
	{"PESEL", "#ff7043"},
	{"DOCUMENT-NUMBER", "#ff5722"},

	// Work & education
	{"COMPANY", "#795548"},
	{"SCHOOL-NAME", "#607d8b"},
	{"JOB-TITLE", "#9c27b0"},

	// Financial
	{"BANK-ACCOUNT", "#ffc107"},
	{"CREDIT-CARD-NUMBER", "#ff9800"},

	// Digital identity
	{"USERNAME", "#00bfa5"},
	{"SECRET", "#f44336"},
}

var index = lo.SliceToMap(entries, func(e Entry) (string, string) {
	return e.Label, e.Color
})

// Lookup returns the colour for label and whether the label is known.
func Lookup(label string) (string, bool) {
	c, ok := index[label]
	return c, ok
}

// Color returns the colour for label, or Fallback for unknown labels.
func Color(label string) string {
	if c, ok := index[label]; ok {
		return c
	}
	return Fallback
}

// All returns a copy of the map in declaration order.
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Names returns the label names in declaration order.
func Names() []string {
	return lo.Map(entries, func(e Entry, _ int) string { return e.Label })
}

// Len returns the number of known labels.
func Len() int { return len(entries) }

// expand turns "#abc" into "#aabbcc". Other inputs are returned unchanged.
func expand(color string) string {
	if len(color) != 4 || color[0] != '#' {
		return color
	}
	var b strings.Builder
	b.WriteByte('#')
	for _, c := range color[1:] {
		b.WriteRune(c)
		b.WriteRune(c)
	}
	return b.String()
}

// Tint returns the translucent background used behind a label: the colour
// with alpha 0x22 in #RRGGBBAA form.
func Tint(color string) string {
	return expand(color) + "22"
}

// RGB parses a #rgb or #rrggbb colour.
func RGB(color string) (r, g, b int, ok bool) {
	hex := expand(color)
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
