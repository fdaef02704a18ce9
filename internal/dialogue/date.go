package dialogue

import (
	"strings"
	"time"
)

// Accepted user date layouts, tried in order. Layouts without a year default
// to the current year. Non-padded tokens accept "9/12" as well as "09/12".
var dateLayouts = []struct {
	layout  string
	hasYear bool
}{
	{"2/1/2006", true},
	{"2-1-2006", true},
	{"2/1", false},
	{"2-1", false},
}

// ParseUserDate parses a user-typed date like "12/01", "12-01" or
// "12/01/2026". Short forms resolve to the current year taken from now.
// Returns false when no layout matches or the day does not exist in the
// resolved year (e.g. 29/02 outside a leap year).
func ParseUserDate(text string, now time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	for _, l := range dateLayouts {
		parsed, err := time.ParseInLocation(l.layout, text, now.Location())
		if err != nil {
			continue
		}
		year := parsed.Year()
		if !l.hasYear {
			year = now.Year()
		}
		d := time.Date(year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location())
		if d.Month() != parsed.Month() || d.Day() != parsed.Day() {
			return time.Time{}, false
		}
		return d, true
	}
	return time.Time{}, false
}
