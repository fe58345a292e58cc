package tzconvert

import (
	"errors"
	"strings"
	"time"
)

// ErrBadTimeString is returned when manual time input cannot be parsed.
// Callers treat it as "no change" rather than an error dialog.
var ErrBadTimeString = errors.New("unparseable time string")

// parse layouts tried in order for manual entry: 24-hour first, then the
// 12-hour variants with and without a space before the meridiem.
var timeLayouts = []string{
	"15:04",
	"3:04 PM",
	"3:04PM",
}

// ParseTimeOfDay parses manual time entry.
// Accepted forms: "HH:MM" (24-hour), "HH:MM AM/PM" and "HH:MMpm"
// (12-hour, meridiem case-insensitive). Anything else fails.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return TimeOfDay{}, ErrBadTimeString
	}

	// time.Parse only matches uppercase meridiems.
	normalized := strings.ToUpper(trimmed)
	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, normalized)
		if err != nil {
			continue
		}
		return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
	}
	return TimeOfDay{}, ErrBadTimeString
}

// Format renders the time for display, either "15:04" or "03:04 PM".
func (t TimeOfDay) Format(use24h bool) string {
	anchor := time.Date(2000, time.January, 1, t.Hour, t.Minute, 0, 0, time.UTC)
	if use24h {
		return anchor.Format("15:04")
	}
	return anchor.Format("03:04 PM")
}

// String implements fmt.Stringer using the 24-hour form.
func (t TimeOfDay) String() string {
	return t.Format(true)
}
