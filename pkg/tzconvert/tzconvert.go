// Package tzconvert converts wall-clock times between IANA timezones.
// Conversion is anchored to "today" in UTC at the moment of the call and
// honors each zone's daylight-saving rules for that date. Times carry no
// date component, so a conversion crossing midnight simply wraps.
package tzconvert

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/maypok86/otter/v2"
)

// TimeOfDay is a wall-clock time without date or seconds.
type TimeOfDay struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// Valid reports whether the time is within the 24-hour clock.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// clock is the package time source so tests can pin "today".
// Production code uses the real clock.
var clock clockwork.Clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// zoneCache keeps resolved locations so repeated conversions don't re-read
// tzdata files. The full IANA set is under 600 names.
var zoneCache = otter.Must(&otter.Options[string, *time.Location]{
	MaximumSize: 1024,
})

// loadZone resolves an IANA timezone name, caching successful lookups.
func loadZone(name string) (*time.Location, error) {
	if loc, ok := zoneCache.GetIfPresent(name); ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("resolving timezone %q: %w", name, err)
	}
	zoneCache.Set(name, loc)
	return loc, nil
}

// Convert interprets t as civil time in the from zone on today's UTC date
// and returns the equivalent wall-clock time in the to zone.
//
// The operation fails closed: if either zone name is not in the timezone
// database, the input is returned unchanged and no error is surfaced, so
// the caller never displays garbage because of a bad zone string.
//
// Times in a spring-forward gap or fall-back overlap resolve with Go's
// time.Date normalization for the from zone.
func Convert(t TimeOfDay, from, to string) TimeOfDay {
	src, err := loadZone(from)
	if err != nil {
		return t
	}
	dst, err := loadZone(to)
	if err != nil {
		return t
	}

	today := clock.Now().UTC()
	civil := time.Date(today.Year(), today.Month(), today.Day(), t.Hour, t.Minute, 0, 0, src)
	converted := civil.In(dst)
	return TimeOfDay{Hour: converted.Hour(), Minute: converted.Minute()}
}
