package tzconvert

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

// midJanuary pins "today" to a date with no DST transition anywhere of
// interest, so offsets are stable: NY -5, LA -8, London 0, Kolkata +5:30,
// Sydney +11.
var midJanuary = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

func withFrozenClock(t *testing.T, at time.Time) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })
}

func TestConvert(t *testing.T) {
	withFrozenClock(t, midJanuary)

	tests := []struct {
		name string
		in   TimeOfDay
		from string
		to   string
		want TimeOfDay
	}{
		{"UTC to New York winter", TimeOfDay{12, 0}, "UTC", "America/New_York", TimeOfDay{7, 0}},
		{"New York to UTC winter", TimeOfDay{7, 0}, "America/New_York", "UTC", TimeOfDay{12, 0}},
		{"UTC to Kolkata half-hour offset", TimeOfDay{12, 0}, "UTC", "Asia/Kolkata", TimeOfDay{17, 30}},
		{"Kolkata to UTC half-hour offset", TimeOfDay{17, 30}, "Asia/Kolkata", "UTC", TimeOfDay{12, 0}},
		{"London to Sydney", TimeOfDay{9, 0}, "Europe/London", "Australia/Sydney", TimeOfDay{20, 0}},
		{"LA to Kolkata crosses midnight", TimeOfDay{23, 30}, "America/Los_Angeles", "Asia/Kolkata", TimeOfDay{13, 0}},
		{"Tokyo to LA wraps backwards", TimeOfDay{3, 0}, "Asia/Tokyo", "America/Los_Angeles", TimeOfDay{10, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.in, tt.from, tt.to)
			if got != tt.want {
				t.Errorf("Convert(%v, %q, %q) = %v, want %v",
					tt.in, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestConvertIdentity(t *testing.T) {
	withFrozenClock(t, midJanuary)

	zones := []string{"UTC", "America/New_York", "Asia/Kolkata", "Australia/Sydney", "Pacific/Chatham"}
	times := []TimeOfDay{{0, 0}, {2, 30}, {12, 0}, {23, 59}}

	for _, zone := range zones {
		for _, in := range times {
			if got := Convert(in, zone, zone); got != in {
				t.Errorf("Convert(%v, %q, %q) = %v, want identity", in, zone, zone, got)
			}
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	withFrozenClock(t, midJanuary)

	zones := []string{"UTC", "America/Los_Angeles", "Europe/Berlin", "Asia/Kolkata", "Asia/Tokyo"}
	times := []TimeOfDay{{0, 0}, {6, 15}, {13, 45}, {23, 30}}

	for _, from := range zones {
		for _, to := range zones {
			for _, in := range times {
				there := Convert(in, from, to)
				back := Convert(there, to, from)
				if back != in {
					t.Errorf("round trip %q -> %q: %v -> %v -> %v", from, to, in, there, back)
				}
			}
		}
	}
}

func TestConvertUnresolvableZone(t *testing.T) {
	withFrozenClock(t, midJanuary)

	in := TimeOfDay{9, 15}
	tests := []struct {
		name string
		from string
		to   string
	}{
		{"bad source zone", "Not/AZone", "Europe/London"},
		{"bad destination zone", "Europe/London", "Not/AZone"},
		{"both zones bad", "Nope", "AlsoNope"},
		{"empty zones are resolvable as UTC", "", ""}, // time.LoadLocation("") is UTC
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Convert(in, tt.from, tt.to); got != in {
				t.Errorf("Convert(%v, %q, %q) = %v, want input unchanged", in, tt.from, tt.to, got)
			}
		})
	}
}

func TestConvertDSTDependentResult(t *testing.T) {
	// New York / Sydney differ by 16 hours in January and 14 in July, so
	// the same conversion must give different answers on the two dates.
	withFrozenClock(t, midJanuary)
	if got := Convert(TimeOfDay{8, 0}, "America/New_York", "Australia/Sydney"); got != (TimeOfDay{0, 0}) {
		t.Errorf("January NY 08:00 -> Sydney = %v, want 00:00", got)
	}

	SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)))
	if got := Convert(TimeOfDay{8, 0}, "America/New_York", "Australia/Sydney"); got != (TimeOfDay{22, 0}) {
		t.Errorf("July NY 08:00 -> Sydney = %v, want 22:00", got)
	}
}

func TestConvertSpringForwardGap(t *testing.T) {
	// 2024-03-10 02:30 does not exist in New York; interpreting it either
	// side of the jump lands on the same absolute instant, 07:30 UTC.
	withFrozenClock(t, time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))

	got := Convert(TimeOfDay{2, 30}, "America/New_York", "UTC")
	if got != (TimeOfDay{7, 30}) {
		t.Errorf("gap time 02:30 NY -> UTC = %v, want 07:30", got)
	}
}

func TestConvertFallBackOverlap(t *testing.T) {
	// 2024-11-03 01:30 occurs twice in New York: 05:30 UTC as EDT and
	// 06:30 UTC as EST. Either disambiguation is acceptable as long as it
	// is consistent.
	withFrozenClock(t, time.Date(2024, time.November, 3, 12, 0, 0, 0, time.UTC))

	first := Convert(TimeOfDay{1, 30}, "America/New_York", "UTC")
	if first != (TimeOfDay{5, 30}) && first != (TimeOfDay{6, 30}) {
		t.Fatalf("ambiguous 01:30 NY -> UTC = %v, want 05:30 or 06:30", first)
	}
	for range 5 {
		if again := Convert(TimeOfDay{1, 30}, "America/New_York", "UTC"); again != first {
			t.Errorf("ambiguous time resolved inconsistently: %v then %v", first, again)
		}
	}
}
