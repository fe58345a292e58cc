// Package pair keeps two time/zone columns synchronized. Edits are applied
// as commands against a single state: an accepted edit to one column
// recomputes the opposite column and nothing else, so updates flow one way
// and can never loop back onto their source.
package pair

import (
	"errors"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/zonepair/zonepair/pkg/locations"
	"github.com/zonepair/zonepair/pkg/tzconvert"
)

// Side selects one of the two columns.
type Side int

const (
	SideA Side = iota
	SideB
)

// String returns "A" or "B".
func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// ErrUnknownLocation means entered text matched no directory entry. The
// caller warns the user and leaves both columns untouched.
var ErrUnknownLocation = errors.New("unknown location")

// ZoneResolver turns coordinates into a timezone name. Satisfied by
// geolookup.Resolver.
type ZoneResolver interface {
	TimezoneFor(lat, lon float64) (string, error)
}

// Column is one side's displayed state.
type Column struct {
	Zone     string
	Time     tzconvert.TimeOfDay
	Location string // canonical directory name when the zone came from one
}

// Session holds the two columns plus their collaborators.
type Session struct {
	a, b     Column
	dir      *locations.Directory
	resolver ZoneResolver
	logger   *slog.Logger
}

// New creates a session with column A showing the current UTC time and
// column B converted from it. The resolver may be nil when map picking is
// not offered.
func New(dir *locations.Directory, resolver ZoneResolver, clock clockwork.Clock, logger *slog.Logger) *Session {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}

	now := clock.Now().UTC()
	s := &Session{
		a:        Column{Zone: "UTC", Time: tzconvert.TimeOfDay{Hour: now.Hour(), Minute: now.Minute()}},
		b:        Column{Zone: "UTC"},
		dir:      dir,
		resolver: resolver,
		logger:   logger,
	}
	s.syncFrom(SideA)
	return s
}

// Columns returns the current state of both sides.
func (s *Session) Columns() (a, b Column) {
	return s.a, s.b
}

// column returns the side being edited.
func (s *Session) column(side Side) *Column {
	if side == SideA {
		return &s.a
	}
	return &s.b
}

// other returns the side to recompute.
func (s *Session) other(side Side) *Column {
	if side == SideA {
		return &s.b
	}
	return &s.a
}

// syncFrom recomputes the opposite column from the given side's time and
// zone. This is the only place a column is written programmatically.
func (s *Session) syncFrom(side Side) {
	from, to := s.column(side), s.other(side)
	to.Time = tzconvert.Convert(from.Time, from.Zone, to.Zone)
	s.logger.Debug("columns synced",
		"edited", side.String(),
		"from_zone", from.Zone, "from_time", from.Time.String(),
		"to_zone", to.Zone, "to_time", to.Time.String())
}

// SetTime applies an edited time to one column and recomputes the other.
// Out-of-range times are rejected and nothing changes.
func (s *Session) SetTime(side Side, t tzconvert.TimeOfDay) error {
	if !t.Valid() {
		return tzconvert.ErrBadTimeString
	}
	s.column(side).Time = t
	s.syncFrom(side)
	return nil
}

// SetZone changes one column's timezone, keeping that column's wall-clock
// time and recomputing the other side. Any manually chosen zone clears the
// column's location label.
func (s *Session) SetZone(side Side, zone string) {
	col := s.column(side)
	col.Zone = zone
	col.Location = ""
	s.syncFrom(side)
}

// SetLocation resolves entered location text through the directory and, on
// a match, applies the matched zone to the column. Unknown text returns
// ErrUnknownLocation with the state unchanged.
func (s *Session) SetLocation(side Side, text string) (locations.Entry, error) {
	entry, ok := s.dir.Lookup(text)
	if !ok {
		return locations.Entry{}, ErrUnknownLocation
	}
	col := s.column(side)
	col.Zone = entry.Zone
	col.Location = entry.Name
	s.syncFrom(side)
	return entry, nil
}

// SetCoordinates resolves map coordinates to a zone and applies it to the
// column. Resolution failures (including open ocean) leave the state
// unchanged for the caller to report.
func (s *Session) SetCoordinates(side Side, lat, lon float64) (string, error) {
	if s.resolver == nil {
		return "", errors.New("no coordinate resolver configured")
	}
	zone, err := s.resolver.TimezoneFor(lat, lon)
	if err != nil {
		return "", err
	}
	col := s.column(side)
	col.Zone = zone
	col.Location = ""
	s.syncFrom(side)
	return zone, nil
}
