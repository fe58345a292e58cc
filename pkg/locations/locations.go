// Package locations maintains the user's directory of location names and
// their IANA timezones. The directory is a flat JSON object on disk, loaded
// once at startup and rewritten wholesale after every accepted edit.
package locations

import (
	"encoding/json"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// Entry is one directory row: a display name and the timezone it stands for.
// The zone is not validated here; a bad value only surfaces when a
// conversion using it fails closed.
type Entry struct {
	Name string `json:"name"`
	Zone string `json:"zone"`
}

// Directory maps display names to timezone identifiers. Keys keep their
// original casing; lookup is case-insensitive. Not safe for concurrent
// mutation, which matches its single event-loop usage.
type Directory struct {
	entries map[string]string
	logger  *slog.Logger
}

// Defaults returns a fresh copy of the built-in location set used whenever
// no usable directory file exists.
func Defaults() map[string]string {
	return map[string]string{
		"New York, USA":     "America/New_York",
		"London, UK":        "Europe/London",
		"Dublin, Ireland":   "Europe/Dublin",
		"Delhi, India":      "Asia/Kolkata",
		"Tokyo, Japan":      "Asia/Tokyo",
		"Sydney, Australia": "Australia/Sydney",
		"Los Angeles, USA":  "America/Los_Angeles",
		"Chicago, USA":      "America/Chicago",
		"Berlin, Germany":   "Europe/Berlin",
		"Paris, France":     "Europe/Paris",
	}
}

// New creates a directory from the given mapping. The map is copied.
func New(entries map[string]string, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Directory{
		entries: make(map[string]string, len(entries)),
		logger:  logger,
	}
	for name, zone := range entries {
		d.entries[name] = zone
	}
	return d
}

// LoadOrDefault reads a directory from path. A missing, unreadable, or
// malformed file falls back to the built-in defaults; that is the normal
// first-run path, not an error.
func LoadOrDefault(path string, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("locations file not readable, using defaults", "path", path, "error", err)
		return New(Defaults(), logger)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		logger.Debug("locations file malformed, using defaults", "path", path, "error", err)
		return New(Defaults(), logger)
	}
	return New(entries, logger)
}

// Lookup matches user-entered text against the stored names: surrounding
// whitespace is trimmed and comparison is case-insensitive. When several
// stored keys differ only in case, the lexicographically smallest key wins
// so the result does not depend on map iteration order. A false return is
// a normal outcome the caller handles by prompting the user.
func (d *Directory) Lookup(text string) (Entry, bool) {
	want := strings.ToLower(strings.TrimSpace(text))
	if want == "" {
		return Entry{}, false
	}

	match := ""
	for name := range d.entries {
		if strings.ToLower(name) != want {
			continue
		}
		if match == "" || name < match {
			match = name
		}
	}
	if match == "" {
		return Entry{}, false
	}
	return Entry{Name: match, Zone: d.entries[match]}, true
}

// Upsert inserts or overwrites the entry for name. Keys are case-sensitive
// for storage, so "Delhi, India" and "delhi, india" stay distinct rows even
// though Lookup matches either. Empty names are ignored.
func (d *Directory) Upsert(name, zone string) {
	name = strings.TrimSpace(name)
	zone = strings.TrimSpace(zone)
	if name == "" || zone == "" {
		return
	}
	d.entries[name] = zone
}

// Remove deletes the entry for name if present; otherwise a no-op.
func (d *Directory) Remove(name string) {
	delete(d.entries, strings.TrimSpace(name))
}

// Replace swaps the whole directory contents, the bulk form used when an
// editing session commits its table.
func (d *Directory) Replace(entries map[string]string) {
	d.entries = make(map[string]string, len(entries))
	for name, zone := range entries {
		d.Upsert(name, zone)
	}
}

// Len returns the number of stored entries.
func (d *Directory) Len() int {
	return len(d.entries)
}

// Entries returns all rows sorted by name, case-insensitively, for display.
func (d *Directory) Entries() []Entry {
	out := make([]Entry, 0, len(d.entries))
	for name, zone := range d.entries {
		out = append(out, Entry{Name: name, Zone: zone})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a == b {
			return out[i].Name < out[j].Name
		}
		return a < b
	})
	return out
}

// Snapshot returns a copy of the underlying mapping.
func (d *Directory) Snapshot() map[string]string {
	out := make(map[string]string, len(d.entries))
	for name, zone := range d.entries {
		out[name] = zone
	}
	return out
}
