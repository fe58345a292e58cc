// Package zones enumerates the IANA timezone names available on the host.
// The stdlib gives no listing API, so the names come from walking the
// system zoneinfo directories the same way the tz tooling does.
package zones

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// zoneDirs are the conventional zoneinfo locations, tried in order.
var zoneDirs = []string{
	"/usr/share/zoneinfo",
	"/usr/share/lib/zoneinfo",
	"/usr/lib/locale/TZ",
}

// Valid reports whether name resolves against the timezone database.
func Valid(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// Available returns the sorted, de-duplicated IANA zone names found in the
// system zoneinfo directories. An empty slice means no zoneinfo is
// installed; callers should still accept manually typed names.
func Available() []string {
	seen := make(map[string]struct{})
	for _, dir := range zoneDirs {
		walkZoneDir(dir, "", seen)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// walkZoneDir collects zone names under dir/prefix. Zone files and the
// region directories holding them are capitalized; lowercase entries are
// metadata like posixrules or tzdata.zi and are skipped.
func walkZoneDir(dir, prefix string, seen map[string]struct{}) {
	entries, err := os.ReadDir(filepath.Join(dir, prefix))
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if name[0] < 'A' || name[0] > 'Z' {
			continue
		}
		rel := name
		if prefix != "" {
			rel = prefix + "/" + name
		}
		if entry.IsDir() {
			walkZoneDir(dir, rel, seen)
			continue
		}
		if strings.Contains(name, ".") {
			continue
		}
		seen[rel] = struct{}{}
	}
}

// Filter returns the names containing the given substring,
// case-insensitively. An empty filter returns all names.
func Filter(names []string, substr string) []string {
	if substr == "" {
		return names
	}
	want := strings.ToLower(substr)
	var out []string
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), want) {
			out = append(out, name)
		}
	}
	return out
}
