// Package main implements the zonepair interactive timezone converter.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"

	"github.com/zonepair/zonepair/pkg/geolookup"
	"github.com/zonepair/zonepair/pkg/locations"
	"github.com/zonepair/zonepair/pkg/pair"
)

var (
	locationsPath = flag.String("locations", "", "Path to the known-locations file (or set ZONEPAIR_LOCATIONS)")
	use12h        = flag.Bool("12h", false, "Display times in 12-hour format")
	verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	version       = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("zonepair CLI v1.0.0")
		return
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if *locationsPath == "" {
		*locationsPath = os.Getenv("ZONEPAIR_LOCATIONS")
	}
	if *locationsPath == "" {
		*locationsPath = defaultLocationsPath(logger)
	}

	dir := locations.LoadOrDefault(*locationsPath, logger)
	logger.Debug("locations loaded", "path", *locationsPath, "entries", dir.Len())

	session := pair.New(dir, geolookup.NewResolver(logger), clockwork.NewRealClock(), logger)

	r := &repl{
		session:  session,
		dir:      dir,
		savePath: *locationsPath,
		use24h:   !*use12h,
		in:       os.Stdin,
		out:      os.Stdout,
	}
	r.run()
}

// defaultLocationsPath puts the directory file under the user config dir,
// falling back to the working directory when none is available.
func defaultLocationsPath(logger *slog.Logger) string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		logger.Debug("could not determine user config directory", "error", err)
		return "known_locations.json"
	}
	return filepath.Join(configDir, "zonepair", "known_locations.json")
}
