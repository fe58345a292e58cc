package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/zonepair/zonepair/pkg/geolookup"
	"github.com/zonepair/zonepair/pkg/locations"
	"github.com/zonepair/zonepair/pkg/pair"
	"github.com/zonepair/zonepair/pkg/tzconvert"
	"github.com/zonepair/zonepair/pkg/zones"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	timeColor   = color.New(color.FgGreen, color.Bold)
	warnColor   = color.New(color.FgYellow)
)

type repl struct {
	session  *pair.Session
	dir      *locations.Directory
	savePath string
	use24h   bool
	in       io.Reader
	out      io.Writer
}

func (r *repl) run() {
	fmt.Fprintln(r.out, "zonepair — edit either column, the other follows. Type 'help' for commands.")
	r.printColumns()

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !r.dispatch(line) {
			return
		}
	}
}

// dispatch runs one command line; false means quit.
func (r *repl) dispatch(line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "quit", "exit", "q":
		return false
	case "help", "?":
		r.printHelp()
	case "time":
		r.cmdTime(rest)
	case "zone":
		r.cmdZone(rest)
	case "loc":
		r.cmdLocation(rest)
	case "map":
		r.cmdMap(rest)
	case "add":
		r.cmdAdd(rest)
	case "rm":
		r.cmdRemove(rest)
	case "list":
		r.cmdList()
	case "zones":
		r.cmdZones(rest)
	case "24h":
		r.cmd24h(rest)
	default:
		r.warnf("unknown command %q, try 'help'", cmd)
	}
	return true
}

// side parses the leading a/b column selector off a command argument.
func (*repl) side(args string) (pair.Side, string, error) {
	name, rest, _ := strings.Cut(args, " ")
	switch strings.ToLower(name) {
	case "a":
		return pair.SideA, strings.TrimSpace(rest), nil
	case "b":
		return pair.SideB, strings.TrimSpace(rest), nil
	default:
		return 0, "", fmt.Errorf("expected column a or b, got %q", name)
	}
}

func (r *repl) cmdTime(args string) {
	side, rest, err := r.side(args)
	if err != nil {
		r.warnf("%v", err)
		return
	}
	parsed, err := tzconvert.ParseTimeOfDay(rest)
	if err != nil {
		// Bad input is a no-op: the displayed time stays as it was.
		r.warnf("could not parse time %q, keeping the current time", rest)
		return
	}
	if err := r.session.SetTime(side, parsed); err != nil {
		r.warnf("%v", err)
		return
	}
	r.printColumns()
}

func (r *repl) cmdZone(args string) {
	side, rest, err := r.side(args)
	if err != nil {
		r.warnf("%v", err)
		return
	}
	if rest == "" {
		r.warnf("usage: zone a|b <IANA zone>")
		return
	}
	if !zones.Valid(rest) {
		r.warnf("%q is not a recognized timezone, try 'zones %s'", rest, rest)
		return
	}
	r.session.SetZone(side, rest)
	r.printColumns()
}

func (r *repl) cmdLocation(args string) {
	side, rest, err := r.side(args)
	if err != nil {
		r.warnf("%v", err)
		return
	}
	entry, err := r.session.SetLocation(side, rest)
	if errors.Is(err, pair.ErrUnknownLocation) {
		r.warnf("location %q is not recognized; use 'add %s = <zone>' to teach it", rest, rest)
		return
	}
	if err != nil {
		r.warnf("%v", err)
		return
	}
	fmt.Fprintf(r.out, "%s -> %s\n", entry.Name, entry.Zone)
	r.printColumns()
}

func (r *repl) cmdMap(args string) {
	side, rest, err := r.side(args)
	if err != nil {
		r.warnf("%v", err)
		return
	}
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		r.warnf("usage: map a|b <lat> <lon>")
		return
	}
	lat, errLat := strconv.ParseFloat(fields[0], 64)
	lon, errLon := strconv.ParseFloat(fields[1], 64)
	if errLat != nil || errLon != nil {
		r.warnf("coordinates must be decimal degrees")
		return
	}

	zone, err := r.session.SetCoordinates(side, lat, lon)
	if errors.Is(err, geolookup.ErrNotFound) {
		r.warnf("no timezone found at (%.2f, %.2f) — open ocean?", lat, lon)
		return
	}
	if err != nil {
		r.warnf("%v", err)
		return
	}
	fmt.Fprintf(r.out, "(%.2f, %.2f) -> %s\n", lat, lon, zone)
	r.printColumns()
}

func (r *repl) cmdAdd(args string) {
	name, zone, found := strings.Cut(args, "=")
	name = strings.TrimSpace(name)
	zone = strings.TrimSpace(zone)
	if !found || name == "" || zone == "" {
		r.warnf("usage: add <name> = <IANA zone>")
		return
	}
	if !zones.Valid(zone) {
		r.warnf("%q is not a recognized timezone", zone)
		return
	}
	r.dir.Upsert(name, zone)
	r.dir.Persist(r.savePath)
	fmt.Fprintf(r.out, "added %s -> %s\n", name, zone)
}

func (r *repl) cmdRemove(args string) {
	name := strings.TrimSpace(args)
	if name == "" {
		r.warnf("usage: rm <name>")
		return
	}
	r.dir.Remove(name)
	r.dir.Persist(r.savePath)
	fmt.Fprintf(r.out, "removed %s\n", name)
}

func (r *repl) cmdList() {
	for _, entry := range r.dir.Entries() {
		fmt.Fprintf(r.out, "  %-24s %s\n", entry.Name, entry.Zone)
	}
}

func (r *repl) cmdZones(filter string) {
	names := zones.Filter(zones.Available(), filter)
	if len(names) == 0 {
		r.warnf("no matching zones")
		return
	}
	for _, name := range names {
		fmt.Fprintf(r.out, "  %s\n", name)
	}
}

func (r *repl) cmd24h(args string) {
	switch strings.ToLower(strings.TrimSpace(args)) {
	case "on":
		r.use24h = true
	case "off":
		r.use24h = false
	default:
		r.warnf("usage: 24h on|off")
		return
	}
	r.printColumns()
}

func (r *repl) printColumns() {
	a, b := r.session.Columns()
	r.printColumn("A", a)
	r.printColumn("B", b)
}

func (r *repl) printColumn(label string, col pair.Column) {
	zone := col.Zone
	if col.Location != "" {
		zone = fmt.Sprintf("%s (%s)", col.Zone, col.Location)
	}
	fmt.Fprintf(r.out, "%s  %s  %s\n",
		headerColor.Sprintf("[%s]", label),
		timeColor.Sprint(col.Time.Format(r.use24h)),
		zone)
}

func (r *repl) warnf(format string, args ...any) {
	fmt.Fprintln(r.out, warnColor.Sprintf("warning: "+format, args...))
}

func (r *repl) printHelp() {
	fmt.Fprint(r.out, `commands:
  time a|b <HH:MM | HH:MM am/pm>   set a column's time
  zone a|b <IANA zone>             set a column's timezone
  loc  a|b <location name>         set timezone from the known locations
  map  a|b <lat> <lon>             set timezone from coordinates
  add <name> = <zone>              add or update a known location
  rm <name>                        remove a known location
  list                             show known locations
  zones [filter]                   list available timezones
  24h on|off                       toggle 24-hour display
  quit                             exit
`)
}
