package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/zonepair/zonepair/pkg/geolookup"
	"github.com/zonepair/zonepair/pkg/locations"
	"github.com/zonepair/zonepair/pkg/tzconvert"
	"github.com/zonepair/zonepair/pkg/zones"
)

// server wires the directory, resolver, and metrics behind the API routes.
// The directory itself is single-threaded by design, so all access goes
// through mu.
type server struct {
	dir      *locations.Directory
	resolver *geolookup.Resolver
	savePath string
	logger   *slog.Logger
	metrics  *metrics
	limiter  *rateLimiter
	mu       sync.Mutex
}

func newServer(dir *locations.Directory, resolver *geolookup.Resolver, savePath string, logger *slog.Logger, m *metrics) *server {
	if logger == nil {
		logger = slog.Default()
	}
	return &server{
		dir:      dir,
		resolver: resolver,
		savePath: savePath,
		logger:   logger,
		metrics:  m,
		limiter:  newRateLimiter(),
	}
}

func (s *server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/convert", s.handleConvert)
	mux.HandleFunc("GET /api/resolve", s.handleResolve)
	mux.HandleFunc("GET /api/zones", s.handleZones)
	mux.HandleFunc("GET /api/locations", s.handleLocationsList)
	mux.HandleFunc("GET /api/locations/lookup", s.handleLocationsLookup)
	mux.HandleFunc("PUT /api/locations/{name}", s.handleLocationsPut)
	mux.HandleFunc("DELETE /api/locations/{name}", s.handleLocationsDelete)
}

// withRateLimit rejects clients over the per-IP budget before routing.
func (s *server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !s.limiter.allow(ip) {
			s.metrics.RequestsTotal.WithLabelValues("rate_limit", "rate_limited").Inc()
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleConvert serves GET /api/convert?time=HH:MM&from=Zone&to=Zone.
// Unlike the interactive surfaces, which silently keep the previous value,
// the API reports bad parameters explicitly.
func (s *server) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	parsed, err := tzconvert.ParseTimeOfDay(q.Get("time"))
	if err != nil {
		s.badRequest(w, "convert", "time must be HH:MM or HH:MM am/pm")
		return
	}
	from, to := q.Get("from"), q.Get("to")
	if !zones.Valid(from) {
		s.badRequest(w, "convert", "unknown timezone in 'from'")
		return
	}
	if !zones.Valid(to) {
		s.badRequest(w, "convert", "unknown timezone in 'to'")
		return
	}

	result := tzconvert.Convert(parsed, from, to)
	s.metrics.RequestsTotal.WithLabelValues("convert", "ok").Inc()
	s.metrics.ConversionsTotal.Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"hour":    result.Hour,
		"minute":  result.Minute,
		"display": result.Format(true),
	})
}

// handleResolve serves GET /api/resolve?lat=..&lon=..
func (s *server) handleResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	if errLat != nil || errLon != nil {
		s.badRequest(w, "resolve", "lat and lon must be decimal degrees")
		return
	}

	zone, err := s.resolver.TimezoneFor(lat, lon)
	switch {
	case errors.Is(err, geolookup.ErrNotFound):
		s.metrics.RequestsTotal.WithLabelValues("resolve", "not_found").Inc()
		s.metrics.GeoResolves.WithLabelValues("not_found").Inc()
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no timezone at those coordinates"})
	case err != nil:
		s.metrics.GeoResolves.WithLabelValues("error").Inc()
		s.badRequest(w, "resolve", err.Error())
	default:
		s.metrics.RequestsTotal.WithLabelValues("resolve", "ok").Inc()
		s.metrics.GeoResolves.WithLabelValues("ok").Inc()
		writeJSON(w, http.StatusOK, map[string]string{"zone": zone})
	}
}

func (s *server) handleZones(w http.ResponseWriter, r *http.Request) {
	names := zones.Filter(zones.Available(), r.URL.Query().Get("filter"))
	s.metrics.RequestsTotal.WithLabelValues("zones", "ok").Inc()
	writeJSON(w, http.StatusOK, map[string]any{"zones": names})
}

func (s *server) handleLocationsList(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	entries := s.dir.Entries()
	s.mu.Unlock()

	s.metrics.RequestsTotal.WithLabelValues("locations_list", "ok").Inc()
	writeJSON(w, http.StatusOK, map[string]any{"locations": entries})
}

func (s *server) handleLocationsLookup(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("q")

	s.mu.Lock()
	entry, found := s.dir.Lookup(text)
	s.mu.Unlock()

	if !found {
		s.metrics.RequestsTotal.WithLabelValues("locations_lookup", "not_found").Inc()
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown location"})
		return
	}
	s.metrics.RequestsTotal.WithLabelValues("locations_lookup", "ok").Inc()
	writeJSON(w, http.StatusOK, entry)
}

func (s *server) handleLocationsPut(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var body struct {
		Zone string `json:"zone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Zone == "" {
		s.badRequest(w, "locations_put", "body must be {\"zone\": \"...\"}")
		return
	}
	if !zones.Valid(body.Zone) {
		s.badRequest(w, "locations_put", "unknown timezone")
		return
	}

	s.mu.Lock()
	s.dir.Upsert(name, body.Zone)
	s.dir.Persist(s.savePath)
	s.mu.Unlock()

	s.metrics.RequestsTotal.WithLabelValues("locations_put", "ok").Inc()
	writeJSON(w, http.StatusOK, locations.Entry{Name: name, Zone: body.Zone})
}

func (s *server) handleLocationsDelete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	s.mu.Lock()
	s.dir.Remove(name)
	s.dir.Persist(s.savePath)
	s.mu.Unlock()

	s.metrics.RequestsTotal.WithLabelValues("locations_delete", "ok").Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) badRequest(w http.ResponseWriter, handler, msg string) {
	s.metrics.RequestsTotal.WithLabelValues(handler, "bad_request").Inc()
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Debug("writing response failed", "error", err)
	}
}
