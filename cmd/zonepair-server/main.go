// Package main implements the zonepair API server: wall-clock conversion,
// the known-locations directory, and coordinate-to-timezone resolution over
// HTTP/JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zonepair/zonepair/pkg/geolookup"
	"github.com/zonepair/zonepair/pkg/locations"
)

var (
	port          = flag.String("port", "8080", "Port for the API server (or set PORT)")
	locationsPath = flag.String("locations", "", "Path to the known-locations file (or set ZONEPAIR_LOCATIONS)")
	verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	version       = flag.Bool("version", false, "Show version")
)

// rateLimiter applies a fixed per-IP request budget per minute.
type rateLimiter struct {
	requests map[string][]time.Time
	mu       sync.Mutex
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{
		requests: make(map[string][]time.Time),
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-time.Minute)

	var valid []time.Time
	for _, t := range rl.requests[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	// Rate limit: 120 requests per minute per IP
	if len(valid) >= 120 {
		rl.requests[ip] = valid
		return false
	}

	rl.requests[ip] = append(valid, now)
	return true
}

func main() {
	flag.Parse()

	if *version {
		fmt.Println("zonepair server v1.0.0")
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if v := os.Getenv("PORT"); v != "" && *port == "8080" {
		*port = v
	}
	if *locationsPath == "" {
		*locationsPath = os.Getenv("ZONEPAIR_LOCATIONS")
	}
	if *locationsPath == "" {
		if configDir, err := os.UserConfigDir(); err == nil {
			*locationsPath = filepath.Join(configDir, "zonepair", "known_locations.json")
		} else {
			*locationsPath = "known_locations.json"
		}
	}

	srv := newServer(
		locations.LoadOrDefault(*locationsPath, logger),
		geolookup.NewResolver(logger),
		*locationsPath,
		logger,
		newMetrics(prometheus.DefaultRegisterer),
	)

	mux := http.NewServeMux()
	srv.routes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:         ":" + *port,
		Handler:      srv.withRateLimit(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("zonepair server listening", "port", *port, "locations", *locationsPath)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}
}
