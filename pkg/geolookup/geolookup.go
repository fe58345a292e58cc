// Package geolookup resolves geographic coordinates to IANA timezones and
// maps equirectangular world-map pixels to coordinates. It backs the
// pick-a-zone-from-the-map flow.
package geolookup

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bradfitz/latlong"
)

// ErrNotFound means no timezone covers the given coordinates, typically a
// click in open ocean. It is recoverable: the caller warns and keeps the
// session going.
var ErrNotFound = errors.New("no timezone for coordinates")

// Resolver answers coordinate-to-timezone queries from the embedded
// world timezone shapefile data.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{logger: logger}
}

// TimezoneFor returns the IANA zone covering (lat, lon).
// Latitude is in [-90, 90] and longitude in [-180, 180]; anything outside
// is rejected, and uncovered coordinates return ErrNotFound.
func (r *Resolver) TimezoneFor(lat, lon float64) (string, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return "", fmt.Errorf("coordinates out of range: lat=%v lon=%v", lat, lon)
	}

	zone := latlong.LookupZoneName(lat, lon)
	if zone == "" {
		r.logger.Debug("no timezone at coordinates", "lat", lat, "lon", lon)
		return "", ErrNotFound
	}
	return zone, nil
}

// PixelToLatLon converts a click position on an equirectangular world-map
// image of the given dimensions to coordinates. (0,0) is the top-left
// corner: longitude grows left to right, latitude shrinks top to bottom.
func PixelToLatLon(x, y, width, height float64) (lat, lon float64, err error) {
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid image size %vx%v", width, height)
	}
	if x < 0 || y < 0 || x > width || y > height {
		return 0, 0, fmt.Errorf("pixel (%v, %v) outside %vx%v image", x, y, width, height)
	}

	lon = (x/width)*360.0 - 180.0
	lat = 90.0 - (y/height)*180.0
	return lat, lon, nil
}
