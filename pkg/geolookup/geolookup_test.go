package geolookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimezoneFor(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		name string
		lat  float64
		lon  float64
		want string
	}{
		{"Paris", 48.8566, 2.3522, "Europe/Paris"},
		{"New York", 40.7128, -74.0060, "America/New_York"},
		{"Tokyo", 35.6762, 139.6503, "Asia/Tokyo"},
		{"Sydney", -33.8688, 151.2093, "Australia/Sydney"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone, err := r.TimezoneFor(tt.lat, tt.lon)
			require.NoError(t, err)
			assert.Equal(t, tt.want, zone)
		})
	}
}

func TestTimezoneForOpenOcean(t *testing.T) {
	r := NewResolver(nil)

	// Middle of the South Pacific: recoverable not-found, not a failure.
	_, err := r.TimezoneFor(-40.0, -130.0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimezoneForOutOfRange(t *testing.T) {
	r := NewResolver(nil)

	for _, c := range [][2]float64{{91, 0}, {-91, 0}, {0, 181}, {0, -181}} {
		_, err := r.TimezoneFor(c[0], c[1])
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	}
}

func TestPixelToLatLon(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		w, h    float64
		wantLat float64
		wantLon float64
	}{
		{"center of map is null island", 500, 250, 1000, 500, 0, 0},
		{"top left corner", 0, 0, 1000, 500, 90, -180},
		{"bottom right corner", 1000, 500, 1000, 500, -90, 180},
		{"quarter across", 250, 125, 1000, 500, 45, -90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, err := PixelToLatLon(tt.x, tt.y, tt.w, tt.h)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantLat, lat, 1e-9)
			assert.InDelta(t, tt.wantLon, lon, 1e-9)
		})
	}
}

func TestPixelToLatLonRejectsBadInput(t *testing.T) {
	_, _, err := PixelToLatLon(10, 10, 0, 500)
	assert.Error(t, err)

	_, _, err = PixelToLatLon(-1, 10, 1000, 500)
	assert.Error(t, err)

	_, _, err = PixelToLatLon(1001, 10, 1000, 500)
	assert.Error(t, err)
}

func TestPixelClickResolvesToZone(t *testing.T) {
	// A click roughly on Paris on a 3600x1800 equirectangular map.
	r := NewResolver(nil)

	lat, lon, err := PixelToLatLon(1823, 411, 3600, 1800)
	require.NoError(t, err)

	zone, err := r.TimezoneFor(lat, lon)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", zone)
}
