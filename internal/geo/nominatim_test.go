package geo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahul-1611/AEROCARBON/internal/config"
	"github.com/Rahul-1611/AEROCARBON/internal/geo"
)

func newTestClient(ts *httptest.Server) *geo.NominatimClient {
	return geo.NewNominatimClient(&config.GeocoderConfig{
		BaseURL:   ts.URL,
		UserAgent: "test-agent",
	})
}

func TestGeocode_ParsesResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Berlin, Germany", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat": "52.5200", "lon": "13.4050"}]`))
	}))
	defer ts.Close()

	loc, err := newTestClient(ts).Geocode(context.Background(), "Berlin, Germany")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.InDelta(t, 52.52, loc.Latitude, 1e-6)
	assert.InDelta(t, 13.405, loc.Longitude, 1e-6)
}

func TestGeocode_EmptyResultIsMiss(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	loc, err := newTestClient(ts).Geocode(context.Background(), "no such place")
	require.NoError(t, err)
	assert.Nil(t, loc)
}

func TestGeocode_ServerErrorPropagates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := newTestClient(ts).Geocode(context.Background(), "Berlin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
