// Package geo provides address geocoding and great-circle distance
// computation for the logistics emissions path.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Rahul-1611/AEROCARBON/internal/config"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

// NominatimClient implements port.Geocoder against the OSM Nominatim
// search API.
type NominatimClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewNominatimClient creates a geocoding client from config.
func NewNominatimClient(cfg *config.GeocoderConfig) *NominatimClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &NominatimClient{
		baseURL:   baseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// nominatimResult models one entry of the Nominatim search response.
// Coordinates arrive as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves an address to coordinates. An empty result set is a
// miss (nil, nil), not an error.
func (c *NominatimClient) Geocode(ctx context.Context, address string) (*port.Location, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1",
		c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling nominatim: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim error (status %d)", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude %q: %w", results[0].Lon, err)
	}
	return &port.Location{Latitude: lat, Longitude: lon}, nil
}
