package port

import "context"

// Location is a geocoded coordinate pair.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Geocoder resolves a free-form address to coordinates. A nil location with
// a nil error means the address could not be resolved (a miss, not a fault).
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Location, error)
}
