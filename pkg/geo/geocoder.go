package geo

import "context"

// Geocoder resolves coordinates to an address so listings created from a
// map pin get a city for the location multiplier lookup.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (*Address, error)
}

type Address struct {
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Formatted string  `json:"formatted"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NoopGeocoder is used when no maps provider is configured; callers fall
// back to whatever city the client supplied.
type NoopGeocoder struct{}

func (NoopGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (*Address, error) {
	return nil, nil
}
