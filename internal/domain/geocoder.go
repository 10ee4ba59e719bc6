package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	PlaceName        string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves postal addresses to coordinates.
type Geocoder interface {
	// ForwardGeocode converts a free-form address to coordinates. An empty
	// result with a nil error means the provider found nothing.
	ForwardGeocode(ctx context.Context, address string) (GeocodingResult, error)
}

// Translator translates user-facing text. Implementations return the input
// unchanged when translation is unavailable.
type Translator interface {
	Translate(ctx context.Context, text, target, source string) string
}
