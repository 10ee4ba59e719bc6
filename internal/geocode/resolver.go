// Package geocode resolves farm addresses to coordinates. A geocoding
// provider is tried first; when it fails or finds nothing, static tables
// keyed by pincode, district and state answer instead.
package geocode

import (
	"context"
	"log/slog"
	"strings"

	"github.com/couchcryptid/livestock-risk-service/internal/domain"
	"github.com/couchcryptid/livestock-risk-service/internal/observability"
)

// Source names the tier that resolved an address.
type Source string

const (
	SourceProvider Source = "provider"
	SourcePincode  Source = "pincode"
	SourceDistrict Source = "district"
	SourceState    Source = "state"
	SourceNone     Source = "none"
)

// Resolver walks the fallback chain for an address.
type Resolver struct {
	provider domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewResolver creates a resolver. A nil provider skips straight to the
// static tables.
func NewResolver(provider domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *Resolver {
	return &Resolver{provider: provider, logger: logger, metrics: metrics}
}

// Resolve returns the best known coordinates for addr and the tier that
// produced them. ok is false when no tier knows the address.
func (r *Resolver) Resolve(ctx context.Context, addr domain.Address) (domain.GeoPoint, Source, bool) {
	p, src, ok := r.resolve(ctx, addr)
	r.metrics.GeocodeResolved.WithLabelValues(string(src)).Inc()
	return p, src, ok
}

func (r *Resolver) resolve(ctx context.Context, addr domain.Address) (domain.GeoPoint, Source, bool) {
	if r.provider != nil {
		res, err := r.provider.ForwardGeocode(ctx, addr.String())
		switch {
		case err != nil:
			r.logger.Warn("geocoding provider failed, using fallback tables",
				"error", err, "address", addr.String())
		case res.FormattedAddress != "":
			return domain.GeoPoint{Lat: res.Lat, Lon: res.Lon}, SourceProvider, true
		default:
			r.logger.Debug("geocoding provider found nothing", "address", addr.String())
		}
	}

	if p, ok := pincodes[strings.TrimSpace(addr.Pincode)]; ok {
		return p, SourcePincode, true
	}

	if p, ok := lookupDistrict(addr); ok {
		return p, SourceDistrict, true
	}

	if p, ok := states[normalize(addr.State)]; ok {
		return p, SourceState, true
	}

	return domain.GeoPoint{}, SourceNone, false
}

func lookupDistrict(addr domain.Address) (domain.GeoPoint, bool) {
	district, state := normalize(addr.District), normalize(addr.State)
	if district == "" || state == "" {
		return domain.GeoPoint{}, false
	}

	entry, ok := districts[districtKey{district, state}]
	if !ok {
		return domain.GeoPoint{}, false
	}

	street := strings.ToLower(addr.Street)
	for _, lm := range entry.landmarks {
		if street != "" && strings.Contains(street, lm.keyword) {
			return lm.point, true
		}
	}
	return entry.centre, true
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
