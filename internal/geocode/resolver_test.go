package geocode

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/livestock-risk-service/internal/domain"
	"github.com/couchcryptid/livestock-risk-service/internal/observability"
)

type mockGeocoder struct {
	result  domain.GeocodingResult
	err     error
	calls   int
	lastArg string
}

func (m *mockGeocoder) ForwardGeocode(_ context.Context, address string) (domain.GeocodingResult, error) {
	m.calls++
	m.lastArg = address
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newResolver(g domain.Geocoder) *Resolver {
	return NewResolver(g, discardLogger(), observability.NewMetricsForTesting())
}

func TestResolver_ProviderWins(t *testing.T) {
	g := &mockGeocoder{result: domain.GeocodingResult{Lat: 16.99, Lon: 73.30, FormattedAddress: "Pawas"}}
	addr := domain.Address{Street: "Near temple", District: "Ratnagiri", State: "Maharashtra", Pincode: "415616", Country: "India"}

	p, src, ok := newResolver(g).Resolve(context.Background(), addr)

	assert.True(t, ok)
	assert.Equal(t, SourceProvider, src)
	assert.Equal(t, domain.GeoPoint{Lat: 16.99, Lon: 73.30}, p)
	assert.Equal(t, "Near temple, Ratnagiri, Maharashtra, 415616, India", g.lastArg)
}

func TestResolver_Fallbacks(t *testing.T) {
	tests := []struct {
		name    string
		addr    domain.Address
		want    domain.GeoPoint
		wantSrc Source
	}{
		{
			name:    "pincode",
			addr:    domain.Address{Pincode: "380015", District: "Somewhere", State: "Gujarat"},
			want:    domain.GeoPoint{Lat: 23.0225, Lon: 72.5714},
			wantSrc: SourcePincode,
		},
		{
			name:    "district landmark",
			addr:    domain.Address{Street: "Flat 2, Kasarvadavli, Ghodbunder Road", District: "Thane", State: "Maharashtra"},
			want:    domain.GeoPoint{Lat: 19.2350, Lon: 72.9674},
			wantSrc: SourceDistrict,
		},
		{
			name:    "district centre",
			addr:    domain.Address{Street: "Main road", District: " Pune ", State: "MAHARASHTRA"},
			want:    domain.GeoPoint{Lat: 18.5204, Lon: 73.8567},
			wantSrc: SourceDistrict,
		},
		{
			name:    "state",
			addr:    domain.Address{District: "Anand", State: "Gujarat"},
			want:    domain.GeoPoint{Lat: 22.2587, Lon: 71.1924},
			wantSrc: SourceState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, src, ok := newResolver(nil).Resolve(context.Background(), tt.addr)
			assert.True(t, ok)
			assert.Equal(t, tt.wantSrc, src)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestResolver_ProviderErrorFallsBack(t *testing.T) {
	g := &mockGeocoder{err: errors.New("mapbox down")}

	p, src, ok := newResolver(g).Resolve(context.Background(), domain.Address{State: "Kerala"})

	assert.True(t, ok)
	assert.Equal(t, 1, g.calls)
	assert.Equal(t, SourceState, src)
	assert.Equal(t, domain.GeoPoint{Lat: 10.8505, Lon: 76.2711}, p)
}

func TestResolver_ProviderEmptyFallsBack(t *testing.T) {
	g := &mockGeocoder{}

	_, src, ok := newResolver(g).Resolve(context.Background(), domain.Address{Pincode: "143001"})

	assert.True(t, ok)
	assert.Equal(t, SourcePincode, src)
}

func TestResolver_Unknown(t *testing.T) {
	_, src, ok := newResolver(nil).Resolve(context.Background(), domain.Address{District: "Nowhere", State: "Atlantis"})

	assert.False(t, ok)
	assert.Equal(t, SourceNone, src)
}
