package places

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/livestock-risk-service/internal/domain"
	"github.com/couchcryptid/livestock-risk-service/internal/observability"
)

var anand = domain.GeoPoint{Lat: 22.5645, Lon: 72.9289}

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(apiKey, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())
	c.baseURL = srv.URL
	return c
}

const nearbyJSON = `{
  "status": "OK",
  "results": [
    {
      "place_id": "p1",
      "name": "Pashu Chikitsalaya Anand",
      "vicinity": "Station Road",
      "rating": 4.2,
      "geometry": {"location": {"lat": 22.57, "lng": 72.93}}
    },
    {
      "place_id": "p2",
      "name": "City General Hospital",
      "vicinity": "Market",
      "geometry": {"location": {"lat": 22.56, "lng": 72.92}}
    },
    {
      "place_id": "p3",
      "name": "Sharma Clinic",
      "geometry": {"location": {"lat": 22.55, "lng": 72.91}}
    }
  ]
}`

func TestNearbyVets_Success(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, "key", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nearbysearch/json", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(nearbyJSON)) //nolint:errcheck // test server
	})

	vets := c.NearbyVets(context.Background(), anand, 20)

	require.Len(t, vets, 2)
	assert.Equal(t, "Pashu Chikitsalaya Anand", vets[0].Name)
	assert.Equal(t, "Station Road", vets[0].Address)
	assert.Equal(t, "p1", vets[0].PlaceID)
	require.NotNil(t, vets[0].Rating)
	assert.InDelta(t, 4.2, *vets[0].Rating, 1e-9)
	assert.Equal(t, "Sharma Clinic", vets[1].Name)
	assert.Equal(t, "Address not available", vets[1].Address)

	assert.Equal(t, []string{"20000"}, gotQuery["radius"])
	assert.Equal(t, []string{"22.5645,72.9289"}, gotQuery["location"])
	assert.Equal(t, []string{searchKeywords}, gotQuery["keyword"])
}

func TestNearbyVets_ZeroResults(t *testing.T) {
	c := newTestClient(t, "key", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`)) //nolint:errcheck // test server
	})

	vets := c.NearbyVets(context.Background(), anand, 5)

	assert.NotNil(t, vets)
	assert.Empty(t, vets)
}

func TestNearbyVets_FallsBackToMocks(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"denied status", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`)) //nolint:errcheck // test server
		}},
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{not json`)) //nolint:errcheck // test server
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, "key", tt.handler)
			vets := c.NearbyVets(context.Background(), anand, 20)
			require.Len(t, vets, 3)
			assert.Equal(t, "District Veterinary Hospital", vets[0].Name)
		})
	}
}

func TestNearbyVets_FallbackLogOmitsKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	var logs bytes.Buffer
	c := NewClient("SUPERSECRETKEY", time.Second, slog.New(slog.NewTextHandler(&logs, nil)), observability.NewMetricsForTesting())
	c.baseURL = srv.URL

	vets := c.NearbyVets(context.Background(), anand, 20)

	assert.Equal(t, MockVets(anand), vets)
	assert.Contains(t, logs.String(), "places search failed")
	assert.NotContains(t, logs.String(), "SUPERSECRETKEY")
}

func TestNearbyVets_NoKeySkipsAPI(t *testing.T) {
	called := false
	c := newTestClient(t, "", func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	})

	vets := c.NearbyVets(context.Background(), anand, 20)

	assert.False(t, called)
	assert.Len(t, vets, 3)
}

func TestMockVets(t *testing.T) {
	vets := MockVets(anand)

	require.Len(t, vets, 3)
	for _, v := range vets {
		p, ok := v.Point()
		require.True(t, ok)
		assert.InDelta(t, domain.Haversine(anand, p), v.DistanceKM, 1e-9)
		assert.Positive(t, v.DistanceKM)
		assert.Less(t, v.DistanceKM, 3.0)
	}
	assert.InDelta(t, anand.Lat+0.01, *vets[0].Lat, 1e-9)
	assert.Equal(t, "+91 9876543212", vets[2].Phone)
}

func TestLooksVeterinary(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Government Veterinary Hospital", true},
		{"Gau Seva Kendra", true},
		{"Civil Hospital", false},
		{"Dr. Patel Clinic", true},
		{"Pet Hospital", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, looksVeterinary(tt.name))
		})
	}
}
