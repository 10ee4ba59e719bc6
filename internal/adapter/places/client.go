// Package places finds veterinary services near a point using the Google
// Places nearby search.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/livestock-risk-service/internal/adapter/redact"
	"github.com/couchcryptid/livestock-risk-service/internal/domain"
	"github.com/couchcryptid/livestock-risk-service/internal/observability"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api/place"
	searchKeywords = "veterinary|animal|cattle|clinic|hospital"
)

// vetTerms mark a place name as animal related, in English and common
// Indian usage.
var vetTerms = []string{
	"vet", "animal", "cattle", "livestock", "pet", "dairy",
	"pashu", "prani", "janwar", "pashupalak", "gau", "goshala",
	"veterinary", "chicksa", "chikitsalaya", "chikitsak",
}

// Client implements domain.VetFinder. When the key is missing or the API
// fails, a fixed set of placeholder clinics around the centre is returned.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a Places client.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: defaultBaseURL,
		logger:  logger,
		metrics: metrics,
	}
}

// NearbyVets returns veterinary services within radiusKM of center.
func (c *Client) NearbyVets(ctx context.Context, center domain.GeoPoint, radiusKM float64) []domain.VetService {
	if c.apiKey == "" {
		c.metrics.PlacesRequests.WithLabelValues("fallback").Inc()
		return MockVets(center)
	}

	vets, err := c.search(ctx, center, radiusKM)
	if err != nil {
		c.logger.Warn("places search failed, using placeholder vets",
			"error", err, "lat", center.Lat, "lon", center.Lon)
		c.metrics.PlacesRequests.WithLabelValues("fallback").Inc()
		return MockVets(center)
	}
	c.metrics.PlacesRequests.WithLabelValues("success").Inc()
	return vets
}

type nearbyResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message"`
	Results      []place `json:"results"`
}

type place struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Vicinity string   `json:"vicinity"`
	Rating   *float64 `json:"rating"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

func (c *Client) search(ctx context.Context, center domain.GeoPoint, radiusKM float64) ([]domain.VetService, error) {
	params := url.Values{
		"location": {formatCoord(center.Lat) + "," + formatCoord(center.Lon)},
		"radius":   {strconv.Itoa(int(radiusKM * 1000))},
		"keyword":  {searchKeywords},
		"key":      {c.apiKey},
	}
	u := c.baseURL + "/nearbysearch/json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places: %w", redact.URLError(err))
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort cleanup

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("places API returned %d: %s", resp.StatusCode, string(body))
	}

	var nr nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, fmt.Errorf("decode places response: %w", err)
	}

	switch nr.Status {
	case "OK":
	case "ZERO_RESULTS":
		return []domain.VetService{}, nil
	default:
		return nil, errors.New("places status " + nr.Status + ": " + nr.ErrorMessage)
	}

	vets := make([]domain.VetService, 0, len(nr.Results))
	for _, p := range nr.Results {
		if !looksVeterinary(p.Name) {
			c.logger.Debug("skipping non-veterinary place", "name", p.Name)
			continue
		}
		lat, lon := p.Geometry.Location.Lat, p.Geometry.Location.Lng
		address := p.Vicinity
		if address == "" {
			address = "Address not available"
		}
		vets = append(vets, domain.VetService{
			Name:    p.Name,
			Address: address,
			Lat:     &lat,
			Lon:     &lon,
			Rating:  p.Rating,
			PlaceID: p.PlaceID,
		})
	}
	return vets, nil
}

// looksVeterinary rejects human hospitals: a name with no animal-related
// term that mentions "hospital" is skipped. Other names pass.
func looksVeterinary(name string) bool {
	n := strings.ToLower(name)
	for _, term := range vetTerms {
		if strings.Contains(n, term) {
			return true
		}
	}
	return !strings.Contains(n, "hospital")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
