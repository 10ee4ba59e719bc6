// Package weatherapi fetches current weather and the daily forecast from
// WeatherAPI.com.
package weatherapi

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
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/livestock-risk-service/internal/adapter/redact"
	"github.com/couchcryptid/livestock-risk-service/internal/domain"
	"github.com/couchcryptid/livestock-risk-service/internal/observability"
)

const defaultBaseURL = "https://api.weatherapi.com/v1"

var errIncomplete = errors.New("incomplete weather response")

// Client implements domain.WeatherProvider. Every failure degrades to the
// fallback snapshot after a single attempt.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a WeatherAPI.com client.
func NewClient(apiKey string, timeout time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: defaultBaseURL,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// Current returns the weather at (lat, lon), or the fallback snapshot when
// the API is unreachable or answers with something unusable.
func (c *Client) Current(ctx context.Context, lat, lon float64) domain.WeatherSnapshot {
	w, err := c.fetch(ctx, lat, lon)
	if err != nil {
		c.logger.Warn("weather lookup failed, using fallback",
			"error", err, "lat", lat, "lon", lon)
		c.metrics.WeatherRequests.WithLabelValues("fallback").Inc()
		return domain.FallbackWeather(c.clock.Now().UTC())
	}
	c.metrics.WeatherRequests.WithLabelValues("success").Inc()
	return w
}

func (c *Client) fetch(ctx context.Context, lat, lon float64) (domain.WeatherSnapshot, error) {
	params := url.Values{
		"key":    {c.apiKey},
		"q":      {strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)},
		"days":   {"1"},
		"aqi":    {"no"},
		"alerts": {"no"},
	}
	u := c.baseURL + "/forecast.json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("weather: %w", redact.URLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.WeatherSnapshot{}, fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, body)
	}

	var wr response
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("decode response: %w", err)
	}

	return wr.snapshot(c.clock.Now().UTC())
}

// WeatherAPI.com response types. Required fields are pointers so that an
// absent value is distinguishable from zero.

type response struct {
	Current *struct {
		TempC     *float64  `json:"temp_c"`
		Humidity  *float64  `json:"humidity"`
		WindKPH   float64   `json:"wind_kph"`
		Condition condition `json:"condition"`
	} `json:"current"`
	Forecast struct {
		ForecastDay []struct {
			Day struct {
				AvgTempC      float64   `json:"avgtemp_c"`
				MinTempC      float64   `json:"mintemp_c"`
				MaxTempC      float64   `json:"maxtemp_c"`
				TotalPrecipMM float64   `json:"totalprecip_mm"`
				Condition     condition `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type condition struct {
	Text string `json:"text"`
	Code int    `json:"code"`
}

func (r response) snapshot(now time.Time) (domain.WeatherSnapshot, error) {
	if r.Current == nil || r.Current.TempC == nil || r.Current.Humidity == nil {
		return domain.WeatherSnapshot{}, errIncomplete
	}
	if len(r.Forecast.ForecastDay) == 0 {
		return domain.WeatherSnapshot{}, errIncomplete
	}

	day := r.Forecast.ForecastDay[0].Day
	return domain.WeatherSnapshot{
		TempC:      *r.Current.TempC,
		Humidity:   *r.Current.Humidity,
		RainfallMM: day.TotalPrecipMM,
		WindKPH:    r.Current.WindKPH,
		Condition:  r.Current.Condition.Text,
		ForecastC: domain.Forecast{
			Avg: day.AvgTempC,
			Min: day.MinTempC,
			Max: day.MaxTempC,
		},
		ObservedAt: now,
	}, nil
}

// Static serves the fallback snapshot without calling anything. It stands in
// for the client when no API key is configured.
type Static struct {
	clock   clockwork.Clock
	metrics *observability.Metrics
}

// NewStatic creates a provider that always answers with the fallback.
func NewStatic(clock clockwork.Clock, metrics *observability.Metrics) *Static {
	return &Static{clock: clock, metrics: metrics}
}

// Current returns the fallback snapshot.
func (s *Static) Current(_ context.Context, _, _ float64) domain.WeatherSnapshot {
	s.metrics.WeatherRequests.WithLabelValues("fallback").Inc()
	return domain.FallbackWeather(s.clock.Now().UTC())
}
