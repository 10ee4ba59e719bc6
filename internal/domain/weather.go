package domain

import (
	"context"
	"time"
)

// WeatherSnapshot is the current weather at a point plus the one-day forecast.
// Snapshots are fetched per request and never persisted.
type WeatherSnapshot struct {
	TempC      float64   `json:"temperature"`
	Humidity   float64   `json:"humidity"`
	RainfallMM float64   `json:"rainfall_mm"` // forecast precipitation for the day
	WindKPH    float64   `json:"wind_kph"`
	Condition  string    `json:"condition,omitempty"`
	ForecastC  Forecast  `json:"forecast"`
	ObservedAt time.Time `json:"observed_at"`
	Fallback   bool      `json:"fallback"` // true when the static default was served
}

// Forecast holds the daily temperature outlook in °C.
type Forecast struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FallbackWeather returns the moderate default used when live weather is
// unavailable: 25°C, 65% humidity, no rain.
func FallbackWeather(now time.Time) WeatherSnapshot {
	return WeatherSnapshot{
		TempC:      25,
		Humidity:   65,
		RainfallMM: 0,
		WindKPH:    5,
		Condition:  "clear sky",
		ForecastC:  Forecast{Avg: 25, Min: 20, Max: 30},
		ObservedAt: now,
		Fallback:   true,
	}
}

// WeatherProvider returns current weather for a coordinate. Implementations
// degrade to a fallback snapshot instead of failing.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) WeatherSnapshot
}

// WeatherRiskMessage summarises what the weather means for livestock health.
func WeatherRiskMessage(w WeatherSnapshot) string {
	switch {
	case w.TempC > 30 && w.Humidity > 75:
		return "Hot and humid conditions increase risk for several diseases including FMD and HS."
	case w.TempC > 35:
		return "High temperatures may cause heat stress in livestock."
	case w.TempC < 10:
		return "Cold temperatures may increase risk of respiratory diseases."
	default:
		return "Weather conditions are generally favorable for livestock health."
	}
}
