package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsMonsoonSeason(t *testing.T) {
	chennai := GeoPoint{Lat: 13.08, Lon: 80.27}
	delhi := GeoPoint{Lat: 28.61, Lon: 77.21}

	at := func(m time.Month) time.Time { return time.Date(2024, m, 1, 0, 0, 0, 0, time.UTC) }

	for m := time.June; m <= time.September; m++ {
		assert.True(t, IsMonsoonSeason(delhi.Lat, delhi.Lon, at(m)), "delhi %s", m)
	}
	for m := time.October; m <= time.December; m++ {
		assert.True(t, IsMonsoonSeason(chennai.Lat, chennai.Lon, at(m)), "chennai %s", m)
		assert.False(t, IsMonsoonSeason(delhi.Lat, delhi.Lon, at(m)), "delhi %s", m)
	}
	for m := time.January; m <= time.May; m++ {
		assert.False(t, IsMonsoonSeason(chennai.Lat, chennai.Lon, at(m)), "chennai %s", m)
	}

	t.Run("bounding box edges are inclusive", func(t *testing.T) {
		nov := at(time.November)
		assert.True(t, IsMonsoonSeason(8, 77, nov))
		assert.True(t, IsMonsoonSeason(20, 85, nov))
		assert.False(t, IsMonsoonSeason(20.01, 80, nov))
		assert.False(t, IsMonsoonSeason(15, 76.99, nov))
	})
}

func TestIsVectorSeason(t *testing.T) {
	warmHumid := WeatherSnapshot{TempC: 28, Humidity: 70}
	july := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsVectorSeason(warmHumid, july))
	assert.True(t, IsVectorSeason(warmHumid, time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsVectorSeason(warmHumid, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsVectorSeason(warmHumid, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)))

	// Both thresholds are strict.
	assert.False(t, IsVectorSeason(WeatherSnapshot{TempC: 20, Humidity: 70}, july))
	assert.False(t, IsVectorSeason(WeatherSnapshot{TempC: 28, Humidity: 60}, july))
}
