package domain

import "time"

// Bounding box of the north-east monsoon, which reaches the south-eastern
// coast between October and December.
const (
	northEastMonsoonMinLat = 8.0
	northEastMonsoonMaxLat = 20.0
	northEastMonsoonMinLon = 77.0
	northEastMonsoonMaxLon = 85.0
)

// IsMonsoonSeason reports whether the point is inside a monsoon window on t.
func IsMonsoonSeason(lat, lon float64, t time.Time) bool {
	month := t.Month()

	if month >= time.June && month <= time.September {
		return true
	}

	if month >= time.October && month <= time.December {
		return lat >= northEastMonsoonMinLat && lat <= northEastMonsoonMaxLat &&
			lon >= northEastMonsoonMinLon && lon <= northEastMonsoonMaxLon
	}

	return false
}

// IsVectorSeason reports whether conditions favour ticks and mosquitoes:
// warm, humid, and within the monsoon or post-monsoon months.
func IsVectorSeason(w WeatherSnapshot, t time.Time) bool {
	month := t.Month()
	monsoonOrPostMonsoon := month >= time.June && month <= time.November
	return w.TempC > 20 && w.Humidity > 60 && monsoonOrPostMonsoon
}
