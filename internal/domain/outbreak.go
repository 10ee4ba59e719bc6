package domain

import (
	"math"
	"sort"
	"time"
)

// DefaultOutbreakRadiusKM is the search radius for nearby outbreaks.
const DefaultOutbreakRadiusKM = 50.0

// Outbreak is a recorded disease outbreak. Statistics are optional and are
// never invented when absent.
type Outbreak struct {
	ID                 int64     `json:"id"`
	Disease            string    `json:"disease_name"`
	AnimalType         string    `json:"animal_type"`
	Severity           string    `json:"severity"`
	Location           string    `json:"location"`
	District           string    `json:"district"`
	State              string    `json:"state"`
	Lat                *float64  `json:"latitude"`
	Lon                *float64  `json:"longitude"`
	Active             bool      `json:"is_active"`
	ReportedAt         time.Time `json:"reported_date"`
	ReportedBy         string    `json:"reported_by,omitempty"`
	Description        string    `json:"description,omitempty"`
	PreventiveMeasures []string  `json:"preventive_measures,omitempty"`

	AffectedAnimals *int     `json:"affected_animals"`
	Deaths          *int     `json:"deaths"`
	MorbidityRate   *float64 `json:"morbidity_rate"`
}

// Point returns the outbreak coordinates, if recorded.
func (o Outbreak) Point() (GeoPoint, bool) {
	return pointOf(o.Lat, o.Lon)
}

// MortalityRate returns deaths per hundred affected animals, rounded to one
// decimal, when both counts are recorded.
func (o Outbreak) MortalityRate() *float64 {
	if o.AffectedAnimals == nil || o.Deaths == nil || *o.AffectedAnimals <= 0 {
		return nil
	}
	rate := math.Round(float64(*o.Deaths)/float64(*o.AffectedAnimals)*1000) / 10
	return &rate
}

// NearbyOutbreak is an outbreak annotated with its distance from a farm.
type NearbyOutbreak struct {
	Outbreak
	DistanceKM float64 `json:"distance"`
}

// FilterNearby keeps the active outbreaks with coordinates that lie within
// radiusKM of farm, nearest first.
func FilterNearby(farm GeoPoint, candidates []Outbreak, radiusKM float64) []NearbyOutbreak {
	out := make([]NearbyOutbreak, 0, len(candidates))

	for _, o := range candidates {
		if !o.Active {
			continue
		}
		p, ok := o.Point()
		if !ok {
			continue
		}
		d := Haversine(farm, p)
		if d > radiusKM {
			continue
		}
		out = append(out, NearbyOutbreak{Outbreak: o, DistanceKM: d})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKM < out[j].DistanceKM
	})
	return out
}

// RoundKM rounds a distance to one decimal for display.
func RoundKM(km float64) float64 {
	return math.Round(km*10) / 10
}
