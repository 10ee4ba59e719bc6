package domain

import (
	"slices"
	"sort"
	"strings"
	"time"
)

// Scoring policy. Tune these; they carry no physical meaning.
const (
	ScoreBase = 20
	ScoreMax  = 100

	IncHighTemp     = 15
	IncTempRange    = 20
	IncLowTemp      = 15
	IncHighHumidity = 15
	IncHighRainfall = 15
	IncLowRainfall  = 10
	IncRainySeason  = 15
	IncVectorSeason = 20

	HighRiskThreshold   = 70
	MediumRiskThreshold = 40
)

// RiskLevel buckets a numeric risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskAssessment is the risk of one disease for one farm at one moment.
type RiskAssessment struct {
	Disease         string    `json:"disease_name"`
	Score           int       `json:"risk_score"`
	Level           RiskLevel `json:"risk_level"`
	AffectedAnimals []string  `json:"affected_animals"`
}

// AnimalTypeSet is the set of lower-case animal types present on a farm.
type AnimalTypeSet map[string]struct{}

// NewAnimalTypeSet builds a set from raw type names.
func NewAnimalTypeSet(types ...string) AnimalTypeSet {
	s := make(AnimalTypeSet, len(types))
	for _, t := range types {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

// Intersect returns the members of s that appear in types, sorted.
func (s AnimalTypeSet) Intersect(types []string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		if _, ok := s[t]; ok && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// Score computes the bounded risk score of a disease under the given
// weather at loc on t.
func Score(p RiskProfile, w WeatherSnapshot, loc GeoPoint, t time.Time) int {
	score := ScoreBase

	if p.HighTemp != nil && w.TempC >= *p.HighTemp {
		score += IncHighTemp
	}
	if r := p.TempRange; r != nil && w.TempC >= r.Min && w.TempC <= r.Max {
		score += IncTempRange
	}
	if p.LowTemp != nil && w.TempC <= *p.LowTemp {
		score += IncLowTemp
	}
	if p.HighHumidity != nil && w.Humidity >= *p.HighHumidity {
		score += IncHighHumidity
	}

	// High rainfall wins when both rainfall factors are configured.
	switch {
	case p.HighRainfall != nil && w.RainfallMM >= *p.HighRainfall:
		score += IncHighRainfall
	case p.LowRainfall != nil && w.RainfallMM <= *p.LowRainfall:
		score += IncLowRainfall
	}

	if p.RainySeason && IsMonsoonSeason(loc.Lat, loc.Lon, t) {
		score += IncRainySeason
	}
	if p.VectorSeason && IsVectorSeason(w, t) {
		score += IncVectorSeason
	}

	return clampScore(score)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > ScoreMax {
		return ScoreMax
	}
	return score
}

// LevelFor buckets a score into a risk level.
func LevelFor(score int) RiskLevel {
	switch {
	case score >= HighRiskThreshold:
		return RiskHigh
	case score >= MediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// AssessFarm scores every catalog disease relevant to the farm's animals and
// returns the assessments ordered by descending score. Diseases without a
// configured animal set are always evaluated.
func AssessFarm(c *Catalog, animals AnimalTypeSet, w WeatherSnapshot, loc GeoPoint, t time.Time) []RiskAssessment {
	out := make([]RiskAssessment, 0, c.Len())

	for _, p := range c.profiles {
		affected := animals.Intersect(p.AnimalTypes)
		if len(p.AnimalTypes) > 0 && len(affected) == 0 {
			continue
		}

		score := Score(p, w, loc, t)
		out = append(out, RiskAssessment{
			Disease:         p.Disease,
			Score:           score,
			Level:           LevelFor(score),
			AffectedAnimals: affected,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
