package http

import (
	"time"

	"github.com/couchcryptid/livestock-risk-service/internal/domain"
	"github.com/couchcryptid/livestock-risk-service/internal/risk"
)

// defaultPreventiveMeasures is shown for outbreaks without recorded measures.
var defaultPreventiveMeasures = []string{
	"Restrict movement of animals in and out of the affected area",
	"Isolate affected animals",
	"Ensure proper vaccination of healthy animals",
	"Improve biosecurity measures",
	"Report any suspicious cases to veterinary authorities",
}

const defaultReporter = "Official Source"

type outbreakStats struct {
	AffectedAnimals *int     `json:"affected_animals"`
	Deaths          *int     `json:"deaths"`
	MorbidityRate   *float64 `json:"morbidity_rate"`
	MortalityRate   *float64 `json:"mortality_rate"`
}

func statsOf(o domain.Outbreak) outbreakStats {
	return outbreakStats{
		AffectedAnimals: o.AffectedAnimals,
		Deaths:          o.Deaths,
		MorbidityRate:   o.MorbidityRate,
		MortalityRate:   o.MortalityRate(),
	}
}

type outbreakSummary struct {
	ID           int64    `json:"id"`
	Disease      string   `json:"disease_name"`
	AnimalType   string   `json:"animal_type,omitempty"`
	Severity     string   `json:"severity"`
	Location     string   `json:"location"`
	District     string   `json:"district"`
	State        string   `json:"state"`
	Lat          *float64 `json:"latitude"`
	Lon          *float64 `json:"longitude"`
	ReportedDate string   `json:"reported_date"`
	Distance     float64  `json:"distance"`
	outbreakStats
}

func summaryOf(n domain.NearbyOutbreak) outbreakSummary {
	o := n.Outbreak
	return outbreakSummary{
		ID:            o.ID,
		Disease:       o.Disease,
		AnimalType:    o.AnimalType,
		Severity:      o.Severity,
		Location:      o.Location,
		District:      o.District,
		State:         o.State,
		Lat:           o.Lat,
		Lon:           o.Lon,
		ReportedDate:  o.ReportedAt.Format(time.DateOnly),
		Distance:      domain.RoundKM(n.DistanceKM),
		outbreakStats: statsOf(o),
	}
}

type outbreakDetail struct {
	ID                 int64         `json:"id"`
	Disease            string        `json:"disease_name"`
	AnimalType         string        `json:"animal_type,omitempty"`
	Severity           string        `json:"severity"`
	Location           string        `json:"location"`
	District           string        `json:"district"`
	State              string        `json:"state"`
	Lat                *float64      `json:"latitude"`
	Lon                *float64      `json:"longitude"`
	Active             bool          `json:"is_active"`
	ReportedDate       string        `json:"reported_date"`
	Distance           *float64      `json:"distance"`
	ReportedBy         string        `json:"reported_by"`
	Details            string        `json:"details,omitempty"`
	Statistics         outbreakStats `json:"statistics"`
	PreventiveMeasures []string      `json:"preventive_measures"`
}

func detailOf(d risk.OutbreakDetail) outbreakDetail {
	o := d.Outbreak
	out := outbreakDetail{
		ID:                 o.ID,
		Disease:            o.Disease,
		AnimalType:         o.AnimalType,
		Severity:           o.Severity,
		Location:           o.Location,
		District:           o.District,
		State:              o.State,
		Lat:                o.Lat,
		Lon:                o.Lon,
		Active:             o.Active,
		ReportedDate:       o.ReportedAt.Format(time.DateOnly),
		Distance:           d.DistanceKM,
		ReportedBy:         o.ReportedBy,
		Details:            o.Description,
		Statistics:         statsOf(o),
		PreventiveMeasures: o.PreventiveMeasures,
	}
	if out.ReportedBy == "" {
		out.ReportedBy = defaultReporter
	}
	if len(out.PreventiveMeasures) == 0 {
		out.PreventiveMeasures = defaultPreventiveMeasures
	}
	return out
}

type riskView struct {
	domain.RiskAssessment
	Label string `json:"label,omitempty"`
}

type weatherView struct {
	domain.WeatherSnapshot
	RiskMessage string `json:"risk_message"`
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language"`
}

type translateResponse struct {
	Original       string `json:"original"`
	Translated     string `json:"translated"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}
