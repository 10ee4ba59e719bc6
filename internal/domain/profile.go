package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// TempRange is an inclusive temperature band in °C.
type TempRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// RiskProfile holds the weather and seasonal factors that raise the risk of
// one disease. Nil thresholds are not part of the profile.
type RiskProfile struct {
	Disease string `json:"disease" yaml:"disease"`

	HighTemp     *float64   `json:"high_temp,omitempty" yaml:"high_temp,omitempty"`
	TempRange    *TempRange `json:"temp_range,omitempty" yaml:"temp_range,omitempty"`
	LowTemp      *float64   `json:"low_temp,omitempty" yaml:"low_temp,omitempty"`
	HighHumidity *float64   `json:"high_humidity,omitempty" yaml:"high_humidity,omitempty"`
	HighRainfall *float64   `json:"high_rainfall,omitempty" yaml:"high_rainfall,omitempty"`
	LowRainfall  *float64   `json:"low_rainfall,omitempty" yaml:"low_rainfall,omitempty"`
	RainySeason  bool       `json:"rainy_season,omitempty" yaml:"rainy_season,omitempty"`
	VectorSeason bool       `json:"vector_season,omitempty" yaml:"vector_season,omitempty"`

	// Descriptive factors. They are reported to clients but do not score.
	DrySeason       bool   `json:"dry_season,omitempty" yaml:"dry_season,omitempty"`
	AllSeasons      bool   `json:"all_seasons,omitempty" yaml:"all_seasons,omitempty"`
	SoilType        string `json:"soil_type,omitempty" yaml:"soil_type,omitempty"`
	SoilDisturbance bool   `json:"soil_disturbance,omitempty" yaml:"soil_disturbance,omitempty"`

	// AnimalTypes lists the species the disease affects. Empty means all.
	AnimalTypes []string `json:"-" yaml:"animal_types,omitempty"`
}

// Validate checks that every threshold is usable.
func (p RiskProfile) Validate() error {
	if strings.TrimSpace(p.Disease) == "" {
		return errors.New("disease name is required")
	}

	var errs []error
	check := func(field string, v *float64, lo, hi float64) {
		if v == nil {
			return
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			errs = append(errs, fmt.Errorf("%s: %s must be finite", p.Disease, field))
			return
		}
		if *v < lo || *v > hi {
			errs = append(errs, fmt.Errorf("%s: %s %g outside [%g, %g]", p.Disease, field, *v, lo, hi))
		}
	}

	check("high_temp", p.HighTemp, -90, 60)
	check("low_temp", p.LowTemp, -90, 60)
	check("high_humidity", p.HighHumidity, 0, 100)
	check("high_rainfall", p.HighRainfall, 0, math.MaxFloat64)
	check("low_rainfall", p.LowRainfall, 0, math.MaxFloat64)

	if r := p.TempRange; r != nil {
		check("temp_range.min", &r.Min, -90, 60)
		check("temp_range.max", &r.Max, -90, 60)
		if r.Min > r.Max {
			errs = append(errs, fmt.Errorf("%s: temp_range min %g above max %g", p.Disease, r.Min, r.Max))
		}
	}

	for _, a := range p.AnimalTypes {
		if strings.TrimSpace(a) == "" {
			errs = append(errs, fmt.Errorf("%s: empty animal type", p.Disease))
			break
		}
	}

	return errors.Join(errs...)
}

// Catalog is the validated, immutable set of disease risk profiles.
type Catalog struct {
	profiles []RiskProfile
	byName   map[string]int
}

// NewCatalog validates the profiles and indexes them by disease name.
// Animal types are normalised to lower case.
func NewCatalog(profiles []RiskProfile) (*Catalog, error) {
	c := &Catalog{
		profiles: make([]RiskProfile, 0, len(profiles)),
		byName:   make(map[string]int, len(profiles)),
	}

	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid risk profile: %w", err)
		}
		key := strings.ToLower(strings.TrimSpace(p.Disease))
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("duplicate risk profile %q", p.Disease)
		}

		animals := make([]string, 0, len(p.AnimalTypes))
		for _, a := range p.AnimalTypes {
			animals = append(animals, strings.ToLower(strings.TrimSpace(a)))
		}
		p.AnimalTypes = animals

		c.byName[key] = len(c.profiles)
		c.profiles = append(c.profiles, p)
	}

	return c, nil
}

// Profiles returns the profiles in catalog order.
func (c *Catalog) Profiles() []RiskProfile {
	out := make([]RiskProfile, len(c.profiles))
	copy(out, c.profiles)
	return out
}

// Profile looks up a profile by disease name, ignoring case.
func (c *Catalog) Profile(disease string) (RiskProfile, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(disease))]
	if !ok {
		return RiskProfile{}, false
	}
	return c.profiles[i], true
}

// Len returns the number of profiles.
func (c *Catalog) Len() int { return len(c.profiles) }
