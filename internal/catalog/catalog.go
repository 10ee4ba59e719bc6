// Package catalog loads the reference data about livestock diseases: risk
// profiles, descriptive disease information, vaccines and name aliases.
//
// The data ships embedded in the binary. Risk profiles can be replaced by an
// operator-supplied YAML file.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/livestock-risk-service/internal/domain"
)

//go:embed data/*.yaml
var data embed.FS

// DiseaseInfo describes a disease for farmers.
type DiseaseInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Symptoms    []string `json:"symptoms" yaml:"symptoms"`
	Prevention  []string `json:"prevention" yaml:"prevention"`
	Treatment   string   `json:"treatment" yaml:"treatment"`
	Zoonotic    bool     `json:"zoonotic" yaml:"zoonotic"`

	// RiskFactors is the scoring profile, when the disease is scored.
	RiskFactors *domain.RiskProfile `json:"risk_factors" yaml:"-"`
}

// Vaccine describes the vaccine recommended against a disease.
type Vaccine struct {
	Disease        string   `json:"disease,omitempty" yaml:"disease"`
	Name           string   `json:"name" yaml:"name"`
	Description    string   `json:"description" yaml:"description"`
	Schedule       string   `json:"schedule" yaml:"schedule"`
	Administration string   `json:"administration" yaml:"administration"`
	FirstDoseAge   string   `json:"first_dose_age" yaml:"first_dose_age"`
	Animals        []string `json:"animals" yaml:"animals"`
	Effectiveness  string   `json:"effectiveness" yaml:"effectiveness"`
	SideEffects    string   `json:"side_effects" yaml:"side_effects"`
	Storage        string   `json:"storage" yaml:"storage"`
	Notes          string   `json:"notes" yaml:"notes"`
}

type vaccineFile struct {
	Default  Vaccine   `yaml:"default"`
	Vaccines []Vaccine `yaml:"vaccines"`
}

// Library is the immutable, validated reference data. Lookups resolve
// names through the alias table first.
type Library struct {
	risks          *domain.Catalog
	aliases        *domain.AliasTable
	info           map[string]DiseaseInfo
	vaccines       map[string]Vaccine
	vaccineOrder   []string
	defaultVaccine Vaccine
}

// Load builds the library from the embedded data. When profilesPath is
// non-empty, risk profiles are read from that file instead.
func Load(profilesPath string) (*Library, error) {
	var (
		profiles []domain.RiskProfile
		err      error
	)
	if profilesPath != "" {
		profiles, err = LoadProfilesFile(profilesPath)
	} else {
		profiles, err = decodeEmbedded[[]domain.RiskProfile]("data/profiles.yaml")
	}
	if err != nil {
		return nil, err
	}

	risks, err := domain.NewCatalog(profiles)
	if err != nil {
		return nil, err
	}

	infos, err := decodeEmbedded[[]DiseaseInfo]("data/diseases.yaml")
	if err != nil {
		return nil, err
	}
	vf, err := decodeEmbedded[vaccineFile]("data/vaccines.yaml")
	if err != nil {
		return nil, err
	}
	aliasPairs, err := decodeEmbedded[map[string]string]("data/aliases.yaml")
	if err != nil {
		return nil, err
	}

	return build(risks, infos, vf, aliasPairs)
}

func build(risks *domain.Catalog, infos []DiseaseInfo, vf vaccineFile, aliasPairs map[string]string) (*Library, error) {
	canonical := make([]string, 0, risks.Len()+len(infos)+len(vf.Vaccines))
	for _, p := range risks.Profiles() {
		canonical = append(canonical, p.Disease)
	}
	for _, i := range infos {
		canonical = append(canonical, i.Name)
	}
	for _, v := range vf.Vaccines {
		canonical = append(canonical, v.Disease)
	}

	aliases, err := domain.NewAliasTable(canonical, aliasPairs)
	if err != nil {
		return nil, fmt.Errorf("build alias table: %w", err)
	}

	lib := &Library{
		risks:          risks,
		aliases:        aliases,
		info:           make(map[string]DiseaseInfo, len(infos)),
		vaccines:       make(map[string]Vaccine, len(vf.Vaccines)),
		defaultVaccine: vf.Default,
	}

	for _, i := range infos {
		if strings.TrimSpace(i.Description) == "" {
			return nil, fmt.Errorf("disease info %q has no description", i.Name)
		}
		name, _ := aliases.Resolve(i.Name)
		lib.info[name] = i
	}

	for _, v := range vf.Vaccines {
		if v.Name == "" {
			return nil, fmt.Errorf("vaccine for %q has no name", v.Disease)
		}
		name, _ := aliases.Resolve(v.Disease)
		if _, dup := lib.vaccines[name]; dup {
			return nil, fmt.Errorf("duplicate vaccine for %q", v.Disease)
		}
		v.Disease = name
		lib.vaccines[name] = v
		lib.vaccineOrder = append(lib.vaccineOrder, name)
	}

	if lib.defaultVaccine.Name == "" {
		return nil, errors.New("default vaccine entry is missing")
	}

	return lib, nil
}

// LoadProfilesFile reads risk profiles from a YAML file. Unknown keys are
// rejected so that typos fail loudly instead of silently not scoring.
func LoadProfilesFile(path string) ([]domain.RiskProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open risk profiles: %w", err)
	}
	defer f.Close()

	profiles, err := decode[[]domain.RiskProfile](f)
	if err != nil {
		return nil, fmt.Errorf("decode risk profiles %s: %w", path, err)
	}
	return profiles, nil
}

func decodeEmbedded[T any](name string) (T, error) {
	raw, err := data.ReadFile(name)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("read %s: %w", name, err)
	}
	v, err := decode[T](bytes.NewReader(raw))
	if err != nil {
		return v, fmt.Errorf("decode %s: %w", name, err)
	}
	return v, nil
}

func decode[T any](r io.Reader) (T, error) {
	var v T
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}

// Risks returns the scoring catalog.
func (l *Library) Risks() *domain.Catalog { return l.risks }

// Resolve returns the canonical name of a disease.
func (l *Library) Resolve(name string) (string, bool) {
	return l.aliases.Resolve(name)
}

// Info returns the description of a disease. Unknown diseases get a generic
// entry that points the farmer at a veterinarian.
func (l *Library) Info(name string) DiseaseInfo {
	canonical, ok := l.aliases.Resolve(name)
	if !ok {
		return genericInfo(strings.TrimSpace(name))
	}

	info, ok := l.info[canonical]
	if !ok {
		info = genericInfo(canonical)
	}
	if p, ok := l.risks.Profile(canonical); ok {
		info.RiskFactors = &p
	}
	return info
}

func genericInfo(name string) DiseaseInfo {
	return DiseaseInfo{
		Name:        name,
		Description: "Information not available for this disease.",
		Symptoms:    []string{},
		Prevention:  []string{},
		Treatment:   "Consult a veterinarian.",
	}
}

// Vaccine returns the vaccine for a disease, or the default entry.
func (l *Library) Vaccine(disease string) Vaccine {
	if canonical, ok := l.aliases.Resolve(disease); ok {
		if v, ok := l.vaccines[canonical]; ok {
			return v
		}
	}
	return l.defaultVaccine
}

// VaccinesForAnimal lists the vaccines applicable to an animal type in
// catalog order.
func (l *Library) VaccinesForAnimal(animal string) []Vaccine {
	animal = strings.ToLower(strings.TrimSpace(animal))
	out := make([]Vaccine, 0)
	for _, name := range l.vaccineOrder {
		v := l.vaccines[name]
		if slices.Contains(v.Animals, animal) {
			out = append(out, v)
		}
	}
	return out
}
