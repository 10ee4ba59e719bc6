// Package risk combines stored farm and outbreak data with live weather to
// answer the disease-risk questions asked about a farm.
package risk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/livestock-risk-service/internal/domain"
	"github.com/couchcryptid/livestock-risk-service/internal/observability"
)

// Store is the read side of persistence used by the service.
type Store interface {
	FarmByUser(ctx context.Context, userID int64) (domain.Farm, error)
	AnimalTypesForFarm(ctx context.Context, farmID int64) (domain.AnimalTypeSet, error)
	ActiveOutbreaksInRegion(ctx context.Context, district, state string) ([]domain.Outbreak, error)
	ActiveOutbreaks(ctx context.Context) ([]domain.Outbreak, error)
	OutbreaksInRegionSince(ctx context.Context, district, state string, since time.Time) ([]domain.Outbreak, error)
	OutbreakByID(ctx context.Context, id int64) (domain.Outbreak, error)
	VetsInRegion(ctx context.Context, district, state string) ([]domain.VetService, error)
}

// Service answers risk, outbreak and vet queries for farms.
type Service struct {
	store   Store
	catalog *domain.Catalog
	weather domain.WeatherProvider
	vets    domain.VetFinder
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewService creates a risk service.
func NewService(
	store Store,
	catalog *domain.Catalog,
	weather domain.WeatherProvider,
	vets domain.VetFinder,
	clock clockwork.Clock,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		weather: weather,
		vets:    vets,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// Farm returns the user's farm.
func (s *Service) Farm(ctx context.Context, userID int64) (domain.Farm, error) {
	return s.store.FarmByUser(ctx, userID)
}

// Weather returns the current weather at a point.
func (s *Service) Weather(ctx context.Context, p domain.GeoPoint) domain.WeatherSnapshot {
	return s.weather.Current(ctx, p.Lat, p.Lon)
}

// FarmRisks scores every disease relevant to the farm's animals against the
// weather at the farm, highest risk first. A farm without coordinates has
// no assessments.
func (s *Service) FarmRisks(ctx context.Context, farm domain.Farm) ([]domain.RiskAssessment, error) {
	loc, ok := farm.Location()
	if !ok {
		return []domain.RiskAssessment{}, nil
	}

	animals, err := s.store.AnimalTypesForFarm(ctx, farm.ID)
	if err != nil {
		return nil, fmt.Errorf("load animal types: %w", err)
	}

	w := s.weather.Current(ctx, loc.Lat, loc.Lon)
	out := domain.AssessFarm(s.catalog, animals, w, loc, s.clock.Now().UTC())

	for _, a := range out {
		s.metrics.RiskAssessments.WithLabelValues(string(a.Level)).Inc()
	}
	s.logger.Debug("farm risks assessed",
		"farm_id", farm.ID, "diseases", len(out), "weather_fallback", w.Fallback)
	return out, nil
}

// NearbyOutbreaks returns active outbreaks within radiusKM of the farm,
// nearest first. Outbreaks in the farm's own district are searched first;
// when there are none, every active outbreak is considered.
func (s *Service) NearbyOutbreaks(ctx context.Context, farm domain.Farm, radiusKM float64) ([]domain.NearbyOutbreak, error) {
	loc, ok := farm.Location()
	if !ok {
		return []domain.NearbyOutbreak{}, nil
	}

	candidates, err := s.store.ActiveOutbreaksInRegion(ctx, farm.District, farm.State)
	if err != nil {
		return nil, fmt.Errorf("load regional outbreaks: %w", err)
	}
	if len(candidates) == 0 {
		candidates, err = s.store.ActiveOutbreaks(ctx)
		if err != nil {
			return nil, fmt.Errorf("load active outbreaks: %w", err)
		}
	}

	return domain.FilterNearby(loc, candidates, radiusKM), nil
}

// OutbreakDetail is an outbreak with its distance from the requesting farm,
// when both locations are known.
type OutbreakDetail struct {
	domain.Outbreak
	DistanceKM *float64
}

// Outbreak returns an outbreak by id, with the distance from farm filled in
// when possible. farm may be nil.
func (s *Service) Outbreak(ctx context.Context, id int64, farm *domain.Farm) (OutbreakDetail, error) {
	o, err := s.store.OutbreakByID(ctx, id)
	if err != nil {
		return OutbreakDetail{}, err
	}

	d := OutbreakDetail{Outbreak: o}
	if farm == nil {
		return d, nil
	}
	from, ok := farm.Location()
	if !ok {
		return d, nil
	}
	if to, ok := o.Point(); ok {
		km := domain.RoundKM(domain.Haversine(from, to))
		d.DistanceKM = &km
	}
	return d, nil
}

// History summarises the outbreaks reported in the farm's district over
// the history window, optionally for one disease.
func (s *Service) History(ctx context.Context, farm domain.Farm, disease string) (domain.OutbreakHistory, error) {
	since := s.clock.Now().UTC().Add(-domain.HistoryWindow)
	outbreaks, err := s.store.OutbreaksInRegionSince(ctx, farm.District, farm.State, since)
	if err != nil {
		return domain.OutbreakHistory{}, fmt.Errorf("load outbreak history: %w", err)
	}
	return domain.SummarizeHistory(outbreaks, disease), nil
}

// NearbyVets merges stored vets in the farm's district with directory
// results around the farm, nearest first.
func (s *Service) NearbyVets(ctx context.Context, farm domain.Farm, radiusKM float64) ([]domain.VetService, error) {
	loc, ok := farm.Location()
	if !ok {
		return []domain.VetService{}, nil
	}

	stored, err := s.store.VetsInRegion(ctx, farm.District, farm.State)
	if err != nil {
		return nil, fmt.Errorf("load stored vets: %w", err)
	}
	found := s.vets.NearbyVets(ctx, loc, radiusKM)

	return domain.MergeVets(loc, stored, found, radiusKM), nil
}
