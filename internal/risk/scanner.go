package risk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/livestock-risk-service/internal/domain"
	"github.com/couchcryptid/livestock-risk-service/internal/geocode"
	"github.com/couchcryptid/livestock-risk-service/internal/observability"
)

// FarmStore lists farms and records resolved coordinates.
type FarmStore interface {
	Farms(ctx context.Context, withCoordinates bool) ([]domain.Farm, error)
	UpdateFarmLocation(ctx context.Context, farmID int64, p domain.GeoPoint) error
}

// AlertPublisher delivers high-risk alerts to the notifier.
type AlertPublisher interface {
	PublishAlerts(ctx context.Context, alerts []domain.RiskAlert) error
}

// Locator resolves a postal address to coordinates.
type Locator interface {
	Resolve(ctx context.Context, addr domain.Address) (domain.GeoPoint, geocode.Source, bool)
}

// ScanResult summarises one scan.
type ScanResult struct {
	FarmsScanned int
	FarmsFailed  int
	Alerts       int
}

// Scanner assesses every located farm and publishes an alert for each
// high-risk disease.
type Scanner struct {
	risks     *Service
	farms     FarmStore
	publisher AlertPublisher
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewScanner creates a scanner.
func NewScanner(risks *Service, farms FarmStore, publisher AlertPublisher, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Scanner {
	return &Scanner{
		risks:     risks,
		farms:     farms,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
	}
}

// Scan runs one pass over all located farms. A farm whose assessment fails
// is logged and skipped; a publish failure aborts the scan.
func (s *Scanner) Scan(ctx context.Context) (ScanResult, error) {
	farms, err := s.farms.Farms(ctx, true)
	if err != nil {
		return ScanResult{}, fmt.Errorf("list farms: %w", err)
	}

	var res ScanResult
	var alerts []domain.RiskAlert
	for _, f := range farms {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		risks, err := s.risks.FarmRisks(ctx, f)
		if err != nil {
			s.logger.Error("farm assessment failed", "farm_id", f.ID, "error", err)
			res.FarmsFailed++
			continue
		}
		res.FarmsScanned++
		s.metrics.FarmsScanned.Inc()
		alerts = append(alerts, s.alertsFor(f, risks)...)
	}

	if len(alerts) > 0 {
		if err := s.publisher.PublishAlerts(ctx, alerts); err != nil {
			return res, fmt.Errorf("publish alerts: %w", err)
		}
		s.metrics.AlertsPublished.Add(float64(len(alerts)))
	}
	res.Alerts = len(alerts)

	s.logger.Info("risk scan complete",
		"farms_scanned", res.FarmsScanned, "farms_failed", res.FarmsFailed, "alerts", res.Alerts)
	return res, nil
}

func (s *Scanner) alertsFor(f domain.Farm, risks []domain.RiskAssessment) []domain.RiskAlert {
	now := s.clock.Now().UTC()
	var out []domain.RiskAlert
	for _, r := range risks {
		if r.Level != domain.RiskHigh {
			continue
		}
		out = append(out, domain.RiskAlert{
			ID:              uuid.NewString(),
			FarmID:          f.ID,
			UserID:          f.UserID,
			Disease:         r.Disease,
			Score:           r.Score,
			Level:           r.Level,
			AffectedAnimals: r.AffectedAnimals,
			CreatedAt:       now,
		})
	}
	return out
}

// RefreshLocations fills in coordinates for farms that have none. It
// returns how many farms were updated.
func (s *Scanner) RefreshLocations(ctx context.Context, locator Locator) (int, error) {
	farms, err := s.farms.Farms(ctx, false)
	if err != nil {
		return 0, fmt.Errorf("list farms: %w", err)
	}

	updated := 0
	var errs []error
	for _, f := range farms {
		if _, ok := f.Location(); ok {
			continue
		}

		p, src, ok := locator.Resolve(ctx, domain.AddressOf(f))
		if !ok {
			s.logger.Warn("farm address could not be located", "farm_id", f.ID, "address", domain.AddressOf(f).String())
			continue
		}
		if err := s.farms.UpdateFarmLocation(ctx, f.ID, p); err != nil {
			errs = append(errs, fmt.Errorf("farm %d: %w", f.ID, err))
			continue
		}
		s.logger.Info("farm located", "farm_id", f.ID, "source", src, "lat", p.Lat, "lon", p.Lon)
		updated++
	}
	return updated, errors.Join(errs...)
}
