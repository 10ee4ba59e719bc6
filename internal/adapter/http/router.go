package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/livestock-risk-service/internal/auth"
	"github.com/couchcryptid/livestock-risk-service/internal/catalog"
	"github.com/couchcryptid/livestock-risk-service/internal/domain"
	"github.com/couchcryptid/livestock-risk-service/internal/observability"
	"github.com/couchcryptid/livestock-risk-service/internal/risk"
)

// RiskService answers the farm-scoped questions of the API.
type RiskService interface {
	Farm(ctx context.Context, userID int64) (domain.Farm, error)
	Weather(ctx context.Context, p domain.GeoPoint) domain.WeatherSnapshot
	FarmRisks(ctx context.Context, farm domain.Farm) ([]domain.RiskAssessment, error)
	NearbyOutbreaks(ctx context.Context, farm domain.Farm, radiusKM float64) ([]domain.NearbyOutbreak, error)
	Outbreak(ctx context.Context, id int64, farm *domain.Farm) (risk.OutbreakDetail, error)
	History(ctx context.Context, farm domain.Farm, disease string) (domain.OutbreakHistory, error)
	NearbyVets(ctx context.Context, farm domain.Farm, radiusKM float64) ([]domain.VetService, error)
}

// NotificationStore reads and updates user notifications.
type NotificationStore interface {
	Notifications(ctx context.Context, userID int64) ([]domain.Notification, error)
	UnreadNotificationCount(ctx context.Context, userID int64) (int, error)
	MarkNotificationsRead(ctx context.Context, userID int64) (int, error)
}

// APIConfig carries the collaborators of the API router.
type APIConfig struct {
	Risks          RiskService
	Library        *catalog.Library
	Notifications  NotificationStore
	Translator     domain.Translator
	Tokens         *auth.Tokens
	Ready          sharedobs.ReadinessChecker
	Logger         *slog.Logger
	Metrics        *observability.Metrics
	RequestTimeout time.Duration

	// Development exposes internal error messages in 500 responses.
	Development bool
}

type api struct {
	risks         RiskService
	library       *catalog.Library
	notifications NotificationStore
	translator    domain.Translator
	logger        *slog.Logger
	development   bool
}

// NewRouter builds the API handler, including the operational endpoints.
func NewRouter(cfg APIConfig) http.Handler {
	a := &api{
		risks:         cfg.Risks,
		library:       cfg.Library,
		notifications: cfg.Notifications,
		translator:    cfg.Translator,
		logger:        cfg.Logger,
		development:   cfg.Development,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(instrument(cfg.Logger, cfg.Metrics))

	mountOps(r, cfg.Ready)

	r.Route("/api", func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}

		r.Get("/disease-alerts/info", a.diseaseInfo)
		r.Get("/disease-alerts/weather", a.weather)
		r.Get("/vaccine-info/{disease}", a.vaccineInfo)
		r.Get("/vaccines", a.vaccinesForAnimal)
		r.Post("/translate", a.translate)

		r.Group(func(r chi.Router) {
			r.Use(requireUser(cfg.Tokens, cfg.Logger))

			r.Get("/disease-alerts/nearby", a.nearbyOutbreaks)
			r.Get("/disease-alerts/risks", a.farmRisks)
			r.Get("/disease-alerts/outbreak/{id}", a.outbreak)
			r.Get("/disease-alerts/history", a.history)
			r.Get("/nearby-vets", a.nearbyVets)
			r.Get("/notifications", a.listNotifications)
			r.Get("/notifications/unread-count", a.unreadCount)
			r.Post("/notifications/mark-all-read", a.markAllRead)
		})
	})

	return r
}

// serverError logs err and answers 500. The message is only exposed in
// development.
func (a *api) serverError(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error("request failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)
	msg := msgInternalError
	if a.development {
		msg = err.Error()
	}
	writeError(w, http.StatusInternalServerError, msg)
}
