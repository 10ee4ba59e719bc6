package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/livestock-risk-service/internal/domain"
)

// AlertTransformer decodes risk alerts and renders their notifications.
type AlertTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates an AlertTransformer.
func NewTransformer(logger *slog.Logger) *AlertTransformer {
	return &AlertTransformer{logger: logger}
}

// Transform decodes msg as a RiskAlert and returns the notification for its
// owner. Alerts missing an id, user or disease are rejected.
func (t *AlertTransformer) Transform(_ context.Context, msg domain.AlertMessage) (domain.Notification, error) {
	var alert domain.RiskAlert
	if err := json.Unmarshal(msg.Value, &alert); err != nil {
		return domain.Notification{}, fmt.Errorf("decode alert: %w", err)
	}
	if err := validateAlert(alert); err != nil {
		return domain.Notification{}, err
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = msg.Timestamp
	}

	n := domain.NotificationForAlert(alert)
	t.logger.Debug("alert transformed",
		"alert_id", alert.ID,
		"user_id", alert.UserID,
		"disease", alert.Disease,
	)
	return n, nil
}

func validateAlert(a domain.RiskAlert) error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("missing alert id"))
	}
	if a.UserID <= 0 {
		errs = append(errs, errors.New("missing user id"))
	}
	if a.Disease == "" {
		errs = append(errs, errors.New("missing disease name"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid alert: %w", errors.Join(errs...))
	}
	return nil
}
