package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RiskAlert is published for every high-risk assessment found by a scan.
type RiskAlert struct {
	ID              string    `json:"id"`
	FarmID          int64     `json:"farm_id"`
	UserID          int64     `json:"user_id"`
	Disease         string    `json:"disease_name"`
	Score           int       `json:"risk_score"`
	Level           RiskLevel `json:"risk_level"`
	AffectedAnimals []string  `json:"affected_animals"`
	CreatedAt       time.Time `json:"created_at"`
}

// AlertMessage is an undecoded alert read from the message bus.
type AlertMessage struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// NotificationType values.
const (
	NotificationDiseaseAlert = "disease_alert"
)

// Notification is a user-facing message shown in the app.
type Notification struct {
	ID             int64     `json:"id,omitempty"`
	AlertID        string    `json:"-"`
	UserID         int64     `json:"user_id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Read           bool      `json:"is_read"`
	ActionRequired bool      `json:"is_action_required"`
	ActionURL      string    `json:"action_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NotificationForAlert renders the farmer-facing notification of a high-risk
// alert.
func NotificationForAlert(a RiskAlert) Notification {
	animals := "animals"
	if len(a.AffectedAnimals) > 0 {
		animals = strings.Join(a.AffectedAnimals, ", ")
	}
	return Notification{
		AlertID:        a.ID,
		UserID:         a.UserID,
		Type:           NotificationDiseaseAlert,
		Title:          fmt.Sprintf("High risk of %s", a.Disease),
		Message:        fmt.Sprintf("Current conditions indicate a high risk of %s for your %s. Take preventive measures.", a.Disease, animals),
		ActionRequired: true,
		ActionURL:      "/disease-alerts",
		CreatedAt:      a.CreatedAt,
	}
}
