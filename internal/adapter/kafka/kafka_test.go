package kafka

import (
	"encoding/json"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/livestock-risk-service/internal/domain"
)

func TestMapMessageToAlertMessage(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("3"),
		Value:     []byte(`{"id":"alert-1"}`),
		Topic:     "livestock-risk-alerts",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte("high")},
		},
	}

	m := mapMessageToAlertMessage(msg)

	assert.Equal(t, []byte("3"), m.Key)
	assert.JSONEq(t, `{"id":"alert-1"}`, string(m.Value))
	assert.Equal(t, "livestock-risk-alerts", m.Topic)
	assert.Equal(t, 2, m.Partition)
	assert.Equal(t, int64(42), m.Offset)
	assert.Equal(t, now, m.Timestamp)
	assert.Equal(t, "high", m.Headers["risk_level"])
	assert.Nil(t, m.Commit)
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 8, 15, 6, 0, 0, 0, time.UTC)
	alert := domain.RiskAlert{
		ID:              "alert-1",
		FarmID:          3,
		UserID:          7,
		Disease:         "Anthrax",
		Score:           75,
		Level:           domain.RiskHigh,
		AffectedAnimals: []string{"cow"},
		CreatedAt:       now,
	}

	msg, err := serializeToMessage(alert)
	require.NoError(t, err)

	assert.Equal(t, []byte("3"), msg.Key)
	assert.Contains(t, string(msg.Value), `"disease_name":"Anthrax"`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "alert_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("alert-1"), msg.Headers[0].Value)
	assert.Equal(t, "risk_level", msg.Headers[1].Key)
	assert.Equal(t, []byte("high"), msg.Headers[1].Value)
	assert.Equal(t, "created_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)

	var decoded domain.RiskAlert
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, alert, decoded)
}
