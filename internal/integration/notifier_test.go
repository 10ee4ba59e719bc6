//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/livestock-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/livestock-risk-service/internal/adapter/memory"
	"github.com/couchcryptid/livestock-risk-service/internal/catalog"
	"github.com/couchcryptid/livestock-risk-service/internal/config"
	"github.com/couchcryptid/livestock-risk-service/internal/domain"
	"github.com/couchcryptid/livestock-risk-service/internal/observability"
	"github.com/couchcryptid/livestock-risk-service/internal/pipeline"
	"github.com/couchcryptid/livestock-risk-service/internal/risk"
	"github.com/couchcryptid/livestock-risk-service/internal/seed"
)

const testAlertTopic = "test-risk-alerts"

var august = time.Date(2024, time.August, 15, 6, 0, 0, 0, time.UTC)

type monsoonWeather struct{}

func (monsoonWeather) Current(_ context.Context, _, _ float64) domain.WeatherSnapshot {
	return domain.WeatherSnapshot{TempC: 32, Humidity: 85, RainfallMM: 120, ObservedAt: august}
}

type noVets struct{}

func (noVets) NearbyVets(context.Context, domain.GeoPoint, float64) []domain.VetService { return nil }

func testConfig(broker, group string) *config.Config {
	return &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaAlertTopic:    testAlertTopic,
		KafkaGroupID:       fmt.Sprintf("%s-%d", group, time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}
}

// TestKafkaWriterReader verifies that alerts published by kafka.Writer are
// read back by kafka.Reader with their key and headers.
func TestKafkaWriterReader(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAlertTopic)
	cfg := testConfig(broker, "test-reader")

	alert := domain.RiskAlert{
		ID:              "alert-1",
		FarmID:          7,
		UserID:          3,
		Disease:         "Haemorrhagic Septicaemia",
		Score:           70,
		Level:           domain.RiskHigh,
		AffectedAnimals: []string{"buffalo", "cow"},
		CreatedAt:       august,
	}

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.PublishAlerts(ctx, []domain.RiskAlert{alert}))

	// Retry because the consumer group may need time to rebalance before
	// partitions are assigned and messages become available.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.AlertMessage
	for len(batch) == 0 {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		if ctx.Err() != nil {
			t.Fatal("timed out waiting for alert")
		}
	}

	msg := batch[0]
	assert.Equal(t, "7", string(msg.Key))
	assert.Equal(t, testAlertTopic, msg.Topic)
	assert.Equal(t, "alert-1", msg.Headers["alert_id"])
	assert.Equal(t, "high", msg.Headers["risk_level"])

	var got domain.RiskAlert
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, alert, got)

	require.NotNil(t, msg.Commit)
	require.NoError(t, msg.Commit(ctx))
}

// TestScanToNotification runs a risk scan against the demo farms, publishes
// its alerts through Kafka and checks that the notifier stores exactly one
// notification per alert while skipping a malformed message.
func TestScanToNotification(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAlertTopic)
	cfg := testConfig(broker, "test-notifier")

	lib, err := catalog.Load("")
	require.NoError(t, err)

	store := memory.NewStore(seed.Demo(august))
	clock := clockwork.NewFakeClockAt(august)
	metrics := observability.NewMetricsForTesting()
	svc := risk.NewService(store, lib.Risks(), monsoonWeather{}, noVets{}, clock, discardLogger(), metrics)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	// A poison message ahead of the real alerts must be skipped.
	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testAlertTopic}
	t.Cleanup(func() { _ = producer.Close() })
	require.NoError(t, producer.WriteMessages(ctx, kafkago.Message{Key: []byte("bad"), Value: []byte("not-json{{{")}))

	res, err := risk.NewScanner(svc, store, writer, clock, discardLogger(), metrics).Scan(ctx)
	require.NoError(t, err)
	require.Positive(t, res.Alerts)

	before, err := store.UnreadNotificationCount(ctx, seed.DemoUserID)
	require.NoError(t, err)

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	p := pipeline.New(reader, pipeline.NewTransformer(discardLogger()), store, discardLogger(), metrics, 50)
	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	require.Eventually(t, func() bool {
		n, err := store.UnreadNotificationCount(ctx, seed.DemoUserID)
		return err == nil && n == before+res.Alerts
	}, 60*time.Second, 250*time.Millisecond, "expected %d new notifications", res.Alerts)

	pipelineCancel()
	require.NoError(t, <-errCh)
	require.NoError(t, p.CheckReadiness(ctx))

	ns, err := store.Notifications(ctx, seed.DemoUserID)
	require.NoError(t, err)
	assert.Equal(t, "High risk of Haemorrhagic Septicaemia", ns[0].Title)
}
