//go:build integration

package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/livestock-risk-service/internal/adapter/postgres"
	"github.com/couchcryptid/livestock-risk-service/internal/domain"
	"github.com/couchcryptid/livestock-risk-service/internal/seed"
)

func newPostgresStore(ctx context.Context, t *testing.T, now time.Time) *postgres.Store {
	t.Helper()

	pool, err := postgres.Open(ctx, startPostgres(ctx, t))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.RunMigrations(ctx, pool))
	// Migrations are idempotent.
	require.NoError(t, postgres.RunMigrations(ctx, pool))

	store := postgres.NewStore(pool)
	require.NoError(t, store.Import(ctx, seed.Demo(now)))
	return store
}

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	now := time.Now().UTC()
	store := newPostgresStore(ctx, t, now)

	t.Run("readiness", func(t *testing.T) {
		require.NoError(t, store.CheckReadiness(ctx))
	})

	t.Run("farms", func(t *testing.T) {
		farm, err := store.FarmByUser(ctx, seed.DemoUserID)
		require.NoError(t, err)
		assert.Equal(t, "Green Valley Dairy", farm.Name)
		_, ok := farm.Location()
		assert.True(t, ok)

		unlocated, err := store.FarmByUser(ctx, seed.UnlocatedUserID)
		require.NoError(t, err)
		assert.Nil(t, unlocated.Lat)
		assert.Nil(t, unlocated.Lon)

		_, err = store.FarmByUser(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		located, err := store.Farms(ctx, true)
		require.NoError(t, err)
		require.Len(t, located, 1)

		require.NoError(t, store.UpdateFarmLocation(ctx, unlocated.ID, domain.GeoPoint{Lat: 16.98, Lon: 73.30}))
		located, err = store.Farms(ctx, true)
		require.NoError(t, err)
		assert.Len(t, located, 2)

		assert.ErrorIs(t, store.UpdateFarmLocation(ctx, 999, domain.GeoPoint{}), domain.ErrNotFound)
	})

	t.Run("animal types skip inactive animals", func(t *testing.T) {
		farm, err := store.FarmByUser(ctx, seed.DemoUserID)
		require.NoError(t, err)

		types, err := store.AnimalTypesForFarm(ctx, farm.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.NewAnimalTypeSet("cow", "buffalo", "goat", "chicken"), types)
	})

	t.Run("active outbreaks in region match case-insensitively", func(t *testing.T) {
		outbreaks, err := store.ActiveOutbreaksInRegion(ctx, "ANAND", "gujarat")
		require.NoError(t, err)
		require.Len(t, outbreaks, 1)

		o := outbreaks[0]
		assert.Equal(t, "Foot and Mouth Disease", o.Disease)
		assert.True(t, o.Active)
		assert.Len(t, o.PreventiveMeasures, 4)
		require.NotNil(t, o.AffectedAnimals)
		assert.Equal(t, 42, *o.AffectedAnimals)
		require.NotNil(t, o.Deaths)
		assert.Equal(t, 3, *o.Deaths)
		require.NotNil(t, o.MorbidityRate)
		assert.InDelta(t, 35.5, *o.MorbidityRate, 1e-9)
	})

	t.Run("active outbreaks exclude inactive", func(t *testing.T) {
		outbreaks, err := store.ActiveOutbreaks(ctx)
		require.NoError(t, err)
		require.Len(t, outbreaks, 3)
		for _, o := range outbreaks {
			assert.True(t, o.Active, o.Disease)
		}
	})

	t.Run("outbreak without statistics", func(t *testing.T) {
		outbreaks, err := store.ActiveOutbreaksInRegion(ctx, "Jaipur", "Rajasthan")
		require.NoError(t, err)
		require.Len(t, outbreaks, 1)

		o, err := store.OutbreakByID(ctx, outbreaks[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Brucellosis", o.Disease)
		assert.Empty(t, o.PreventiveMeasures)
		assert.Nil(t, o.AffectedAnimals)
		assert.Nil(t, o.Deaths)
		assert.Nil(t, o.MorbidityRate)

		_, err = store.OutbreakByID(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("history includes inactive outbreaks", func(t *testing.T) {
		outbreaks, err := store.OutbreaksInRegionSince(ctx, "anand", "Gujarat", now.Add(-domain.HistoryWindow))
		require.NoError(t, err)
		require.Len(t, outbreaks, 3)
		assert.True(t, outbreaks[0].ReportedAt.After(outbreaks[1].ReportedAt), "newest first")

		recent, err := store.OutbreaksInRegionSince(ctx, "Anand", "Gujarat", now.AddDate(0, 0, -7))
		require.NoError(t, err)
		assert.Len(t, recent, 1)
	})

	t.Run("vets in region", func(t *testing.T) {
		vets, err := store.VetsInRegion(ctx, "anand", "GUJARAT")
		require.NoError(t, err)
		require.Len(t, vets, 3)
		assert.Equal(t, "District Veterinary Hospital", vets[0].Name)
		assert.True(t, vets[0].Verified)
		require.NotNil(t, vets[1].Rating)
		assert.InDelta(t, 4.5, *vets[1].Rating, 1e-9)
		assert.Empty(t, vets[2].Website)

		none, err := store.VetsInRegion(ctx, "Nashik", "Maharashtra")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("notifications dedupe by alert and mark read", func(t *testing.T) {
		unread, err := store.UnreadNotificationCount(ctx, seed.DemoUserID)
		require.NoError(t, err)
		require.Equal(t, 1, unread)

		alert := domain.NotificationForAlert(domain.RiskAlert{
			ID:              "alert-dedupe-1",
			UserID:          seed.DemoUserID,
			Disease:         "Theileriosis",
			Score:           80,
			Level:           domain.RiskHigh,
			AffectedAnimals: []string{"cow"},
			CreatedAt:       now,
		})
		require.NoError(t, store.LoadBatch(ctx, []domain.Notification{alert}))
		require.NoError(t, store.LoadBatch(ctx, []domain.Notification{alert}))

		unread, err = store.UnreadNotificationCount(ctx, seed.DemoUserID)
		require.NoError(t, err)
		assert.Equal(t, 2, unread)

		ns, err := store.Notifications(ctx, seed.DemoUserID)
		require.NoError(t, err)
		require.Len(t, ns, 3)
		assert.Equal(t, "High risk of Theileriosis", ns[0].Title)

		marked, err := store.MarkNotificationsRead(ctx, seed.DemoUserID)
		require.NoError(t, err)
		assert.Equal(t, 2, marked)

		marked, err = store.MarkNotificationsRead(ctx, seed.DemoUserID)
		require.NoError(t, err)
		assert.Zero(t, marked)

		unread, err = store.UnreadNotificationCount(ctx, seed.DemoUserID)
		require.NoError(t, err)
		assert.Zero(t, unread)
	})
}
