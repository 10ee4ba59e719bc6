package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/couchcryptid/livestock-risk-service/internal/seed"
)

// Import loads a dataset in a single transaction. Database ids are
// assigned fresh; animals follow their farm through the new farm id.
func (s *Store) Import(ctx context.Context, ds seed.Dataset) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		farmIDs := make(map[int64]int64, len(ds.Farms))
		for _, f := range ds.Farms {
			var id int64
			err := tx.QueryRow(ctx, `
INSERT INTO farms (user_id, name, address, district, state, pincode, country, latitude, longitude)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`,
				f.UserID, f.Name, f.Address, f.District, f.State, f.Pincode, f.Country, f.Lat, f.Lon).Scan(&id)
			if err != nil {
				return fmt.Errorf("insert farm %q: %w", f.Name, err)
			}
			farmIDs[f.ID] = id
		}

		batch := &pgx.Batch{}
		for _, a := range ds.Animals {
			farmID, ok := farmIDs[a.FarmID]
			if !ok {
				return fmt.Errorf("animal %q references unknown farm %d", a.Name, a.FarmID)
			}
			batch.Queue(`
INSERT INTO animals (farm_id, user_id, name, animal_type, breed, is_active)
VALUES ($1, $2, $3, $4, $5, $6)`,
				farmID, a.UserID, a.Name, a.Type, a.Breed, a.Active)
		}
		for _, o := range ds.Outbreaks {
			measures := o.PreventiveMeasures
			if measures == nil {
				measures = []string{}
			}
			batch.Queue(`
INSERT INTO disease_outbreaks (disease_name, animal_type, severity, location, district, state,
    latitude, longitude, is_active, reported_date, reported_by, description, preventive_measures,
    affected_animals, deaths, morbidity_rate)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
				o.Disease, o.AnimalType, o.Severity, o.Location, o.District, o.State,
				o.Lat, o.Lon, o.Active, o.ReportedAt, o.ReportedBy, o.Description, measures,
				o.AffectedAnimals, o.Deaths, o.MorbidityRate)
		}
		for _, v := range ds.Vets {
			batch.Queue(`
INSERT INTO veterinary_services (name, address, district, state, latitude, longitude, phone, website, rating, is_verified)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				v.Name, v.Address, v.District, v.State, v.Lat, v.Lon, v.Phone, v.Website, v.Rating, v.Verified)
		}
		for _, n := range ds.Notifications {
			batch.Queue(insertNotificationSQL,
				nullIfEmpty(n.AlertID), n.UserID, n.Type, n.Title, n.Message,
				n.Read, n.ActionRequired, n.ActionURL, n.CreatedAt)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert dataset: %w", err)
		}
		return nil
	})
}
