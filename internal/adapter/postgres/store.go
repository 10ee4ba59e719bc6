package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/couchcryptid/livestock-risk-service/internal/domain"
)

// Store implements the repository operations on a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store backed by pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// CheckReadiness pings the database.
func (s *Store) CheckReadiness(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}
	return nil
}

const farmColumns = `id, user_id, name, address, district, state, pincode, country, latitude, longitude`

func scanFarm(row pgx.Row) (domain.Farm, error) {
	var f domain.Farm
	err := row.Scan(&f.ID, &f.UserID, &f.Name, &f.Address, &f.District, &f.State, &f.Pincode, &f.Country, &f.Lat, &f.Lon)
	return f, err
}

// FarmByUser returns the user's first farm.
func (s *Store) FarmByUser(ctx context.Context, userID int64) (domain.Farm, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+farmColumns+` FROM farms WHERE user_id = $1 ORDER BY id LIMIT 1`, userID)
	f, err := scanFarm(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Farm{}, fmt.Errorf("farm for user %d: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Farm{}, fmt.Errorf("query farm: %w", err)
	}
	return f, nil
}

// Farms lists farms, optionally only those with coordinates.
func (s *Store) Farms(ctx context.Context, withCoordinates bool) ([]domain.Farm, error) {
	query := `SELECT ` + farmColumns + ` FROM farms`
	if withCoordinates {
		query += ` WHERE latitude IS NOT NULL AND longitude IS NOT NULL`
	}
	query += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query farms: %w", err)
	}
	defer rows.Close()

	farms := make([]domain.Farm, 0)
	for rows.Next() {
		f, err := scanFarm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan farm: %w", err)
		}
		farms = append(farms, f)
	}
	return farms, rows.Err()
}

// UpdateFarmLocation sets a farm's coordinates.
func (s *Store) UpdateFarmLocation(ctx context.Context, farmID int64, p domain.GeoPoint) error {
	cmd, err := s.pool.Exec(ctx, `UPDATE farms SET latitude = $2, longitude = $3 WHERE id = $1`, farmID, p.Lat, p.Lon)
	if err != nil {
		return fmt.Errorf("update farm location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("farm %d: %w", farmID, domain.ErrNotFound)
	}
	return nil
}

// AnimalTypesForFarm returns the types of the farm's active animals.
func (s *Store) AnimalTypesForFarm(ctx context.Context, farmID int64) (domain.AnimalTypeSet, error) {
	rows, err := s.pool.Query(ctx, `
SELECT DISTINCT lower(animal_type)
FROM animals
WHERE farm_id = $1 AND is_active`, farmID)
	if err != nil {
		return nil, fmt.Errorf("query animal types: %w", err)
	}

	types, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan animal types: %w", err)
	}
	return domain.NewAnimalTypeSet(types...), nil
}

const outbreakColumns = `id, disease_name, animal_type, severity, location, district, state,
latitude, longitude, is_active, reported_date, reported_by, description, preventive_measures,
affected_animals, deaths, morbidity_rate`

func scanOutbreak(row pgx.Row) (domain.Outbreak, error) {
	var o domain.Outbreak
	err := row.Scan(
		&o.ID,
		&o.Disease,
		&o.AnimalType,
		&o.Severity,
		&o.Location,
		&o.District,
		&o.State,
		&o.Lat,
		&o.Lon,
		&o.Active,
		&o.ReportedAt,
		&o.ReportedBy,
		&o.Description,
		&o.PreventiveMeasures,
		&o.AffectedAnimals,
		&o.Deaths,
		&o.MorbidityRate,
	)
	return o, err
}

func (s *Store) queryOutbreaks(ctx context.Context, where string, args ...any) ([]domain.Outbreak, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+outbreakColumns+` FROM disease_outbreaks WHERE `+where+` ORDER BY reported_date DESC, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query outbreaks: %w", err)
	}
	defer rows.Close()

	outbreaks := make([]domain.Outbreak, 0)
	for rows.Next() {
		o, err := scanOutbreak(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outbreak: %w", err)
		}
		outbreaks = append(outbreaks, o)
	}
	return outbreaks, rows.Err()
}

// ActiveOutbreaksInRegion returns active outbreaks in a district and state.
func (s *Store) ActiveOutbreaksInRegion(ctx context.Context, district, state string) ([]domain.Outbreak, error) {
	return s.queryOutbreaks(ctx, `is_active AND lower(district) = lower($1) AND lower(state) = lower($2)`, district, state)
}

// ActiveOutbreaks returns every active outbreak.
func (s *Store) ActiveOutbreaks(ctx context.Context) ([]domain.Outbreak, error) {
	return s.queryOutbreaks(ctx, `is_active`)
}

// OutbreaksInRegionSince returns outbreaks in a region reported at or
// after since, active or not.
func (s *Store) OutbreaksInRegionSince(ctx context.Context, district, state string, since time.Time) ([]domain.Outbreak, error) {
	return s.queryOutbreaks(ctx, `lower(district) = lower($1) AND lower(state) = lower($2) AND reported_date >= $3`, district, state, since)
}

// OutbreakByID returns a single outbreak.
func (s *Store) OutbreakByID(ctx context.Context, id int64) (domain.Outbreak, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+outbreakColumns+` FROM disease_outbreaks WHERE id = $1`, id)
	o, err := scanOutbreak(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Outbreak{}, fmt.Errorf("outbreak %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Outbreak{}, fmt.Errorf("query outbreak: %w", err)
	}
	return o, nil
}

// VetsInRegion returns stored vets in a district and state.
func (s *Store) VetsInRegion(ctx context.Context, district, state string) ([]domain.VetService, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, name, address, district, state, latitude, longitude, phone, website, rating, is_verified
FROM veterinary_services
WHERE lower(district) = lower($1) AND lower(state) = lower($2)
ORDER BY id`, district, state)
	if err != nil {
		return nil, fmt.Errorf("query vets: %w", err)
	}
	defer rows.Close()

	vets := make([]domain.VetService, 0)
	for rows.Next() {
		var v domain.VetService
		if err := rows.Scan(
			&v.ID,
			&v.Name,
			&v.Address,
			&v.District,
			&v.State,
			&v.Lat,
			&v.Lon,
			&v.Phone,
			&v.Website,
			&v.Rating,
			&v.Verified,
		); err != nil {
			return nil, fmt.Errorf("scan vet: %w", err)
		}
		vets = append(vets, v)
	}
	return vets, rows.Err()
}

const insertNotificationSQL = `
INSERT INTO notifications (alert_id, user_id, type, title, message, is_read, is_action_required, action_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (alert_id) DO NOTHING`

// InsertNotifications stores notifications in one round trip. A
// notification whose alert has already been stored is skipped.
func (s *Store) InsertNotifications(ctx context.Context, ns []domain.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, n := range ns {
		batch.Queue(insertNotificationSQL,
			nullIfEmpty(n.AlertID), n.UserID, n.Type, n.Title, n.Message,
			n.Read, n.ActionRequired, n.ActionURL, n.CreatedAt)
	}

	res := s.pool.SendBatch(ctx, batch)
	defer res.Close() //nolint:errcheck // exec errors are returned below

	for range ns {
		if _, err := res.Exec(); err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}
	}
	return nil
}

// LoadBatch stores the notifications produced by the notifier pipeline.
func (s *Store) LoadBatch(ctx context.Context, ns []domain.Notification) error {
	return s.InsertNotifications(ctx, ns)
}

// UnreadNotificationCount counts the user's unread notifications.
func (s *Store) UnreadNotificationCount(ctx context.Context, userID int64) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return n, nil
}

// Notifications returns the user's notifications, newest first.
func (s *Store) Notifications(ctx context.Context, userID int64) ([]domain.Notification, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, user_id, type, title, message, is_read, is_action_required, action_url, created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Read, &n.ActionRequired, &n.ActionURL, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkNotificationsRead marks every unread notification of the user as read
// and returns how many changed.
func (s *Store) MarkNotificationsRead(ctx context.Context, userID int64) (int, error) {
	tag, err := s.pool.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
