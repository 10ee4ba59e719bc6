// Package memory is an in-process store used by tests and by development
// runs without a database.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/couchcryptid/livestock-risk-service/internal/domain"
	"github.com/couchcryptid/livestock-risk-service/internal/seed"
)

// Store holds a dataset in memory. It is safe for concurrent use.
type Store struct {
	mu            sync.RWMutex
	farms         []domain.Farm
	animals       []domain.Animal
	outbreaks     []domain.Outbreak
	vets          []domain.VetService
	notifications []domain.Notification
	alertIDs      map[string]struct{}
	nextNotifID   int64
}

// NewStore creates a store holding a copy of ds.
func NewStore(ds seed.Dataset) *Store {
	s := &Store{
		farms:         slices.Clone(ds.Farms),
		animals:       slices.Clone(ds.Animals),
		outbreaks:     slices.Clone(ds.Outbreaks),
		vets:          slices.Clone(ds.Vets),
		notifications: slices.Clone(ds.Notifications),
		alertIDs:      make(map[string]struct{}),
	}
	for _, n := range s.notifications {
		s.nextNotifID = max(s.nextNotifID, n.ID)
		if n.AlertID != "" {
			s.alertIDs[n.AlertID] = struct{}{}
		}
	}
	return s
}

// FarmByUser returns the user's first farm.
func (s *Store) FarmByUser(_ context.Context, userID int64) (domain.Farm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.farms {
		if f.UserID == userID {
			return f, nil
		}
	}
	return domain.Farm{}, fmt.Errorf("farm for user %d: %w", userID, domain.ErrNotFound)
}

// Farms lists farms, optionally only those with coordinates.
func (s *Store) Farms(_ context.Context, withCoordinates bool) ([]domain.Farm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Farm, 0, len(s.farms))
	for _, f := range s.farms {
		if _, ok := f.Location(); withCoordinates && !ok {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// UpdateFarmLocation sets a farm's coordinates.
func (s *Store) UpdateFarmLocation(_ context.Context, farmID int64, p domain.GeoPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.farms {
		if s.farms[i].ID == farmID {
			s.farms[i].Lat, s.farms[i].Lon = &p.Lat, &p.Lon
			return nil
		}
	}
	return fmt.Errorf("farm %d: %w", farmID, domain.ErrNotFound)
}

// AnimalTypesForFarm returns the types of the farm's active animals.
func (s *Store) AnimalTypesForFarm(_ context.Context, farmID int64) (domain.AnimalTypeSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var types []string
	for _, a := range s.animals {
		if a.FarmID == farmID && a.Active {
			types = append(types, a.Type)
		}
	}
	return domain.NewAnimalTypeSet(types...), nil
}

// ActiveOutbreaksInRegion returns active outbreaks in a district and state.
func (s *Store) ActiveOutbreaksInRegion(_ context.Context, district, state string) ([]domain.Outbreak, error) {
	return s.filterOutbreaks(func(o domain.Outbreak) bool {
		return o.Active && strings.EqualFold(o.District, district) && strings.EqualFold(o.State, state)
	}), nil
}

// ActiveOutbreaks returns every active outbreak.
func (s *Store) ActiveOutbreaks(_ context.Context) ([]domain.Outbreak, error) {
	return s.filterOutbreaks(func(o domain.Outbreak) bool { return o.Active }), nil
}

// OutbreaksInRegionSince returns outbreaks in a region reported at or
// after since, active or not.
func (s *Store) OutbreaksInRegionSince(_ context.Context, district, state string, since time.Time) ([]domain.Outbreak, error) {
	return s.filterOutbreaks(func(o domain.Outbreak) bool {
		return strings.EqualFold(o.District, district) && strings.EqualFold(o.State, state) && !o.ReportedAt.Before(since)
	}), nil
}

// OutbreakByID returns a single outbreak.
func (s *Store) OutbreakByID(_ context.Context, id int64) (domain.Outbreak, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.outbreaks {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Outbreak{}, fmt.Errorf("outbreak %d: %w", id, domain.ErrNotFound)
}

func (s *Store) filterOutbreaks(keep func(domain.Outbreak) bool) []domain.Outbreak {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Outbreak, 0)
	for _, o := range s.outbreaks {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

// VetsInRegion returns stored vets in a district and state.
func (s *Store) VetsInRegion(_ context.Context, district, state string) ([]domain.VetService, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.VetService, 0)
	for _, v := range s.vets {
		if strings.EqualFold(v.District, district) && strings.EqualFold(v.State, state) {
			out = append(out, v)
		}
	}
	return out, nil
}

// InsertNotifications stores notifications. A notification whose alert has
// already been stored is skipped.
func (s *Store) InsertNotifications(_ context.Context, ns []domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range ns {
		if n.AlertID != "" {
			if _, dup := s.alertIDs[n.AlertID]; dup {
				continue
			}
			s.alertIDs[n.AlertID] = struct{}{}
		}
		s.nextNotifID++
		n.ID = s.nextNotifID
		s.notifications = append(s.notifications, n)
	}
	return nil
}

// LoadBatch stores the notifications produced by the notifier pipeline.
func (s *Store) LoadBatch(ctx context.Context, ns []domain.Notification) error {
	return s.InsertNotifications(ctx, ns)
}

// UnreadNotificationCount counts the user's unread notifications.
func (s *Store) UnreadNotificationCount(_ context.Context, userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, x := range s.notifications {
		if x.UserID == userID && !x.Read {
			n++
		}
	}
	return n, nil
}

// Notifications returns the user's notifications, newest first.
func (s *Store) Notifications(_ context.Context, userID int64) ([]domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Notification) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// MarkNotificationsRead marks every unread notification of the user as read
// and returns how many changed.
func (s *Store) MarkNotificationsRead(_ context.Context, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.notifications {
		if s.notifications[i].UserID == userID && !s.notifications[i].Read {
			s.notifications[i].Read = true
			n++
		}
	}
	return n, nil
}

// CheckReadiness always succeeds.
func (s *Store) CheckReadiness(_ context.Context) error { return nil }
