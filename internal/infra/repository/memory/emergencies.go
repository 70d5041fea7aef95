package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/emergency"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

func copyEmergency(e *models.Emergency) *models.Emergency {
	cp := *e
	cp.Animals = append(cp.Animals[:0:0], e.Animals...)
	cp.Images = append(cp.Images[:0:0], e.Images...)
	cp.Videos = append(cp.Videos[:0:0], e.Videos...)
	return &cp
}

func (s *Store) CreateEmergency(_ context.Context, e *models.Emergency) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.EmergencyID == "" {
		e.EmergencyID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = string(domain.InitialStatus())
	}
	s.stamp(&e.CreatedAt, &e.UpdatedAt)
	s.emergencies[e.EmergencyID] = copyEmergency(e)
	return nil
}

func (s *Store) GetEmergency(_ context.Context, emergencyID string) (*models.Emergency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.emergencies[emergencyID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyEmergency(e), nil
}

// collect returns matching reports newest first.
func (s *Store) collect(keep func(*models.Emergency) bool, limit int) []models.Emergency {
	out := []models.Emergency{}
	for _, e := range s.emergencies {
		if keep(e) {
			out = append(out, *copyEmergency(e))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *Store) ListByAuthor(_ context.Context, userID string, limit int) ([]models.Emergency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(e *models.Emergency) bool { return e.UserID == userID }, limit), nil
}

func (s *Store) ListByFarmerLocations(_ context.Context, locations []string, limit int) ([]models.Emergency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := make(map[string]struct{}, len(locations))
	for _, l := range locations {
		set[l] = struct{}{}
	}
	return s.collect(func(e *models.Emergency) bool {
		_, ok := set[e.FarmerLocation]
		return ok
	}, limit), nil
}

func (s *Store) DistinctFarmerLocations(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]struct{}{}
	out := []string{}
	for _, e := range s.emergencies {
		if e.FarmerLocation == "" {
			continue
		}
		if _, ok := seen[e.FarmerLocation]; ok {
			continue
		}
		seen[e.FarmerLocation] = struct{}{}
		out = append(out, e.FarmerLocation)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) ListDetailed(_ context.Context, f domain.Filter) ([]models.Emergency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(e *models.Emergency) bool {
		if f.From != nil && e.CreatedAt.Before(*f.From) {
			return false
		}
		if f.To != nil && e.CreatedAt.After(*f.To) {
			return false
		}
		if f.Status != "" && e.Status != string(f.Status) {
			return false
		}
		if f.Location != "" && !strings.EqualFold(e.FarmerLocation, f.Location) {
			return false
		}
		return true
	}, 0), nil
}

func (s *Store) UpdateStatus(_ context.Context, emergencyID string, from, to domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.emergencies[emergencyID]
	if !ok {
		return domain.ErrNotFound
	}
	if e.Status != string(from) {
		return domain.ErrStaleStatus
	}
	e.Status = string(to)
	e.UpdatedAt = s.now()
	return nil
}

func (s *Store) CountByLocation(_ context.Context, location string) ([]domain.LocationStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct{ location, status string }
	counts := map[key]int64{}
	for _, e := range s.emergencies {
		if location != "" && !strings.EqualFold(e.Location, location) {
			continue
		}
		counts[key{e.Location, e.Status}]++
	}

	rows := make([]domain.StatusCountRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, domain.StatusCountRow{Location: k.location, Status: k.status, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Location != rows[j].Location {
			return rows[i].Location < rows[j].Location
		}
		return rows[i].Status < rows[j].Status
	})
	return domain.GroupByLocation(rows), nil
}

func (s *Store) CountByMonth(_ context.Context, location string, loc *time.Location) ([]domain.MonthlyStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if loc == nil {
		loc = time.UTC
	}

	type key struct {
		year, month int
		status      string
	}
	counts := map[key]int64{}
	for _, e := range s.emergencies {
		if location != "" && !strings.EqualFold(e.Location, location) {
			continue
		}
		t := e.CreatedAt.In(loc)
		counts[key{t.Year(), int(t.Month()), e.Status}]++
	}

	rows := make([]domain.StatusCountRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, domain.StatusCountRow{Year: k.year, Month: k.month, Status: k.status, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Status < rows[j].Status })
	return domain.GroupByMonth(rows), nil
}

var _ domain.Repository = (*Store)(nil)
