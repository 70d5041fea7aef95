package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/animal"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

func copyAnimal(a *models.Animal) *models.Animal {
	cp := *a
	if a.ApproxDOB != nil {
		dob := *a.ApproxDOB
		cp.ApproxDOB = &dob
	}
	if a.AgeMonths != nil {
		age := *a.AgeMonths
		cp.AgeMonths = &age
	}
	cp.Owner = nil
	return &cp
}

func (s *Store) CreateAnimal(_ context.Context, a *models.Animal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.AnimalID == "" {
		a.AnimalID = uuid.NewString()
	}
	if _, ok := s.animals[a.AnimalID]; ok {
		return domain.ErrExists
	}
	s.stamp(&a.CreatedAt, &a.UpdatedAt)
	s.animals[a.AnimalID] = copyAnimal(a)
	return nil
}

func (s *Store) GetAnimal(_ context.Context, animalID string) (*models.Animal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.animals[animalID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyAnimal(a), nil
}

func (s *Store) ListByOwner(_ context.Context, ownerID string, limit int) ([]models.Animal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Animal{}
	for _, a := range s.animals {
		if a.OwnerID == ownerID {
			out = append(out, *copyAnimal(a))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) UpdateAnimal(_ context.Context, a *models.Animal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.animals[a.AnimalID]; !ok {
		return domain.ErrNotFound
	}
	s.stamp(&a.CreatedAt, &a.UpdatedAt)
	s.animals[a.AnimalID] = copyAnimal(a)
	return nil
}

func (s *Store) DeleteAnimal(_ context.Context, animalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.animals[animalID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.animals, animalID)
	return nil
}

var _ domain.Repository = (*Store)(nil)
