package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userConflict(u.Email, u.PhoneNumber, "") {
		return domain.ErrExists
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.stamp(&u.CreatedAt, &u.UpdatedAt)

	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) userConflict(email, phone, exceptID string) bool {
	for id, u := range s.users {
		if id == exceptID {
			continue
		}
		if u.Email == email || u.PhoneNumber == phone {
			return true
		}
	}
	return false
}

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) FindByLoginID(_ context.Context, loginID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email := strings.ToLower(loginID)
	var found *models.User
	for _, u := range s.users {
		if u.Email != email && u.PhoneNumber != loginID && u.UserName != loginID {
			continue
		}
		if found == nil || u.CreatedAt.Before(found.CreatedAt) {
			found = u
		}
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	cp := *found
	return &cp, nil
}

func (s *Store) ExistsByEmailOrPhone(_ context.Context, email, phone, exceptID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userConflict(email, phone, exceptID), nil
}

func (s *Store) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	if s.userConflict(u.Email, u.PhoneNumber, u.ID) {
		return domain.ErrExists
	}
	s.stamp(&u.CreatedAt, &u.UpdatedAt)

	cp := *u
	s.users[u.ID] = &cp
	return nil
}

// DeleteUser cascades to the user's animals, like the postgres foreign key.
func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.users, id)
	for aid, a := range s.animals {
		if a.OwnerID == id {
			delete(s.animals, aid)
		}
	}
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) ListVeterinarians(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.User{}
	for _, u := range s.users {
		if u.Role == string(domain.RoleVeterinarian) {
			out = append(out, *u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

var _ domain.Repository = (*Store)(nil)
