// Package memory keeps every repository in process memory. It backs tests
// and DATABASE_DRIVER=memory.
package memory

import (
	"sync"
	"time"

	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users       map[string]*models.User
	animals     map[string]*models.Animal
	emergencies map[string]*models.Emergency
	auditLogs   []models.AuditLog
	auditSeq    uint
}

func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:         now,
		users:       map[string]*models.User{},
		animals:     map[string]*models.Animal{},
		emergencies: map[string]*models.Emergency{},
	}
}

func (s *Store) stamp(created, updated *time.Time) {
	now := s.now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}
