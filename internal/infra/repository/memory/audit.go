package memory

import (
	"context"
	"sort"

	"github.com/R0UTS/Animal-Hospitalty/internal/audit"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

func (s *Store) CreateAuditLog(_ context.Context, l *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.auditSeq++
	l.ID = s.auditSeq
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.now()
	}
	s.auditLogs = append(s.auditLogs, *l)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.AuditLog{}
	for _, l := range s.auditLogs {
		if q.Action != "" && l.Action != q.Action {
			continue
		}
		if q.Entity != "" && l.Entity != q.Entity {
			continue
		}
		if q.ActorID != "" && (l.ActorID == nil || *l.ActorID != q.ActorID) {
			continue
		}
		if q.From != nil && l.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && !l.CreatedAt.Before(*q.To) {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	total := int64(len(out))
	if q.Offset >= len(out) {
		return []models.AuditLog{}, total, nil
	}
	out = out[q.Offset:]
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, total, nil
}

var _ audit.Store = (*Store)(nil)

func (s *Store) Ping(context.Context) error { return nil }
