package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

type memStore struct {
	mu   sync.Mutex
	rows []models.AuditLog
}

func (s *memStore) CreateAuditLog(_ context.Context, l *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, *l)
	return nil
}

func (s *memStore) ListAuditLogs(_ context.Context, _ Query) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AuditLog(nil), s.rows...), int64(len(s.rows)), nil
}

func TestDispatcher_WritesAndDrains(t *testing.T) {
	store := &memStore{}
	d := NewDispatcher(New(store), nil)

	d.Dispatch(Event{ActorID: "admin-1", Action: "user_status_changed", Entity: "user", EntityID: "u-1",
		Metadata: map[string]string{"status": "Active"}})
	d.Dispatch(Event{Action: "user_registered", Entity: "user", EntityID: "u-2"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows, total, _ := store.ListAuditLogs(context.Background(), Query{})
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	if rows[0].ActorID == nil || *rows[0].ActorID != "admin-1" {
		t.Errorf("actor = %v", rows[0].ActorID)
	}
	if string(rows[0].Metadata) != `{"status":"Active"}` {
		t.Errorf("metadata = %s", rows[0].Metadata)
	}
	if rows[1].ActorID != nil {
		t.Errorf("anonymous event has actor %v", *rows[1].ActorID)
	}
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "x"})
}
