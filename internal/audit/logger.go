package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

type Query struct {
	Action  string
	Entity  string
	ActorID string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// Store persists audit rows. The gorm and memory repositories implement it.
type Store interface {
	CreateAuditLog(ctx context.Context, l *models.AuditLog) error
	ListAuditLogs(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var meta datatypes.JSON
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			meta = datatypes.JSON(b)
		}
	}

	row := models.AuditLog{
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: meta,
	}
	if ev.ActorID != "" {
		actor := ev.ActorID
		row.ActorID = &actor
	}

	return l.store.CreateAuditLog(ctx, &row)
}

func (l *Logger) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	return l.store.ListAuditLogs(ctx, q)
}
