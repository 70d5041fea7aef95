package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ActorID  *string        `gorm:"size:36;index" json:"actor_id"`
	Action   string         `gorm:"size:50;not null;index" json:"action"`
	Entity   string         `gorm:"size:50" json:"entity"`
	EntityID string         `gorm:"size:64" json:"entity_id"`
	Metadata datatypes.JSON `gorm:"type:jsonb" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
