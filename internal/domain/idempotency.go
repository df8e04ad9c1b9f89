package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Idempotency records the outcome of a completed activity turn, keyed by
// (session_id, route, key). A retried request carrying the same key replays
// Response instead of advancing the activity a second time.
type Idempotency struct {
	ID        string         `gorm:"type:char(36);primaryKey"`
	SessionID string         `gorm:"type:varchar(128);not null;uniqueIndex:ux_session_route_key,priority:1"`
	Route     string         `gorm:"type:varchar(128);not null;uniqueIndex:ux_session_route_key,priority:2"`
	Key       string         `gorm:"type:varchar(200);not null;uniqueIndex:ux_session_route_key,priority:3"`
	Status    int            `gorm:"not null"`
	Response  datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime"`
	ExpiresAt time.Time      `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
