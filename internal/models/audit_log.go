package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    *uuid.UUID `json:"user_id" db:"user_id"`
	UserEmail *string    `json:"user_email" db:"user_email"`
	Action    string     `json:"action" db:"action"`
	Entity    string     `json:"entity" db:"entity"`
	EntityID  *int       `json:"entity_id" db:"entity_id"`
	Details   []byte     `json:"details" db:"details"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
