package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken adalah satu-satunya refresh token aktif per user.
// user_id punya unique constraint, jadi rotasi dilakukan lewat upsert.
type RefreshToken struct {
	BaseSimple
	Token     string    `db:"token"`
	UserID    uuid.UUID `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
}
