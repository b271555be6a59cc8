package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is an opaque bearer credential. Issuance lives outside this
// service; we only validate tokens and read the role.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     string     `db:"token"`
	Role      string     `db:"role"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
