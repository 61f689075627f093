package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session records the authenticated identity {user id, username} behind an
// opaque cookie token.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Username  string     `db:"username"`
	Token     uuid.UUID  `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
