package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseNoDelete
	UserID     uuid.UUID `db:"user_id"`
	BookID     uuid.UUID `db:"book_id"`
	Rating     int       `db:"rating"` // 1-5
	ReviewText string    `db:"review_text"`
}
