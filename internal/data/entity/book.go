package entity

import (
	"github.com/google/uuid"
)

// Book rows are created lazily on the first review of a title/author pair
// and never updated or deleted. OpenLibraryID is the catalog work id and is
// unique when present.
type Book struct {
	ID            uuid.UUID `db:"id"`
	OpenLibraryID *string   `db:"open_library_id"`
	Title         string    `db:"title"`
	Author        string    `db:"author"`
	CoverURL      *string   `db:"cover_url"`
}
