package repository

import (
	"context"
	"fmt"

	"book-review/internal/data/entity"
	"book-review/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	FindByOpenLibraryID(ctx context.Context, openLibraryID string) (*entity.Book, error)
	FindByTitleAuthor(ctx context.Context, title, author string) (*entity.Book, error)
}

type bookRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookRepository(db database.PgxIface, log *zap.Logger) BookRepository {
	return &bookRepository{
		db:  db,
		log: log.With(zap.String("repository", "book")),
	}
}

func (r *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	query := `
		INSERT INTO books (id, open_library_id, title, author, cover_url)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		book.ID,
		book.OpenLibraryID,
		book.Title,
		book.Author,
		book.CoverURL,
	)

	if err != nil {
		r.log.Error("Failed to create book",
			zap.Error(err),
			zap.String("title", book.Title),
			zap.String("author", book.Author),
		)
		return fmt.Errorf("create book %q by %q: %w", book.Title, book.Author, err)
	}

	return nil
}

func (r *bookRepository) FindByOpenLibraryID(ctx context.Context, openLibraryID string) (*entity.Book, error) {
	query := `
		SELECT id, open_library_id, title, author, cover_url
		FROM books
		WHERE open_library_id = $1
	`

	var book entity.Book
	err := r.db.QueryRow(ctx, query, openLibraryID).Scan(
		&book.ID,
		&book.OpenLibraryID,
		&book.Title,
		&book.Author,
		&book.CoverURL,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find book by open library ID",
			zap.Error(err),
			zap.String("open_library_id", openLibraryID),
		)
		return nil, fmt.Errorf("find book by open library ID %s: %w", openLibraryID, err)
	}

	return &book, nil
}

func (r *bookRepository) FindByTitleAuthor(ctx context.Context, title, author string) (*entity.Book, error) {
	query := `
		SELECT id, open_library_id, title, author, cover_url
		FROM books
		WHERE title = $1 AND author = $2
	`

	var book entity.Book
	err := r.db.QueryRow(ctx, query, title, author).Scan(
		&book.ID,
		&book.OpenLibraryID,
		&book.Title,
		&book.Author,
		&book.CoverURL,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find book by title and author",
			zap.Error(err),
			zap.String("title", title),
			zap.String("author", author),
		)
		return nil, fmt.Errorf("find book %q by %q: %w", title, author, err)
	}

	return &book, nil
}
