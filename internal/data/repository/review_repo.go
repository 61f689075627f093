package repository

import (
	"context"
	"fmt"
	"time"

	"book-review/internal/data/entity"
	"book-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByBook(ctx context.Context, title, author string) ([]*entity.Review, error)
	FindByUsername(ctx context.Context, username string) ([]*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, book_id, rating, review_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.BookID,
		review.Rating,
		review.ReviewText,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("book_id", review.BookID.String()),
		)
		return fmt.Errorf("create review for book %s by user %s: %w",
			review.BookID.String(), review.UserID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, user_id, book_id, rating, review_text, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.UserID,
		&review.BookID,
		&review.Rating,
		&review.ReviewText,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return &review, nil
}

// FindByBook returns all reviews of the book matching (title, author).
func (r *reviewRepository) FindByBook(ctx context.Context, title, author string) ([]*entity.Review, error) {
	query := `
		SELECT r.id, r.user_id, r.book_id, r.rating, r.review_text, r.created_at, r.updated_at
		FROM reviews r
		JOIN books b ON b.id = r.book_id
		WHERE b.title = $1 AND b.author = $2
	`

	rows, err := r.db.Query(ctx, query, title, author)
	if err != nil {
		r.log.Error("Failed to find reviews by book",
			zap.Error(err),
			zap.String("title", title),
			zap.String("author", author),
		)
		return nil, fmt.Errorf("find reviews for book %q by %q: %w", title, author, err)
	}
	defer rows.Close()

	return scanReviews(rows, r.log)
}

// FindByUsername returns all reviews written by the named user.
func (r *reviewRepository) FindByUsername(ctx context.Context, username string) ([]*entity.Review, error) {
	query := `
		SELECT r.id, r.user_id, r.book_id, r.rating, r.review_text, r.created_at, r.updated_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE u.username = $1
	`

	rows, err := r.db.Query(ctx, query, username)
	if err != nil {
		r.log.Error("Failed to find reviews by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find reviews by user %s: %w", username, err)
	}
	defer rows.Close()

	return scanReviews(rows, r.log)
}

// Update rewrites rating and text and stamps updated_at. The filter carries
// the owner as well as the id, so a mutation can never outrun the workflow's
// ownership check.
func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET rating = $3, review_text = $4, updated_at = $5
		WHERE id = $1 AND user_id = $2
	`

	review.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.Rating,
		review.ReviewText,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found for user %s", review.ID.String(), review.UserID.String())
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found for user %s", id.String(), userID.String())
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

func scanReviews(rows pgx.Rows, log *zap.Logger) ([]*entity.Review, error) {
	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.BookID,
			&review.Rating,
			&review.ReviewText,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}
