package usecase

import (
	"context"
	"fmt"
	"time"

	"book-review/internal/apperror"
	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/internal/dto/request"
	"book-review/internal/dto/response"
	"book-review/internal/openlibrary"
	"book-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookCatalog resolves a free-text (title, author) pair to canonical book
// metadata. Satisfied by *openlibrary.Client.
type BookCatalog interface {
	Lookup(ctx context.Context, title, author string) (*openlibrary.Book, error)
}

type ReviewService interface {
	GetBookReviews(ctx context.Context, req *request.BookReviewsRequest) ([]response.ReviewResponse, error)
	GetUserReviews(ctx context.Context, req *request.UserReviewsRequest) ([]response.ReviewResponse, error)
	CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, userID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, userID uuid.UUID, reviewID string) error
}

type reviewService struct {
	repo    *repository.Repository
	catalog BookCatalog
	log     *zap.Logger
}

func NewReviewService(repo *repository.Repository, catalog BookCatalog, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:    repo,
		catalog: catalog,
		log:     log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) GetBookReviews(ctx context.Context, req *request.BookReviewsRequest) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByBook(ctx, req.Title, req.Author)
	if err != nil {
		s.log.Error("Failed to get book reviews",
			zap.Error(err),
			zap.String("title", req.Title),
			zap.String("author", req.Author),
		)
		return nil, fmt.Errorf("get book reviews: %w", err)
	}

	if len(reviews) == 0 {
		return nil, apperror.NotFoundMsg("Author and/or book not found.")
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, req *request.UserReviewsRequest) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to get user reviews",
			zap.Error(err),
			zap.String("username", req.Username),
		)
		return nil, fmt.Errorf("get user reviews: %w", err)
	}

	if len(reviews) == 0 {
		return nil, apperror.NotFoundMsg("No reviews from this user yet.")
	}

	return response.ReviewsToResponse(reviews), nil
}

// CreateReview resolves the book (existing row, or catalog lookup and lazy
// create) and then inserts the review. A catalog miss aborts the whole
// workflow with nothing created.
func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	bookID, err := s.resolveBook(ctx, req.Title, req.Author)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	review := &entity.Review{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:     userID,
		BookID:     bookID,
		Rating:     req.Rating,
		ReviewText: req.Content,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("book_id", bookID.String()),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("book_id", bookID.String()),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	// Rating, new text and review id must all be present before any lookup.
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, apperror.ValidationFailed("", "Review ID, new rating, and new review content are required.")
	}

	reviewUUID, err := uuid.Parse(req.ReviewID)
	if err != nil {
		return nil, apperror.ValidationFailed("review_id", "Must be a valid UUID")
	}

	review, err := s.checkReviewOwnership(ctx, reviewUUID, userID)
	if err != nil {
		return nil, err
	}

	review.Rating = req.NewRating
	review.ReviewText = req.NewReview

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", req.ReviewID),
		)
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated",
		zap.String("review_id", req.ReviewID),
		zap.String("user_id", userID.String()),
		zap.Int("rating", req.NewRating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, userID uuid.UUID, reviewID string) error {
	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return apperror.NotFoundMsg("Review not found.")
	}

	review, err := s.checkReviewOwnership(ctx, reviewUUID, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, review.ID, userID); err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID.String()),
	)

	return nil
}

// ==================== HELPER METHODS ====================

// resolveBook implements the dedup-or-create workflow: local (title, author)
// match first, then the catalog, then a re-check by the resolved external id
// before inserting. The re-check narrows but does not close the window where
// two concurrent requests resolve the same catalog entry.
func (s *reviewService) resolveBook(ctx context.Context, title, author string) (uuid.UUID, error) {
	// 1. Known book?
	book, err := s.repo.Book.FindByTitleAuthor(ctx, title, author)
	if err != nil {
		s.log.Error("Failed to check existing book", zap.Error(err))
		return uuid.Nil, fmt.Errorf("check existing book: %w", err)
	}
	if book != nil {
		return book.ID, nil
	}

	// 2. Ask the catalog. A miss aborts review creation entirely.
	catalogBook, err := s.catalog.Lookup(ctx, title, author)
	if err != nil {
		s.log.Warn("Catalog lookup failed",
			zap.Error(err),
			zap.String("title", title),
			zap.String("author", author),
		)
		return uuid.Nil, fmt.Errorf("resolve book: %w", err)
	}

	// 3. Re-check by the canonical id: another request may have created the
	// row while the catalog call was in flight.
	book, err = s.repo.Book.FindByOpenLibraryID(ctx, catalogBook.OpenLibraryID)
	if err != nil {
		s.log.Error("Failed to re-check book by open library ID", zap.Error(err))
		return uuid.Nil, fmt.Errorf("re-check book: %w", err)
	}
	if book != nil {
		return book.ID, nil
	}

	// 4. Create from the canonical fields.
	book = &entity.Book{
		ID:            utils.GenerateUUID(),
		OpenLibraryID: &catalogBook.OpenLibraryID,
		Title:         catalogBook.Title,
		Author:        catalogBook.Author,
		CoverURL:      catalogBook.CoverURL,
	}

	if err := s.repo.Book.Create(ctx, book); err != nil {
		s.log.Error("Failed to create book",
			zap.Error(err),
			zap.String("open_library_id", catalogBook.OpenLibraryID),
		)
		return uuid.Nil, fmt.Errorf("create book: %w", err)
	}

	s.log.Info("Book created",
		zap.String("book_id", book.ID.String()),
		zap.String("open_library_id", catalogBook.OpenLibraryID),
		zap.String("title", book.Title),
	)

	return book.ID, nil
}

// checkReviewOwnership fetches the review and verifies the requester owns
// it. Not found and not owner are distinct failures (404 vs 403).
func (s *reviewService) checkReviewOwnership(ctx context.Context, reviewID, userID uuid.UUID) (*entity.Review, error) {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		s.log.Error("Failed to fetch review for ownership check",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
		)
		return nil, fmt.Errorf("fetch review: %w", err)
	}
	if review == nil {
		return nil, apperror.NotFoundMsg("Review not found.")
	}

	if review.UserID != userID {
		s.log.Warn("Review mutation by non-owner",
			zap.String("review_id", reviewID.String()),
			zap.String("owner_id", review.UserID.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, apperror.Forbidden("Forbidden: You do not own this review.")
	}

	return review, nil
}
