package wire

import (
	"book-review/internal/adaptor"
	"book-review/internal/data/repository"
	"book-review/pkg/middleware"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /reviews/book - all reviews for one book
	r.Post("/reviews/book", reviewHandler.GetBookReviews)

	// POST /reviews/user - all reviews by one user
	r.Post("/reviews/user", reviewHandler.GetUserReviews)

	// ==================== PROTECTED ROUTES (require session) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, config.Session.CookieName, log))

		// POST /review - create review, resolving the book lazily
		r.Post("/review", reviewHandler.CreateReview)

		// PUT /review - update own review
		r.Put("/review", reviewHandler.UpdateReview)

		// DELETE /review - delete own review
		r.Delete("/review", reviewHandler.DeleteReview)
	})
}
