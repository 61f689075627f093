package wire

import (
	"book-review/internal/adaptor"
	"book-review/internal/data/repository"
	"book-review/pkg/middleware"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// POST /register - create an account (public)
	r.Post("/register", authHandler.Register)

	// POST /login - email-only login, sets the session cookie (public)
	r.Post("/login", authHandler.Login)

	// POST /logout - revoke the session and clear the cookie
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, config.Session.CookieName, log))

		r.Post("/logout", authHandler.Logout)
	})
}
