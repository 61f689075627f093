package middleware

import (
	"net/http"

	"book-review/internal/data/repository"
	"book-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthSession gates review-mutating routes behind the session cookie. The
// cookie value is the opaque session token; a live sessions row is the only
// proof of identity.
func AuthSession(sessionRepo repository.SessionRepository, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from the session cookie
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				utils.ResponseUnauthorized(w, "Unauthorized. Please log in.")
				return
			}

			token, err := uuid.Parse(cookie.Value)
			if err != nil {
				logger.Warn("Malformed session token in cookie")
				utils.ResponseUnauthorized(w, "Unauthorized. Please log in.")
				return
			}

			// Find valid session
			session, err := sessionRepo.FindValidSession(r.Context(), token.String())
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil {
				logger.Warn("Invalid or expired session")
				utils.ResponseUnauthorized(w, "Unauthorized. Please log in.")
				return
			}

			// Identity {user id, username} lives in the request context from
			// here to the response.
			ctx := utils.SetUserContext(r.Context(), session.UserID, session.Username)
			ctx = utils.SetTokenContext(ctx, token.String())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
