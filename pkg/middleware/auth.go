package middleware

import (
	"context"
	"net/http"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/session"
	"movie-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authenticator resolves a session token to a user; (nil, nil) means the
// token is no longer valid.
type Authenticator interface {
	Authenticate(ctx context.Context, token uuid.UUID) (*entity.User, error)
}

// LoadIdentity puts the logged in user, if any, into the request context.
// Requests without a valid session continue anonymously.
func LoadIdentity(sessions *session.Manager, auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := sessions.Token(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if user == nil {
				logger.Debug("Invalid or expired session")
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetIdentity(r.Context(), user)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth sends anonymous visitors to the login page.
func RequireAuth(sessions *session.Manager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetIdentity(r.Context()); !ok {
				logger.Debug("Anonymous access to protected page",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				if err := sessions.AddFlash(w, r, session.CategoryInfo, "Please log in to access this page."); err != nil {
					logger.Warn("Failed to save flash", zap.Error(err))
				}
				utils.ResponseRedirect(w, r, "/login")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
