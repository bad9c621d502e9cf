package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	limiter *middleware.RateLimiter,
) {
	r.Get("/signup", authHandler.SignUpForm)
	r.With(limiter.Limit).Post("/signup", authHandler.SignUp)

	r.Get("/login", authHandler.LoginForm)
	r.With(limiter.Limit).Post("/login", authHandler.Login)

	r.Get("/logout", authHandler.Logout)
}
