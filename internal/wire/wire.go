package wire

import (
	"context"
	"net/http"
	"time"

	"movie-catalog/internal/adaptor"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/session"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the wired dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router.
func Wiring(
	db Pinger,
	repo *repository.Repository,
	provider usecase.MovieProvider,
	config *utils.Config,
	logger *zap.Logger,
) (*App, error) {
	service := usecase.NewService(repo, provider, config, logger)
	sessions := session.NewManager(config.App.SecretKey, config.Session)

	handler, err := adaptor.NewHandler(service, sessions, logger)
	if err != nil {
		return nil, err
	}

	router := setupRouter(db, handler, service, sessions, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}, nil
}

// setupRouter configures the chi router
func setupRouter(
	db Pinger,
	handler *adaptor.Handler,
	service *usecase.Service,
	sessions *session.Manager,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseText(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		utils.ResponseText(w, http.StatusOK, "OK")
	})

	r.Group(func(r chi.Router) {
		if config.App.CSRFEnabled {
			r.Use(middleware.CSRF(config.App.SecretKey, config.Session.Secure, logger))
		}
		r.Use(middleware.LoadIdentity(sessions, service.Auth, logger))

		limiter := middleware.NewRateLimiter(config.RateLimit, logger)
		requireAuth := middleware.RequireAuth(sessions, logger)

		wireAuth(r, handler.Auth, limiter)
		wireMovie(r, handler.Movie, requireAuth)
		wireComment(r, handler.Comment, requireAuth)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			handler.View.NotFound(w, r, "")
		})
	})

	return r
}
