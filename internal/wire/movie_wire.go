package wire

import (
	"net/http"

	"movie-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	requireAuth func(http.Handler) http.Handler,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/", movieHandler.ListMovies)
	r.Get("/movie/{id}", movieHandler.GetMovie)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/add", movieHandler.AddForm)
		r.Post("/add", movieHandler.Search)
		r.Get("/select", movieHandler.Select)
		r.Post("/select", movieHandler.Select)
		r.Get("/delete/{id}", movieHandler.DeleteMovie)
	})
}
