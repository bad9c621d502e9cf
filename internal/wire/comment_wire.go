package wire

import (
	"net/http"

	"movie-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	requireAuth func(http.Handler) http.Handler,
) {
	r.With(requireAuth).Post("/movie/{id}", commentHandler.PostComment)
	r.With(requireAuth).Get("/delete_comment/{id}", commentHandler.DeleteComment)
}
