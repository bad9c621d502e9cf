package adaptor

import (
	"errors"
	"fmt"
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/session"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	msgAlreadyCommented = "You already commented on this movie."
	msgCommentNotFound  = "That comment does not exist."
)

type CommentHandler struct {
	service usecase.CommentService
	movies  usecase.MovieService
	view    *Renderer
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, movies usecase.MovieService, view *Renderer, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		movies:  movies,
		view:    view,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// PostComment handles POST /movie/{id}
func (h *CommentHandler) PostComment(w http.ResponseWriter, r *http.Request) {
	movieID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.view.NotFound(w, r, msgMovieNotFound)
		return
	}

	user, ok := utils.GetUser(r.Context())
	if !ok {
		utils.ResponseRedirect(w, r, "/login")
		return
	}

	if err := r.ParseForm(); err != nil {
		utils.ResponseText(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	var req request.CommentRequest
	if errs := utils.ValidateForm(&req, r.PostForm); errs != nil {
		h.renderInvalid(w, r, movieID, user.ID, req, errs)
		return
	}

	_, err = h.service.PostComment(r.Context(), movieID, user, &req)
	if errors.Is(err, usecase.ErrEmptyComment) {
		h.renderInvalid(w, r, movieID, user.ID, req, map[string]string{"text": "This field is required"})
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err, "post comment", movieID)
		return
	}

	h.view.Redirect(w, r, fmt.Sprintf("/movie/%d", movieID), session.CategorySuccess, "Comment posted.")
}

// DeleteComment handles GET /delete_comment/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.view.NotFound(w, r, msgCommentNotFound)
		return
	}

	identity, ok := utils.GetIdentity(r.Context())
	if !ok {
		utils.ResponseRedirect(w, r, "/login")
		return
	}

	if _, err := h.service.DeleteComment(r.Context(), commentID, identity); err != nil {
		h.handleServiceError(w, r, err, "delete comment", 0)
		return
	}

	h.view.Redirect(w, r, "/", session.CategorySuccess, "Comment deleted.")
}

// renderInvalid re-renders the movie page with the rejected comment form.
func (h *CommentHandler) renderInvalid(w http.ResponseWriter, r *http.Request, movieID, viewerID int64, req request.CommentRequest, errs map[string]string) {
	detail, err := h.movies.GetMovie(r.Context(), movieID, viewerID)
	if err != nil {
		h.handleServiceError(w, r, err, "post comment", movieID)
		return
	}

	h.view.Render(w, r, http.StatusUnprocessableEntity, "movie.html", Page{
		Title:  detail.Title,
		Errors: errs,
		Form:   req,
		Data:   detail,
	})
}

// handleServiceError handles errors for comment operations
func (h *CommentHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string, movieID int64) {
	switch {
	case errors.Is(err, usecase.ErrMovieNotFound):
		h.log.Warn(operation+" failed - movie not found", zap.Error(err))
		h.view.NotFound(w, r, msgMovieNotFound)

	case errors.Is(err, usecase.ErrCommentNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		h.view.NotFound(w, r, msgCommentNotFound)

	case errors.Is(err, usecase.ErrAlreadyCommented):
		h.log.Warn(operation+" failed - duplicate", zap.Error(err), zap.Int64("movie_id", movieID))
		h.view.Redirect(w, r, fmt.Sprintf("/movie/%d", movieID), session.CategoryWarning, msgAlreadyCommented)

	case errors.Is(err, usecase.ErrForbidden):
		h.log.Warn(operation+" failed - forbidden", zap.Error(err))
		h.view.Redirect(w, r, "/", session.CategoryDanger, "You can only delete your own comments.")

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w)
	}
}
