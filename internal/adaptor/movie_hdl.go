package adaptor

import (
	"errors"
	"net/http"
	"strconv"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/session"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	msgProviderUnavailable = "The movie database is unavailable, try again later."
	msgDuplicateMovie      = "That movie is already in the catalog."
	msgMovieNotFound       = "That movie does not exist."
)

type MovieHandler struct {
	service usecase.MovieService
	view    *Renderer
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, view *Renderer, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		view:    view,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// ListMovies handles GET /
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.ListMovies(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "list movies")
		return
	}

	h.view.Render(w, r, http.StatusOK, "index.html", Page{Data: movies})
}

// AddForm handles GET /add
func (h *MovieHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "add.html", Page{Title: "Add a movie"})
}

// Search handles POST /add
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.ResponseText(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	var req request.FindMovieRequest
	if errs := utils.ValidateForm(&req, r.PostForm); errs != nil {
		h.view.Render(w, r, http.StatusUnprocessableEntity, "add.html", Page{Title: "Add a movie", Errors: errs, Form: req})
		return
	}

	candidates, err := h.service.SearchProvider(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "search provider")
		return
	}

	h.view.Render(w, r, http.StatusOK, "add.html", Page{Title: "Add a movie", Form: req, Data: candidates})
}

// Select handles GET|POST /select?id=
func (h *MovieHandler) Select(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || providerID < 1 {
		h.view.Redirect(w, r, "/add", session.CategoryWarning, "Pick a movie from the search results.")
		return
	}

	user, ok := utils.GetUser(r.Context())
	if !ok {
		utils.ResponseRedirect(w, r, "/login")
		return
	}

	movie, err := h.service.AddFromProvider(r.Context(), providerID, user)
	if err != nil {
		h.handleServiceError(w, r, err, "add movie")
		return
	}

	h.view.Redirect(w, r, "/", session.CategorySuccess, movie.Title+" was added to the catalog.")
}

// GetMovie handles GET /movie/{id}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.view.NotFound(w, r, msgMovieNotFound)
		return
	}

	var viewerID int64
	if identity, ok := utils.GetIdentity(r.Context()); ok {
		viewerID = identity.IdentityID()
	}

	detail, err := h.service.GetMovie(r.Context(), movieID, viewerID)
	if err != nil {
		h.handleServiceError(w, r, err, "get movie")
		return
	}

	h.view.Render(w, r, http.StatusOK, "movie.html", Page{Title: detail.Title, Data: detail})
}

// DeleteMovie handles GET /delete/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.view.NotFound(w, r, msgMovieNotFound)
		return
	}

	if err := h.service.DeleteMovie(r.Context(), movieID); err != nil {
		h.handleServiceError(w, r, err, "delete movie")
		return
	}

	h.log.Info("Movie deleted", zap.Int64("movie_id", movieID))
	h.view.Redirect(w, r, "/", session.CategorySuccess, "Movie deleted.")
}

// handleServiceError handles errors for movie operations
func (h *MovieHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrMovieNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		h.view.NotFound(w, r, msgMovieNotFound)

	case errors.Is(err, usecase.ErrDuplicateMovie):
		h.log.Warn(operation+" failed - already exists", zap.Error(err))
		h.view.Redirect(w, r, "/", session.CategoryWarning, msgDuplicateMovie)

	case errors.Is(err, usecase.ErrProviderUnavailable):
		h.log.Warn(operation+" failed - provider unavailable", zap.Error(err))
		h.view.Redirect(w, r, "/add", session.CategoryWarning, msgProviderUnavailable)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w)
	}
}
