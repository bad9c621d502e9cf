package adaptor

import (
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/session"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Movie   *MovieHandler
	Comment *CommentHandler
	View    *Renderer
}

func NewHandler(service *usecase.Service, sessions *session.Manager, log *zap.Logger) (*Handler, error) {
	view, err := NewRenderer(sessions, log)
	if err != nil {
		return nil, err
	}

	return &Handler{
		Auth:    NewAuthHandler(service.Auth, sessions, view, log),
		Movie:   NewMovieHandler(service.Movie, view, log),
		Comment: NewCommentHandler(service.Comment, service.Movie, view, log),
		View:    view,
	}, nil
}
