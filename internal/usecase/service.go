package usecase

import (
	"context"

	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/tmdb"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

// MovieProvider is the external metadata source new catalog entries come from.
type MovieProvider interface {
	Search(ctx context.Context, query string) ([]tmdb.SearchResult, error)
	Movie(ctx context.Context, id int) (*tmdb.MovieDetail, error)
	PosterURL(path string) string
}

type Service struct {
	Auth    AuthService
	Movie   MovieService
	Comment CommentService
}

func NewService(repo *repository.Repository, provider MovieProvider, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Movie:   NewMovieService(repo, provider, log),
		Comment: NewCommentService(repo, log),
	}
}
