package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/tmdb"

	"go.uber.org/zap"
)

type MovieService interface {
	ListMovies(ctx context.Context) ([]response.MovieResponse, error)
	// GetMovie returns the movie with its comments as seen by viewerID (0
	// when nobody is logged in).
	GetMovie(ctx context.Context, movieID, viewerID int64) (*response.MovieDetailResponse, error)
	SearchProvider(ctx context.Context, req *request.FindMovieRequest) ([]response.CandidateResponse, error)
	AddFromProvider(ctx context.Context, providerID int, contributor entity.Identity) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID int64) error
}

type movieService struct {
	repo     *repository.Repository
	provider MovieProvider
	log      *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	provider MovieProvider,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:     repo,
		provider: provider,
		log:      log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) ListMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetMovie(ctx context.Context, movieID, viewerID int64) (*response.MovieDetailResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	comments, err := s.repo.Comment.FindByMovieID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get comments of movie %d: %w", movieID, err)
	}
	movie.AverageRating = entity.AverageRating(comments)

	detail := response.MovieToDetailResponse(movie, comments, viewerID)
	return &detail, nil
}

func (s *movieService) SearchProvider(ctx context.Context, req *request.FindMovieRequest) ([]response.CandidateResponse, error) {
	results, err := s.provider.Search(ctx, req.Name)
	if err != nil {
		s.log.Warn("Provider search failed", zap.Error(err), zap.String("query", req.Name))
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	candidates := make([]response.CandidateResponse, 0, len(results))
	for _, r := range results {
		candidates = append(candidates, response.CandidateResponse{
			ProviderID: r.ID,
			Title:      r.Title,
			Year:       r.Year(),
			Overview:   r.Overview,
			PosterURL:  s.provider.PosterURL(r.PosterPath),
		})
	}

	return candidates, nil
}

// AddFromProvider fetches the provider record and stores it as a new catalog
// entry contributed by the given identity.
func (s *movieService) AddFromProvider(ctx context.Context, providerID int, contributor entity.Identity) (*response.MovieResponse, error) {
	detail, err := s.provider.Movie(ctx, providerID)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		s.log.Warn("Provider lookup failed", zap.Error(err), zap.Int("provider_id", providerID))
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	movie := &entity.Movie{
		Base:        entity.Base{CreatedAt: time.Now()},
		Title:       detail.Title,
		Year:        detail.Year(),
		ImgURL:      s.provider.PosterURL(detail.PosterPath),
		Description: detail.Overview,
		AuthorID:    contributor.IdentityID(),
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrDuplicateMovie
		}
		return nil, fmt.Errorf("add movie: %w", err)
	}

	s.log.Info("Movie added",
		zap.Int64("movie_id", movie.ID),
		zap.Int("provider_id", providerID),
		zap.Int64("user_id", movie.AuthorID),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID int64) error {
	comments, err := s.repo.Comment.CountByMovieID(ctx, movieID)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	if err := s.repo.Movie.Delete(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMovieNotFound
		}
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie removed from catalog",
		zap.Int64("movie_id", movieID),
		zap.Int64("comments_removed", comments),
	)
	return nil
}
