package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type CommentService interface {
	PostComment(ctx context.Context, movieID int64, author entity.Identity, req *request.CommentRequest) (*entity.Comment, error)
	// DeleteComment removes a comment written by author and returns it.
	DeleteComment(ctx context.Context, commentID int64, author entity.Identity) (*entity.Comment, error)
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) PostComment(ctx context.Context, movieID int64, author entity.Identity, req *request.CommentRequest) (*entity.Comment, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie %d: %w", movieID, err)
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	authorID := author.IdentityID()

	// The unique (author, movie) constraint catches requests that race past this check.
	existing, err := s.repo.Comment.FindByUserAndMovie(ctx, authorID, movieID)
	if err != nil {
		s.log.Error("Failed to check existing comment", zap.Error(err))
		return nil, fmt.Errorf("check existing comment: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyCommented
	}

	text := utils.SanitizeHTML(req.Text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	comment := &entity.Comment{
		Base:     entity.Base{CreatedAt: time.Now()},
		Text:     text,
		Rating:   req.Rating,
		AuthorID: authorID,
		MovieID:  movieID,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEntry):
			return nil, ErrAlreadyCommented
		case errors.Is(err, repository.ErrForeignKey):
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("post comment: %w", err)
	}

	s.log.Info("Comment posted",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("movie_id", movieID),
		zap.Int64("user_id", authorID),
	)

	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID int64, author entity.Identity) (*entity.Comment, error) {
	comment, err := s.repo.Comment.FindByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("find comment %d: %w", commentID, err)
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	if comment.AuthorID != author.IdentityID() {
		s.log.Warn("Comment delete by non-author",
			zap.Int64("comment_id", commentID),
			zap.Int64("user_id", author.IdentityID()),
		)
		return nil, ErrForbidden
	}

	if err := s.repo.Comment.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("delete comment: %w", err)
	}

	s.log.Info("Comment deleted", zap.Int64("comment_id", commentID))
	return comment, nil
}
