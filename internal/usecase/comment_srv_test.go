package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestCommentService_PostComment(t *testing.T) {
	repo, m := newRepo()
	svc := usecase.NewCommentService(repo, nopLogger())
	ctx := context.Background()
	author := &entity.User{Base: entity.Base{ID: 2}}

	m.movie.On("FindByID", ctx, int64(1)).Return(&entity.Movie{Base: entity.Base{ID: 1}}, nil).Once()
	m.comment.On("FindByUserAndMovie", ctx, int64(2), int64(1)).Return(nil, nil).Once()
	m.comment.On("Create", ctx, mock.MatchedBy(func(c *entity.Comment) bool {
		return c.Text == "<p>good</p>" && *c.Rating == 8 && c.AuthorID == 2 && c.MovieID == 1
	})).Return(nil).Once()

	comment, err := svc.PostComment(ctx, 1, author, &request.CommentRequest{
		Text:   `<p>good</p><script>alert(1)</script>`,
		Rating: intPtr(8),
	})

	require.NoError(t, err)
	assert.Equal(t, "<p>good</p>", comment.Text)
	m.assertExpectations(t)
}

func TestCommentService_PostComment_SecondCommentRejected(t *testing.T) {
	repo, m := newRepo()
	svc := usecase.NewCommentService(repo, nopLogger())
	ctx := context.Background()
	author := &entity.User{Base: entity.Base{ID: 2}}

	m.movie.On("FindByID", ctx, int64(1)).Return(&entity.Movie{Base: entity.Base{ID: 1}}, nil).Once()
	m.comment.On("FindByUserAndMovie", ctx, int64(2), int64(1)).
		Return(&entity.Comment{Base: entity.Base{ID: 4}}, nil).Once()

	_, err := svc.PostComment(ctx, 1, author, &request.CommentRequest{Text: "again", Rating: intPtr(1)})

	assert.ErrorIs(t, err, usecase.ErrAlreadyCommented)
	m.comment.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentService_PostComment_ConstraintViolation(t *testing.T) {
	repo, m := newRepo()
	svc := usecase.NewCommentService(repo, nopLogger())
	ctx := context.Background()

	m.movie.On("FindByID", ctx, int64(1)).Return(&entity.Movie{Base: entity.Base{ID: 1}}, nil).Once()
	m.comment.On("FindByUserAndMovie", ctx, int64(2), int64(1)).Return(nil, nil).Once()
	m.comment.On("Create", ctx, mock.AnythingOfType("*entity.Comment")).
		Return(fmt.Errorf("create comment: %w", repository.ErrDuplicateEntry)).Once()

	_, err := svc.PostComment(ctx, 1, &entity.User{Base: entity.Base{ID: 2}}, &request.CommentRequest{Text: "x", Rating: intPtr(5)})

	assert.ErrorIs(t, err, usecase.ErrAlreadyCommented)
}

func TestCommentService_PostComment_EmptyAfterSanitize(t *testing.T) {
	repo, m := newRepo()
	svc := usecase.NewCommentService(repo, nopLogger())
	ctx := context.Background()

	m.movie.On("FindByID", ctx, int64(1)).Return(&entity.Movie{Base: entity.Base{ID: 1}}, nil).Once()
	m.comment.On("FindByUserAndMovie", ctx, int64(2), int64(1)).Return(nil, nil).Once()

	_, err := svc.PostComment(ctx, 1, &entity.User{Base: entity.Base{ID: 2}}, &request.CommentRequest{
		Text:   "<script>alert(1)</script>",
		Rating: intPtr(5),
	})

	assert.ErrorIs(t, err, usecase.ErrEmptyComment)
}

func TestCommentService_PostComment_MovieMissing(t *testing.T) {
	repo, m := newRepo()
	svc := usecase.NewCommentService(repo, nopLogger())
	ctx := context.Background()

	m.movie.On("FindByID", ctx, int64(9)).Return(nil, nil).Once()

	_, err := svc.PostComment(ctx, 9, &entity.User{Base: entity.Base{ID: 2}}, &request.CommentRequest{Text: "x", Rating: intPtr(5)})

	assert.ErrorIs(t, err, usecase.ErrMovieNotFound)
}

func TestCommentService_DeleteComment(t *testing.T) {
	author := &entity.User{Base: entity.Base{ID: 2}}
	other := &entity.User{Base: entity.Base{ID: 3}}
	stored := &entity.Comment{Base: entity.Base{ID: 4}, AuthorID: 2, MovieID: 1}

	t.Run("author deletes", func(t *testing.T) {
		repo, m := newRepo()
		svc := usecase.NewCommentService(repo, nopLogger())
		ctx := context.Background()

		m.comment.On("FindByID", ctx, int64(4)).Return(stored, nil).Once()
		m.comment.On("Delete", ctx, int64(4)).Return(nil).Once()

		deleted, err := svc.DeleteComment(ctx, 4, author)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted.MovieID)
		m.assertExpectations(t)
	})

	t.Run("someone else is refused", func(t *testing.T) {
		repo, m := newRepo()
		svc := usecase.NewCommentService(repo, nopLogger())
		ctx := context.Background()

		m.comment.On("FindByID", ctx, int64(4)).Return(stored, nil).Once()

		_, err := svc.DeleteComment(ctx, 4, other)
		assert.ErrorIs(t, err, usecase.ErrForbidden)
		m.comment.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing comment", func(t *testing.T) {
		repo, m := newRepo()
		svc := usecase.NewCommentService(repo, nopLogger())
		ctx := context.Background()

		m.comment.On("FindByID", ctx, int64(5)).Return(nil, nil).Once()

		_, err := svc.DeleteComment(ctx, 5, author)
		assert.ErrorIs(t, err, usecase.ErrCommentNotFound)
	})
}
