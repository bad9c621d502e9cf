package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/data/repository/mocks"
	"movie-catalog/internal/tmdb"
	"movie-catalog/pkg/utils"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type repoMocks struct {
	user    *mocks.UserRepository
	session *mocks.SessionRepository
	movie   *mocks.MovieRepository
	comment *mocks.CommentRepository
}

func newRepo() (*repository.Repository, *repoMocks) {
	m := &repoMocks{
		user:    new(mocks.UserRepository),
		session: new(mocks.SessionRepository),
		movie:   new(mocks.MovieRepository),
		comment: new(mocks.CommentRepository),
	}
	return &repository.Repository{
		User:    m.user,
		Session: m.session,
		Movie:   m.movie,
		Comment: m.comment,
	}, m
}

func (m *repoMocks) assertExpectations(t *testing.T) {
	m.user.AssertExpectations(t)
	m.session.AssertExpectations(t)
	m.movie.AssertExpectations(t)
	m.comment.AssertExpectations(t)
}

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{CookieName: "test", ExpiryHours: 1},
	}
}

type fakeProvider struct {
	results []tmdb.SearchResult
	details map[int]*tmdb.MovieDetail
	err     error
}

func (p *fakeProvider) Search(ctx context.Context, query string) ([]tmdb.SearchResult, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.results, nil
}

func (p *fakeProvider) Movie(ctx context.Context, id int) (*tmdb.MovieDetail, error) {
	if p.err != nil {
		return nil, p.err
	}
	detail, ok := p.details[id]
	if !ok {
		return nil, tmdb.ErrNotFound
	}
	return detail, nil
}

func (p *fakeProvider) PosterURL(path string) string {
	if path == "" {
		return ""
	}
	return "https://img.example" + path
}

var errDB = errors.New("connection refused")

func anyCtx() any {
	return mock.Anything
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	return hash
}

func validSession(userID int64) *entity.Session {
	return &entity.Session{UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}
}
