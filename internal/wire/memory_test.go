package wire

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the database, enforcing the same
// unique and foreign key constraints as the schema.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]*entity.User
	sessions map[uuid.UUID]*entity.Session
	movies   map[int64]*entity.Movie
	comments map[int64]*entity.Comment
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]*entity.User{},
		sessions: map[uuid.UUID]*entity.Session{},
		movies:   map[int64]*entity.Movie{},
		comments: map[int64]*entity.Comment{},
	}
}

func (s *memStore) Ping(ctx context.Context) error { return nil }

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:    memUsers{s},
		Session: memSessions{s},
		Movie:   memMovies{s},
		Comment: memComments{s},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func duplicate(constraint string) error {
	return fmt.Errorf("%w: %s", repository.ErrDuplicateEntry, constraint)
}

type memUsers struct{ *memStore }

func (s memUsers) Create(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return duplicate("users_email_key")
		}
	}
	user.ID = s.id()
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s memUsers) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s memUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s memUsers) CountAll(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

type memSessions struct{ *memStore }

func (s memSessions) Create(ctx context.Context, session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.ID = s.id()
	stored := *session
	s.sessions[session.Token] = &stored
	return nil
}

func (s memSessions) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok || sess.RevokedAt != nil || !sess.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (s memSessions) Revoke(ctx context.Context, token uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok || sess.RevokedAt != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	sess.RevokedAt = &now
	return nil
}

func (s memSessions) CleanExpiredSessions(ctx context.Context) (int64, error) {
	return 0, nil
}

type memMovies struct{ *memStore }

func (s memMovies) Create(ctx context.Context, movie *entity.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[movie.AuthorID]; !ok {
		return repository.ErrForeignKey
	}
	for _, m := range s.movies {
		if m.Title == movie.Title {
			return duplicate("movies_title_key")
		}
		if m.Description == movie.Description {
			return duplicate("movies_description_key")
		}
	}
	movie.ID = s.id()
	stored := *movie
	s.movies[movie.ID] = &stored
	return nil
}

// joined fills the columns the SQL query joins in. Callers hold the lock.
func (s memMovies) joined(m *entity.Movie) *entity.Movie {
	cp := *m
	cp.AuthorName = s.users[m.AuthorID].Name
	var comments []*entity.Comment
	for _, c := range s.comments {
		if c.MovieID == m.ID {
			comments = append(comments, c)
		}
	}
	cp.AverageRating = entity.AverageRating(comments)
	return &cp
}

func (s memMovies) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.movies[id]; ok {
		return s.joined(m), nil
	}
	return nil, nil
}

func (s memMovies) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var movies []*entity.Movie
	for _, m := range s.movies {
		movies = append(movies, s.joined(m))
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies, nil
}

func (s memMovies) CountAll(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.movies)), nil
}

func (s memMovies) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[id]; !ok {
		return repository.ErrNotFound
	}
	for cid, c := range s.comments {
		if c.MovieID == id {
			delete(s.comments, cid)
		}
	}
	delete(s.movies, id)
	return nil
}

type memComments struct{ *memStore }

func (s memComments) Create(ctx context.Context, comment *entity.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[comment.MovieID]; !ok {
		return repository.ErrForeignKey
	}
	for _, c := range s.comments {
		if c.AuthorID == comment.AuthorID && c.MovieID == comment.MovieID {
			return duplicate("comments_author_movie_key")
		}
	}
	comment.ID = s.id()
	stored := *comment
	s.comments[comment.ID] = &stored
	return nil
}

func (s memComments) joined(c *entity.Comment) *entity.Comment {
	cp := *c
	cp.AuthorName = s.users[c.AuthorID].Name
	return &cp
}

func (s memComments) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.comments[id]; ok {
		return s.joined(c), nil
	}
	return nil, nil
}

func (s memComments) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var comments []*entity.Comment
	for _, c := range s.comments {
		if c.MovieID == movieID {
			comments = append(comments, s.joined(c))
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (s memComments) FindByUserAndMovie(ctx context.Context, userID, movieID int64) (*entity.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.comments {
		if c.AuthorID == userID && c.MovieID == movieID {
			return s.joined(c), nil
		}
	}
	return nil, nil
}

func (s memComments) CountByMovieID(ctx context.Context, movieID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, c := range s.comments {
		if c.MovieID == movieID {
			n++
		}
	}
	return n, nil
}

func (s memComments) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}
