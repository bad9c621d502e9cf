package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/session"
	"movie-catalog/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuth struct {
	users map[uuid.UUID]*entity.User
	err   error
}

func (f *fakeAuth) Authenticate(ctx context.Context, token uuid.UUID) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[token], nil
}

func newSessions() *session.Manager {
	return session.NewManager("secret", utils.SessionConfig{CookieName: "sid", ExpiryHours: 1})
}

// loggedInRequest returns a request carrying a session cookie for token.
func loggedInRequest(t *testing.T, sessions *session.Manager, token uuid.UUID) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, sessions.SetToken(rec, httptest.NewRequest(http.MethodGet, "/", nil), token))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func identityEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := utils.GetUser(r.Context()); ok {
			w.Write([]byte(user.Name))
			return
		}
		w.Write([]byte("anonymous"))
	})
}

func TestLoadIdentity(t *testing.T) {
	sessions := newSessions()
	token := uuid.New()
	auth := &fakeAuth{users: map[uuid.UUID]*entity.User{token: {Base: entity.Base{ID: 1}, Name: "Ada"}}}
	handler := LoadIdentity(sessions, auth, zap.NewNop())(identityEcho())

	tests := []struct {
		name string
		req  *http.Request
		want string
	}{
		{"no cookie", httptest.NewRequest(http.MethodGet, "/", nil), "anonymous"},
		{"valid session", loggedInRequest(t, sessions, token), "Ada"},
		{"revoked session", loggedInRequest(t, sessions, uuid.New()), "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, tt.req)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestLoadIdentity_StoreErrorIsAnonymous(t *testing.T) {
	sessions := newSessions()
	handler := LoadIdentity(sessions, &fakeAuth{err: errors.New("db down")}, zap.NewNop())(identityEcho())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loggedInRequest(t, sessions, uuid.New()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestRequireAuth(t *testing.T) {
	sessions := newSessions()
	handler := RequireAuth(sessions, zap.NewNop())(identityEcho())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/add", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/add", nil)
	req = req.WithContext(utils.SetIdentity(req.Context(), &entity.User{Base: entity.Base{ID: 1}, Name: "Ada"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ada", rec.Body.String())
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(utils.RateLimitConfig{RPS: 1, Burst: 2}, zap.NewNop())
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"), "other clients have their own bucket")

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("1.1.1.1"))

	now = now.Add(10 * time.Minute)
	rl.Allow("3.3.3.3")
	assert.NotContains(t, rl.clients, "1.1.1.1")
}

func TestRateLimiter_Limit(t *testing.T) {
	rl := NewRateLimiter(utils.RateLimitConfig{RPS: 0.001, Burst: 1}, zap.NewNop())
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRecover(t *testing.T) {
	handler := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCSRF_RejectsMissingToken(t *testing.T) {
	handler := CSRF("secret", false, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
