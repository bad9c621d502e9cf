package session

import (
	"crypto/sha256"
	"encoding/gob"
	"net/http"

	"movie-catalog/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const tokenKey = "token"

// Flash categories understood by the layout template.
const (
	CategoryInfo    = "info"
	CategorySuccess = "success"
	CategoryWarning = "warning"
	CategoryDanger  = "danger"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// Manager keeps the login token and flash messages in a signed, encrypted
// cookie. The session row itself lives in the database.
type Manager struct {
	store sessions.Store
	name  string
}

func NewManager(secret string, config utils.SessionConfig) *Manager {
	hashKey := sha256.Sum256([]byte("session-auth:" + secret))
	blockKey := sha256.Sum256([]byte("session-enc:" + secret))

	store := sessions.NewCookieStore(hashKey[:], blockKey[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(config.Expiry().Seconds()),
		HttpOnly: true,
		Secure:   config.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: store, name: config.CookieName}
}

// get never fails: a cookie that cannot be decoded yields a fresh session.
func (m *Manager) get(r *http.Request) *sessions.Session {
	s, _ := m.store.Get(r, m.name)
	return s
}

// Token returns the login token carried by the request cookie.
func (m *Manager) Token(r *http.Request) (uuid.UUID, bool) {
	raw, ok := m.get(r).Values[tokenKey].(string)
	if !ok {
		return uuid.Nil, false
	}
	token, err := utils.ParseSessionToken(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return token, true
}

func (m *Manager) SetToken(w http.ResponseWriter, r *http.Request, token uuid.UUID) error {
	s := m.get(r)
	s.Values[tokenKey] = token.String()
	return s.Save(r, w)
}

// Clear forgets the login token but keeps pending flashes.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	delete(s.Values, tokenKey)
	return s.Save(r, w)
}

func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) error {
	s := m.get(r)
	s.AddFlash(Flash{Category: category, Message: message})
	return s.Save(r, w)
}

// Flashes pops the pending flashes. It must run before the response body
// is written since it rewrites the cookie.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	s := m.get(r)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}

	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	s.Save(r, w)
	return flashes
}
