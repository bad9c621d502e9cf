package adaptor

import (
	"errors"
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/session"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgInvalidCredentials = "Invalid email or password."
	msgDuplicateEmail     = "That email is already registered. Log in instead."
)

type AuthHandler struct {
	service  usecase.AuthService
	sessions *session.Manager
	view     *Renderer
	log      *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, sessions *session.Manager, view *Renderer, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		sessions: sessions,
		view:     view,
		log:      log.With(zap.String("handler", "auth")),
	}
}

// SignUpForm handles GET /signup
func (h *AuthHandler) SignUpForm(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "signup.html", Page{Title: "Sign up"})
}

// SignUp handles POST /signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.ResponseText(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	var req request.SignUpRequest
	if errs := utils.ValidateForm(&req, r.PostForm); errs != nil {
		req.Password = ""
		h.view.Render(w, r, http.StatusUnprocessableEntity, "signup.html", Page{Title: "Sign up", Errors: errs, Form: req})
		return
	}

	user, sess, err := h.service.SignUp(r.Context(), &req, clientInfo(r))
	if err != nil {
		h.handleServiceError(w, r, err, "sign up")
		return
	}

	if err := h.sessions.SetToken(w, r, sess.Token); err != nil {
		h.log.Error("Failed to save session cookie", zap.Error(err), zap.Int64("user_id", user.ID))
		utils.ResponseInternalError(w)
		return
	}

	h.view.Redirect(w, r, "/", session.CategorySuccess, "Welcome, "+user.Name+"!")
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "login.html", Page{Title: "Log in"})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.ResponseText(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	var req request.LoginRequest
	if errs := utils.ValidateForm(&req, r.PostForm); errs != nil {
		req.Password = ""
		h.view.Render(w, r, http.StatusUnprocessableEntity, "login.html", Page{Title: "Log in", Errors: errs, Form: req})
		return
	}

	user, sess, err := h.service.Login(r.Context(), &req, clientInfo(r))
	if errors.Is(err, usecase.ErrInvalidCredentials) {
		req.Password = ""
		h.view.Render(w, r, http.StatusUnauthorized, "login.html", Page{
			Title:   "Log in",
			Form:    req,
			Flashes: []session.Flash{{Category: session.CategoryDanger, Message: msgInvalidCredentials}},
		})
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err, "login")
		return
	}

	if err := h.sessions.SetToken(w, r, sess.Token); err != nil {
		h.log.Error("Failed to save session cookie", zap.Error(err), zap.Int64("user_id", user.ID))
		utils.ResponseInternalError(w)
		return
	}

	h.view.Redirect(w, r, "/", session.CategorySuccess, "Logged in as "+user.Name+".")
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := utils.GetTokenFromContext(r.Context()); ok {
		if err := h.service.Logout(r.Context(), token); err != nil {
			h.log.Error("Failed to revoke session", zap.Error(err))
		}
	}

	if err := h.sessions.Clear(w, r); err != nil {
		h.log.Warn("Failed to clear session cookie", zap.Error(err))
	}

	h.view.Redirect(w, r, "/login", session.CategoryInfo, "You have been logged out.")
}

// handleServiceError handles different types of errors
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrDuplicateEmail):
		h.log.Warn(operation+" failed - email registered", zap.Error(err))
		h.view.Redirect(w, r, "/signup", session.CategoryWarning, msgDuplicateEmail)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		h.log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		h.view.Redirect(w, r, "/login", session.CategoryDanger, msgInvalidCredentials)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w)
	}
}

func clientInfo(r *http.Request) request.ClientInfo {
	return request.ClientInfo{
		UserAgent: r.UserAgent(),
		IP:        utils.ClientIP(r),
	}
}
