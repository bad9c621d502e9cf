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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	SignUp(ctx context.Context, req *request.SignUpRequest, client request.ClientInfo) (*entity.User, *entity.Session, error)
	Login(ctx context.Context, req *request.LoginRequest, client request.ClientInfo) (*entity.User, *entity.Session, error)
	// Authenticate resolves a session token to its user. An unknown, expired
	// or revoked token yields (nil, nil).
	Authenticate(ctx context.Context, token uuid.UUID) (*entity.User, error)
	Logout(ctx context.Context, token uuid.UUID) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) SignUp(ctx context.Context, req *request.SignUpRequest, client request.ClientInfo) (*entity.User, *entity.Session, error) {
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		s.log.Info("Sign up with registered email", zap.String("email", req.Email))
		return nil, nil, ErrDuplicateEmail
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Base:         entity.Base{CreatedAt: time.Now()},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, nil, ErrDuplicateEmail
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("User signed up",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
	)

	return user, session, nil
}

// Login reports ErrInvalidCredentials for both an unknown email and a wrong
// password.
func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client request.ClientInfo) (*entity.User, *entity.Session, error) {
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil {
		s.log.Warn("Login for unknown email", zap.String("email", req.Email))
		return nil, nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("User logged in", zap.Int64("user_id", user.ID))

	return user, session, nil
}

func (s *authService) Authenticate(ctx context.Context, token uuid.UUID) (*entity.User, error) {
	session, err := s.repo.Session.FindValidSession(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("find session user: %w", err)
	}

	return user, nil
}

// Logout revokes the session row. Logging out twice is not an error.
func (s *authService) Logout(ctx context.Context, token uuid.UUID) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID int64, client request.ClientInfo) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		Base:      entity.Base{CreatedAt: now},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: now.Add(s.config.Session.Expiry()),
	}
	if client.UserAgent != "" {
		session.UserAgent = &client.UserAgent
	}
	if client.IP != "" {
		session.IPAddress = &client.IP
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}
