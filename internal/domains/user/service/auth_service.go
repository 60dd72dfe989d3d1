package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookstore-web/internal/domains/user/model"
	"bookstore-web/internal/domains/user/repository"
	"bookstore-web/pkg/cache"
	"bookstore-web/pkg/jwt"
	"bookstore-web/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const sessionKeyPrefix = "session:"

// AuthService - Business logic for admin authentication
type AuthService struct {
	users      repository.RepositoryInterface
	tokens     *jwt.Manager
	sessions   cache.Cache
	sessionTTL time.Duration
}

// NewAuthService - Constructor with DI
func NewAuthService(users repository.RepositoryInterface, tokens *jwt.Manager, sessions cache.Cache, sessionTTL time.Duration) AuthServiceInterface {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// SignInWithPassword verifies credentials and opens a new session.
// Unknown emails and wrong passwords both map to ErrInvalidCredentials
// so the response does not leak which accounts exist.
func (s *AuthService) SignInWithPassword(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	session := model.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}

	if err := s.sessions.Set(ctx, sessionKeyPrefix+session.ID, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	token, err := s.tokens.GenerateSessionToken(session.ID, session.Email, s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("Admin signed in", map[string]interface{}{
		"email": user.Email,
	})

	return &model.LoginResponse{Token: token, Session: session}, nil
}

// SessionFromToken resolves a bearer token back to its stored session.
// Expired tokens and sessions evicted from the store both return ErrNoSession.
func (s *AuthService) SessionFromToken(ctx context.Context, token string) (*model.Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, model.ErrNoSession
	}

	var session model.Session
	found, err := s.sessions.Get(ctx, sessionKeyPrefix+claims.SessionID, &session)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !found || !session.Active() {
		return nil, model.ErrNoSession
	}

	return &session, nil
}

// SignOut drops the stored session. A token that no longer resolves is
// treated as already signed out.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil
	}

	if err := s.sessions.Delete(ctx, sessionKeyPrefix+claims.SessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
