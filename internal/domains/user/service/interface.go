package service

import (
	"context"

	"bookstore-web/internal/domains/user/model"
)

// AuthServiceInterface handles admin sign-in and session lookup.
type AuthServiceInterface interface {
	SignInWithPassword(ctx context.Context, email, password string) (*model.LoginResponse, error)
	SessionFromToken(ctx context.Context, token string) (*model.Session, error)
	SignOut(ctx context.Context, token string) error
}
