package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkarlsson/webdemo/internal/model"
	appErr "github.com/mkarlsson/webdemo/internal/pkg/errors"
	"github.com/mkarlsson/webdemo/internal/pkg/password"
	"github.com/mkarlsson/webdemo/internal/repo"
)

type AuthService struct {
	users *repo.UserRepo
}

func NewAuthService(users *repo.UserRepo) *AuthService {
	return &AuthService{users: users}
}

// CreateUser hashes the password and inserts the user row, returning the
// generated id. A duplicate email propagates as ErrConflict for the caller
// to handle; there is no retry.
func (s *AuthService) CreateUser(ctx context.Context, email, name, plain string, tosAccepted bool) (int64, error) {
	hash, err := password.Hash(plain)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.users.Create(ctx, email, name, hash, tosAccepted)
}

// Authenticate looks the user up by exact email and verifies the password.
// A missing user and a wrong password both return ErrUnauthorized, so the
// caller cannot tell the two apart.
func (s *AuthService) Authenticate(ctx context.Context, email, plain string) (int64, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			return 0, appErr.ErrUnauthorized
		}
		return 0, err
	}
	if err := password.Compare(user.PasswordHash, plain); err != nil {
		return 0, appErr.ErrUnauthorized
	}
	return user.ID, nil
}

func (s *AuthService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// CountUsersByEmail backs the user email search endpoint.
func (s *AuthService) CountUsersByEmail(ctx context.Context, needle string) (int64, error) {
	return s.users.CountEmailLike(ctx, needle)
}
