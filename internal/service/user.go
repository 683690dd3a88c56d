// Package service provides the business logic for registration,
// authentication, and feedback management, delegating persistence to
// repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avolkovs/feedboard/internal/common"
	"github.com/avolkovs/feedboard/internal/hasher"
	"github.com/avolkovs/feedboard/internal/models"
)

// UserRepository defines the persistence operations required by UserService.
type UserRepository interface {
	// Create inserts a new user; common.ErrDuplicateUsername on a taken username.
	Create(ctx context.Context, user *models.User) error
	// GetByUsername fetches a user; common.ErrNotFound if absent.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Delete removes the user and all owned feedback in one transaction;
	// common.ErrNotFound if the user does not exist.
	Delete(ctx context.Context, username string) error
}

// UserService implements registration, authentication, and account deletion.
type UserService struct {
	repo UserRepository
}

// NewUserService constructs a UserService using the provided repository.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new account with a freshly hashed password. It does not
// establish a session; the caller does that explicitly on success. Returns
// common.ErrDuplicateUsername if the username is taken and
// common.ErrValidation if any field is empty.
func (s *UserService) Register(ctx context.Context, username, password, email, firstName, lastName string) (*models.User, error) {
	if username == "" || password == "" || email == "" || firstName == "" || lastName == "" {
		return nil, common.ErrValidation
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user if the credentials match, or (nil, nil)
// otherwise. An unknown username and a wrong password are indistinguishable
// from the return value, so callers cannot enumerate accounts.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

// Get fetches a user by username; common.ErrNotFound if absent.
func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// Delete removes the account and cascades to all owned feedback. The session
// identity must match the target username; otherwise common.ErrUnauthorized
// is returned and nothing is deleted.
func (s *UserService) Delete(ctx context.Context, username, identity string) error {
	if identity == "" || identity != username {
		return common.ErrUnauthorized
	}
	return s.repo.Delete(ctx, username)
}
