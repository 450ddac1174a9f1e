package services

import (
	"context"
	"fmt"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driven"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
)

// Ensure UserService implements the interface.
var _ driving.UserService = (*UserService)(nil)

// UserService provides user lookups.
type UserService struct {
	users   driven.UserAPI
	session driving.SessionService
}

// NewUserService creates a user service.
func NewUserService(users driven.UserAPI, session driving.SessionService) *UserService {
	return &UserService{users: users, session: session}
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.ByID(ctx, userID)
}

// ByEmail returns a user by email.
func (s *UserService) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	return s.users.ByEmail(ctx, email)
}

// Me returns the signed-in user, refreshed from the server when possible.
func (s *UserService) Me(ctx context.Context) (*domain.User, error) {
	if s.session == nil {
		return nil, domain.ErrAuthRequired
	}
	current := s.session.Current()
	if !current.IsSignedIn() {
		return nil, domain.ErrAuthRequired
	}
	switch {
	case current.User.ID != 0:
		return s.users.ByID(ctx, current.User.ID)
	case current.User.Email != "":
		return s.users.ByEmail(ctx, current.User.Email)
	default:
		return &current.User, nil
	}
}
