// Package server provides the HTTP REST API for CareerMirror.
package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Srujan0798/CareerMirror/internal/config"
	"github.com/Srujan0798/CareerMirror/internal/store"
	"github.com/Srujan0798/CareerMirror/internal/types"
)

// UserService provides business logic for accounts and sessions
type UserService struct {
	backend        store.Backend
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(backend store.Backend, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		backend:        backend,
		passwordConfig: passwordConfig,
	}
}

// Signup creates a new free-plan user and opens a session for them.
func (s *UserService) Signup(ctx context.Context, req *types.SignupRequest) (*types.AuthResponse, error) {
	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.backend.CreateUser(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		return nil, err
	}

	session, err := s.backend.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Analytics are best-effort and never fail the request.
	_ = s.backend.LogEvent(ctx, "user_signed_up", &user.ID, nil)

	return &types.AuthResponse{User: &user.User, Token: session.Token}, nil
}

// Login authenticates a user and opens a session. Unknown email and
// wrong password produce the same generic error.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error) {
	user, err := s.backend.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if user == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	session, err := s.backend.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	_ = s.backend.LogEvent(ctx, "user_logged_in", &user.ID, nil)

	return &types.AuthResponse{User: &user.User, Token: session.Token}, nil
}

// Logout destroys the session bound to the token. Destroying an
// unknown token is not an error.
func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.backend.DestroySession(ctx, token)
}

// Me returns the profile of the authenticated user.
func (s *UserService) Me(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := s.backend.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user.User, nil
}

// UpdateProfile applies partial profile updates for the user.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, upd types.UserUpdate) (*types.User, error) {
	user, err := s.backend.UpdateUser(ctx, userID, upd)
	if err != nil {
		return nil, err
	}
	return &user.User, nil
}

// Upgrade transitions the user to a paid plan.
func (s *UserService) Upgrade(ctx context.Context, userID uuid.UUID, planName string) (*types.User, error) {
	if !types.ValidPlan(planName) || planName == types.PlanFree {
		return nil, &ErrValidation{Field: "plan", Message: "must be pro or enterprise"}
	}

	user, err := s.backend.UpdatePlan(ctx, userID, planName, nil)
	if err != nil {
		return nil, err
	}

	_ = s.backend.LogEvent(ctx, "plan_upgraded", &userID, map[string]any{"plan": planName})

	return &user.User, nil
}
