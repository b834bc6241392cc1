package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/societyhub/backend/internal/auth"
	"github.com/societyhub/backend/internal/models"
)

// AuthService handles member registration and login.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates an auth service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Register creates a member account. Residents must be linked to a flat;
// admins may pass an empty flatID.
func (s *AuthService) Register(ctx context.Context, email, name, password string, role models.Role, flatID string) (*models.User, error) {
	user, err := s.authenticator.Register(ctx, email, name, password, role, flatID)
	if err != nil {
		return nil, err
	}
	slog.Info("Member registered", "email", email, "role", role)
	return user, nil
}

// Login authenticates a member and issues a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}
