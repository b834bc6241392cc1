package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/societyhub/backend/internal/auth"
	"github.com/societyhub/backend/internal/models"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	store := newTestStore(t)
	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager("test-secret-key", time.Hour)
	return NewAuthService(authenticator, jwtManager)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "resident@example.com", "Asha Rao", "s3curepassword", models.RoleResident, "flat-1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != models.RoleResident || user.FlatID != "flat-1" {
		t.Errorf("unexpected registered user: %+v", user)
	}

	token, loggedIn, err := svc.Login(ctx, "resident@example.com", "s3curepassword")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Error("expected a non-empty token")
	}
	if loggedIn.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, loggedIn.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "admin@example.com", "Admin", "s3curepassword", models.RoleAdmin, ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, _, err := svc.Login(ctx, "admin@example.com", "wrongpassword"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dup@example.com", "First", "s3curepassword", models.RoleResident, "flat-1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register(ctx, "dup@example.com", "Second", "s3curepassword", models.RoleResident, "flat-2"); !errors.Is(err, auth.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	svc := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "weak@example.com", "Weak", "short", models.RoleResident, "flat-1"); !errors.Is(err, auth.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}
