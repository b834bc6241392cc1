package models

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes society administrators from residents.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleResident Role = "resident"
)

// User represents a registered member account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name of the user.
	Name string

	// Email is the user's email address (unique). Used for login.
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// Role controls access: admins manage settings, expenses and billing;
	// residents see their own flat's bills and raise complaints.
	Role Role

	// FlatID links a resident to their flat. Empty for admins without a flat.
	FlatID string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// NewUser creates a user with a fresh ID and creation timestamp.
func NewUser(email, name, passwordHash string, role Role, flatID string) *User {
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		FlatID:       flatID,
		CreatedAt:    time.Now().Unix(),
	}
}
