package storage

import (
	"context"

	"github.com/campushealth/clinicsync/internal/models"
)

// UserStorage manages clinic staff accounts.
type UserStorage interface {
	// CreateUser inserts a new account. Returns ErrUserExists when the
	// email is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail fetches an account by email.
	// Returns ErrNotFound if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
