// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/avolodin/contacthub/internal/model"
)

// UserRepository provides account persistence for the auth workflow.
type UserRepository interface {
	// Create inserts a new user (confirmed=false, refresh token unset).
	Create(ctx context.Context, u *model.User) error
	// FindByEmail loads a user by email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// Confirm sets confirmed=true for the matching email. Absent users are
	// ignored; callers are expected to pre-check existence.
	Confirm(ctx context.Context, email string) error
	// SetRefreshToken overwrites the stored refresh token; nil revokes it.
	SetRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error
	// SetAvatar updates the avatar URL and returns the updated user.
	SetAvatar(ctx context.Context, email, url string) (*model.User, error)
}
