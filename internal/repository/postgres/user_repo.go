package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/avolodin/contacthub/internal/errs"
	"github.com/avolodin/contacthub/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row. Confirmed defaults to false and the refresh
// token to NULL on the schema side.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (id, email, name, password_hash)
VALUES ($1, $2, $3, $4)`
	_, err := r.db.Pool.Exec(ctx, q, u.ID, u.Email, u.Name, u.PasswordHash)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// FindByEmail selects a user by email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT id, email, name, password_hash, confirmed, refresh_token, avatar_url, created_at
FROM users WHERE email=$1`
	row := r.db.Pool.QueryRow(ctx, q, email)
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Confirmed, &u.RefreshToken, &u.AvatarURL, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Confirm flips the confirmed flag for the matching email. A zero row count
// is not an error: callers pre-check existence.
func (r *UserRepo) Confirm(ctx context.Context, email string) error {
	const q = `UPDATE users SET confirmed=true WHERE email=$1`
	_, err := r.db.Pool.Exec(ctx, q, email)
	return err
}

// SetRefreshToken overwrites the stored refresh token; nil writes NULL,
// which revokes the session.
func (r *UserRepo) SetRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error {
	const q = `UPDATE users SET refresh_token=$2 WHERE id=$1`
	_, err := r.db.Pool.Exec(ctx, q, userID, token)
	return err
}

// SetAvatar updates the avatar URL and returns the updated user.
func (r *UserRepo) SetAvatar(ctx context.Context, email, url string) (*model.User, error) {
	const q = `
UPDATE users SET avatar_url=$2 WHERE email=$1
RETURNING id, email, name, password_hash, confirmed, refresh_token, avatar_url, created_at`
	row := r.db.Pool.QueryRow(ctx, q, email, url)
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Confirmed, &u.RefreshToken, &u.AvatarURL, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
