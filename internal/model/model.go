// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Tokens collects an issued access/refresh token pair.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time // access token expiry (for diagnostics)
}

// User represents an account. The password is stored only as an encoded
// argon2id hash; RefreshToken holds the currently valid refresh token or
// nil when the user is logged out.
type User struct {
	ID           uuid.UUID // PK
	Email        string    // unique, doubles as the login
	Name         string    // display name, used in the confirmation mail
	PasswordHash string    // encoded argon2id hash
	Confirmed    bool      // flipped once by the email confirmation flow
	RefreshToken *string   // nil means logged out / revoked
	AvatarURL    *string
	CreatedAt    time.Time
}

// Contact is a single address-book entry owned by exactly one user.
// Every repository query over contacts is conjoined with UserID.
type Contact struct {
	ID        uuid.UUID // PK
	UserID    uuid.UUID // FK -> users.id
	FirstName string
	LastName  string
	Email     string // unique across the store
	Phone     string // written at create only, never updated
	Birthday  time.Time
	CreatedAt time.Time
}

// Note is a flat owner-scoped free-text record.
type Note struct {
	ID        uuid.UUID // PK
	UserID    uuid.UUID // FK -> users.id, populated by the caller before Create
	Text      string
	CreatedAt time.Time
}
