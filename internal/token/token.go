// Package token implements the purpose-scoped JWT codec shared by the auth
// workflow and the HTTP auth middleware.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avolodin/contacthub/internal/errs"
)

// Purpose distinguishes the three token kinds. A token issued for one
// purpose never validates under another.
type Purpose string

const (
	PurposeAccess       Purpose = "access"
	PurposeRefresh      Purpose = "refresh"
	PurposeEmailConfirm Purpose = "email_confirm"
)

type claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Codec issues and parses HS256 JWTs carrying the user email as subject.
// The clock is injectable so tests can pin expiry behavior.
type Codec struct {
	signKey []byte
	now     func() time.Time
}

// New constructs a codec signing with key.
func New(signKey []byte) *Codec {
	return &Codec{signKey: signKey, now: time.Now}
}

// NewWithClock constructs a codec with a fixed clock.
func NewWithClock(signKey []byte, now func() time.Time) *Codec {
	return &Codec{signKey: signKey, now: now}
}

// Issue creates a signed token for email valid for ttl under the given purpose.
func (c *Codec) Issue(email string, purpose Purpose, ttl time.Duration) (string, time.Time, error) {
	now := c.now()
	exp := now.Add(ttl)
	cl := claims{
		Scope: string(purpose),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	signed, err := tok.SignedString(c.signKey)
	return signed, exp, err
}

// Parse validates raw against the expected purpose and returns the subject
// email. Bad signature, expiry and purpose mismatch all map to ErrUnauthorized.
func (c *Codec) Parse(raw string, purpose Purpose) (string, error) {
	var cl claims
	_, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.signKey, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return "", errs.ErrUnauthorized
	}
	if cl.Scope != string(purpose) || cl.Subject == "" {
		return "", errs.ErrUnauthorized
	}
	return cl.Subject, nil
}
