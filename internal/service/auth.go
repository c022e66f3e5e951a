// Package service contains application services for authentication,
// contacts and notes.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/avolodin/contacthub/internal/crypto"
	"github.com/avolodin/contacthub/internal/dispatch"
	"github.com/avolodin/contacthub/internal/errs"
	"github.com/avolodin/contacthub/internal/limiter"
	"github.com/avolodin/contacthub/internal/mailer"
	"github.com/avolodin/contacthub/internal/model"
	"github.com/avolodin/contacthub/internal/repository"
	"github.com/avolodin/contacthub/internal/token"
	"github.com/gofrs/uuid/v5"
)

// Messages returned by the idempotent confirmation flows.
const (
	MsgEmailConfirmed   = "Email confirmed"
	MsgAlreadyConfirmed = "Your email is already confirmed"
	MsgCheckYourEmail   = "Check your email for confirmation."
)

// AuthService defines the account lifecycle: signup, login, token refresh
// and email confirmation.
type AuthService interface {
	// Signup registers a new account and schedules a confirmation mail.
	Signup(ctx context.Context, email, name, password, baseURL string) (*model.User, error)
	// Login authenticates by email/password and issues a token pair.
	Login(ctx context.Context, email, password, ip string) (model.Tokens, error)
	// Refresh rotates the token pair given a valid refresh token.
	Refresh(ctx context.Context, rawToken string) (model.Tokens, error)
	// ConfirmEmail flips the confirmed flag from a confirmation token.
	ConfirmEmail(ctx context.Context, rawToken string) (string, error)
	// RequestConfirmation re-sends the confirmation mail for an
	// unconfirmed account.
	RequestConfirmation(ctx context.Context, email, baseURL string) (string, error)
	// UpdateAvatar stores a new avatar URL for the user.
	UpdateAvatar(ctx context.Context, email, url string) (*model.User, error)
}

type AuthServiceImpl struct {
	users      repository.UserRepository
	codec      *token.Codec
	notifier   mailer.Notifier
	tasks      *dispatch.Dispatcher
	lim        limiter.Limiter
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(
	users repository.UserRepository,
	codec *token.Codec,
	notifier mailer.Notifier,
	tasks *dispatch.Dispatcher,
	lim limiter.Limiter,
	accessTTL, refreshTTL time.Duration,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:      users,
		codec:      codec,
		notifier:   notifier,
		tasks:      tasks,
		lim:        lim,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Signup creates a new user and schedules the confirmation mail without
// blocking the caller. Duplicate email reports ErrAlreadyExists.
func (s *AuthServiceImpl) Signup(ctx context.Context, email, name, password, baseURL string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, errors.New("empty email/password")
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, errs.ErrAlreadyExists
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:           uid,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.scheduleConfirmation(u.Email, u.Name, baseURL)
	return u, nil
}

// Login verifies credentials and issues a fresh token pair, persisting the
// refresh token. Unknown email and wrong password return the same error.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, ip string) (model.Tokens, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.Tokens{}, err
	}
	if !allowed {
		return model.Tokens{}, errs.ErrRateLimited
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return model.Tokens{}, err
	}
	ok := false
	if err == nil {
		ok, err = crypto.VerifyPassword(password, u.PasswordHash)
		if err != nil {
			return model.Tokens{}, err
		}
	}
	if !ok {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.Tokens{}, errs.ErrRateLimited
		}
		// same shape whether the email or the password was wrong
		return model.Tokens{}, errs.ErrUnauthorized
	}

	_ = s.lim.Success(ctx, email, ipHash)

	return s.rotateTokens(ctx, u)
}

// Refresh decodes a refresh token and rotates the pair. A presented token
// that no longer matches the stored one is treated as reuse: the stored
// token is cleared, forcing re-login.
func (s *AuthServiceImpl) Refresh(ctx context.Context, rawToken string) (model.Tokens, error) {
	email, err := s.codec.Parse(rawToken, token.PurposeRefresh)
	if err != nil {
		return model.Tokens{}, errs.ErrUnauthorized
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Tokens{}, errs.ErrUnauthorized
		}
		return model.Tokens{}, err
	}
	if u.RefreshToken == nil || *u.RefreshToken != rawToken {
		if err := s.users.SetRefreshToken(ctx, u.ID, nil); err != nil {
			return model.Tokens{}, err
		}
		return model.Tokens{}, errs.ErrUnauthorized
	}
	return s.rotateTokens(ctx, u)
}

// ConfirmEmail validates a confirmation token and flips the flag. The flag
// flips at most once; repeated confirmation is a no-op success.
func (s *AuthServiceImpl) ConfirmEmail(ctx context.Context, rawToken string) (string, error) {
	email, err := s.codec.Parse(rawToken, token.PurposeEmailConfirm)
	if err != nil {
		return "", errs.ErrBadRequest
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.ErrBadRequest
		}
		return "", err
	}
	if u.Confirmed {
		return MsgAlreadyConfirmed, nil
	}
	if err := s.users.Confirm(ctx, email); err != nil {
		return "", err
	}
	return MsgEmailConfirmed, nil
}

// RequestConfirmation re-triggers the confirmation mail for an unconfirmed
// account. The response never reveals whether the account exists.
func (s *AuthServiceImpl) RequestConfirmation(ctx context.Context, email, baseURL string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return MsgCheckYourEmail, nil
		}
		return "", err
	}
	if u.Confirmed {
		return MsgAlreadyConfirmed, nil
	}
	s.scheduleConfirmation(u.Email, u.Name, baseURL)
	return MsgCheckYourEmail, nil
}

// UpdateAvatar stores a new avatar URL.
func (s *AuthServiceImpl) UpdateAvatar(ctx context.Context, email, url string) (*model.User, error) {
	return s.users.SetAvatar(ctx, email, url)
}

// rotateTokens issues a fresh access/refresh pair and persists the refresh
// token against the user.
func (s *AuthServiceImpl) rotateTokens(ctx context.Context, u *model.User) (model.Tokens, error) {
	access, exp, err := s.codec.Issue(u.Email, token.PurposeAccess, s.accessTTL)
	if err != nil {
		return model.Tokens{}, err
	}
	refresh, _, err := s.codec.Issue(u.Email, token.PurposeRefresh, s.refreshTTL)
	if err != nil {
		return model.Tokens{}, err
	}
	if err := s.users.SetRefreshToken(ctx, u.ID, &refresh); err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}

// scheduleConfirmation hands the mail off to the dispatcher. Delivery
// failure is the notifier's problem, never the request's.
func (s *AuthServiceImpl) scheduleConfirmation(email, name, baseURL string) {
	s.tasks.Submit("confirmation-mail", func(ctx context.Context) error {
		return s.notifier.SendConfirmation(ctx, email, name, baseURL)
	})
}
