package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avolodin/contacthub/internal/errs"
	"github.com/avolodin/contacthub/internal/model"
	"github.com/avolodin/contacthub/internal/service"
	"github.com/avolodin/contacthub/internal/token"
)

type stubUsers struct {
	user *model.User
}

func (s *stubUsers) Create(context.Context, *model.User) error { return nil }
func (s *stubUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, errs.ErrNotFound
}
func (s *stubUsers) Confirm(context.Context, string) error { return nil }
func (s *stubUsers) SetRefreshToken(context.Context, uuid.UUID, *string) error {
	return nil
}
func (s *stubUsers) SetAvatar(context.Context, string, string) (*model.User, error) {
	return nil, errs.ErrNotFound
}

type stubAuth struct {
	service.AuthService

	confirmMsg string
	confirmErr error

	loginIP string
}

func (s *stubAuth) ConfirmEmail(context.Context, string) (string, error) {
	return s.confirmMsg, s.confirmErr
}

func (s *stubAuth) Login(_ context.Context, _, _, ip string) (model.Tokens, error) {
	s.loginIP = ip
	return model.Tokens{AccessToken: "a", RefreshToken: "r"}, nil
}

type stubNotes struct {
	service.NoteService
}

func (s *stubNotes) List(_ context.Context, owner uuid.UUID) ([]model.Note, error) {
	return []model.Note{{ID: uuid.Must(uuid.NewV4()), UserID: owner, Text: "n"}}, nil
}

func newTestServer(t *testing.T) (*Server, *stubUsers, *token.Codec) {
	t.Helper()
	codec := token.New([]byte("test-key"))
	users := &stubUsers{user: &model.User{
		ID:    uuid.Must(uuid.NewV4()),
		Email: "user@example.com",
	}}
	srv := New(&stubAuth{confirmMsg: service.MsgEmailConfirmed}, nil, &stubNotes{}, users, codec, "http://localhost:8080", zap.NewNop())
	return srv, users, codec
}

func TestRequireAuth(t *testing.T) {
	srv, _, codec := newTestServer(t)
	router := srv.Router(nil)

	// no token
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notes/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// refresh token must not pass as access token
	refresh, _, err := codec.Issue("user@example.com", token.PurposeRefresh, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/notes/", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// valid access token for a known user
	access, _, err := codec.Issue("user@example.com", token.PurposeAccess, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/notes/", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// valid token for a user that no longer exists
	access, _, err = codec.Issue("ghost@example.com", token.PurposeAccess, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/notes/", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRemoteIP_StripsPort(t *testing.T) {
	cases := []struct {
		addr string
		want string
	}{
		{"10.0.0.1:54321", "10.0.0.1"},
		{"[::1]:8080", "::1"},
		{"10.0.0.1", "10.0.0.1"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = tc.addr
		require.Equal(t, tc.want, remoteIP(req), "for %q", tc.addr)
	}
}

func TestLogin_ThrottleKeyIgnoresSourcePort(t *testing.T) {
	auth := &stubAuth{}
	srv := New(auth, nil, &stubNotes{}, &stubUsers{}, token.New([]byte("test-key")), "http://localhost:8080", zap.NewNop())
	router := srv.Router(nil)

	body := `{"email":"user@example.com","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.RemoteAddr = "10.0.0.1:54321"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "10.0.0.1", auth.loginIP)
}

func TestConfirmEmailRoute(t *testing.T) {
	srv, _, _ := newTestServer(t)
	router := srv.Router(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/confirmed_email/some-token", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), service.MsgEmailConfirmed)
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.ErrNotFound, http.StatusNotFound},
		{errs.ErrAlreadyExists, http.StatusConflict},
		{errs.ErrUnauthorized, http.StatusUnauthorized},
		{errs.ErrBadRequest, http.StatusBadRequest},
		{errs.ErrRateLimited, http.StatusTooManyRequests},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeErr(rec, tc.err)
		require.Equal(t, tc.want, rec.Code, "for %v", tc.err)
	}
}
