package httpserver

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avolodin/contacthub/internal/errs"
	"github.com/avolodin/contacthub/internal/model"
)

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type userView struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Confirmed bool    `json:"confirmed"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func viewUser(u *model.User) userView {
	return userView{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Confirmed: u.Confirmed,
		AvatarURL: u.AvatarURL,
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, errs.ErrBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeErr(w, errs.ErrBadRequest)
		return
	}
	u, err := s.auth.Signup(r.Context(), req.Email, req.Name, req.Password, s.baseURL)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"user":   viewUser(u),
		"detail": "User successfully created",
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, errs.ErrBadRequest)
		return
	}
	tokens, err := s.auth.Login(r.Context(), req.Email, req.Password, remoteIP(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    "bearer",
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	raw := bearerToken(r)
	if raw == "" {
		writeErr(w, errs.ErrUnauthorized)
		return
	}
	tokens, err := s.auth.Refresh(r.Context(), raw)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    "bearer",
	})
}

func (s *Server) handleConfirmEmail(w http.ResponseWriter, r *http.Request) {
	msg, err := s.auth.ConfirmEmail(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (s *Server) handleRequestEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeErr(w, errs.ErrBadRequest)
		return
	}
	msg, err := s.auth.RequestConfirmation(r.Context(), req.Email, s.baseURL)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (s *Server) handleUpdateAvatar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AvatarURL string `json:"avatar_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AvatarURL == "" {
		writeErr(w, errs.ErrBadRequest)
		return
	}
	u := currentUser(r.Context())
	updated, err := s.auth.UpdateAvatar(r.Context(), u.Email, req.AvatarURL)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewUser(updated))
}

// remoteIP strips the ephemeral source port so throttling keys stay stable
// across connections from the same host.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
