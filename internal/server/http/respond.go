// Package httpserver exposes the REST API over chi. It is thin glue: all
// semantics live in the services and repositories.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avolodin/contacthub/internal/errs"
)

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps sentinel error kinds onto HTTP status codes:
// NotFound→404, AlreadyExists→409, Unauthorized→401, BadRequest→400,
// RateLimited→429, everything else→500.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Detail: "not found"})
	case errors.Is(err, errs.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorBody{Detail: "already exists"})
	case errors.Is(err, errs.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody{Detail: "unauthorized"})
	case errors.Is(err, errs.ErrBadRequest):
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: "bad request"})
	case errors.Is(err, errs.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, errorBody{Detail: "too many attempts, try later"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Detail: "internal error"})
	}
}
