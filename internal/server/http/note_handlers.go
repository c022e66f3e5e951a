package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/avolodin/contacthub/internal/errs"
	"github.com/avolodin/contacthub/internal/model"
)

type noteRequest struct {
	Text string `json:"text"`
}

type noteView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func viewNote(n *model.Note) noteView {
	return noteView{ID: n.ID.String(), Text: n.Text}
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, errs.ErrBadRequest)
		return
	}
	// the owner travels inside the note entity
	n, err := s.notes.Create(r.Context(), model.Note{
		UserID: currentUser(r.Context()).ID,
		Text:   req.Text,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewNote(n))
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	ns, err := s.notes.List(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]noteView, 0, len(ns))
	for i := range ns {
		out = append(out, viewNote(&ns[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	n, err := s.notes.Get(r.Context(), id, currentUser(r.Context()).ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewNote(n))
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, errs.ErrBadRequest)
		return
	}
	n, err := s.notes.Update(r.Context(), id, currentUser(r.Context()).ID, req.Text)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewNote(n))
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	n, err := s.notes.Delete(r.Context(), id, currentUser(r.Context()).ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewNote(n))
}
