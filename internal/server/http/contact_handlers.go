package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/avolodin/contacthub/internal/errs"
	"github.com/avolodin/contacthub/internal/model"
)

const birthdayLayout = "2006-01-02"

type contactRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday"` // YYYY-MM-DD
}

type contactView struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday"`
}

func viewContact(c *model.Contact) contactView {
	return contactView{
		ID:        c.ID.String(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Birthday:  c.Birthday.Format(birthdayLayout),
	}
}

func viewContacts(cs []model.Contact) []contactView {
	out := make([]contactView, 0, len(cs))
	for i := range cs {
		out = append(out, viewContact(&cs[i]))
	}
	return out
}

func (req *contactRequest) toModel() (model.Contact, error) {
	bd, err := time.Parse(birthdayLayout, req.Birthday)
	if err != nil {
		return model.Contact{}, errs.ErrBadRequest
	}
	return model.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Birthday:  bd,
	}, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errs.ErrBadRequest
	}
	return id, nil
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, errs.ErrBadRequest)
		return
	}
	c, err := req.toModel()
	if err != nil {
		writeErr(w, err)
		return
	}
	created, err := s.contacts.Create(r.Context(), currentUser(r.Context()).ID, c)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewContact(created))
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if skip < 0 || limit < 0 {
		writeErr(w, errs.ErrBadRequest)
		return
	}
	cs, err := s.contacts.List(r.Context(), currentUser(r.Context()).ID, skip, limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewContacts(cs))
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	c, err := s.contacts.Get(r.Context(), id, currentUser(r.Context()).ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewContact(c))
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, errs.ErrBadRequest)
		return
	}
	upd, err := req.toModel()
	if err != nil {
		writeErr(w, err)
		return
	}
	c, err := s.contacts.Update(r.Context(), id, currentUser(r.Context()).ID, upd)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewContact(c))
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	c, err := s.contacts.Delete(r.Context(), id, currentUser(r.Context()).ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewContact(c))
}

// handleSearchContacts resolves exactly one of first_name, last_name or
// email as an exact-match lookup.
func (s *Server) handleSearchContacts(w http.ResponseWriter, r *http.Request) {
	owner := currentUser(r.Context()).ID
	q := r.URL.Query()

	var (
		c   *model.Contact
		err error
	)
	switch {
	case q.Get("first_name") != "":
		c, err = s.contacts.FindByFirstName(r.Context(), owner, q.Get("first_name"))
	case q.Get("last_name") != "":
		c, err = s.contacts.FindByLastName(r.Context(), owner, q.Get("last_name"))
	case q.Get("email") != "":
		c, err = s.contacts.FindByEmail(r.Context(), owner, q.Get("email"))
	default:
		writeErr(w, errs.ErrBadRequest)
		return
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewContact(c))
}

func (s *Server) handleUpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	cs, err := s.contacts.UpcomingBirthdays(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewContacts(cs))
}
