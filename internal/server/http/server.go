package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/avolodin/contacthub/internal/repository"
	"github.com/avolodin/contacthub/internal/service"
	"github.com/avolodin/contacthub/internal/token"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth     service.AuthService
	contacts service.ContactService
	notes    service.NoteService
	users    repository.UserRepository
	codec    *token.Codec
	baseURL  string
	log      *zap.Logger
}

// New constructs the HTTP server with injected services. baseURL is
// embedded into confirmation links.
func New(
	auth service.AuthService,
	contacts service.ContactService,
	notes service.NoteService,
	users repository.UserRepository,
	codec *token.Codec,
	baseURL string,
	log *zap.Logger,
) *Server {
	return &Server{
		auth:     auth,
		contacts: contacts,
		notes:    notes,
		users:    users,
		codec:    codec,
		baseURL:  baseURL,
		log:      log,
	}
}

// Router assembles the chi mux with middleware and all routes.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(Recover(s.log))
	r.Use(Logging(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		r.Get("/refresh_token", s.handleRefresh)
		r.Get("/confirmed_email/{token}", s.handleConfirmEmail)
		r.Post("/request_email", s.handleRequestEmail)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Patch("/users/avatar", s.handleUpdateAvatar)

		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", s.handleCreateContact)
			r.Get("/", s.handleListContacts)
			r.Get("/search", s.handleSearchContacts)
			r.Get("/birthdays", s.handleUpcomingBirthdays)
			r.Get("/{id}", s.handleGetContact)
			r.Put("/{id}", s.handleUpdateContact)
			r.Delete("/{id}", s.handleDeleteContact)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Post("/", s.handleCreateNote)
			r.Get("/", s.handleListNotes)
			r.Get("/{id}", s.handleGetNote)
			r.Put("/{id}", s.handleUpdateNote)
			r.Delete("/{id}", s.handleDeleteNote)
		})
	})

	return r
}
