package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/drivenpass/drivenpass-go/internal/middleware"
	"github.com/drivenpass/drivenpass-go/internal/model"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Gate        middleware.Authenticator
	Auth        *AuthHandler
	Credentials *SecretHandler[*model.Credential, model.CreateCredentialRequest]
	Cards       *SecretHandler[*model.Card, model.CreateCardRequest]
	Notes       *SecretHandler[*model.Note, model.CreateNoteRequest]
	Erase       *EraseHandler
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// NewRouter builds the HTTP routes of the vault.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	r.Post("/users/sign-up", h.Auth.HandleSignUp)
	r.Post("/users/sign-in", h.Auth.HandleSignIn)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(h.Gate))
		r.Get("/users/me", h.Auth.HandleMe)
		r.Route("/credentials", h.Credentials.Routes)
		r.Route("/cards", h.Cards.Routes)
		r.Route("/notes", h.Notes.Routes)
		r.Delete("/erase", h.Erase.HandleErase)
	})

	return r
}
