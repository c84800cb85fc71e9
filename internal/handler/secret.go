package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/drivenpass/drivenpass-go/internal/middleware"
	"github.com/drivenpass/drivenpass-go/internal/model"
)

// SecretService is what SecretHandler needs from a vault of one kind.
type SecretService[S model.Secret] interface {
	Create(ctx context.Context, s S, ownerID int64) (S, error)
	ListAll(ctx context.Context, ownerID int64) ([]S, error)
	FindOne(ctx context.Context, id, ownerID int64) (S, error)
	Remove(ctx context.Context, id, ownerID int64) error
}

// CreateRequest is a create body that validates itself and builds the
// record to store.
type CreateRequest[S model.Secret] interface {
	Validate() error
	Record() S
}

// SecretHandler serves the CRUD routes of one secret kind.
type SecretHandler[S model.Secret, R CreateRequest[S]] struct {
	service SecretService[S]
}

// NewSecretHandler creates a handler whose create body is decoded into R.
func NewSecretHandler[S model.Secret, R CreateRequest[S]](svc SecretService[S]) *SecretHandler[S, R] {
	return &SecretHandler[S, R]{service: svc}
}

// Routes mounts the handler on r. All routes expect an authenticated user.
func (h *SecretHandler[S, R]) Routes(r chi.Router) {
	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	r.Delete("/{id}", h.HandleDelete)
}

// HandleCreate handles POST requests. The response keeps sealed fields as
// envelopes.
func (h *SecretHandler[S, R]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req R
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.service.Create(r.Context(), req.Record(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleList handles GET requests for the whole collection.
func (h *SecretHandler[S, R]) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	items, err := h.service.ListAll(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// HandleGet handles GET /{id} requests.
func (h *SecretHandler[S, R]) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse("id must be a positive integer"))
		return
	}

	item, err := h.service.FindOne(r.Context(), id, user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// HandleDelete handles DELETE /{id} requests.
func (h *SecretHandler[S, R]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse("id must be a positive integer"))
		return
	}

	if err := h.service.Remove(r.Context(), id, user.ID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func requireUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusForbidden, errorResponse("forbidden resource"))
	}
	return user, ok
}
