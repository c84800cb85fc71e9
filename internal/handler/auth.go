package handler

import (
	"context"
	"net/http"

	"github.com/drivenpass/drivenpass-go/internal/middleware"
	"github.com/drivenpass/drivenpass-go/internal/model"
)

// AccountService is what AuthHandler needs from the account layer.
type AccountService interface {
	SignUp(ctx context.Context, req model.SignUpRequest) (model.UserResponse, error)
	SignIn(ctx context.Context, req model.SignInRequest) (model.TokenResponse, error)
	Me(user *model.User) model.UserResponse
}

// AuthHandler handles HTTP requests for account sign-up and sign-in.
type AuthHandler struct {
	service AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc AccountService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleSignUp handles POST /users/sign-up requests.
func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var req model.SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.SignUp(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleSignIn handles POST /users/sign-in requests.
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req model.SignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.SignIn(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleMe handles GET /users/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusForbidden, errorResponse("forbidden resource"))
		return
	}

	writeJSON(w, http.StatusOK, h.service.Me(user))
}
