package handler

import (
	"context"
	"net/http"

	"github.com/drivenpass/drivenpass-go/internal/model"
)

// AccountEraser deletes an account after re-checking its password.
type AccountEraser interface {
	EraseAccount(ctx context.Context, ownerID int64, password string) error
}

// EraseHandler handles account erasure.
type EraseHandler struct {
	eraser AccountEraser
}

// NewEraseHandler creates a new EraseHandler.
func NewEraseHandler(eraser AccountEraser) *EraseHandler {
	return &EraseHandler{eraser: eraser}
}

// HandleErase handles DELETE /erase requests.
func (h *EraseHandler) HandleErase(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.EraseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.eraser.EraseAccount(r.Context(), user.ID, req.Password); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
