package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/drivenpass/drivenpass-go/internal/model"
)

type contextKey string

const userKey contextKey = "user"

// Authenticator resolves an Authorization header value to a live user.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*model.User, bool)
}

// Authenticate returns middleware that admits only requests whose bearer
// token resolves to an existing user. Every other request gets 403.
func Authenticate(gate Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := gate.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if !ok {
				writeJSONError(w, http.StatusForbidden, "forbidden resource")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
