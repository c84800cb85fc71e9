package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/drivenpass/drivenpass-go/internal/crypto"
	"github.com/drivenpass/drivenpass-go/internal/model"
	"github.com/drivenpass/drivenpass-go/internal/repository"
)

// UserStore is the identity collaborator.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

// TokenVerifier turns a bearer token back into the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (crypto.Identity, error)
}

const bearerPrefix = "Bearer "

// IdentityGate is the authentication boundary in front of every vault
// operation.
type IdentityGate struct {
	tokens TokenVerifier
	users  UserStore
}

// NewIdentityGate creates a new IdentityGate.
func NewIdentityGate(tokens TokenVerifier, users UserStore) *IdentityGate {
	return &IdentityGate{tokens: tokens, users: users}
}

// Authenticate resolves an Authorization header value to a live user. Any
// failure, including a token whose user no longer exists, reports false and
// never an error.
func (g *IdentityGate) Authenticate(ctx context.Context, header string) (*model.User, bool) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || token == "" {
		return nil, false
	}

	identity, err := g.tokens.Verify(token)
	if err != nil {
		return nil, false
	}

	user, err := g.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			slog.ErrorContext(ctx, "identity lookup failed", "user_id", identity.UserID, "error", err)
		}
		return nil, false
	}

	return user, true
}

// VerifyPassword reports whether plaintext matches the stored argon2id hash.
func (g *IdentityGate) VerifyPassword(plaintext, storedHash string) bool {
	return crypto.VerifyPassword(plaintext, storedHash)
}
