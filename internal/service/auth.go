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

// TokenIssuer signs bearer tokens for a user.
type TokenIssuer interface {
	Issue(userID int64, email string) (string, error)
}

// AuthService handles account sign-up and sign-in.
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	gate   *IdentityGate
	hash   func(password string) (string, error)
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens TokenIssuer, gate *IdentityGate) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		gate:   gate,
		hash:   crypto.HashPassword,
	}
}

// SignUp creates a new account and returns its public view.
func (s *AuthService) SignUp(ctx context.Context, req model.SignUpRequest) (model.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return model.UserResponse{}, err
	}
	if err := crypto.CheckPasswordStrength(req.Password); err != nil {
		return model.UserResponse{}, &model.ValidationError{
			Field:   "password",
			Message: strings.TrimPrefix(err.Error(), "password "),
		}
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{Email: req.Email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	slog.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return user.Response(), nil
}

// SignIn checks the account password and issues a bearer token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, req model.SignInRequest) (model.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return model.TokenResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		return model.TokenResponse{}, err
	}

	if !s.gate.VerifyPassword(req.Password, user.PasswordHash) {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{Token: token}, nil
}

// Me returns the public view of an authenticated user.
func (s *AuthService) Me(user *model.User) model.UserResponse {
	return user.Response()
}
