package model

import (
	"net/mail"
	"time"
)

// User represents an account in the database.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Response returns the public view of u (never the password hash).
func (u *User) Response() UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// SignUpRequest represents an account registration request.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SignUpRequest) Validate() error {
	if err := validEmail(r.Email); err != nil {
		return err
	}
	return required("password", r.Password)
}

// SignInRequest represents a sign-in request.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SignInRequest) Validate() error {
	if err := validEmail(r.Email); err != nil {
		return err
	}
	return required("password", r.Password)
}

// EraseRequest re-proves the account password before erasure.
type EraseRequest struct {
	Password string `json:"password"`
}

func (r EraseRequest) Validate() error {
	return required("password", r.Password)
}

// TokenResponse is returned by a successful sign-in.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse represents user data safe for API responses.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func validEmail(email string) error {
	if err := name("email", email); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "must be a valid email"}
	}
	return nil
}
