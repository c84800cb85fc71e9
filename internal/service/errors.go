package service

import "errors"

var (
	ErrConflict           = errors.New("record with this name already exists")
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("record belongs to another user")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already taken")
)
