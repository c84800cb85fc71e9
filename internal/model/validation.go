package model

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest label, title, username, owner name or email
// the store accepts.
const MaxNameLength = 255

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports the first invalid field of a request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

func digits(field, value string, n int) error {
	if err := required(field, value); err != nil {
		return err
	}
	if n > 0 && len(value) != n {
		return &ValidationError{Field: field, Message: "must have " + strconv.Itoa(n) + " digits"}
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return &ValidationError{Field: field, Message: "must contain only digits"}
		}
	}
	return nil
}

// name is a required single-line field bounded by MaxNameLength characters.
func name(field, value string) error {
	if err := required(field, value); err != nil {
		return err
	}
	if utf8.RuneCountInString(value) > MaxNameLength {
		return &ValidationError{Field: field, Message: "must be at most " + strconv.Itoa(MaxNameLength) + " characters"}
	}
	return nil
}
