package crypto

import (
	"errors"
	"unicode"
)

// MinPasswordLength is the shortest account password accepted at sign-up.
const MinPasswordLength = 10

var (
	ErrPasswordTooShort = errors.New("password must be at least 10 characters")
	ErrPasswordNoLower  = errors.New("password must contain a lowercase letter")
	ErrPasswordNoUpper  = errors.New("password must contain an uppercase letter")
	ErrPasswordNoDigit  = errors.New("password must contain a number")
	ErrPasswordNoSymbol = errors.New("password must contain a symbol")
)

// CheckPasswordStrength enforces the account password policy: at least
// MinPasswordLength characters with one lowercase, one uppercase, one digit
// and one symbol. The first unmet rule is returned.
func CheckPasswordStrength(password string) error {
	var length int
	var lower, upper, digit, symbol bool

	for _, r := range password {
		length++
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r) || r == ' ':
			symbol = true
		}
	}

	switch {
	case length < MinPasswordLength:
		return ErrPasswordTooShort
	case !lower:
		return ErrPasswordNoLower
	case !upper:
		return ErrPasswordNoUpper
	case !digit:
		return ErrPasswordNoDigit
	case !symbol:
		return ErrPasswordNoSymbol
	}
	return nil
}
