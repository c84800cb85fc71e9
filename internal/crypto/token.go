package crypto

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

const (
	// TokenIssuer identifies this system as the token issuer.
	TokenIssuer = "Driven-pass"
	// TokenAudience identifies the user-token class.
	TokenAudience = "users"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents the JWT claims carried by a user bearer token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Identity is what a verified token says about its bearer.
type Identity struct {
	UserID int64
	Email  string
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
	clock    clockwork.Clock
}

func NewTokenService(secret string, lifetime time.Duration, clock clockwork.Clock) *TokenService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TokenService{
		secret:   []byte(secret),
		lifetime: lifetime,
		clock:    clock,
	}
}

// Issue signs a token for userID carrying the email claim.
func (s *TokenService) Issue(userID int64, email string) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature, issuer, audience and expiry. Every failure,
// including a malformed token or subject, is reported as ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: userID, Email: claims.Email}, nil
}
