package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTokenSecret = "test-secret"

func newTestTokenService(clock clockwork.Clock) *TokenService {
	return NewTokenService(testTokenSecret, 7*24*time.Hour, clock)
}

func signClaims(t *testing.T, claims jwt.Claims, method jwt.SigningMethod, key any) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestTokenService_IssueVerify(t *testing.T) {
	svc := newTestTokenService(clockwork.NewFakeClock())

	token, err := svc.Issue(42, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.UserID)
	assert.Equal(t, "user@example.com", identity.Email)
}

func TestTokenService_FixedClaims(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc := newTestTokenService(clock)

	token, err := svc.Issue(7, "a@b.io")
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{TokenAudience}, claims.Audience)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "a@b.io", claims.Email)
	assert.Equal(t, clock.Now().Add(7*24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestTokenService_ValidJustBeforeExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc := newTestTokenService(clock)

	token, err := svc.Issue(1, "u@x.io")
	require.NoError(t, err)

	clock.Advance(7*24*time.Hour - time.Minute)
	_, err = svc.Verify(token)
	assert.NoError(t, err)
}

func TestTokenService_Expired(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc := newTestTokenService(clock)

	token, err := svc.Issue(1, "u@x.io")
	require.NoError(t, err)

	clock.Advance(7*24*time.Hour + time.Second)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_WrongSecret(t *testing.T) {
	clock := clockwork.NewFakeClock()
	token, err := NewTokenService("correct-secret", time.Hour, clock).Issue(1, "u@x.io")
	require.NoError(t, err)

	_, err = NewTokenService("wrong-secret", time.Hour, clock).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsForeignClaims(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc := newTestTokenService(clock)
	now := clock.Now()

	base := func() Claims {
		return Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    TokenIssuer,
				Audience:  jwt.ClaimStrings{TokenAudience},
				Subject:   "42",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
			Email: "u@x.io",
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Claims)
	}{
		{"wrong issuer", func(c *Claims) { c.Issuer = "someone-else" }},
		{"wrong audience", func(c *Claims) { c.Audience = jwt.ClaimStrings{"admins"} }},
		{"missing expiry", func(c *Claims) { c.ExpiresAt = nil }},
		{"non numeric subject", func(c *Claims) { c.Subject = "abc" }},
		{"empty subject", func(c *Claims) { c.Subject = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := base()
			tt.mutate(&claims)
			token := signClaims(t, claims, jwt.SigningMethodHS256, []byte(testTokenSecret))

			_, err := svc.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc := newTestTokenService(clock)

	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Audience:  jwt.ClaimStrings{TokenAudience},
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
	}}
	token := signClaims(t, claims, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)

	_, err := svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Malformed(t *testing.T) {
	svc := newTestTokenService(clockwork.NewFakeClock())

	for _, token := range []string{"", "not-a-valid-token", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}
}
