package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivenpass/drivenpass-go/internal/model"
)

const strongPassword = "S3cure!Passw0rd"

func TestSignUp(t *testing.T) {
	f := newVaultFixture(newTestCodec(t))
	ctx := context.Background()

	resp, err := f.auth.SignUp(ctx, model.SignUpRequest{Email: "me@example.com", Password: strongPassword})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "me@example.com", resp.Email)

	stored, err := f.users.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, strongPassword, stored.PasswordHash)
	assert.True(t, f.gate.VerifyPassword(strongPassword, stored.PasswordHash))
}

func TestSignUp_EmailTaken(t *testing.T) {
	f := newVaultFixture(newTestCodec(t))
	ctx := context.Background()

	_, err := f.auth.SignUp(ctx, model.SignUpRequest{Email: "me@example.com", Password: strongPassword})
	require.NoError(t, err)

	_, err = f.auth.SignUp(ctx, model.SignUpRequest{Email: "me@example.com", Password: strongPassword})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUp_Rejections(t *testing.T) {
	f := newVaultFixture(newTestCodec(t))

	tests := []struct {
		name      string
		req       model.SignUpRequest
		wantField string
	}{
		{"missing email", model.SignUpRequest{Password: strongPassword}, "email"},
		{"bad email", model.SignUpRequest{Email: "me", Password: strongPassword}, "email"},
		{"missing password", model.SignUpRequest{Email: "me@example.com"}, "password"},
		{"short password", model.SignUpRequest{Email: "me@example.com", Password: "S3c!"}, "password"},
		{"no symbol", model.SignUpRequest{Email: "me@example.com", Password: "S3curePassw0rd"}, "password"},
		{"no upper", model.SignUpRequest{Email: "me@example.com", Password: "s3cure!passw0rd"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.SignUp(context.Background(), tt.req)
			require.ErrorIs(t, err, model.ErrValidation)

			var ve *model.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
	assert.Empty(t, f.users.rows, "rejected sign-ups store nothing")
}

func TestSignIn(t *testing.T) {
	f := newVaultFixture(newTestCodec(t))
	ctx := context.Background()
	id := f.signUp("me@example.com", strongPassword)

	resp, err := f.auth.SignIn(ctx, model.SignInRequest{Email: "me@example.com", Password: strongPassword})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	identity, err := f.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, id, identity.UserID)
	assert.Equal(t, "me@example.com", identity.Email)

	user, ok := f.gate.Authenticate(ctx, "Bearer "+resp.Token)
	require.True(t, ok)
	assert.Equal(t, "me@example.com", f.auth.Me(user).Email)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	f := newVaultFixture(newTestCodec(t))
	f.signUp("me@example.com", strongPassword)

	_, err := f.auth.SignIn(context.Background(), model.SignInRequest{Email: "me@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.SignIn(context.Background(), model.SignInRequest{Email: "nobody@example.com", Password: strongPassword})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.SignIn(context.Background(), model.SignInRequest{Email: "me@example.com"})
	assert.ErrorIs(t, err, model.ErrValidation)
}
