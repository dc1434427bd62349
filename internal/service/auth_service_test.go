package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefulapp/plateful-server/internal/auth"
	domainerrors "github.com/platefulapp/plateful-server/internal/errors"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.registerUser(t, "cook@example.com")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "cook@example.com", user.Email)

	gotUser, pair, err := env.auth.Login(ctx, LoginRequest{
		Email:    "cook@example.com",
		Password: "password123",
		Client:   auth.ClientInfo{Name: "Plateful Test", Platform: "CLI"},
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotUser.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	verified, claims, err := env.auth.VerifyAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterShortPasswordRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(context.Background(), RegisterRequest{
		Email:    "cook@example.com",
		Password: "pw",
	})
	require.Error(t, err)

	var coded *domainerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, domainerrors.CodeValidation, coded.Code)

	// Nothing was persisted; the email is still free.
	_, err = env.auth.Register(context.Background(), RegisterRequest{
		Email:    "cook@example.com",
		Password: "long enough",
	})
	assert.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	env.registerUser(t, "cook@example.com")

	_, err := env.auth.Register(context.Background(), RegisterRequest{
		Email:    "COOK@example.com",
		Password: "password123",
	})
	require.Error(t, err)

	var coded *domainerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, domainerrors.CodeConflict, coded.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	env.registerUser(t, "cook@example.com")

	_, _, err := env.auth.Login(context.Background(), LoginRequest{
		Email:    "cook@example.com",
		Password: "wrong password",
	}, "")
	require.Error(t, err)

	var coded *domainerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, domainerrors.CodeInvalidCredentials, coded.Code)
}

func TestLoginUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	}, "")
	require.Error(t, err)

	var coded *domainerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, domainerrors.CodeInvalidCredentials, coded.Code)
}

func TestRefreshRotatesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "cook@example.com")
	_, pair, err := env.auth.Login(ctx, LoginRequest{
		Email:    "cook@example.com",
		Password: "password123",
	}, "")
	require.NoError(t, err)

	rotated, err := env.auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)
	assert.Equal(t, pair.SessionID, rotated.SessionID)

	// The spent token no longer works.
	_, err = env.auth.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)

	var coded *domainerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, domainerrors.CodeUnauthorized, coded.Code)

	// The rotated one does.
	_, err = env.auth.Refresh(ctx, rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestLogoutEndsSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "cook@example.com")
	_, pair, err := env.auth.Login(ctx, LoginRequest{
		Email:    "cook@example.com",
		Password: "password123",
	}, "")
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, pair.SessionID))

	_, err = env.auth.Refresh(ctx, pair.RefreshToken)
	assert.Error(t, err)

	// Logout is idempotent.
	assert.NoError(t, env.auth.Logout(ctx, pair.SessionID))
}

func TestUpdateUserPasswordRehashes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.registerUser(t, "cook@example.com")

	newPassword := "a different password"
	_, err := env.users.Update(ctx, user.ID, UpdateUserRequest{Password: &newPassword})
	require.NoError(t, err)

	_, _, err = env.auth.Login(ctx, LoginRequest{
		Email:    "cook@example.com",
		Password: "password123",
	}, "")
	assert.Error(t, err)

	_, _, err = env.auth.Login(ctx, LoginRequest{
		Email:    "cook@example.com",
		Password: newPassword,
	}, "")
	assert.NoError(t, err)
}
