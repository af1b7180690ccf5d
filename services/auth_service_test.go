package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservation-backend/models"
)

func newAuth(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	svc, err := NewAuthService(db, nil, []byte("test-secret"))
	require.NoError(t, err)
	return svc
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuth(t)

	user, err := svc.Register("Jan Nowak", "Jan.Nowak@Example.com ", "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, "jan.nowak@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "Secret123!", user.Password)

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Register("Other", "jan.nowak@example.com", "Another123!")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("login issues a verifiable token", func(t *testing.T) {
		token, loggedIn, err := svc.Login("jan.nowak@example.com", "Secret123!")
		require.NoError(t, err)
		assert.Equal(t, user.ID, loggedIn.ID)

		actor, err := svc.VerifyToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, actor.UserID)
		assert.Equal(t, models.RoleUser, actor.Role)
		assert.False(t, actor.IsAdmin())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login("jan.nowak@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, _, err := svc.Login("nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc := newAuth(t)

	_, err := svc.VerifyToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyToken_WrongKey(t *testing.T) {
	svc := newAuth(t)
	user, err := svc.Register("Jan", "jan@example.com", "Secret123!")
	require.NoError(t, err)
	token, err := svc.issueToken(user)
	require.NoError(t, err)

	other, err := NewAuthService(svc.DB, nil, []byte("different-secret"))
	require.NoError(t, err)
	_, err = other.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestLogout_WithoutRedisIsNoop(t *testing.T) {
	svc := newAuth(t)
	user, err := svc.Register("Jan", "jan@example.com", "Secret123!")
	require.NoError(t, err)
	token, err := svc.issueToken(user)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	// without a revocation list the token stays valid until expiry
	_, err = svc.VerifyToken(context.Background(), token)
	assert.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	svc := newAuth(t)
	_, err := svc.Register("Jan", "jan@example.com", "OldSecret1!")
	require.NoError(t, err)

	token, err := svc.ForgotPassword("jan@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.ForgotPassword("nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("wrong token is rejected", func(t *testing.T) {
		err := svc.ResetPassword("jan@example.com", "bogus", "NewSecret1!")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("valid token swaps the password once", func(t *testing.T) {
		require.NoError(t, svc.ResetPassword("jan@example.com", token, "NewSecret1!"))

		_, _, err := svc.Login("jan@example.com", "OldSecret1!")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, _, err = svc.Login("jan@example.com", "NewSecret1!")
		assert.NoError(t, err)

		// token is cleared after use
		err = svc.ResetPassword("jan@example.com", token, "ThirdSecret1!")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
