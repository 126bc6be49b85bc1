package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/pkg/apperrors"
)

func newTestService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		Expiration:  time.Hour,
		TokenIssuer: "yatube.test",
	})
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	user := &models.User{ID: 7, Username: "leo"}

	token, expiresAt, err := svc.GenerateSessionToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "leo", claims.Username)
}

func TestValidateTokenRejects(t *testing.T) {
	svc := newTestService()
	user := &models.User{ID: 7, Username: "leo"}
	token, _, err := svc.GenerateSessionToken(user)
	require.NoError(t, err)

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.ValidateToken("")
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(JWTConfig{SecretKey: "other", Expiration: time.Hour, TokenIssuer: "yatube.test"})
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("tampered token", func(t *testing.T) {
		_, err := svc.ValidateToken(token + "x")
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("expired token", func(t *testing.T) {
		past := newTestService()
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		old, _, err := past.GenerateSessionToken(user)
		require.NoError(t, err)

		_, err = svc.ValidateToken(old)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("unsigned token", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 7, Username: "leo"})
		unsigned, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(unsigned)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPasswordWithCost("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))
}
