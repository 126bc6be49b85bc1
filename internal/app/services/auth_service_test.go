package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/yatube/internal/app/models/dto"
	"github.com/yigit/yatube/internal/app/repositories/memory"
	"github.com/yigit/yatube/internal/pkg/apperrors"
	"github.com/yigit/yatube/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (AuthService, *auth.JWTService) {
	t.Helper()
	repos := memory.NewRepositories()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", Expiration: time.Hour, TokenIssuer: "yatube-test"})
	return NewAuthService(repos.Users, jwtService, zerolog.Nop(), WithPasswordCost(bcrypt.MinCost)), jwtService
}

func signup(username string) *dto.SignupForm {
	return &dto.SignupForm{
		FirstName: "Leo",
		LastName:  "Tolstoy",
		Username:  username,
		Password1: "war-and-peace",
		Password2: "war-and-peace",
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, signup("leo"))
	require.NoError(t, err)
	assert.Equal(t, "leo", user.Username)
	assert.NotEqual(t, "war-and-peace", user.Password)

	t.Run("taken username", func(t *testing.T) {
		_, err := svc.Register(ctx, signup("leo"))
		fields, ok := apperrors.AsValidationError(err)
		require.True(t, ok)
		assert.True(t, fields.Has("username"))
	})

	t.Run("invalid username", func(t *testing.T) {
		_, err := svc.Register(ctx, signup("with space"))
		fields, ok := apperrors.AsValidationError(err)
		require.True(t, ok)
		assert.True(t, fields.Has("username"))
	})

	t.Run("password mismatch and numeric", func(t *testing.T) {
		form := signup("anna")
		form.Password2 = "different-one"
		_, err := svc.Register(ctx, form)
		fields, ok := apperrors.AsValidationError(err)
		require.True(t, ok)
		assert.True(t, fields.Has("password2"))

		form = signup("anna")
		form.Password1, form.Password2 = "1234567890", "1234567890"
		_, err = svc.Register(ctx, form)
		fields, ok = apperrors.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"This password is entirely numeric."}, fields["password2"])
	})

	t.Run("short password", func(t *testing.T) {
		form := signup("anna")
		form.Password1, form.Password2 = "short", "short"
		_, err := svc.Register(ctx, form)
		fields, ok := apperrors.AsValidationError(err)
		require.True(t, ok)
		assert.True(t, fields.Has("password1"))
	})
}

func TestAuthService_Login(t *testing.T) {
	svc, jwtService := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, signup("leo"))
	require.NoError(t, err)

	session, err := svc.Login(ctx, &dto.LoginForm{Username: "leo", Password: "war-and-peace"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.User.ID)

	claims, err := jwtService.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = svc.Login(ctx, &dto.LoginForm{Username: "leo", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginForm{Username: "ghost", Password: "whatever1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginForm{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
