package services

import (
	"context"
	"errors"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/app/models/dto"
	"github.com/yigit/yatube/internal/app/repositories"
	"github.com/yigit/yatube/internal/pkg/apperrors"
	"github.com/yigit/yatube/internal/pkg/auth"
	"github.com/yigit/yatube/internal/pkg/validation"
)

// Session is an issued login session
type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// AuthService registers accounts and opens login sessions
type AuthService interface {
	Register(ctx context.Context, form *dto.SignupForm) (*models.User, error)
	Login(ctx context.Context, form *dto.LoginForm) (*Session, error)
}

type authServiceImpl struct {
	userRepo     repositories.UserStore
	jwtService   *auth.JWTService
	passwordCost int
	logger       zerolog.Logger
}

// AuthOption customizes the auth service
type AuthOption func(*authServiceImpl)

// WithPasswordCost overrides the bcrypt cost used for new passwords
func WithPasswordCost(cost int) AuthOption {
	return func(s *authServiceImpl) {
		s.passwordCost = cost
	}
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserStore, jwtService *auth.JWTService, logger zerolog.Logger, opts ...AuthOption) AuthService {
	s := &authServiceImpl{
		userRepo:     userRepo,
		jwtService:   jwtService,
		passwordCost: auth.BcryptCost,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validatePassword(password string) apperrors.FieldErrors {
	fields := apperrors.FieldErrors{}
	numeric := password != ""
	for _, r := range password {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		fields.Add("password2", "This password is entirely numeric.")
	}
	return fields
}

// Register validates the signup form and creates the account. It does not
// log the new user in.
func (s *authServiceImpl) Register(ctx context.Context, form *dto.SignupForm) (*models.User, error) {
	form.Normalize()

	fields := apperrors.FieldErrors{}
	if err := validation.Form(form); err != nil {
		formFields, ok := apperrors.AsValidationError(err)
		if !ok {
			return nil, err
		}
		fields.Merge(formFields)
	}
	if !fields.Has("password1") && !fields.Has("password2") {
		fields.Merge(validatePassword(form.Password1))
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields)
	}

	hash, err := auth.HashPasswordWithCost(form.Password1, s.passwordCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Username:  form.Username,
		Password:  hash,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUsernameTaken) {
			return nil, apperrors.NewFieldError("username", "A user with that username already exists.")
		}
		s.logger.Error().Err(err).Str("username", form.Username).Msg("Failed to create user")
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User registered")
	return user, nil
}

// Login checks the credentials and issues a session token
func (s *authServiceImpl) Login(ctx context.Context, form *dto.LoginForm) (*Session, error) {
	form.Normalize()
	if err := validation.Form(form); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, form.Username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.logger.Debug().Str("username", form.Username).Msg("Login for unknown username")
			return nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("username", form.Username).Msg("Failed to load user for login")
		return nil, err
	}

	if !auth.CheckPassword(user.Password, form.Password) {
		s.logger.Debug().Int64("userID", user.ID).Msg("Login with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateSessionToken(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to issue session token")
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
