package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/yatube/internal/app/models/dto"
	"github.com/yigit/yatube/internal/app/services"
	"github.com/yigit/yatube/internal/middleware"
	"github.com/yigit/yatube/internal/pkg/apperrors"
	"github.com/yigit/yatube/internal/web"
)

// MsgInvalidLogin is shown for a wrong username or password
const MsgInvalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

// AuthController handles signup, login and logout
type AuthController struct {
	authService    services.AuthService
	authMiddleware *middleware.AuthMiddleware
	logger         zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, authMiddleware *middleware.AuthMiddleware, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService:    authService,
		authMiddleware: authMiddleware,
		logger:         logger,
	}
}

// SignupForm renders the registration form
func (ac *AuthController) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageSignup, web.Data(c, gin.H{"form": &dto.SignupForm{}}))
}

// Signup creates the account and sends the visitor to the front page
func (ac *AuthController) Signup(c *gin.Context) {
	var form dto.SignupForm
	if err := middleware.BindForm(c, &form); err != nil {
		middleware.HandlePageError(c, err, ac.logger)
		return
	}

	user, err := ac.authService.Register(c.Request.Context(), &form)
	if err != nil {
		if fields, ok := apperrors.AsValidationError(err); ok {
			c.HTML(http.StatusOK, web.PageSignup, web.Data(c, gin.H{"form": &form, "errors": fields}))
			return
		}
		middleware.HandlePageError(c, err, ac.logger)
		return
	}

	ac.logger.Info().Int64("userID", user.ID).Msg("Signup completed")
	c.Redirect(http.StatusFound, "/")
}

// LoginForm renders the login form
func (ac *AuthController) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageLogin, web.Data(c, gin.H{
		"form": &dto.LoginForm{},
		"next": c.Query("next"),
	}))
}

// Login opens a session and redirects to next when it is local
func (ac *AuthController) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := middleware.BindForm(c, &form); err != nil {
		middleware.HandlePageError(c, err, ac.logger)
		return
	}
	next := c.PostForm("next")

	session, err := ac.authService.Login(c.Request.Context(), &form)
	if err != nil {
		var fields apperrors.FieldErrors
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			fields = apperrors.FieldErrors{}
			fields.Add("", MsgInvalidLogin)
		case errors.Is(err, apperrors.ErrValidationFailed):
			fields, _ = apperrors.AsValidationError(err)
		default:
			middleware.HandlePageError(c, err, ac.logger)
			return
		}
		c.HTML(http.StatusOK, web.PageLogin, web.Data(c, gin.H{
			"form":   &form,
			"next":   next,
			"errors": fields,
		}))
		return
	}

	ac.authMiddleware.SetSessionCookie(c, session.Token, session.ExpiresAt)
	c.Redirect(http.StatusFound, middleware.SafeNext(next, "/"))
}

// Logout drops the session cookie
func (ac *AuthController) Logout(c *gin.Context) {
	ac.authMiddleware.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}
