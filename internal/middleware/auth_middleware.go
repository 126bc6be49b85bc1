package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/yatube/internal/app/auth"
	"github.com/yigit/yatube/internal/app/repositories"
	"github.com/yigit/yatube/internal/pkg/auth"
)

// LoginPath is where LoginRequired sends anonymous visitors
const LoginPath = "/auth/login/"

const identityKey = "identity"

// SessionConfig describes the session cookie
type SessionConfig struct {
	CookieName string
	Secure     bool
}

// AuthMiddleware resolves the session cookie into a request identity
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   repositories.UserStore
	session    SessionConfig
	logger     zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo repositories.UserStore, session SessionConfig, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		session:    session,
		logger:     logger,
	}
}

// LoadIdentity reads the session cookie and, when it names an existing
// account, stores the identity on the request. A bad cookie is cleared and
// the request continues anonymously.
func (m *AuthMiddleware) LoadIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.session.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		identity, err := m.identityFromToken(c.Request.Context(), token)
		if err != nil {
			m.logger.Debug().Err(err).Msg("Discarding session cookie")
			m.ClearSessionCookie(c)
			c.Next()
			return
		}

		SetIdentity(c, identity)
		c.Next()
	}
}

func (m *AuthMiddleware) identityFromToken(ctx context.Context, token string) (*appauth.Identity, error) {
	claims, err := m.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	// the account may have been removed since the token was issued
	user, err := m.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return &appauth.Identity{UserID: user.ID, Username: user.Username}, nil
}

// LoginRequired redirects anonymous visitors to the login page, carrying the
// requested path in next
func (m *AuthMiddleware) LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentIdentity(c).IsAuthenticated() {
			c.Redirect(http.StatusFound, LoginURL(c.Request.URL))
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetSessionCookie stores token in the session cookie until expiresAt
func (m *AuthMiddleware) SetSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.session.CookieName, token, maxAge, "/", "", m.session.Secure, true)
}

// ClearSessionCookie expires the session cookie
func (m *AuthMiddleware) ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.session.CookieName, "", -1, "/", "", m.session.Secure, true)
}

// SetIdentity attaches identity to both the gin and the request context
func SetIdentity(c *gin.Context, identity *appauth.Identity) {
	c.Set(identityKey, identity)
	c.Request = c.Request.WithContext(appauth.WithIdentity(c.Request.Context(), identity))
}

// CurrentIdentity returns the request identity, nil for anonymous visitors
func CurrentIdentity(c *gin.Context) *appauth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(*appauth.Identity); ok {
			return identity
		}
	}
	return appauth.IdentityFromContext(c.Request.Context())
}

// LoginURL builds the login redirect for u. Slashes in next stay literal,
// so /create/ becomes /auth/login/?next=/create/
func LoginURL(u *url.URL) string {
	next := u.EscapedPath()
	if u.RawQuery != "" {
		next += "?" + u.RawQuery
	}
	return LoginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext returns next when it is a path on this site, fallback otherwise
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
