package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/yatube/internal/pkg/apperrors"
	"github.com/yigit/yatube/internal/web"
)

// HandlePageError renders the error page matching err: the not-found family
// gets the 404 page and everything else is logged and gets the 500 page
func HandlePageError(c *gin.Context, err error, logger zerolog.Logger) {
	switch {
	case apperrors.IsNotFound(err):
		RenderNotFound(c)
	case errors.Is(err, apperrors.ErrBadRequest):
		logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Bad request")
		c.HTML(http.StatusBadRequest, web.PageServerErr, web.Data(c, nil))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.HTML(http.StatusInternalServerError, web.PageServerErr, web.Data(c, nil))
	}
	c.Abort()
}

// RenderNotFound writes the 404 page
func RenderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, web.PageNotFound, web.Data(c, nil))
}

// NotFound is the NoRoute handler
func NotFound() gin.HandlerFunc {
	return RenderNotFound
}

// Recovery turns panics into the 500 page
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().
			Interface("panic", recovered).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		c.HTML(http.StatusInternalServerError, web.PageServerErr, web.Data(c, nil))
		c.Abort()
	})
}
