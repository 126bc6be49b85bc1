package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/yatube/internal/app/services"
	"github.com/yigit/yatube/internal/middleware"
)

// FollowController toggles follow edges from the profile page
type FollowController struct {
	followService services.FollowService
	logger        zerolog.Logger
}

// NewFollowController creates a new FollowController
func NewFollowController(followService services.FollowService, logger zerolog.Logger) *FollowController {
	return &FollowController{
		followService: followService,
		logger:        logger,
	}
}

// Follow subscribes the viewer to the author and returns to the profile
func (fc *FollowController) Follow(c *gin.Context) {
	author, err := fc.followService.Follow(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("username"))
	if err != nil {
		middleware.HandlePageError(c, err, fc.logger)
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}

// Unfollow removes the subscription and returns to the profile
func (fc *FollowController) Unfollow(c *gin.Context) {
	author, err := fc.followService.Unfollow(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("username"))
	if err != nil {
		middleware.HandlePageError(c, err, fc.logger)
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}
