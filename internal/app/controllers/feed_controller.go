package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/yatube/internal/app/services"
	"github.com/yigit/yatube/internal/middleware"
	"github.com/yigit/yatube/internal/pkg/helpers"
	"github.com/yigit/yatube/internal/web"
)

// FeedController renders the paginated post listings
type FeedController struct {
	feedService services.FeedService
	logger      zerolog.Logger
}

// NewFeedController creates a new FeedController
func NewFeedController(feedService services.FeedService, logger zerolog.Logger) *FeedController {
	return &FeedController{
		feedService: feedService,
		logger:      logger,
	}
}

// Index renders the global feed
func (fc *FeedController) Index(c *gin.Context) {
	page, err := fc.feedService.GlobalFeed(c.Request.Context(), helpers.PageParam(c))
	if err != nil {
		middleware.HandlePageError(c, err, fc.logger)
		return
	}

	c.HTML(http.StatusOK, web.PageIndex, web.Data(c, gin.H{
		"title": "Latest updates on the site",
		"page":  page,
	}))
}

// GroupPosts renders one group's feed
func (fc *FeedController) GroupPosts(c *gin.Context) {
	groupPage, err := fc.feedService.GroupFeed(c.Request.Context(), c.Param("slug"), helpers.PageParam(c))
	if err != nil {
		middleware.HandlePageError(c, err, fc.logger)
		return
	}

	c.HTML(http.StatusOK, web.PageGroupList, web.Data(c, gin.H{
		"group": groupPage.Group,
		"page":  &groupPage.FeedPage,
	}))
}

// Profile renders an author's feed with the follow toggle
func (fc *FeedController) Profile(c *gin.Context) {
	profile, err := fc.feedService.ProfileFeed(
		c.Request.Context(),
		c.Param("username"),
		helpers.PageParam(c),
		middleware.CurrentIdentity(c),
	)
	if err != nil {
		middleware.HandlePageError(c, err, fc.logger)
		return
	}

	c.HTML(http.StatusOK, web.PageProfile, web.Data(c, gin.H{
		"profile":   profile,
		"author":    profile.Author,
		"following": profile.Following,
	}))
}

// FollowIndex renders the posts of every author the viewer follows
func (fc *FeedController) FollowIndex(c *gin.Context) {
	page, err := fc.feedService.FollowFeed(c.Request.Context(), middleware.CurrentIdentity(c), helpers.PageParam(c))
	if err != nil {
		middleware.HandlePageError(c, err, fc.logger)
		return
	}

	c.HTML(http.StatusOK, web.PageFollow, web.Data(c, gin.H{
		"title": "Posts by the authors you follow",
		"page":  page,
	}))
}
