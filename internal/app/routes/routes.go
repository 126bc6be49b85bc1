package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/yatube/internal/app/controllers"
	"github.com/yigit/yatube/internal/middleware"
)

// Controllers bundles every page handler
type Controllers struct {
	Feed   *controllers.FeedController
	Post   *controllers.PostController
	Follow *controllers.FollowController
	Auth   *controllers.AuthController
	About  *controllers.AboutController
	Health *controllers.HealthController
}

// Options holds the middleware attached to individual routes. A nil handler
// is skipped.
type Options struct {
	// PageCache fronts the global feed
	PageCache gin.HandlerFunc
	// WriteLimit guards every form submission
	WriteLimit gin.HandlerFunc
}

func chain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

// page registers a read-only page for GET and HEAD
func page(r gin.IRoutes, path string, handlers ...gin.HandlerFunc) {
	r.GET(path, handlers...)
	r.HEAD(path, handlers...)
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrls *Controllers,
	authMiddleware *middleware.AuthMiddleware,
	opts Options,
) {
	// --- Public pages ---
	page(router, "/", chain(opts.PageCache, ctrls.Feed.Index)...)
	page(router, "/group/:slug/", ctrls.Feed.GroupPosts)
	page(router, "/profile/:username/", ctrls.Feed.Profile)
	page(router, "/posts/:id/", ctrls.Post.Detail)

	about := router.Group("/about")
	{
		page(about, "/author/", ctrls.About.Author)
		page(about, "/tech/", ctrls.About.Tech)
	}

	// --- Accounts ---
	auth := router.Group("/auth")
	{
		page(auth, "/signup/", ctrls.Auth.SignupForm)
		auth.POST("/signup/", chain(opts.WriteLimit, ctrls.Auth.Signup)...)
		page(auth, "/login/", ctrls.Auth.LoginForm)
		auth.POST("/login/", chain(opts.WriteLimit, ctrls.Auth.Login)...)
		auth.GET("/logout/", ctrls.Auth.Logout)
	}

	// --- Login required ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.LoginRequired())
	{
		authenticated.GET("/create/", ctrls.Post.CreateForm)
		authenticated.POST("/create/", chain(opts.WriteLimit, ctrls.Post.Create)...)
		authenticated.GET("/posts/:id/edit/", ctrls.Post.EditForm)
		authenticated.POST("/posts/:id/edit/", chain(opts.WriteLimit, ctrls.Post.Edit)...)
		authenticated.GET("/posts/:id/comment/", ctrls.Post.CommentRedirect)
		authenticated.POST("/posts/:id/comment/", chain(opts.WriteLimit, ctrls.Post.AddComment)...)

		page(authenticated, "/follow/", ctrls.Feed.FollowIndex)
		authenticated.GET("/profile/:username/follow/", ctrls.Follow.Follow)
		authenticated.GET("/profile/:username/unfollow/", ctrls.Follow.Unfollow)
	}

	page(router, "/healthz", ctrls.Health.Healthz)
	router.NoRoute(middleware.NotFound())
}
