package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/yatube/internal/app/auth"
	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/app/models/dto"
	"github.com/yigit/yatube/internal/app/services"
	"github.com/yigit/yatube/internal/middleware"
	"github.com/yigit/yatube/internal/pkg/apperrors"
	"github.com/yigit/yatube/internal/web"
)

// PostController handles the post detail page, the create/edit forms and
// comment submission
type PostController struct {
	postService    services.PostService
	commentService services.CommentService
	logger         zerolog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService, commentService services.CommentService, logger zerolog.Logger) *PostController {
	return &PostController{
		postService:    postService,
		commentService: commentService,
		logger:         logger,
	}
}

// Detail renders a post with its comment thread
func (pc *PostController) Detail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		middleware.RenderNotFound(c)
		return
	}
	pc.renderDetail(c, id, &dto.CommentForm{}, nil)
}

func (pc *PostController) renderDetail(c *gin.Context, id int64, form *dto.CommentForm, fieldErrors apperrors.FieldErrors) {
	detail, err := pc.postService.GetDetail(c.Request.Context(), id, middleware.CurrentIdentity(c))
	if err != nil {
		middleware.HandlePageError(c, err, pc.logger)
		return
	}

	c.HTML(http.StatusOK, web.PagePostDetail, web.Data(c, gin.H{
		"detail": detail,
		"form":   form,
		"errors": fieldErrors,
	}))
}

// CreateForm renders an empty post form
func (pc *PostController) CreateForm(c *gin.Context) {
	pc.renderForm(c, &dto.PostForm{}, nil, nil)
}

// Create publishes a post and redirects to the author's profile
func (pc *PostController) Create(c *gin.Context) {
	var form dto.PostForm
	if err := middleware.BindForm(c, &form); err != nil {
		middleware.HandlePageError(c, err, pc.logger)
		return
	}
	form.Image = uploadedFile(c, "image")

	identity := middleware.CurrentIdentity(c)
	_, err := pc.postService.Create(c.Request.Context(), identity, &form)
	if err != nil {
		if fields, ok := apperrors.AsValidationError(err); ok {
			pc.renderForm(c, &form, nil, fields)
			return
		}
		middleware.HandlePageError(c, err, pc.logger)
		return
	}

	c.Redirect(http.StatusFound, profileURL(identity.Username))
}

// EditForm renders the post form filled with the current values. Anyone
// but the author is sent back to the detail page.
func (pc *PostController) EditForm(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		middleware.RenderNotFound(c)
		return
	}

	post, err := pc.postService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err, pc.logger)
		return
	}
	if !appauth.CanEditPost(middleware.CurrentIdentity(c), post) {
		c.Redirect(http.StatusFound, postURL(post.ID))
		return
	}

	form := &dto.PostForm{Text: post.Text, Group: groupIDString(post)}
	pc.renderForm(c, form, post, nil)
}

// Edit saves the post form and redirects to the detail page
func (pc *PostController) Edit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		middleware.RenderNotFound(c)
		return
	}

	var form dto.PostForm
	if err := middleware.BindForm(c, &form); err != nil {
		middleware.HandlePageError(c, err, pc.logger)
		return
	}
	form.Image = uploadedFile(c, "image")
	form.ImageClear = c.PostForm("image-clear") != ""

	post, err := pc.postService.Update(c.Request.Context(), middleware.CurrentIdentity(c), id, &form)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPermissionDenied):
			c.Redirect(http.StatusFound, postURL(id))
		case errors.Is(err, apperrors.ErrValidationFailed):
			fields, _ := apperrors.AsValidationError(err)
			current, getErr := pc.postService.Get(c.Request.Context(), id)
			if getErr != nil {
				middleware.HandlePageError(c, getErr, pc.logger)
				return
			}
			pc.renderForm(c, &form, current, fields)
		default:
			middleware.HandlePageError(c, err, pc.logger)
		}
		return
	}

	c.Redirect(http.StatusFound, postURL(post.ID))
}

// renderForm draws the create/edit page; post is nil when creating
func (pc *PostController) renderForm(c *gin.Context, form *dto.PostForm, post *models.Post, fieldErrors apperrors.FieldErrors) {
	groups, err := pc.postService.ListGroups(c.Request.Context())
	if err != nil {
		middleware.HandlePageError(c, err, pc.logger)
		return
	}

	selected, _ := form.GroupID()
	c.HTML(http.StatusOK, web.PageCreatePost, web.Data(c, gin.H{
		"form":           form,
		"post":           post,
		"groups":         groups,
		"selected_group": selected,
		"is_edit":        post != nil,
		"errors":         fieldErrors,
	}))
}

// AddComment stores a comment and redirects to the post. An invalid
// comment re-renders the detail page with the error.
func (pc *PostController) AddComment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		middleware.RenderNotFound(c)
		return
	}

	var form dto.CommentForm
	if err := middleware.BindForm(c, &form); err != nil {
		middleware.HandlePageError(c, err, pc.logger)
		return
	}

	_, err := pc.commentService.AddComment(c.Request.Context(), middleware.CurrentIdentity(c), id, &form)
	if err != nil {
		if fields, ok := apperrors.AsValidationError(err); ok {
			pc.renderDetail(c, id, &form, fields)
			return
		}
		middleware.HandlePageError(c, err, pc.logger)
		return
	}

	c.Redirect(http.StatusFound, postURL(id))
}

// CommentRedirect sends a GET on the comment endpoint to the post
func (pc *PostController) CommentRedirect(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		middleware.RenderNotFound(c)
		return
	}
	c.Redirect(http.StatusFound, postURL(id))
}
