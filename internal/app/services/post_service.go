package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/yatube/internal/app/auth"
	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/app/models/dto"
	"github.com/yigit/yatube/internal/app/repositories"
	"github.com/yigit/yatube/internal/pkg/apperrors"
	"github.com/yigit/yatube/internal/pkg/filestorage"
	"github.com/yigit/yatube/internal/pkg/validation"
)

// PostService reads single posts and runs the create/edit mutations
type PostService interface {
	// GetDetail loads a post with its author's post count and comment thread
	GetDetail(ctx context.Context, id int64, viewer *auth.Identity) (*dto.PostDetail, error)
	// Get loads a post for the edit form
	Get(ctx context.Context, id int64) (*models.Post, error)
	// Create publishes a post authored by author
	Create(ctx context.Context, author *auth.Identity, form *dto.PostForm) (*models.Post, error)
	// Update edits a post; anyone but its author gets ErrPermissionDenied
	Update(ctx context.Context, editor *auth.Identity, id int64, form *dto.PostForm) (*models.Post, error)
	// ListGroups returns the group choices of the post form
	ListGroups(ctx context.Context) ([]models.Group, error)
}

type postServiceImpl struct {
	postRepo    repositories.PostStore
	groupRepo   repositories.GroupStore
	commentRepo repositories.CommentStore
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.PostStore,
	groupRepo repositories.GroupStore,
	commentRepo repositories.CommentStore,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) PostService {
	return &postServiceImpl{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *postServiceImpl) GetDetail(ctx context.Context, id int64, viewer *auth.Identity) (*dto.PostDetail, error) {
	s.logger.Debug().Int64("postID", id).Msg("Getting post detail")

	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.postRepo.Count(ctx, repositories.ByAuthor(post.AuthorID))
	if err != nil {
		s.logger.Error().Err(err).Int64("authorID", post.AuthorID).Msg("Failed to count author posts")
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("postID", post.ID).Msg("Failed to list comments")
		return nil, err
	}

	return &dto.PostDetail{
		Post:            post,
		AuthorPostCount: count,
		Comments:        comments,
		CanEdit:         auth.CanEditPost(viewer, post),
	}, nil
}

func (s *postServiceImpl) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Error().Err(err).Int64("postID", id).Msg("Failed to get post")
		}
		return nil, err
	}
	return post, nil
}

func (s *postServiceImpl) ListGroups(ctx context.Context) ([]models.Group, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list groups")
		return nil, err
	}
	return groups, nil
}

// cleanForm validates form and resolves its group choice
func (s *postServiceImpl) cleanForm(ctx context.Context, form *dto.PostForm) (*int64, error) {
	form.Normalize()
	if err := validation.Form(form); err != nil {
		return nil, err
	}

	groupID, err := form.GroupID()
	if err != nil {
		return nil, apperrors.NewFieldError("group", validation.MsgInvalidChoice)
	}
	if groupID == nil {
		return nil, nil
	}

	if _, err := s.groupRepo.GetByID(ctx, *groupID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewFieldError("group", validation.MsgInvalidChoice)
		}
		s.logger.Error().Err(err).Int64("groupID", *groupID).Msg("Failed to check group")
		return nil, err
	}
	return groupID, nil
}

// saveImage stores the form's upload, if any, and returns its relative path
func (s *postServiceImpl) saveImage(form *dto.PostForm) (*string, error) {
	if form.Image == nil {
		return nil, nil
	}
	if form.ImageClear {
		return nil, apperrors.NewFieldError("image", "Please either submit a file or check the clear checkbox, not both.")
	}

	path, err := s.fileStorage.SaveImage(form.Image, ImageSubPath)
	if err != nil {
		if errors.Is(err, filestorage.ErrNotAnImage) {
			return nil, apperrors.NewFieldError("image", filestorage.ErrNotAnImage.Error())
		}
		s.logger.Error().Err(err).Msg("Failed to store post image")
		return nil, err
	}
	return &path, nil
}

func (s *postServiceImpl) discardImage(path *string) {
	if path == nil {
		return
	}
	if err := s.fileStorage.DeleteFile(*path); err != nil {
		s.logger.Warn().Err(err).Str("image", *path).Msg("Failed to remove post image")
	}
}

func (s *postServiceImpl) Create(ctx context.Context, author *auth.Identity, form *dto.PostForm) (*models.Post, error) {
	if !author.IsAuthenticated() {
		return nil, apperrors.ErrPermissionDenied
	}

	groupID, err := s.cleanForm(ctx, form)
	if err != nil {
		return nil, err
	}

	image, err := s.saveImage(form)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     form.Text,
		AuthorID: author.UserID,
		GroupID:  groupID,
		Image:    image,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		s.discardImage(image)
		if errors.Is(err, apperrors.ErrGroupNotFound) {
			return nil, apperrors.NewFieldError("group", validation.MsgInvalidChoice)
		}
		s.logger.Error().Err(err).Int64("authorID", author.UserID).Msg("Failed to create post")
		return nil, err
	}

	s.logger.Info().Int64("postID", post.ID).Int64("authorID", post.AuthorID).Msg("Post created")
	return post, nil
}

func (s *postServiceImpl) Update(ctx context.Context, editor *auth.Identity, id int64, form *dto.PostForm) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanEditPost(editor, post) {
		s.logger.Debug().Int64("postID", id).Int64("userID", editor.ID()).Msg("Edit refused for non-author")
		return nil, apperrors.ErrPermissionDenied
	}

	groupID, err := s.cleanForm(ctx, form)
	if err != nil {
		return nil, err
	}

	image, err := s.saveImage(form)
	if err != nil {
		return nil, err
	}

	previous := post.Image
	switch {
	case image != nil:
		post.Image = image
	case form.ImageClear:
		post.Image = nil
	}
	post.Text = form.Text
	post.GroupID = groupID

	if err := s.postRepo.Update(ctx, post); err != nil {
		s.discardImage(image)
		if errors.Is(err, apperrors.ErrGroupNotFound) {
			return nil, apperrors.NewFieldError("group", validation.MsgInvalidChoice)
		}
		s.logger.Error().Err(err).Int64("postID", id).Msg("Failed to update post")
		return nil, err
	}
	if previous != nil && (post.Image == nil || *post.Image != *previous) {
		s.discardImage(previous)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("postID", id).Msg("Post updated")
	return updated, nil
}
