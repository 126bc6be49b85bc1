package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/yatube/internal/app/auth"
	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/app/models/dto"
	"github.com/yigit/yatube/internal/app/repositories"
	"github.com/yigit/yatube/internal/pkg/apperrors"
	"github.com/yigit/yatube/internal/pkg/validation"
)

// CommentService adds comments to posts
type CommentService interface {
	AddComment(ctx context.Context, author *auth.Identity, postID int64, form *dto.CommentForm) (*models.Comment, error)
}

type commentServiceImpl struct {
	postRepo    repositories.PostStore
	commentRepo repositories.CommentStore
	logger      zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(postRepo repositories.PostStore, commentRepo repositories.CommentStore, logger zerolog.Logger) CommentService {
	return &commentServiceImpl{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

// AddComment validates form and attaches it to the post. An unknown post
// yields ErrPostNotFound before the form is looked at.
func (s *commentServiceImpl) AddComment(ctx context.Context, author *auth.Identity, postID int64, form *dto.CommentForm) (*models.Comment, error) {
	if !author.IsAuthenticated() {
		return nil, apperrors.ErrPermissionDenied
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Error().Err(err).Int64("postID", postID).Msg("Failed to get post for comment")
		}
		return nil, err
	}

	form.Normalize()
	if err := validation.Form(form); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: author.UserID,
		Text:     form.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.logger.Error().Err(err).Int64("postID", postID).Int64("authorID", author.UserID).Msg("Failed to create comment")
		return nil, err
	}

	s.logger.Info().Int64("commentID", comment.ID).Int64("postID", postID).Msg("Comment added")
	return comment, nil
}
