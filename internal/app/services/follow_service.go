package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/yatube/internal/app/auth"
	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/app/repositories"
	"github.com/yigit/yatube/internal/pkg/apperrors"
)

// FollowService toggles follow edges. Both operations are idempotent and
// return the target author so callers can redirect to the profile.
type FollowService interface {
	Follow(ctx context.Context, follower *auth.Identity, username string) (*models.User, error)
	Unfollow(ctx context.Context, follower *auth.Identity, username string) (*models.User, error)
	IsFollowing(ctx context.Context, follower *auth.Identity, authorID int64) (bool, error)
}

type followServiceImpl struct {
	userRepo   repositories.UserStore
	followRepo repositories.FollowStore
	logger     zerolog.Logger
}

// NewFollowService creates a new FollowService
func NewFollowService(userRepo repositories.UserStore, followRepo repositories.FollowStore, logger zerolog.Logger) FollowService {
	return &followServiceImpl{
		userRepo:   userRepo,
		followRepo: followRepo,
		logger:     logger,
	}
}

func (s *followServiceImpl) author(ctx context.Context, username string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Error().Err(err).Str("username", username).Msg("Failed to get author")
		}
		return nil, err
	}
	return author, nil
}

// Follow creates the edge follower -> username. Following yourself is a no-op.
func (s *followServiceImpl) Follow(ctx context.Context, follower *auth.Identity, username string) (*models.User, error) {
	if !follower.IsAuthenticated() {
		return nil, apperrors.ErrPermissionDenied
	}

	author, err := s.author(ctx, username)
	if err != nil {
		return nil, err
	}
	if !auth.CanFollow(follower, author) {
		s.logger.Debug().Int64("userID", follower.UserID).Msg("Ignoring self-follow")
		return author, nil
	}

	created, err := s.followRepo.Ensure(ctx, follower.UserID, author.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", follower.UserID).Int64("authorID", author.ID).Msg("Failed to follow author")
		return nil, err
	}
	if created {
		s.logger.Info().Int64("userID", follower.UserID).Int64("authorID", author.ID).Msg("Author followed")
	}
	return author, nil
}

// Unfollow deletes the edge follower -> username if it exists
func (s *followServiceImpl) Unfollow(ctx context.Context, follower *auth.Identity, username string) (*models.User, error) {
	if !follower.IsAuthenticated() {
		return nil, apperrors.ErrPermissionDenied
	}

	author, err := s.author(ctx, username)
	if err != nil {
		return nil, err
	}

	removed, err := s.followRepo.Remove(ctx, follower.UserID, author.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", follower.UserID).Int64("authorID", author.ID).Msg("Failed to unfollow author")
		return nil, err
	}
	if removed {
		s.logger.Info().Int64("userID", follower.UserID).Int64("authorID", author.ID).Msg("Author unfollowed")
	}
	return author, nil
}

func (s *followServiceImpl) IsFollowing(ctx context.Context, follower *auth.Identity, authorID int64) (bool, error) {
	if !follower.IsAuthenticated() {
		return false, nil
	}
	return s.followRepo.Exists(ctx, follower.UserID, authorID)
}
