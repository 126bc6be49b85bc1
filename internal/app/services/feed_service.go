package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/yatube/internal/app/auth"
	"github.com/yigit/yatube/internal/app/models/dto"
	"github.com/yigit/yatube/internal/app/repositories"
	"github.com/yigit/yatube/internal/pkg/apperrors"
	"github.com/yigit/yatube/internal/pkg/helpers"
)

// FeedService builds the paginated post listings
type FeedService interface {
	// GlobalFeed lists every post
	GlobalFeed(ctx context.Context, rawPage string) (*dto.FeedPage, error)
	// GroupFeed lists one group's posts; unknown slug yields ErrGroupNotFound
	GroupFeed(ctx context.Context, slug, rawPage string) (*dto.GroupFeedPage, error)
	// ProfileFeed lists one author's posts along with the viewer's follow state
	ProfileFeed(ctx context.Context, username, rawPage string, viewer *auth.Identity) (*dto.ProfileFeedPage, error)
	// FollowFeed lists posts of every author viewer follows
	FollowFeed(ctx context.Context, viewer *auth.Identity, rawPage string) (*dto.FeedPage, error)
}

type feedServiceImpl struct {
	postRepo   repositories.PostStore
	groupRepo  repositories.GroupStore
	userRepo   repositories.UserStore
	followRepo repositories.FollowStore
	pageSize   int
	logger     zerolog.Logger
}

// NewFeedService creates a new FeedService with the standard page size
func NewFeedService(
	postRepo repositories.PostStore,
	groupRepo repositories.GroupStore,
	userRepo repositories.UserStore,
	followRepo repositories.FollowStore,
	logger zerolog.Logger,
) FeedService {
	return &feedServiceImpl{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		pageSize:   helpers.DefaultPageSize,
		logger:     logger,
	}
}

// page counts the filtered listing, resolves rawPage against it and loads
// the posts of the resolved page
func (s *feedServiceImpl) page(ctx context.Context, filter repositories.PostFilter, rawPage string) (*dto.FeedPage, error) {
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count posts")
		return nil, err
	}

	info := helpers.ResolvePage(rawPage, total, s.pageSize)
	offset, limit := helpers.CalculateOffsetLimit(info.CurrentPage, s.pageSize)

	posts, err := s.postRepo.List(ctx, filter, offset, limit)
	if err != nil {
		s.logger.Error().Err(err).Int("page", info.CurrentPage).Msg("Failed to list posts")
		return nil, err
	}

	return &dto.FeedPage{Posts: posts, Pagination: info}, nil
}

func (s *feedServiceImpl) GlobalFeed(ctx context.Context, rawPage string) (*dto.FeedPage, error) {
	s.logger.Debug().Str("page", rawPage).Msg("Building global feed")
	return s.page(ctx, repositories.PostFilter{}, rawPage)
}

func (s *feedServiceImpl) GroupFeed(ctx context.Context, slug, rawPage string) (*dto.GroupFeedPage, error) {
	s.logger.Debug().Str("slug", slug).Str("page", rawPage).Msg("Building group feed")

	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Error().Err(err).Str("slug", slug).Msg("Failed to get group")
		}
		return nil, err
	}

	page, err := s.page(ctx, repositories.ByGroup(group.ID), rawPage)
	if err != nil {
		return nil, err
	}
	return &dto.GroupFeedPage{Group: group, FeedPage: *page}, nil
}

func (s *feedServiceImpl) ProfileFeed(ctx context.Context, username, rawPage string, viewer *auth.Identity) (*dto.ProfileFeedPage, error) {
	s.logger.Debug().Str("username", username).Str("page", rawPage).Msg("Building profile feed")

	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Error().Err(err).Str("username", username).Msg("Failed to get author")
		}
		return nil, err
	}

	page, err := s.page(ctx, repositories.ByAuthor(author.ID), rawPage)
	if err != nil {
		return nil, err
	}

	result := &dto.ProfileFeedPage{
		Author:   author,
		IsSelf:   viewer.ID() == author.ID,
		FeedPage: *page,
	}
	if viewer.IsAuthenticated() && !result.IsSelf {
		result.Following, err = s.followRepo.Exists(ctx, viewer.UserID, author.ID)
		if err != nil {
			s.logger.Error().Err(err).Int64("userID", viewer.UserID).Int64("authorID", author.ID).Msg("Failed to check follow edge")
			return nil, err
		}
	}
	return result, nil
}

func (s *feedServiceImpl) FollowFeed(ctx context.Context, viewer *auth.Identity, rawPage string) (*dto.FeedPage, error) {
	if !viewer.IsAuthenticated() {
		return nil, apperrors.ErrPermissionDenied
	}
	s.logger.Debug().Int64("userID", viewer.UserID).Str("page", rawPage).Msg("Building follow feed")
	return s.page(ctx, repositories.ByFollower(viewer.UserID), rawPage)
}
