// Package services holds the business operations behind the pages: feed
// queries, post detail, post and comment mutations, follow edges and
// account registration.
package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/yatube/internal/app/repositories"
	"github.com/yigit/yatube/internal/pkg/auth"
	"github.com/yigit/yatube/internal/pkg/filestorage"
)

// ImageSubPath is the storage subtree post images are written under
const ImageSubPath = "posts"

// Services bundles every service the controllers depend on
type Services struct {
	Feed    FeedService
	Post    PostService
	Comment CommentService
	Follow  FollowService
	Auth    AuthService
}

// NewServices wires the services over one set of stores
func NewServices(
	repos *repositories.Repositories,
	storage filestorage.FileStorage,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
	authOpts ...AuthOption,
) *Services {
	return &Services{
		Feed:    NewFeedService(repos.Posts, repos.Groups, repos.Users, repos.Follows, logger.With().Str("service", "feed").Logger()),
		Post:    NewPostService(repos.Posts, repos.Groups, repos.Comments, storage, logger.With().Str("service", "post").Logger()),
		Comment: NewCommentService(repos.Posts, repos.Comments, logger.With().Str("service", "comment").Logger()),
		Follow:  NewFollowService(repos.Users, repos.Follows, logger.With().Str("service", "follow").Logger()),
		Auth:    NewAuthService(repos.Users, jwtService, logger.With().Str("service", "auth").Logger(), authOpts...),
	}
}
