package repositories

import (
	"context"

	"github.com/yigit/yatube/internal/app/models"
)

// PostFilter narrows a post listing. At most one field is expected to be set;
// an empty filter selects every post.
type PostFilter struct {
	GroupID *int64
	// AuthorID selects posts written by one user
	AuthorID *int64
	// FollowerID selects posts whose author is followed by this user
	FollowerID *int64
}

// ByGroup selects one group's posts
func ByGroup(groupID int64) PostFilter {
	return PostFilter{GroupID: &groupID}
}

// ByAuthor selects one author's posts
func ByAuthor(authorID int64) PostFilter {
	return PostFilter{AuthorID: &authorID}
}

// ByFollower selects posts of every author followerID follows
func ByFollower(followerID int64) PostFilter {
	return PostFilter{FollowerID: &followerID}
}

// UserStore persists accounts
type UserStore interface {
	// Create inserts user and sets its ID and CreatedAt; a taken username
	// yields apperrors.ErrUsernameTaken.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Delete removes the user with their posts, comments and follow edges
	Delete(ctx context.Context, id int64) error
}

// GroupStore persists groups
type GroupStore interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	// List returns every group ordered by title
	List(ctx context.Context) ([]models.Group, error)
	// Delete removes the group; its posts survive with no group
	Delete(ctx context.Context, id int64) error
}

// PostStore persists posts. Listings are ordered newest first, ties broken by
// descending id.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	// Update writes text, group and image only
	Update(ctx context.Context, post *models.Post) error
	// GetByID returns the post with Author and Group populated
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	// Delete removes the post and its comments
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter PostFilter, offset uint64, limit int) ([]models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
}

// CommentStore persists comments
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	// ListByPost returns the thread newest first with Author populated
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	CountByPost(ctx context.Context, postID int64) (int64, error)
}

// FollowStore persists follow edges with set semantics
type FollowStore interface {
	// Ensure creates the edge if it is absent and reports whether it did
	Ensure(ctx context.Context, userID, authorID int64) (bool, error)
	// Remove deletes the edge if present and reports whether it did
	Remove(ctx context.Context, userID, authorID int64) (bool, error)
	Exists(ctx context.Context, userID, authorID int64) (bool, error)
	// CountByUser counts the authors userID follows
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

// Pinger is implemented by stores backed by a remote database
type Pinger interface {
	Ping(ctx context.Context) error
}
