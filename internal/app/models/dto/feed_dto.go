package dto

import "github.com/yigit/yatube/internal/app/models"

// FeedPage is one resolved page of posts
type FeedPage struct {
	Posts      []models.Post  `json:"posts"`
	Pagination PaginationInfo `json:"pagination"`
}

// GroupFeedPage is a group's feed together with the group itself
type GroupFeedPage struct {
	Group *models.Group `json:"group"`
	FeedPage
}

// ProfileFeedPage is an author's feed. Following is set only for an
// authenticated viewer who follows Author.
type ProfileFeedPage struct {
	Author    *models.User `json:"author"`
	Following bool         `json:"following"`
	IsSelf    bool         `json:"isSelf"`
	FeedPage
}

// PostDetail is a single post with its author's post count and its comment
// thread, newest first.
type PostDetail struct {
	Post            *models.Post     `json:"post"`
	AuthorPostCount int64            `json:"authorPostCount"`
	Comments        []models.Comment `json:"comments"`
	CanEdit         bool             `json:"canEdit"`
}
