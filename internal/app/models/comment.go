package models

import "time"

// Comment is a short reply attached to one post
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Author *User `json:"author,omitempty"`
}

func (c *Comment) String() string {
	return title(c.Text)
}
