package models

import (
	"time"
	"unicode/utf8"
)

// TitleLength is the number of leading characters used as a post or comment title
const TitleLength = 15

// Post is a text entry with an optional group and image.
// CreatedAt is set once on insert.
type Post struct {
	ID        int64     `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	GroupID   *int64    `json:"groupId,omitempty" db:"group_id"`
	// Image is a path relative to the media root, e.g. posts/<name>.gif
	Image *string `json:"image,omitempty" db:"image"`

	// Related entities
	Author *User  `json:"author,omitempty"`
	Group  *Group `json:"group,omitempty"`
}

// HasImage reports whether an image is attached
func (p *Post) HasImage() bool {
	return p.Image != nil && *p.Image != ""
}

func (p *Post) String() string {
	return title(p.Text)
}

func title(text string) string {
	if utf8.RuneCountInString(text) <= TitleLength {
		return text
	}
	return string([]rune(text)[:TitleLength])
}
