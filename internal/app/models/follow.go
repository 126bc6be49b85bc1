package models

import "fmt"

// Follow is a directed edge: UserID reads AuthorID's posts in the following feed
type Follow struct {
	ID       int64 `json:"id" db:"id"`
	UserID   int64 `json:"userId" db:"user_id"`
	AuthorID int64 `json:"authorId" db:"author_id"`
}

func (f *Follow) String() string {
	return fmt.Sprintf("user %d follows %d", f.UserID, f.AuthorID)
}
