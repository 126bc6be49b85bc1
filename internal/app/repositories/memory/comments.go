package memory

import (
	"context"
	"sort"

	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/pkg/apperrors"
)

// CommentStore implements repositories.CommentStore
type CommentStore struct {
	db *DB
}

func (s *CommentStore) Create(ctx context.Context, comment *models.Comment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.posts[comment.PostID]; !ok {
		return apperrors.ErrPostNotFound
	}
	if _, ok := s.db.users[comment.AuthorID]; !ok {
		return apperrors.ErrUserNotFound
	}

	comment.ID = s.db.allocID("comments")
	comment.CreatedAt = s.db.now()
	stored := *comment
	stored.Author = nil
	s.db.comments[comment.ID] = &stored
	return nil
}

func (s *CommentStore) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var comments []models.Comment
	for _, c := range s.db.comments {
		if c.PostID != postID {
			continue
		}
		out := *c
		if u, ok := s.db.users[c.AuthorID]; ok {
			author := *u
			out.Author = &author
		}
		comments = append(comments, out)
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	return comments, nil
}

func (s *CommentStore) CountByPost(ctx context.Context, postID int64) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var count int64
	for _, c := range s.db.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count, nil
}
