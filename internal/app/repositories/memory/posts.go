package memory

import (
	"context"
	"sort"

	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/app/repositories"
	"github.com/yigit/yatube/internal/pkg/apperrors"
	"github.com/yigit/yatube/internal/pkg/helpers"
)

// PostStore implements repositories.PostStore
type PostStore struct {
	db *DB
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// checkRefsLocked enforces the author and group foreign keys
func (s *PostStore) checkRefsLocked(post *models.Post) error {
	if _, ok := s.db.users[post.AuthorID]; !ok {
		return apperrors.ErrUserNotFound
	}
	if post.GroupID != nil {
		if _, ok := s.db.groups[*post.GroupID]; !ok {
			return apperrors.ErrGroupNotFound
		}
	}
	return nil
}

func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if err := s.checkRefsLocked(post); err != nil {
		return err
	}

	post.ID = s.db.allocID("posts")
	post.CreatedAt = s.db.now()
	s.db.posts[post.ID] = &models.Post{
		ID:        post.ID,
		Text:      post.Text,
		CreatedAt: post.CreatedAt,
		AuthorID:  post.AuthorID,
		GroupID:   copyInt64(post.GroupID),
		Image:     copyString(post.Image),
	}
	return nil
}

// Update writes text, group and image; author and created stay untouched
func (s *PostStore) Update(ctx context.Context, post *models.Post) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	stored, ok := s.db.posts[post.ID]
	if !ok {
		return apperrors.ErrPostNotFound
	}
	if post.GroupID != nil {
		if _, ok := s.db.groups[*post.GroupID]; !ok {
			return apperrors.ErrGroupNotFound
		}
	}

	stored.Text = post.Text
	stored.GroupID = copyInt64(post.GroupID)
	stored.Image = copyString(post.Image)
	return nil
}

// hydrateLocked returns a detached copy with Author and Group filled in
func (s *PostStore) hydrateLocked(p *models.Post) models.Post {
	out := *p
	out.GroupID = copyInt64(p.GroupID)
	out.Image = copyString(p.Image)
	if u, ok := s.db.users[p.AuthorID]; ok {
		author := *u
		out.Author = &author
	}
	if p.GroupID != nil {
		if g, ok := s.db.groups[*p.GroupID]; ok {
			group := *g
			out.Group = &group
		}
	}
	return out
}

func (s *PostStore) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	p, ok := s.db.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	out := s.hydrateLocked(p)
	return &out, nil
}

func (s *PostStore) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.posts[id]; !ok {
		return apperrors.ErrPostNotFound
	}
	s.db.deletePostLocked(id)
	return nil
}

func (s *PostStore) matchLocked(p *models.Post, filter repositories.PostFilter) bool {
	if filter.GroupID != nil && (p.GroupID == nil || *p.GroupID != *filter.GroupID) {
		return false
	}
	if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
		return false
	}
	if filter.FollowerID != nil {
		for _, f := range s.db.follows {
			if f.UserID == *filter.FollowerID && f.AuthorID == p.AuthorID {
				return true
			}
		}
		return false
	}
	return true
}

// selectLocked returns matching posts newest first, ties by id descending
func (s *PostStore) selectLocked(filter repositories.PostFilter) []*models.Post {
	var matched []*models.Post
	for _, p := range s.db.posts {
		if s.matchLocked(p, filter) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return matched
}

func (s *PostStore) List(ctx context.Context, filter repositories.PostFilter, offset uint64, limit int) ([]models.Post, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	matched := s.selectLocked(filter)
	if limit <= 0 {
		limit = helpers.DefaultPageSize
	}
	start, end := helpers.CalculateSliceIndices(int(offset)/limit+1, limit, len(matched))

	posts := make([]models.Post, 0, end-start)
	for _, p := range matched[start:end] {
		posts = append(posts, s.hydrateLocked(p))
	}
	return posts, nil
}

func (s *PostStore) Count(ctx context.Context, filter repositories.PostFilter) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	return int64(len(s.selectLocked(filter))), nil
}
