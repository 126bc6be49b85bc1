package memory

import (
	"context"

	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/pkg/apperrors"
)

// UserStore implements repositories.UserStore
type UserStore struct {
	db *DB
}

// Create inserts user, rejecting a taken username
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Username == user.Username {
			return apperrors.ErrUsernameTaken
		}
	}

	user.ID = s.db.allocID("users")
	user.CreatedAt = s.db.now()
	stored := *user
	s.db.users[user.ID] = &stored
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	u, ok := s.db.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, u := range s.db.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// Delete removes the user and cascades to their posts, comments and edges
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(s.db.users, id)

	for pid, p := range s.db.posts {
		if p.AuthorID == id {
			s.db.deletePostLocked(pid)
		}
	}
	for cid, c := range s.db.comments {
		if c.AuthorID == id {
			delete(s.db.comments, cid)
		}
	}
	for fid, f := range s.db.follows {
		if f.UserID == id || f.AuthorID == id {
			delete(s.db.follows, fid)
		}
	}
	return nil
}
