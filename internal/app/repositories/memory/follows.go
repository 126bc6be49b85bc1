package memory

import (
	"context"

	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/pkg/apperrors"
)

// FollowStore implements repositories.FollowStore with set semantics
type FollowStore struct {
	db *DB
}

func (s *FollowStore) findLocked(userID, authorID int64) (int64, bool) {
	for id, f := range s.db.follows {
		if f.UserID == userID && f.AuthorID == authorID {
			return id, true
		}
	}
	return 0, false
}

func (s *FollowStore) Ensure(ctx context.Context, userID, authorID int64) (bool, error) {
	if userID == authorID {
		return false, apperrors.NewBadRequestError("a user cannot follow themselves")
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[userID]; !ok {
		return false, apperrors.ErrUserNotFound
	}
	if _, ok := s.db.users[authorID]; !ok {
		return false, apperrors.ErrUserNotFound
	}
	if _, ok := s.findLocked(userID, authorID); ok {
		return false, nil
	}

	id := s.db.allocID("follows")
	s.db.follows[id] = &models.Follow{ID: id, UserID: userID, AuthorID: authorID}
	return true, nil
}

func (s *FollowStore) Remove(ctx context.Context, userID, authorID int64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	id, ok := s.findLocked(userID, authorID)
	if !ok {
		return false, nil
	}
	delete(s.db.follows, id)
	return true, nil
}

func (s *FollowStore) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	_, ok := s.findLocked(userID, authorID)
	return ok, nil
}

func (s *FollowStore) CountByUser(ctx context.Context, userID int64) (int64, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var count int64
	for _, f := range s.db.follows {
		if f.UserID == userID {
			count++
		}
	}
	return count, nil
}
