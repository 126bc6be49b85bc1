package memory

import (
	"context"
	"sort"

	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/pkg/apperrors"
)

// GroupStore implements repositories.GroupStore
type GroupStore struct {
	db *DB
}

func (s *GroupStore) Create(ctx context.Context, group *models.Group) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, g := range s.db.groups {
		if g.Slug == group.Slug {
			return apperrors.ErrGroupAlreadyExists
		}
	}

	group.ID = s.db.allocID("groups")
	stored := *group
	s.db.groups[group.ID] = &stored
	return nil
}

func (s *GroupStore) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	g, ok := s.db.groups[id]
	if !ok {
		return nil, apperrors.ErrGroupNotFound
	}
	out := *g
	return &out, nil
}

func (s *GroupStore) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, g := range s.db.groups {
		if g.Slug == slug {
			out := *g
			return &out, nil
		}
	}
	return nil, apperrors.ErrGroupNotFound
}

func (s *GroupStore) List(ctx context.Context) ([]models.Group, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	groups := make([]models.Group, 0, len(s.db.groups))
	for _, g := range s.db.groups {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Title != groups[j].Title {
			return groups[i].Title < groups[j].Title
		}
		return groups[i].ID < groups[j].ID
	})
	return groups, nil
}

// Delete removes the group and detaches its posts
func (s *GroupStore) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.groups[id]; !ok {
		return apperrors.ErrGroupNotFound
	}
	delete(s.db.groups, id)

	for _, p := range s.db.posts {
		if p.GroupID != nil && *p.GroupID == id {
			p.GroupID = nil
		}
	}
	return nil
}
