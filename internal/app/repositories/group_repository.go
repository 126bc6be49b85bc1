package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/pkg/apperrors"
	"github.com/yigit/yatube/internal/pkg/dberrors"
)

// GroupRepository handles database operations for groups
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create inserts a group
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	sql, args, err := squirrel.Insert("groups").
		Columns("title", "slug", "description").
		Values(group.Title, group.Slug, group.Description).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&group.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.GroupsSlugKey) {
			return apperrors.ErrGroupAlreadyExists
		}
		return fmt.Errorf("error creating group: %w", err)
	}
	return nil
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetBySlug retrieves a group by its slug
func (r *GroupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug})
}

func (r *GroupRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Group, error) {
	sql, args, err := squirrel.Select("id", "title", "slug", "description").
		From("groups").
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	group := &models.Group{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error getting group: %w", err)
	}
	return group, nil
}

// List returns all groups ordered by title
func (r *GroupRepository) List(ctx context.Context) ([]models.Group, error) {
	sql, args, err := squirrel.Select("id", "title", "slug", "description").
		From("groups").
		OrderBy("title ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Delete removes a group; posts.group_id is cleared by ON DELETE SET NULL
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("groups").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}
	return nil
}
