package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/yatube/internal/pkg/apperrors"
	"github.com/yigit/yatube/internal/pkg/dberrors"
)

// FollowRepository handles database operations for follow edges
type FollowRepository struct {
	db *pgxpool.Pool
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{db: db}
}

// Ensure inserts the (user, author) edge unless it already exists
func (r *FollowRepository) Ensure(ctx context.Context, userID, authorID int64) (bool, error) {
	sql, args, err := squirrel.Insert("follows").
		Columns("user_id", "author_id").
		Values(userID, authorID).
		Suffix("ON CONFLICT ON CONSTRAINT " + dberrors.FollowsUniqueEdge + " DO NOTHING RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		if dberrors.IsCheckConstraintError(err, dberrors.FollowsNoSelf) {
			return false, apperrors.NewBadRequestError("a user cannot follow themselves")
		}
		return false, fmt.Errorf("error creating follow: %w", err)
	}
	return true, nil
}

// Remove deletes the (user, author) edge if present
func (r *FollowRepository) Remove(ctx context.Context, userID, authorID int64) (bool, error) {
	sql, args, err := squirrel.Delete("follows").
		Where(squirrel.Eq{"user_id": userID, "author_id": authorID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error deleting follow: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Exists checks whether userID follows authorID
func (r *FollowRepository) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	sql, args, err := squirrel.Select("1").
		From("follows").
		Where(squirrel.Eq{"user_id": userID, "author_id": authorID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return true, nil
}

// CountByUser counts the authors userID follows
func (r *FollowRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	sql, args, err := squirrel.Select("COUNT(*)").
		From("follows").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}
