package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/yatube/internal/app/models"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	sql, args, err := squirrel.Insert("comments").
		Columns("post_id", "author_id", "text").
		Values(comment.PostID, comment.AuthorID, comment.Text).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&comment.ID, &comment.CreatedAt); err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}
	return nil
}

// ListByPost returns a post's comments newest first
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	sql, args, err := squirrel.Select(
		"c.id", "c.post_id", "c.author_id", "c.text", "c.created_at",
		"u.id", "u.username", "u.first_name", "u.last_name",
	).
		From("comments c").
		Join("users u ON u.id = c.author_id").
		Where(squirrel.Eq{"c.post_id": postID}).
		OrderBy("c.created_at DESC", "c.id DESC").
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

	var comments []models.Comment
	for rows.Next() {
		var (
			c      models.Comment
			author models.User
		)
		err := rows.Scan(
			&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.CreatedAt,
			&author.ID, &author.Username, &author.FirstName, &author.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		c.Author = &author
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CountByPost counts a post's comments
func (r *CommentRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	sql, args, err := squirrel.Select("COUNT(*)").
		From("comments").
		Where(squirrel.Eq{"post_id": postID}).
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
