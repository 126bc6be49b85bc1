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

// PostRepository handles database operations for posts
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) selectPosts() squirrel.SelectBuilder {
	return squirrel.Select(
		"p.id", "p.text", "p.created_at", "p.author_id", "p.group_id", "p.image",
		"u.id", "u.username", "u.first_name", "u.last_name", "u.created_at",
		"g.id", "g.title", "g.slug", "g.description",
	).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		LeftJoin("groups g ON g.id = p.group_id").
		PlaceholderFormat(squirrel.Dollar)
}

func applyPostFilter(q squirrel.SelectBuilder, filter PostFilter) squirrel.SelectBuilder {
	if filter.GroupID != nil {
		q = q.Where(squirrel.Eq{"p.group_id": *filter.GroupID})
	}
	if filter.AuthorID != nil {
		q = q.Where(squirrel.Eq{"p.author_id": *filter.AuthorID})
	}
	if filter.FollowerID != nil {
		// IN keeps each post once even if an edge were duplicated
		q = q.Where("p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = ?)", *filter.FollowerID)
	}
	return q
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var (
		post   models.Post
		author models.User
		gID    *int64
		gTitle *string
		gSlug  *string
		gDesc  *string
	)
	err := row.Scan(
		&post.ID, &post.Text, &post.CreatedAt, &post.AuthorID, &post.GroupID, &post.Image,
		&author.ID, &author.Username, &author.FirstName, &author.LastName, &author.CreatedAt,
		&gID, &gTitle, &gSlug, &gDesc,
	)
	if err != nil {
		return nil, err
	}

	post.Author = &author
	if gID != nil {
		post.Group = &models.Group{ID: *gID, Title: deref(gTitle), Slug: deref(gSlug), Description: deref(gDesc)}
	}
	return &post, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Create inserts a post; created_at is assigned by the database
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	sql, args, err := squirrel.Insert("posts").
		Columns("text", "author_id", "group_id", "image").
		Values(post.Text, post.AuthorID, post.GroupID, post.Image).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&post.ID, &post.CreatedAt); err != nil {
		if dberrors.IsForeignKeyError(err, dberrors.PostsGroupFK) {
			return apperrors.ErrGroupNotFound
		}
		return fmt.Errorf("error creating post: %w", err)
	}
	return nil
}

// Update writes the mutable columns; id, author and created_at never change
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	sql, args, err := squirrel.Update("posts").
		Set("text", post.Text).
		Set("group_id", post.GroupID).
		Set("image", post.Image).
		Where(squirrel.Eq{"id": post.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyError(err, dberrors.PostsGroupFK) {
			return apperrors.ErrGroupNotFound
		}
		return fmt.Errorf("error updating post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// GetByID retrieves a post with its author and group
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	sql, args, err := r.selectPosts().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	post, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error getting post: %w", err)
	}
	return post, nil
}

// Delete removes a post; comments cascade
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("posts").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// List returns one window of the filtered listing, newest first
func (r *PostRepository) List(ctx context.Context, filter PostFilter, offset uint64, limit int) ([]models.Post, error) {
	q := applyPostFilter(r.selectPosts(), filter).
		OrderBy("p.created_at DESC", "p.id DESC").
		Offset(offset).
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

// Count returns the size of the filtered listing
func (r *PostRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	q := applyPostFilter(
		squirrel.Select("COUNT(*)").From("posts p").PlaceholderFormat(squirrel.Dollar),
		filter,
	)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}
