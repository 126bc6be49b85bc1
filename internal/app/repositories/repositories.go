package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the store instances
type Repositories struct {
	Users    UserStore
	Groups   GroupStore
	Posts    PostStore
	Comments CommentStore
	Follows  FollowStore

	// Health checks the backing storage; nil for storage that cannot fail
	Health Pinger
}

type poolPinger struct {
	db *pgxpool.Pool
}

func (p poolPinger) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

// NewRepositories initializes the PostgreSQL-backed repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Groups:   NewGroupRepository(db),
		Posts:    NewPostRepository(db),
		Comments: NewCommentRepository(db),
		Follows:  NewFollowRepository(db),
		Health:   poolPinger{db: db},
	}
}

// Ping reports storage health
func (r *Repositories) Ping(ctx context.Context) error {
	if r.Health == nil {
		return nil
	}
	return r.Health.Ping(ctx)
}
