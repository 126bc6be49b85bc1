// Package memory implements the store interfaces in process memory with the
// same uniqueness and cascade rules as the SQL schema. It backs the
// `database.driver: memory` mode and the handler tests.
package memory

import (
	"sync"
	"time"

	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/app/repositories"
)

// DB holds every table behind one lock so cascades stay atomic
type DB struct {
	mu sync.RWMutex

	users    map[int64]*models.User
	groups   map[int64]*models.Group
	posts    map[int64]*models.Post
	comments map[int64]*models.Comment
	follows  map[int64]*models.Follow

	nextID map[string]int64
	now    func() time.Time
}

// Option configures a DB
type Option func(*DB)

// WithClock replaces time.Now for created timestamps
func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		db.now = now
	}
}

// New creates an empty in-memory database
func New(opts ...Option) *DB {
	db := &DB{
		users:    make(map[int64]*models.User),
		groups:   make(map[int64]*models.Group),
		posts:    make(map[int64]*models.Post),
		comments: make(map[int64]*models.Comment),
		follows:  make(map[int64]*models.Follow),
		nextID:   make(map[string]int64),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Repositories exposes db through the store interfaces
func (db *DB) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Users:    &UserStore{db: db},
		Groups:   &GroupStore{db: db},
		Posts:    &PostStore{db: db},
		Comments: &CommentStore{db: db},
		Follows:  &FollowStore{db: db},
	}
}

// NewRepositories is a shortcut for New(opts...).Repositories()
func NewRepositories(opts ...Option) *repositories.Repositories {
	return New(opts...).Repositories()
}

// allocID must be called with the write lock held
func (db *DB) allocID(table string) int64 {
	db.nextID[table]++
	return db.nextID[table]
}

// deletePostLocked removes a post and its comments
func (db *DB) deletePostLocked(id int64) {
	delete(db.posts, id)
	for cid, c := range db.comments {
		if c.PostID == id {
			delete(db.comments, cid)
		}
	}
}
