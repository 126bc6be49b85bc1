// Package auth holds the request identity and the capability checks made
// against it.
package auth

import (
	"context"

	"github.com/yigit/yatube/internal/app/models"
)

// Identity is the authenticated account behind a request. A nil *Identity
// is the anonymous visitor.
type Identity struct {
	UserID   int64
	Username string
}

// IsAuthenticated reports whether i names a real account
func (i *Identity) IsAuthenticated() bool {
	return i != nil && i.UserID != 0
}

// ID returns the user id, or 0 for the anonymous visitor
func (i *Identity) ID() int64 {
	if i == nil {
		return 0
	}
	return i.UserID
}

type contextKey string

const identityKey = contextKey("identity")

// WithIdentity stores identity in ctx
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the identity stored in ctx, or nil
func IdentityFromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(identityKey).(*Identity)
	return identity
}

// CanEditPost reports whether identity may edit post: only its author can
func CanEditPost(identity *Identity, post *models.Post) bool {
	if !identity.IsAuthenticated() || post == nil {
		return false
	}
	return identity.UserID == post.AuthorID
}

// CanFollow reports whether identity may follow author; following yourself
// is never allowed
func CanFollow(identity *Identity, author *models.User) bool {
	if !identity.IsAuthenticated() || author == nil {
		return false
	}
	return identity.UserID != author.ID
}
