package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/yatube/internal/app/models"
)

func TestCanEditPost(t *testing.T) {
	post := &models.Post{ID: 1, AuthorID: 7}

	tests := []struct {
		name     string
		identity *Identity
		post     *models.Post
		want     bool
	}{
		{"author", &Identity{UserID: 7, Username: "author"}, post, true},
		{"other user", &Identity{UserID: 8, Username: "other"}, post, false},
		{"anonymous", nil, post, false},
		{"zero identity", &Identity{}, post, false},
		{"no post", &Identity{UserID: 7}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEditPost(tt.identity, tt.post))
		})
	}
}

func TestCanFollow(t *testing.T) {
	author := &models.User{ID: 3, Username: "author"}

	assert.True(t, CanFollow(&Identity{UserID: 4}, author))
	assert.False(t, CanFollow(&Identity{UserID: 3}, author))
	assert.False(t, CanFollow(nil, author))
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, IdentityFromContext(ctx))

	identity := &Identity{UserID: 5, Username: "leo"}
	ctx = WithIdentity(ctx, identity)
	assert.Equal(t, identity, IdentityFromContext(ctx))
	assert.EqualValues(t, 5, IdentityFromContext(ctx).ID())

	var anonymous *Identity
	assert.Zero(t, anonymous.ID())
	assert.False(t, anonymous.IsAuthenticated())
}
