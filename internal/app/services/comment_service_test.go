package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/yatube/internal/app/models/dto"
	"github.com/yigit/yatube/internal/pkg/apperrors"
)

func TestCommentService_AddComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author, _ := f.user(t, "author")
	_, readerID := f.user(t, "reader")
	post := f.post(t, author, nil, "post")

	count := func() int64 {
		n, err := f.repos.Comments.CountByPost(ctx, post.ID)
		require.NoError(t, err)
		return n
	}

	comment, err := f.services.Comment.AddComment(ctx, readerID, post.ID, &dto.CommentForm{Text: "nice"})
	require.NoError(t, err)
	assert.Equal(t, readerID.UserID, comment.AuthorID)
	assert.EqualValues(t, 1, count())

	t.Run("exactly the limit is accepted", func(t *testing.T) {
		_, err := f.services.Comment.AddComment(ctx, readerID, post.ID, &dto.CommentForm{Text: strings.Repeat("ж", 200)})
		require.NoError(t, err)
		assert.EqualValues(t, 2, count())
	})

	t.Run("too long", func(t *testing.T) {
		_, err := f.services.Comment.AddComment(ctx, readerID, post.ID, &dto.CommentForm{Text: strings.Repeat("a", 201)})
		fields, ok := apperrors.AsValidationError(err)
		require.True(t, ok)
		assert.True(t, fields.Has("text"))
		assert.EqualValues(t, 2, count())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := f.services.Comment.AddComment(ctx, readerID, post.ID, &dto.CommentForm{Text: " "})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := f.services.Comment.AddComment(ctx, readerID, 404, &dto.CommentForm{Text: "x"})
		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := f.services.Comment.AddComment(ctx, nil, post.ID, &dto.CommentForm{Text: "x"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}
