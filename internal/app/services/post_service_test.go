package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/yatube/internal/app/models/dto"
	"github.com/yigit/yatube/internal/app/repositories"
	"github.com/yigit/yatube/internal/pkg/apperrors"
	"github.com/yigit/yatube/internal/pkg/validation"
)

func TestPostService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author, authorID := f.user(t, "author")
	group := f.group(t, "g")

	t.Run("with group and image", func(t *testing.T) {
		before, err := f.repos.Posts.Count(ctx, repositories.PostFilter{})
		require.NoError(t, err)

		form := &dto.PostForm{Text: "  Hello world  ", Group: strconv.FormatInt(group.ID, 10), Image: imageHeader("small.gif")}
		post, err := f.services.Post.Create(ctx, authorID, form)
		require.NoError(t, err)

		assert.Equal(t, "Hello world", post.Text)
		assert.Equal(t, author.ID, post.AuthorID)
		require.NotNil(t, post.GroupID)
		assert.Equal(t, group.ID, *post.GroupID)
		require.NotNil(t, post.Image)
		assert.Equal(t, "posts/file-1", *post.Image)

		after, err := f.repos.Posts.Count(ctx, repositories.PostFilter{})
		require.NoError(t, err)
		assert.Equal(t, before+1, after)
	})

	t.Run("empty text writes nothing", func(t *testing.T) {
		before, _ := f.repos.Posts.Count(ctx, repositories.PostFilter{})

		_, err := f.services.Post.Create(ctx, authorID, &dto.PostForm{Text: "   "})
		fields, ok := apperrors.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{validation.MsgRequired}, fields["text"])

		after, _ := f.repos.Posts.Count(ctx, repositories.PostFilter{})
		assert.Equal(t, before, after)
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := f.services.Post.Create(ctx, authorID, &dto.PostForm{Text: "x", Group: "9999"})
		fields, ok := apperrors.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{validation.MsgInvalidChoice}, fields["group"])
	})

	t.Run("non-image upload", func(t *testing.T) {
		_, err := f.services.Post.Create(ctx, authorID, &dto.PostForm{Text: "x", Image: imageHeader("notes.txt")})
		fields, ok := apperrors.AsValidationError(err)
		require.True(t, ok)
		assert.True(t, fields.Has("image"))
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := f.services.Post.Create(ctx, nil, &dto.PostForm{Text: "x"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestPostService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author, authorID := f.user(t, "author")
	_, otherID := f.user(t, "other")
	group := f.group(t, "g")
	post := f.post(t, author, group, "original")

	t.Run("non-author is refused and nothing changes", func(t *testing.T) {
		_, err := f.services.Post.Update(ctx, otherID, post.ID, &dto.PostForm{Text: "hijacked"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

		got, err := f.repos.Posts.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", got.Text)
	})

	t.Run("author edits text and clears group", func(t *testing.T) {
		updated, err := f.services.Post.Update(ctx, authorID, post.ID, &dto.PostForm{Text: "edited"})
		require.NoError(t, err)
		assert.Equal(t, post.ID, updated.ID)
		assert.Equal(t, "edited", updated.Text)
		assert.Nil(t, updated.GroupID)
		assert.Equal(t, post.CreatedAt, updated.CreatedAt)
		assert.Equal(t, author.ID, updated.AuthorID)
	})

	t.Run("image is kept, replaced, then cleared", func(t *testing.T) {
		withImage, err := f.services.Post.Update(ctx, authorID, post.ID, &dto.PostForm{Text: "pic", Image: imageHeader("a.png")})
		require.NoError(t, err)
		require.NotNil(t, withImage.Image)
		first := *withImage.Image

		kept, err := f.services.Post.Update(ctx, authorID, post.ID, &dto.PostForm{Text: "pic again"})
		require.NoError(t, err)
		require.NotNil(t, kept.Image)
		assert.Equal(t, first, *kept.Image)

		replaced, err := f.services.Post.Update(ctx, authorID, post.ID, &dto.PostForm{Text: "pic", Image: imageHeader("b.png")})
		require.NoError(t, err)
		require.NotNil(t, replaced.Image)
		assert.NotEqual(t, first, *replaced.Image)
		assert.Contains(t, f.storage.deleted, first)

		cleared, err := f.services.Post.Update(ctx, authorID, post.ID, &dto.PostForm{Text: "pic", ImageClear: true})
		require.NoError(t, err)
		assert.Nil(t, cleared.Image)
	})

	t.Run("clear together with upload", func(t *testing.T) {
		_, err := f.services.Post.Update(ctx, authorID, post.ID, &dto.PostForm{Text: "x", ImageClear: true, Image: imageHeader("c.png")})
		fields, ok := apperrors.AsValidationError(err)
		require.True(t, ok)
		assert.True(t, fields.Has("image"))
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := f.services.Post.Update(ctx, authorID, 12345, &dto.PostForm{Text: "x"})
		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	})
}

func TestPostService_GetDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author, authorID := f.user(t, "author")
	_, readerID := f.user(t, "reader")
	post := f.post(t, author, nil, "first")
	f.post(t, author, nil, "second")

	_, err := f.services.Comment.AddComment(ctx, readerID, post.ID, &dto.CommentForm{Text: "older"})
	require.NoError(t, err)
	_, err = f.services.Comment.AddComment(ctx, readerID, post.ID, &dto.CommentForm{Text: "newer"})
	require.NoError(t, err)

	detail, err := f.services.Post.GetDetail(ctx, post.ID, readerID)
	require.NoError(t, err)
	assert.Equal(t, "first", detail.Post.Text)
	assert.EqualValues(t, 2, detail.AuthorPostCount)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "newer", detail.Comments[0].Text)
	assert.False(t, detail.CanEdit)

	mine, err := f.services.Post.GetDetail(ctx, post.ID, authorID)
	require.NoError(t, err)
	assert.True(t, mine.CanEdit)

	_, err = f.services.Post.GetDetail(ctx, 999, nil)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestPostService_ListGroups(t *testing.T) {
	f := newFixture(t)
	f.group(t, "b")
	f.group(t, "a")

	groups, err := f.services.Post.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "a", groups[0].Slug)
}
