package web

import (
	"bytes"
	"html/template"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/yatube/internal/app/auth"
	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/app/models/dto"
	"github.com/yigit/yatube/internal/pkg/apperrors"
	"github.com/yigit/yatube/internal/pkg/helpers"
)

func media(rel string) string { return "/media/" + rel }

func render(t *testing.T, tmpl *template.Template, name string, data map[string]any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, data))
	return buf.String()
}

func samplePost() models.Post {
	image := "posts/cat.gif"
	groupID := int64(3)
	return models.Post{
		ID:        42,
		Text:      "first line\nsecond <b>line</b>",
		CreatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		AuthorID:  7,
		GroupID:   &groupID,
		Image:     &image,
		Author:    &models.User{ID: 7, Username: "leo", FirstName: "Leo", LastName: "Tolstoy"},
		Group:     &models.Group{ID: 3, Title: "Cats", Slug: "cats"},
	}
}

func base(identity *auth.Identity) map[string]any {
	return map[string]any{
		"identity":      identity,
		"authenticated": identity.IsAuthenticated(),
		"path":          "/",
	}
}

func TestTemplates_RenderEveryPage(t *testing.T) {
	tmpl, err := Templates(media)
	require.NoError(t, err)

	post := samplePost()
	page := &dto.FeedPage{
		Posts:      []models.Post{post},
		Pagination: helpers.ResolvePage("2", 17, 10),
	}
	viewer := &auth.Identity{UserID: 7, Username: "leo"}

	t.Run("index", func(t *testing.T) {
		data := base(nil)
		data["title"] = "Latest"
		data["page"] = page
		out := render(t, tmpl, PageIndex, data)

		assert.Contains(t, out, `<img src="/media/posts/cat.gif"`)
		assert.Contains(t, out, "first line<br>second &lt;b&gt;line&lt;/b&gt;")
		assert.Contains(t, out, `href="/group/cats/"`)
		assert.Contains(t, out, `href="/profile/leo/"`)
		assert.Contains(t, out, "5 March 2024")
		assert.Contains(t, out, `href="?page=1"`)
		assert.Contains(t, out, "Log in")
	})

	t.Run("group", func(t *testing.T) {
		data := base(viewer)
		data["group"] = post.Group
		data["page"] = page
		out := render(t, tmpl, PageGroupList, data)
		assert.Contains(t, out, "<h1>Cats</h1>")
		assert.Contains(t, out, "Log out")
	})

	t.Run("profile of another author", func(t *testing.T) {
		data := base(&auth.Identity{UserID: 9, Username: "reader"})
		data["profile"] = &dto.ProfileFeedPage{Author: post.Author, FeedPage: *page}
		out := render(t, tmpl, PageProfile, data)
		assert.Contains(t, out, "Leo Tolstoy")
		assert.Contains(t, out, `href="/profile/leo/follow/"`)
	})

	t.Run("own profile has no toggle", func(t *testing.T) {
		data := base(viewer)
		data["profile"] = &dto.ProfileFeedPage{Author: post.Author, IsSelf: true, FeedPage: *page}
		out := render(t, tmpl, PageProfile, data)
		assert.NotContains(t, out, `href="/profile/leo/follow/"`)
		assert.NotContains(t, out, `href="/profile/leo/unfollow/"`)
	})

	t.Run("detail with errors", func(t *testing.T) {
		comment := models.Comment{ID: 1, Text: "nice", Author: &models.User{Username: "reader"}}
		fields := apperrors.FieldErrors{}
		fields.Add("text", "This field is required.")

		data := base(viewer)
		data["detail"] = &dto.PostDetail{Post: &post, AuthorPostCount: 17, Comments: []models.Comment{comment}, CanEdit: true}
		data["form"] = &dto.CommentForm{}
		data["errors"] = fields
		out := render(t, tmpl, PagePostDetail, data)

		assert.Contains(t, out, `href="/posts/42/edit/"`)
		assert.Contains(t, out, `<span class="post-count">17</span>`)
		assert.Contains(t, out, "This field is required.")
		assert.Contains(t, out, "nice")
	})

	t.Run("edit form", func(t *testing.T) {
		data := base(viewer)
		data["form"] = &dto.PostForm{Text: post.Text, Group: "3"}
		data["post"] = &post
		data["groups"] = []models.Group{*post.Group, {ID: 4, Title: "Dogs", Slug: "dogs"}}
		data["selected_group"] = post.GroupID
		data["is_edit"] = true
		data["errors"] = apperrors.FieldErrors(nil)
		out := render(t, tmpl, PageCreatePost, data)

		assert.Contains(t, out, `<option value="3" selected>Cats</option>`)
		assert.Contains(t, out, `<option value="4">Dogs</option>`)
		assert.Contains(t, out, `name="image-clear"`)
		assert.Contains(t, out, "posts/cat.gif")
	})

	t.Run("create form", func(t *testing.T) {
		data := base(viewer)
		data["form"] = &dto.PostForm{}
		data["post"] = (*models.Post)(nil)
		data["groups"] = []models.Group{}
		data["is_edit"] = false
		out := render(t, tmpl, PageCreatePost, data)
		assert.Contains(t, out, "New post")
		assert.NotContains(t, out, "image-clear")
	})

	t.Run("accounts and static pages", func(t *testing.T) {
		data := base(nil)
		data["form"] = &dto.SignupForm{Username: "new"}
		assert.Contains(t, render(t, tmpl, PageSignup, data), `value="new"`)

		data = base(nil)
		data["form"] = &dto.LoginForm{}
		data["next"] = "/create/"
		assert.Contains(t, render(t, tmpl, PageLogin, data), `name="next" value="/create/"`)

		for _, name := range []string{PageAuthor, PageTech, PageNotFound, PageServerErr, PageFollow} {
			data := base(viewer)
			data["page"] = &dto.FeedPage{Pagination: helpers.ResolvePage("", 0, 10)}
			render(t, tmpl, name, data)
		}
	})
}

func TestFuncs(t *testing.T) {
	funcs := Funcs(media)

	truncate := funcs["truncatechars"].(func(int, string) string)
	assert.Equal(t, "abc", truncate(5, "abc"))

	pageURL := funcs["pageURL"].(func(int) string)
	assert.Equal(t, "?page=3", pageURL(3))

	eqID := funcs["eqID"].(func(*int64, int64) bool)
	id := int64(2)
	assert.True(t, eqID(&id, 2))
	assert.False(t, eqID(nil, 2))

	mediaFn := funcs["media"].(func(*string) string)
	empty := ""
	assert.Equal(t, "", mediaFn(&empty))
	assert.Equal(t, "", mediaFn(nil))
}
