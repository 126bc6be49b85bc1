// Package web holds the HTML templates and the helpers every page render
// goes through.
package web

import (
	"embed"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/yatube/internal/app/auth"
	"github.com/yigit/yatube/internal/pkg/apperrors"
	"github.com/yigit/yatube/internal/pkg/helpers"
)

//go:embed templates
var templateFS embed.FS

// Template names rendered by the controllers
const (
	PageIndex      = "posts/index.html"
	PageGroupList  = "posts/group_list.html"
	PageProfile    = "posts/profile.html"
	PagePostDetail = "posts/post_detail.html"
	PageCreatePost = "posts/create_post.html"
	PageFollow     = "posts/follow.html"
	PageSignup     = "users/signup.html"
	PageLogin      = "users/login.html"
	PageAuthor     = "about/author.html"
	PageTech       = "about/tech.html"
	PageNotFound   = "core/404.html"
	PageServerErr  = "core/500.html"
)

// MediaURLFunc maps a stored file path to its public URL
type MediaURLFunc func(relPath string) string

// Funcs returns the template helpers
func Funcs(media MediaURLFunc) template.FuncMap {
	return template.FuncMap{
		"media": func(path *string) string {
			if path == nil || *path == "" {
				return ""
			}
			return media(*path)
		},
		"linebreaksbr": func(text string) template.HTML {
			escaped := template.HTMLEscapeString(text)
			escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
			return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
		},
		"date": func(t time.Time) string {
			return t.Format("2 January 2006")
		},
		"truncatechars": func(n int, s string) string {
			return helpers.Truncate(s, n)
		},
		"fieldErrors": func(errs apperrors.FieldErrors, field string) []string {
			return errs[field]
		},
		"pageURL": func(page int) string {
			return "?page=" + strconv.Itoa(page)
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"eqID": func(a *int64, b int64) bool {
			return a != nil && *a == b
		},
	}
}

// Templates parses every embedded template
func Templates(media MediaURLFunc) (*template.Template, error) {
	return template.New("").
		Funcs(Funcs(media)).
		ParseFS(templateFS, "templates/*/*.html")
}

// Data merges the values every page needs into values
func Data(c *gin.Context, values gin.H) gin.H {
	if values == nil {
		values = gin.H{}
	}
	identity := auth.IdentityFromContext(c.Request.Context())
	values["identity"] = identity
	values["authenticated"] = identity.IsAuthenticated()
	values["path"] = c.Request.URL.Path
	return values
}
