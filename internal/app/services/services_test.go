package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/yatube/internal/app/auth"
	"github.com/yigit/yatube/internal/app/models"
	"github.com/yigit/yatube/internal/app/repositories"
	"github.com/yigit/yatube/internal/app/repositories/memory"
	"github.com/yigit/yatube/internal/pkg/filestorage"
)

// fakeStorage records saved and deleted paths without touching disk.
// Uploads named "*.txt" or "*.svg" are rejected as non-images.
type fakeStorage struct {
	mu      sync.Mutex
	n       int
	saved   []string
	deleted []string
}

func (f *fakeStorage) SaveImage(fh *multipart.FileHeader, subPath string) (string, error) {
	if ext := path.Ext(fh.Filename); ext == ".txt" || ext == ".svg" {
		return "", filestorage.ErrNotAnImage
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	saved := fmt.Sprintf("%s/file-%d", subPath, f.n)
	f.saved = append(f.saved, saved)
	return saved, nil
}

func (f *fakeStorage) DeleteFile(relPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, relPath)
	return nil
}

func (f *fakeStorage) GetFullPath(relPath string) string { return "/tmp/" + relPath }

func (f *fakeStorage) URL(relPath string) string { return "/media/" + relPath }

type fixture struct {
	repos    *repositories.Repositories
	storage  *fakeStorage
	services *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Minute)
		return current
	}

	repos := memory.NewRepositories(memory.WithClock(clock))
	storage := &fakeStorage{}
	svc := NewServices(repos, storage, nil, zerolog.Nop())
	return &fixture{repos: repos, storage: storage, services: svc}
}

func (f *fixture) user(t *testing.T, username string) (*models.User, *auth.Identity) {
	t.Helper()
	u := &models.User{Username: username, Password: "x"}
	require.NoError(t, f.repos.Users.Create(context.Background(), u))
	return u, &auth.Identity{UserID: u.ID, Username: u.Username}
}

func (f *fixture) group(t *testing.T, slug string) *models.Group {
	t.Helper()
	g := &models.Group{Title: "Group " + slug, Slug: slug}
	require.NoError(t, f.repos.Groups.Create(context.Background(), g))
	return g
}

func (f *fixture) post(t *testing.T, author *models.User, group *models.Group, text string) *models.Post {
	t.Helper()
	p := &models.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, f.repos.Posts.Create(context.Background(), p))
	return p
}

func imageHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 10}
}
