// Package store owns the articles and users tables. Two
// implementations share one contract: an in-memory map used by tests
// and a SQLite-backed one used in production. Callers never see the
// persistence form, tags in particular are encoded to their column
// representation only inside this package.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/skriptnetworks/siteapi/internal/model"
)

// ErrNotFound reports a lookup for an id (or username) that is not in
// the table. It is a distinct outcome, not a storage failure.
var ErrNotFound = errors.New("record not found")

// ErrUsernameTaken reports a signup with a username that already
// exists.
var ErrUsernameTaken = errors.New("username already taken")

// Storage is the persistence contract. Listing operations return
// articles ordered by creation time descending, newest first.
type Storage interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, in model.InsertUser) (*model.User, error)

	Articles(ctx context.Context) ([]model.Article, error)
	PublishedArticles(ctx context.Context) ([]model.Article, error)
	Article(ctx context.Context, id string) (*model.Article, error)
	CreateArticle(ctx context.Context, in model.InsertArticle) (*model.Article, error)
	UpdateArticle(ctx context.Context, id string, patch model.ArticlePatch) (*model.Article, error)
	DeleteArticle(ctx context.Context, id string) (bool, error)
}

var (
	defaultOnce  sync.Once
	defaultStore *SQLiteStorage
	defaultErr   error
)

// Default returns the process-wide SQLite store, opening it on first
// use. The path of the first caller wins; initialization is safe under
// concurrent first use and there is no teardown beyond process exit.
func Default(path string) (*SQLiteStorage, error) {
	defaultOnce.Do(func() {
		defaultStore, defaultErr = OpenSQLite(path)
	})
	return defaultStore, defaultErr
}
