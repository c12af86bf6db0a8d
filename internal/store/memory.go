package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skriptnetworks/siteapi/internal/model"
)

// MemStorage keeps everything in maps. It backs tests and local runs
// without a database file.
type MemStorage struct {
	mu       sync.RWMutex
	users    map[string]model.User
	articles map[string]model.Article

	// now is swappable so tests can control timestamps.
	now func() time.Time
}

var _ Storage = (*MemStorage)(nil)

func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:    make(map[string]model.User),
		articles: make(map[string]model.Article),
		now:      time.Now,
	}
}

func (s *MemStorage) GetUser(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &u, nil
}

func (s *MemStorage) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			u := u

			return &u, nil
		}
	}

	return nil, ErrNotFound
}

func (s *MemStorage) CreateUser(_ context.Context, in model.InsertUser) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == in.Username {
			return nil, ErrUsernameTaken
		}
	}

	u := model.User{
		ID:       uuid.NewString(),
		Username: in.Username,
		Password: in.Password,
	}
	s.users[u.ID] = u

	return &u, nil
}

func (s *MemStorage) Articles(_ context.Context) ([]model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(model.Article) bool { return true }), nil
}

func (s *MemStorage) PublishedArticles(_ context.Context) ([]model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(a model.Article) bool { return a.Published }), nil
}

// collect copies matching articles sorted newest first. Callers hold
// at least the read lock.
func (s *MemStorage) collect(keep func(model.Article) bool) []model.Article {
	out := make([]model.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}

func (s *MemStorage) Article(_ context.Context, id string) (*model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &a, nil
}

func (s *MemStorage) CreateArticle(_ context.Context, in model.InsertArticle) (*model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	a := model.Article{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Excerpt:   in.Excerpt,
		Content:   in.Content,
		Category:  in.Category,
		Tags:      append([]string{}, in.Tags...),
		Published: in.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.articles[a.ID] = a

	return &a, nil
}

func (s *MemStorage) UpdateArticle(_ context.Context, id string, patch model.ArticlePatch) (*model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, ErrNotFound
	}

	a = patch.Apply(a, s.now())
	s.articles[id] = a

	return &a, nil
}

func (s *MemStorage) DeleteArticle(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[id]; !ok {
		return false, nil
	}
	delete(s.articles, id)

	return true, nil
}
