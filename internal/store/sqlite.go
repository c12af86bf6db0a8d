package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/skriptnetworks/siteapi/internal/model"
)

// userRow and articleRow are the table shapes. They stay inside this
// package; handlers only ever see the model types.
type userRow struct {
	ID       string `gorm:"primaryKey"`
	Username string `gorm:"not null;uniqueIndex"`
	Password string `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

// articleRow stores tags as a JSON-encoded string: SQLite has no array
// column type.
type articleRow struct {
	ID        string    `gorm:"primaryKey"`
	Title     string    `gorm:"not null"`
	Excerpt   string    `gorm:"not null"`
	Content   string    `gorm:"not null"`
	Category  string    `gorm:"not null;index:idx_articles_category"`
	Tags      string    `gorm:"not null;default:'[]'"`
	Published bool      `gorm:"not null;default:false;index:idx_articles_published"`
	Created   time.Time `gorm:"column:created_at;not null;index:idx_articles_created_at,sort:desc"`
	Updated   time.Time `gorm:"column:updated_at;not null"`
}

func (articleRow) TableName() string { return "articles" }

// SQLiteStorage is the durable Storage implementation on an embedded
// SQLite file.
type SQLiteStorage struct {
	db *gorm.DB

	now func() time.Time
}

var _ Storage = (*SQLiteStorage)(nil)

// OpenSQLite opens (creating if needed) the database file, switches it
// to WAL mode and migrates the tables.
func OpenSQLite(path string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path+"?_journal_mode=WAL&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.AutoMigrate(&userRow{}, &articleRow{}); err != nil {
		return nil, fmt.Errorf("migrating tables: %w", err)
	}

	return &SQLiteStorage{db: db, now: time.Now}, nil
}

func (s *SQLiteStorage) GetUser(ctx context.Context, id string) (*model.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	u := model.User{ID: row.ID, Username: row.Username, Password: row.Password}

	return &u, nil
}

func (s *SQLiteStorage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).First(&row, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	u := model.User{ID: row.ID, Username: row.Username, Password: row.Password}

	return &u, nil
}

func (s *SQLiteStorage) CreateUser(ctx context.Context, in model.InsertUser) (*model.User, error) {
	row := userRow{
		ID:       uuid.NewString(),
		Username: in.Username,
		Password: in.Password,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userRow{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		return tx.Create(&row).Error
	})
	if errors.Is(err, ErrUsernameTaken) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	u := model.User{ID: row.ID, Username: row.Username, Password: row.Password}

	return &u, nil
}

func (s *SQLiteStorage) Articles(ctx context.Context) ([]model.Article, error) {
	var rows []articleRow
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}

	return fromRows(rows)
}

func (s *SQLiteStorage) PublishedArticles(ctx context.Context) ([]model.Article, error) {
	var rows []articleRow
	err := s.db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("querying published articles: %w", err)
	}

	return fromRows(rows)
}

func (s *SQLiteStorage) Article(ctx context.Context, id string) (*model.Article, error) {
	var row articleRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying article: %w", err)
	}

	a, err := fromRow(row)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (s *SQLiteStorage) CreateArticle(ctx context.Context, in model.InsertArticle) (*model.Article, error) {
	now := s.now().UTC()
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

	row, err := toRow(a)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("inserting article: %w", err)
	}

	return &a, nil
}

func (s *SQLiteStorage) UpdateArticle(ctx context.Context, id string, patch model.ArticlePatch) (*model.Article, error) {
	var updated model.Article

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row articleRow
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			return err
		}

		current, err := fromRow(row)
		if err != nil {
			return err
		}

		updated = patch.Apply(current, s.now().UTC())
		next, err := toRow(updated)
		if err != nil {
			return err
		}

		return tx.Save(&next).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating article: %w", err)
	}

	return &updated, nil
}

func (s *SQLiteStorage) DeleteArticle(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&articleRow{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("deleting article: %w", res.Error)
	}

	return res.RowsAffected > 0, nil
}

// toRow encodes the tags slice into its JSON column form. The encoded
// form never leaves this package.
func toRow(a model.Article) (articleRow, error) {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return articleRow{}, fmt.Errorf("encoding tags: %w", err)
	}

	return articleRow{
		ID:        a.ID,
		Title:     a.Title,
		Excerpt:   a.Excerpt,
		Content:   a.Content,
		Category:  a.Category,
		Tags:      string(encoded),
		Published: a.Published,
		Created:   a.CreatedAt,
		Updated:   a.UpdatedAt,
	}, nil
}

func fromRow(row articleRow) (model.Article, error) {
	tags := []string{}
	if row.Tags != "" {
		if err := json.Unmarshal([]byte(row.Tags), &tags); err != nil {
			return model.Article{}, fmt.Errorf("decoding tags for article %s: %w", row.ID, err)
		}
	}

	return model.Article{
		ID:        row.ID,
		Title:     row.Title,
		Excerpt:   row.Excerpt,
		Content:   row.Content,
		Category:  row.Category,
		Tags:      tags,
		Published: row.Published,
		CreatedAt: row.Created,
		UpdatedAt: row.Updated,
	}, nil
}

func fromRows(rows []articleRow) ([]model.Article, error) {
	out := make([]model.Article, 0, len(rows))
	for _, row := range rows {
		a, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, nil
}
