package model

import "time"

// Article is a blog post. Published gates visibility in the public
// listing; unpublished articles are only reachable through the admin
// endpoints.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InsertArticle is the input for creating an article. ID and the
// timestamps are assigned by the store.
type InsertArticle struct {
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

// Validate checks the insert input and reports every violation, not
// just the first.
func (in *InsertArticle) Validate() error {
	var v ValidationError
	if in.Title == "" {
		v.Add("title", "Title is required")
	}
	if in.Excerpt == "" {
		v.Add("excerpt", "Excerpt is required")
	}
	if in.Content == "" {
		v.Add("content", "Content is required")
	}
	if in.Category == "" {
		v.Add("category", "Category is required")
	}
	return v.OrNil()
}

// ArticlePatch is a partial update. Nil fields are left untouched; a
// non-nil Tags replaces the whole sequence, there is no element-wise
// merge.
type ArticlePatch struct {
	Title     *string   `json:"title"`
	Excerpt   *string   `json:"excerpt"`
	Content   *string   `json:"content"`
	Category  *string   `json:"category"`
	Tags      *[]string `json:"tags"`
	Published *bool     `json:"published"`
}

// Validate checks only the fields the patch actually carries.
func (p *ArticlePatch) Validate() error {
	var v ValidationError
	if p.Title != nil && *p.Title == "" {
		v.Add("title", "Title is required")
	}
	if p.Excerpt != nil && *p.Excerpt == "" {
		v.Add("excerpt", "Excerpt is required")
	}
	if p.Content != nil && *p.Content == "" {
		v.Add("content", "Content is required")
	}
	if p.Category != nil && *p.Category == "" {
		v.Add("category", "Category is required")
	}
	return v.OrNil()
}

// Apply merges the patch onto a copy of a and refreshes UpdatedAt.
func (p *ArticlePatch) Apply(a Article, now time.Time) Article {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Excerpt != nil {
		a.Excerpt = *p.Excerpt
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Tags != nil {
		a.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Published != nil {
		a.Published = *p.Published
	}
	a.UpdatedAt = now
	return a
}
