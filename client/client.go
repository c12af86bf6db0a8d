// Package client is a typed HTTP client for the site API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/skriptnetworks/siteapi/internal/model"
)

type Client struct {
	http.Client
	Addr string
}

// APIError is a decoded error body from the server.
type APIError struct {
	StatusCode int      `json:"-"`
	Message    string   `json:"error"`
	Details    []string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s (%s)", e.Message, strings.Join(e.Details, "; "))
	}

	return e.Message
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// PublishedArticles lists the public blog, newest first.
func (c *Client) PublishedArticles(ctx context.Context) ([]model.Article, error) {
	var out []model.Article
	err := c.call(ctx, http.MethodGet, "/api/articles", nil, &out)

	return out, err
}

func (c *Client) Article(ctx context.Context, id string) (*model.Article, error) {
	var out model.Article
	if err := c.call(ctx, http.MethodGet, "/api/articles/"+id, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// SubmitContact sends the contact form and returns the server's
// success message.
func (c *Client) SubmitContact(ctx context.Context, form model.ContactSubmission) (string, error) {
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/contact", form, &out); err != nil {
		return "", err
	}

	return out.Message, nil
}

// AdminArticles lists every article, unpublished included.
func (c *Client) AdminArticles(ctx context.Context) ([]model.Article, error) {
	var out []model.Article
	err := c.call(ctx, http.MethodGet, "/api/admin/articles", nil, &out)

	return out, err
}

func (c *Client) CreateArticle(ctx context.Context, in model.InsertArticle) (*model.Article, error) {
	var out model.Article
	if err := c.call(ctx, http.MethodPost, "/api/admin/articles", in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateArticle(ctx context.Context, id string, patch model.ArticlePatch) (*model.Article, error) {
	var out model.Article
	if err := c.call(ctx, http.MethodPut, "/api/admin/articles/"+id, patch, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/admin/articles/"+id, nil, nil)
}

// call does one JSON round trip. Non-2xx responses come back as
// *APIError.
func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		_ = json.Unmarshal(raw, apiErr)

		return apiErr
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(raw, out)
}
