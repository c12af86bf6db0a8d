package article

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skriptnetworks/siteapi/internal/model"
	"github.com/skriptnetworks/siteapi/internal/store"
)

type errBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

func newTestRouter(t *testing.T) (chi.Router, *store.MemStorage) {
	t.Helper()

	s := store.NewMemStorage()
	rs := NewResource(s, zap.NewNop().Sugar())

	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Mount("/api/articles", rs.Routes())
	r.Mount("/api/admin/articles", rs.AdminRoutes())

	return r, s
}

func doJSON(t *testing.T, r chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestCreateArticleDefaults(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/articles",
		`{"title":"T","excerpt":"E","content":"C","category":"Cat"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got model.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, []string{}, got.Tags)
	assert.False(t, got.Published)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestCreateArticleValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/articles", `{"title":"T"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var got errBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Invalid article data", got.Error)
	assert.Equal(t, []string{
		"excerpt: Excerpt is required",
		"content: Content is required",
		"category: Category is required",
	}, got.Details)
}

func TestGetArticleNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/articles/nope", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var got errBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Article not found", got.Error)
}

func TestPublicListingExcludesDrafts(t *testing.T) {
	r, s := newTestRouter(t)
	ctx := context.Background()

	published, err := s.CreateArticle(ctx, model.InsertArticle{
		Title: "live", Excerpt: "e", Content: "c", Category: "x", Published: true,
	})
	require.NoError(t, err)
	_, err = s.CreateArticle(ctx, model.InsertArticle{
		Title: "draft", Excerpt: "e", Content: "c", Category: "x",
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/articles", "")
	require.Equal(t, http.StatusOK, w.Code)

	var public []model.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &public))
	require.Len(t, public, 1)
	assert.Equal(t, published.ID, public[0].ID)

	w = doJSON(t, r, http.MethodGet, "/api/admin/articles", "")
	require.Equal(t, http.StatusOK, w.Code)

	var all []model.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)
}

func TestUpdateArticlePartial(t *testing.T) {
	r, s := newTestRouter(t)

	created, err := s.CreateArticle(context.Background(), model.InsertArticle{
		Title: "orig", Excerpt: "E", Content: "C", Category: "Cat", Published: true,
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPut, "/api/admin/articles/"+created.ID, `{"title":"X"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got model.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "X", got.Title)
	assert.Equal(t, "E", got.Excerpt)
	assert.True(t, got.Published)
}

func TestUpdateArticleValidation(t *testing.T) {
	r, s := newTestRouter(t)

	created, err := s.CreateArticle(context.Background(), model.InsertArticle{
		Title: "orig", Excerpt: "E", Content: "C", Category: "Cat",
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPut, "/api/admin/articles/"+created.ID, `{"title":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var got errBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"title: Title is required"}, got.Details)
}

func TestUpdateArticleNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/admin/articles/nope", `{"title":"X"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteArticle(t *testing.T) {
	r, s := newTestRouter(t)

	created, err := s.CreateArticle(context.Background(), model.InsertArticle{
		Title: "t", Excerpt: "e", Content: "c", Category: "x",
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodDelete, "/api/admin/articles/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	// Second delete: the context loader no longer finds the id.
	w = doJSON(t, r, http.MethodDelete, "/api/admin/articles/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
