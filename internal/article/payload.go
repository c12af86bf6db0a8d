package article

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/skriptnetworks/siteapi/internal/model"
)

//--
// Request and Response payloads for the articles resource.
//--

// CreateArticleRequest is the request payload for creating an article.
type CreateArticleRequest struct {
	*model.InsertArticle
}

// Bind runs after unmarshalling and applies the field validation, so a
// bad payload never reaches the store. An empty body validates like an
// all-empty article and reports every required field.
func (req *CreateArticleRequest) Bind(r *http.Request) error {
	if req.InsertArticle == nil {
		req.InsertArticle = &model.InsertArticle{}
	}

	return req.Validate()
}

// UpdateArticleRequest is the partial-update payload. Absent fields
// stay nil and are left untouched by the store.
type UpdateArticleRequest struct {
	*model.ArticlePatch
}

// Bind treats an empty body as an empty patch: nothing changes except
// updatedAt.
func (req *UpdateArticleRequest) Bind(r *http.Request) error {
	if req.ArticlePatch == nil {
		req.ArticlePatch = &model.ArticlePatch{}
	}

	return req.Validate()
}

// ArticleResponse is the response payload for the Article data model.
type ArticleResponse struct {
	*model.Article
}

func NewArticleResponse(a *model.Article) *ArticleResponse {
	return &ArticleResponse{Article: a}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewArticleListResponse(articles []model.Article) []render.Renderer {
	list := []render.Renderer{}
	for i := range articles {
		list = append(list, NewArticleResponse(&articles[i]))
	}

	return list
}

// DeletedResponse acknowledges a removal.
type DeletedResponse struct {
	Success bool `json:"success"`
}

func (rd *DeletedResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
