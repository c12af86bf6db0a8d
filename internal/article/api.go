// Package article exposes the blog article endpoints: the public
// published listing and the admin CRUD surface.
package article

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/skriptnetworks/siteapi/internal/errresponse"
	"github.com/skriptnetworks/siteapi/internal/model"
	"github.com/skriptnetworks/siteapi/internal/store"
)

// Resource bundles the store and logger the article handlers need.
type Resource struct {
	Store store.Storage
	Log   *zap.SugaredLogger
}

func NewResource(s store.Storage, log *zap.SugaredLogger) *Resource {
	return &Resource{Store: s, Log: log}
}

// Routes is the public surface: published articles only.
func (rs *Resource) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", rs.ListPublished)
	r.Route("/{articleID}", func(r chi.Router) {
		r.Use(rs.ArticleCtx)
		r.Get("/", rs.Get)
	})

	return r
}

// AdminRoutes is the management surface: all articles plus mutation.
// There is no auth check here; fencing the /api/admin prefix off is
// the fronting proxy's job.
func (rs *Resource) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", rs.ListAll)
	r.Post("/", rs.Create)
	r.Route("/{articleID}", func(r chi.Router) {
		r.Use(rs.ArticleCtx)
		r.Put("/", rs.Update)
		r.Delete("/", rs.Delete)
	})

	return r
}

// ListPublished returns the public listing, newest first. Unpublished
// articles never appear here.
func (rs *Resource) ListPublished(w http.ResponseWriter, r *http.Request) {
	articles, err := rs.Store.PublishedArticles(r.Context())
	if err != nil {
		rs.Log.Errorw("listing published articles", "error", err)
		rs.render(w, r, errresponse.ErrInternal(err, "Failed to fetch articles"))

		return
	}

	if err := render.RenderList(w, r, NewArticleListResponse(articles)); err != nil {
		rs.render(w, r, errresponse.ErrRender(err))
	}
}

// ListAll returns every article, unpublished included.
func (rs *Resource) ListAll(w http.ResponseWriter, r *http.Request) {
	articles, err := rs.Store.Articles(r.Context())
	if err != nil {
		rs.Log.Errorw("listing articles", "error", err)
		rs.render(w, r, errresponse.ErrInternal(err, "Failed to fetch articles"))

		return
	}

	if err := render.RenderList(w, r, NewArticleListResponse(articles)); err != nil {
		rs.render(w, r, errresponse.ErrRender(err))
	}
}

// Get returns the article loaded by ArticleCtx.
func (rs *Resource) Get(w http.ResponseWriter, r *http.Request) {
	rs.render(w, r, NewArticleResponse(articleFrom(r)))
}

// Create persists a new article and returns it with its assigned id
// and timestamps.
func (rs *Resource) Create(w http.ResponseWriter, r *http.Request) {
	data := &CreateArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		rs.renderBindError(w, r, err)

		return
	}

	created, err := rs.Store.CreateArticle(r.Context(), *data.InsertArticle)
	if err != nil {
		rs.Log.Errorw("creating article", "error", err)
		rs.render(w, r, errresponse.ErrInternal(err, "Failed to create article"))

		return
	}

	render.Status(r, http.StatusCreated)
	rs.render(w, r, NewArticleResponse(created))
}

// Update merges the supplied fields onto the loaded article and bumps
// its updatedAt.
func (rs *Resource) Update(w http.ResponseWriter, r *http.Request) {
	current := articleFrom(r)

	data := &UpdateArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		rs.renderBindError(w, r, err)

		return
	}

	updated, err := rs.Store.UpdateArticle(r.Context(), current.ID, *data.ArticlePatch)
	if errors.Is(err, store.ErrNotFound) {
		rs.render(w, r, errresponse.ErrArticleNotFound)

		return
	}
	if err != nil {
		rs.Log.Errorw("updating article", "id", current.ID, "error", err)
		rs.render(w, r, errresponse.ErrInternal(err, "Failed to update article"))

		return
	}

	rs.render(w, r, NewArticleResponse(updated))
}

// Delete removes the loaded article. Deleting twice 404s on the second
// call, ArticleCtx no longer finds it.
func (rs *Resource) Delete(w http.ResponseWriter, r *http.Request) {
	current := articleFrom(r)

	ok, err := rs.Store.DeleteArticle(r.Context(), current.ID)
	if err != nil {
		rs.Log.Errorw("deleting article", "id", current.ID, "error", err)
		rs.render(w, r, errresponse.ErrInternal(err, "Failed to delete article"))

		return
	}
	if !ok {
		rs.render(w, r, errresponse.ErrArticleNotFound)

		return
	}

	rs.render(w, r, &DeletedResponse{Success: true})
}

// renderBindError splits decoding problems from field validation so
// validation failures carry their per-field detail lines.
func (rs *Resource) renderBindError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		rs.render(w, r, errresponse.ErrValidation(err, "Invalid article data", ve.Details()))

		return
	}

	rs.render(w, r, errresponse.ErrInvalidRequest(err))
}
