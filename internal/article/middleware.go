package article

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/skriptnetworks/siteapi/internal/errresponse"
	"github.com/skriptnetworks/siteapi/internal/model"
	"github.com/skriptnetworks/siteapi/internal/store"
)

type ctxKey int

const articleCtxKey ctxKey = 0

// ArticleCtx middleware loads the Article addressed by the URL onto
// the request context. When the id is absent from the store we stop
// here and return a 404.
func (rs *Resource) ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		articleID := chi.URLParam(r, "articleID")
		if articleID == "" {
			rs.render(w, r, errresponse.ErrArticleNotFound)

			return
		}

		a, err := rs.Store.Article(r.Context(), articleID)
		if errors.Is(err, store.ErrNotFound) {
			rs.render(w, r, errresponse.ErrArticleNotFound)

			return
		}
		if err != nil {
			rs.Log.Errorw("loading article", "id", articleID, "error", err)
			rs.render(w, r, errresponse.ErrInternal(err, "Failed to fetch article"))

			return
		}

		ctx := context.WithValue(r.Context(), articleCtxKey, a)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// articleFrom pulls the loaded article off the context. Handlers below
// ArticleCtx can assume it is there; if not it's a routing bug and the
// Recoverer middleware will contain the panic.
func articleFrom(r *http.Request) *model.Article {
	return r.Context().Value(articleCtxKey).(*model.Article)
}

func (rs *Resource) render(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		rs.Log.Errorw("rendering response", "error", err)
	}
}
