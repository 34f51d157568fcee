package article

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SergeyParamoshkin/news/internal/apierror"
	"github.com/SergeyParamoshkin/news/internal/errresponse"
)

type ctxKey int8

const ctxKeyArticleID ctxKey = iota

// ArticleCtx middleware parses {article_id} and puts it on the request
// context. Anything that is not an integer stops here with a 400; whether
// the article exists is left to the handler.
func ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "article_id"), 10, 64)
		if err != nil {
			errresponse.Render(w, r, nil, apierror.BadRequest())

			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyArticleID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IDFromContext returns the id stored by ArticleCtx. It panics when the
// handler is mounted without the middleware; the Recoverer turns that into a 500.
func IDFromContext(ctx context.Context) int64 {
	return ctx.Value(ctxKeyArticleID).(int64)
}
