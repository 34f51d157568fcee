package comment

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SergeyParamoshkin/news/internal/apierror"
	"github.com/SergeyParamoshkin/news/internal/errresponse"
)

type ctxKey int8

const ctxKeyCommentID ctxKey = iota

// CommentCtx middleware parses {comment_id}, answering 400 when it is not
// an integer.
func CommentCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "comment_id"), 10, 64)
		if err != nil {
			errresponse.Render(w, r, nil, apierror.BadRequest())

			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyCommentID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func IDFromContext(ctx context.Context) int64 {
	return ctx.Value(ctxKeyCommentID).(int64)
}
