package article

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/news/internal/articleresponse"
	"github.com/SergeyParamoshkin/news/internal/errresponse"
	"github.com/SergeyParamoshkin/news/internal/payload"
)

type API struct {
	store       *Store
	sugarLogger *zap.SugaredLogger
}

func NewAPI(store *Store, logger *zap.SugaredLogger) *API {
	return &API{store: store, sugarLogger: logger}
}

// ListArticles handles GET /api/articles?sort_by=&order=&topic=.
func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params, err := a.store.ListParams(r.Context(), q.Get("sort_by"), q.Get("order"), q.Get("topic"))
	if err != nil {
		errresponse.Render(w, r, a.sugarLogger, err)

		return
	}

	a.sugarLogger.Debugw("listing articles",
		"sort_by", params.SortBy,
		"order", params.Order,
		"topic", params.Topic.Literal(),
	)

	articles, err := a.store.List(r.Context(), params)
	if err != nil {
		errresponse.Render(w, r, a.sugarLogger, err)

		return
	}

	if err := render.Render(w, r, articleresponse.NewListResponse(articles)); err != nil {
		a.sugarLogger.Errorw(err.Error())
	}
}

// GetArticle handles GET /api/articles/{article_id}.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := a.store.Get(r.Context(), IDFromContext(r.Context()))
	if err != nil {
		errresponse.Render(w, r, a.sugarLogger, err)

		return
	}

	if err := render.Render(w, r, articleresponse.NewArticleResponse(article)); err != nil {
		a.sugarLogger.Errorw(err.Error())
	}
}

// UpdateArticleVotes handles PATCH /api/articles/{article_id}. The body is
// judged before the database is asked about the article.
func (a *API) UpdateArticleVotes(w http.ResponseWriter, r *http.Request) {
	data := &payload.VoteRequest{}
	if err := render.Bind(r, data); err != nil {
		errresponse.Render(w, r, a.sugarLogger, errresponse.BadPayload(err))

		return
	}

	article, err := a.store.IncrementVotes(r.Context(), IDFromContext(r.Context()), data.IncVotes)
	if err != nil {
		errresponse.Render(w, r, a.sugarLogger, err)

		return
	}

	if err := render.Render(w, r, articleresponse.NewUpdatedResponse(article)); err != nil {
		a.sugarLogger.Errorw(err.Error())
	}
}
