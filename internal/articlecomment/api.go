package articlecomment

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/news/internal/article"
	"github.com/SergeyParamoshkin/news/internal/errresponse"
	"github.com/SergeyParamoshkin/news/internal/model"
	"github.com/SergeyParamoshkin/news/internal/payload"
)

type API struct {
	store       *Store
	sugarLogger *zap.SugaredLogger
}

func NewAPI(store *Store, logger *zap.SugaredLogger) *API {
	return &API{store: store, sugarLogger: logger}
}

// ListResponse renders {"comments": [...]}.
type ListResponse struct {
	Comments []*model.Comment `json:"comments"`
}

func (rd *ListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// CommentResponse renders {"comment": {...}} with a 201.
type CommentResponse struct {
	Comment *model.Comment `json:"comment"`
}

func (rd *CommentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusCreated)

	return nil
}

// ListComments handles GET /api/articles/{article_id}/comments.
func (a *API) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := a.store.List(r.Context(), article.IDFromContext(r.Context()))
	if err != nil {
		errresponse.Render(w, r, a.sugarLogger, err)

		return
	}

	if err := render.Render(w, r, &ListResponse{Comments: comments}); err != nil {
		a.sugarLogger.Errorw(err.Error())
	}
}

// CreateComment handles POST /api/articles/{article_id}/comments.
func (a *API) CreateComment(w http.ResponseWriter, r *http.Request) {
	data := &payload.CommentRequest{}
	if err := render.Bind(r, data); err != nil {
		errresponse.Render(w, r, a.sugarLogger, errresponse.BadPayload(err))

		return
	}

	comment, err := a.store.Create(r.Context(), article.IDFromContext(r.Context()), data)
	if err != nil {
		errresponse.Render(w, r, a.sugarLogger, err)

		return
	}

	if err := render.Render(w, r, &CommentResponse{Comment: comment}); err != nil {
		a.sugarLogger.Errorw(err.Error())
	}
}
