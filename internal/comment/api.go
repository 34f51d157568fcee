package comment

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

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

// UpdatedResponse renders {"updatedComment": {...}}.
type UpdatedResponse struct {
	UpdatedComment *model.Comment `json:"updatedComment"`
}

func (rd *UpdatedResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// UpdateCommentVotes handles PATCH /api/comments/{comment_id}.
func (a *API) UpdateCommentVotes(w http.ResponseWriter, r *http.Request) {
	data := &payload.VoteRequest{}
	if err := render.Bind(r, data); err != nil {
		errresponse.Render(w, r, a.sugarLogger, errresponse.BadPayload(err))

		return
	}

	c, err := a.store.IncrementVotes(r.Context(), IDFromContext(r.Context()), data.IncVotes)
	if err != nil {
		errresponse.Render(w, r, a.sugarLogger, err)

		return
	}

	if err := render.Render(w, r, &UpdatedResponse{UpdatedComment: c}); err != nil {
		a.sugarLogger.Errorw(err.Error())
	}
}

// DeleteComment handles DELETE /api/comments/{comment_id}: 204, no body.
func (a *API) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Delete(r.Context(), IDFromContext(r.Context())); err != nil {
		errresponse.Render(w, r, a.sugarLogger, err)

		return
	}

	render.NoContent(w, r)
}
