package topic

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/news/internal/errresponse"
	"github.com/SergeyParamoshkin/news/internal/model"
)

type API struct {
	store       *Store
	sugarLogger *zap.SugaredLogger
}

func NewAPI(store *Store, logger *zap.SugaredLogger) *API {
	return &API{store: store, sugarLogger: logger}
}

// ListResponse renders {"topics": [...]}.
type ListResponse struct {
	Topics []*model.Topic `json:"topics"`
}

func (rd *ListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// ListTopics handles GET /api/topics.
func (a *API) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := a.store.List(r.Context())
	if err != nil {
		errresponse.Render(w, r, a.sugarLogger, err)

		return
	}

	if err := render.Render(w, r, &ListResponse{Topics: topics}); err != nil {
		a.sugarLogger.Errorw(err.Error())
	}
}
