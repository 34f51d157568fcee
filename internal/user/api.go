package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/news/internal/errresponse"
	"github.com/SergeyParamoshkin/news/internal/userpayload"
)

type API struct {
	store       *Store
	sugarLogger *zap.SugaredLogger
}

func NewAPI(store *Store, logger *zap.SugaredLogger) *API {
	return &API{store: store, sugarLogger: logger}
}

// ListUsers handles GET /api/users.
func (a *API) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.store.List(r.Context())
	if err != nil {
		errresponse.Render(w, r, a.sugarLogger, err)

		return
	}

	if err := render.Render(w, r, userpayload.NewListPayloadResponse(users)); err != nil {
		a.sugarLogger.Errorw(err.Error())
	}
}

// GetUser handles GET /api/users/{username}.
func (a *API) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := a.store.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		errresponse.Render(w, r, a.sugarLogger, err)

		return
	}

	if err := render.Render(w, r, userpayload.NewUserPayloadResponse(u)); err != nil {
		a.sugarLogger.Errorw(err.Error())
	}
}
