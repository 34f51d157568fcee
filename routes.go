package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/news/internal/article"
	"github.com/SergeyParamoshkin/news/internal/articlecomment"
	"github.com/SergeyParamoshkin/news/internal/comment"
	"github.com/SergeyParamoshkin/news/internal/database"
	"github.com/SergeyParamoshkin/news/internal/endpoints"
	"github.com/SergeyParamoshkin/news/internal/errresponse"
	"github.com/SergeyParamoshkin/news/internal/topic"
	"github.com/SergeyParamoshkin/news/internal/user"
)

type healthChecker interface {
	Health(ctx context.Context) database.HealthStatus
}

// Router wires every resource onto one chi router. Unmatched paths and
// methods both answer 404 "Not a valid route".
func (a *App) Router(db database.DBTX, health healthChecker, catalog endpoints.Catalog) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(a.Logger)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(a.metrics.Middleware)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// set before any Route call so sub-routers inherit them
	r.NotFound(errresponse.NotValidRoute)
	r.MethodNotAllowed(errresponse.NotValidRoute)

	r.Get("/healthz", a.Healthz(health))

	var (
		catalogAPI  = endpoints.NewAPI(catalog, a.sugarLogger)
		topics      = topic.NewAPI(topic.NewStore(db), a.sugarLogger)
		users       = user.NewAPI(user.NewStore(db), a.sugarLogger)
		articles    = article.NewAPI(article.NewStore(db), a.sugarLogger)
		comments    = comment.NewAPI(comment.NewStore(db), a.sugarLogger)
		articleCmts = articlecomment.NewAPI(articlecomment.NewStore(db), a.sugarLogger)
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", catalogAPI.GetAPI) // GET /api

		r.Get("/topics", topics.ListTopics)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", users.ListUsers)         // GET /api/users
			r.Get("/{username}", users.GetUser) // GET /api/users/butter_bridge
		})

		// RESTy routes for "articles" resource
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", articles.ListArticles) // GET /api/articles?topic=cats&sort_by=votes

			r.Route("/{article_id}", func(r chi.Router) {
				r.Use(article.ArticleCtx)                 // Parse the id onto the request context
				r.Get("/", articles.GetArticle)           // GET /api/articles/1
				r.Patch("/", articles.UpdateArticleVotes) // PATCH /api/articles/1

				r.Get("/comments", articleCmts.ListComments)   // GET /api/articles/1/comments
				r.Post("/comments", articleCmts.CreateComment) // POST /api/articles/1/comments
			})
		})

		r.Route("/comments/{comment_id}", func(r chi.Router) {
			r.Use(comment.CommentCtx)
			r.Patch("/", comments.UpdateCommentVotes) // PATCH /api/comments/1
			r.Delete("/", comments.DeleteComment)     // DELETE /api/comments/1
		})
	})

	return r
}

// Healthz reports pool statistics; 503 when the database does not answer.
func (a *App) Healthz(health healthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := health.Health(r.Context())
		if status.Status != "healthy" {
			loggerFrom(r).Warnw("health check failed", "error", status.Error)
			render.Status(r, http.StatusServiceUnavailable)
		}

		render.JSON(w, r, status)
	}
}
