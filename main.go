//
// News API
// ========
// A REST service over topics, articles, comments and users stored in
// PostgreSQL.
//
// Also check the generated docs from passing the -routes flag,
// to run yourself do: `go run . -routes`
//
// Boot the server:
// ----------------
// $ go run . -migrate -seed
//
// Client requests:
// ----------------
// $ curl http://localhost:3333/api/topics
// {"topics":[{"slug":"mitch","description":"The man, the Mitch, the legend"},...]}
//
// $ curl 'http://localhost:3333/api/articles?topic=cats&sort_by=votes&order=asc'
// {"articles":[{"article_id":5,"author":"rogersop",...,"comment_count":2}]}
//
// $ curl -X PATCH -d '{"inc_votes":1}' http://localhost:3333/api/articles/1
// {"updatedArticle":{"article_id":1,...,"votes":101,...}}
//
// $ curl -X POST -d '{"username":"lurker","body":"hi"}' http://localhost:3333/api/articles/2/comments
// {"comment":{"comment_id":19,"author":"lurker","body":"hi","article_id":2,"votes":0,...}}
//
// $ curl -X DELETE http://localhost:3333/api/comments/19
//
// $ curl http://localhost:3333/api/nope
// {"message":"Not a valid route"}
//
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/docgen"
	"github.com/go-chi/render"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/metric/global"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SergeyParamoshkin/news/internal/config"
	"github.com/SergeyParamoshkin/news/internal/database"
	"github.com/SergeyParamoshkin/news/internal/endpoints"
	"github.com/SergeyParamoshkin/news/internal/payload"
	"github.com/SergeyParamoshkin/news/internal/seed"
)

const ServiceName = "news"

type CtxKey int8

const (
	CtxKeyLogger CtxKey = iota
)

type App struct {
	sugarLogger *zap.SugaredLogger
	config      *config.Config
	metrics     *Metrics
}

// nolint
func main() {
	var (
		routes   = flag.Bool("routes", false, "Generate router documentation")
		migrate  = flag.Bool("migrate", false, "apply database migrations before serving")
		seedData = flag.Bool("seed", false, "replace the database contents with the development dataset")
		addr     = flag.String("addr", "", "application address, overrides server.addr")
		diagAddr = flag.String("diag_addr", "", "diag address, overrides server.diag_addr")
	)

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	if *diagAddr != "" {
		cfg.Server.DiagAddr = *diagAddr
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() // flushes buffer, if any
	sugar := logger.Sugar()

	catalog, err := endpoints.Load()
	if err != nil {
		sugar.Fatalw("failed to load endpoint catalog", "error", err)
	}

	// Passing -routes to the program will generate docs for the router
	// without touching the database.
	if *routes {
		a := &App{sugarLogger: sugar, config: cfg, metrics: NewMetrics(global.Meter(ServiceName))}
		fmt.Println(docgen.MarkdownRoutesDoc(a.Router(nil, nil, catalog), docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/news",
			Intro:       "Routes of the news API.",
		}))

		return
	}

	exporter, err := newPrometheusExporter()
	if err != nil {
		sugar.Fatalw("failed to initialize prometheus exporter", "error", err)
	}

	a := &App{
		sugarLogger: sugar,
		config:      cfg,
		metrics:     NewMetrics(global.Meter(ServiceName)),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, &cfg.Database, sugar)
	if err != nil {
		sugar.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	if *migrate {
		if err := runMigrations(db, cfg.Database.MigrationPath, sugar); err != nil {
			sugar.Fatalw("migration failed", "error", err)
		}
	}

	if *seedData {
		if err := runSeed(ctx, db, sugar); err != nil {
			sugar.Fatalw("seeding failed", "error", err)
		}
	}

	diagRouter := chi.NewRouter()
	diagRouter.Get("/metrics", exporter.ServeHTTP)

	if err := a.Serve(ctx, a.Router(db, db, catalog), diagRouter); err != nil {
		sugar.Errorw("server stopped", "error", err)
	}
}

// render.Bind decodes only the first JSON value of a body; request bodies
// with trailing content are rejected instead.
// nolint
func init() {
	render.Decode = payload.Decode
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.Development {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func runMigrations(db *database.DB, path string, logger *zap.SugaredLogger) error {
	m, err := database.NewMigrator(db, path, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warnw("failed to close migrator", "error", err)
		}
	}()

	return m.Up()
}

func runSeed(ctx context.Context, db *database.DB, logger *zap.SugaredLogger) error {
	ds, err := seed.Embedded()
	if err != nil {
		return err
	}

	return db.WithTransaction(ctx, func(tx pgx.Tx) error {
		return seed.Load(ctx, tx, ds, logger)
	})
}

// Serve runs the API and diag servers until ctx is cancelled, then shuts
// both down within the configured timeout.
func (a *App) Serve(ctx context.Context, api, diag http.Handler) error {
	servers := []*http.Server{
		{
			Addr:         a.config.Server.Addr,
			Handler:      api,
			ReadTimeout:  a.config.Server.ReadTimeout,
			WriteTimeout: a.config.Server.WriteTimeout,
		},
		{
			Addr:    a.config.Server.DiagAddr,
			Handler: diag,
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		g.Go(func() error {
			a.sugarLogger.Infow("listening", "addr", srv.Addr)

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", srv.Addr, err)
			}

			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			errs = append(errs, srv.Shutdown(shutdownCtx))
		}

		a.sugarLogger.Infow("servers stopped")

		return errors.Join(errs...)
	})

	return g.Wait()
}

func (a *App) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := a.sugarLogger.With("request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), CtxKeyLogger, logger)))
	})
}

func loggerFrom(r *http.Request) *zap.SugaredLogger {
	if logger, ok := r.Context().Value(CtxKeyLogger).(*zap.SugaredLogger); ok {
		return logger
	}

	return zap.NewNop().Sugar()
}
