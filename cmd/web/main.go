package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"

	"github.com/mbark223/playablelab-sub000/internal/channel"
	"github.com/mbark223/playablelab-sub000/internal/config"
	"github.com/mbark223/playablelab-sub000/internal/export"
	"github.com/mbark223/playablelab-sub000/internal/handlers"
	"github.com/mbark223/playablelab-sub000/internal/project"
	"github.com/mbark223/playablelab-sub000/internal/quizdraft"
	"github.com/mbark223/playablelab-sub000/internal/repository"
	"github.com/mbark223/playablelab-sub000/internal/repository/memory"
	"github.com/mbark223/playablelab-sub000/internal/repository/postgres"
)

func main() {
	setupLogging()
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if level, err := log.ParseLevel(cfg.AppLogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("open repositories")
	}
	defer repos.close()

	store := project.NewStore(repos.projects)
	pipeline := export.NewPipeline(channel.Default(), repos.projects, repos.exports, repos.tx, export.WithDir(cfg.ExportDir))

	var drafter handlers.QuizDrafter
	if cfg.DraftEnabled() {
		d, err := quizdraft.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.WithError(err).Warn("quiz drafting disabled")
		} else {
			drafter = d
		}
	}

	sweeper, err := project.NewSweeper(store, cfg.SweepSchedule, cfg.SessionIdleTTL)
	if err != nil {
		log.WithError(err).Fatal("create sweeper")
	}
	sweeper.Start()
	defer sweeper.Stop()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(timeoutExceptStreams(15 * time.Second))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "Hx-Request"},
			ExposedHeaders: []string{"Content-Disposition", "X-Checksum-Blake2b"},
			MaxAge:         60 * 15,
		}))
	}

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		log.WithError(err).Fatal("static files")
	}
	r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))

	handlers.NewHomeHandler(store).RegisterRoutes(r)
	handlers.NewProjectHandler(store, pipeline, drafter, cfg.BaseURL).RegisterRoutes(r)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Preview streams stay open, so writes are not bounded here.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr()).Info("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("serve")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("shutdown")
	}
}

func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
}

// timeoutExceptStreams applies middleware.Timeout to everything but the SSE
// endpoints, which must stay open.
func timeoutExceptStreams(d time.Duration) func(http.Handler) http.Handler {
	timeout := middleware.Timeout(d)
	return func(next http.Handler) http.Handler {
		limited := timeout(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/stream") {
				next.ServeHTTP(w, r)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}

type repositories struct {
	projects repository.ProjectRepository
	exports  repository.ExportRepository
	tx       repository.TxRunner
	close    func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if !cfg.UsePostgres() {
		log.Warn("DB_DSN not set, projects are kept in memory")
		mem := memory.New()
		return &repositories{projects: mem, exports: mem, tx: repository.NoTx{}, close: func() {}}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DBDSN, cfg.DBMaxConns)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	txm, err := postgres.NewTxManager(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &repositories{
		projects: postgres.NewProjectRepository(pool),
		exports:  postgres.NewExportRepository(pool),
		tx:       txm,
		close:    pool.Close,
	}, nil
}

//go:embed static/*
var embeddedStatic embed.FS
