package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/barbemnt/internal/audit"
	"github.com/BruksfildServices01/barbemnt/internal/config"
	dbpkg "github.com/BruksfildServices01/barbemnt/internal/db"
	"github.com/BruksfildServices01/barbemnt/internal/infra/cache"
	"github.com/BruksfildServices01/barbemnt/internal/infra/storage"
	"github.com/BruksfildServices01/barbemnt/internal/logger"
	"github.com/BruksfildServices01/barbemnt/internal/middleware"
	"github.com/BruksfildServices01/barbemnt/internal/routes"
	"github.com/BruksfildServices01/barbemnt/internal/validators"
)

const (
	serviceName     = "barbemnt-api"
	shutdownTimeout = 15 * time.Second
)

func main() {
	os.Exit(run())
}

// run returns the process exit code; deferred closes run before exit.
func run() int {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		return 1
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		return 1
	}

	feed, err := cache.NewFeedCache(cfg.Redis.URL, cfg.Redis.FeedTTL)
	if err != nil {
		logg.Error(ctx, "failed to configure redis", err)
		return 1
	}
	if err := feed.Ping(ctx); err != nil {
		logg.Warn(ctx, "redis unreachable, feed cache reads will miss")
	}
	defer feed.Close()

	infra := routes.Infra{
		Log:      logg,
		Activity: audit.New(db),
		Feed:     feed,
	}
	infra.Audit = audit.NewDispatcher(infra.Activity, logg)
	defer infra.Audit.Close()

	if cfg.Storage.Enabled() {
		store, err := storage.NewS3Store(cfg.Storage)
		if err != nil {
			logg.Error(ctx, "failed to configure object storage", err)
			return 1
		}
		infra.Images = store
	} else {
		logg.Warn(ctx, "object storage not configured, uploads are disabled")
	}

	if err := validators.RegisterBindings(); err != nil {
		logg.Error(ctx, "failed to register validators", err)
		return 1
	}

	if !cfg.App.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestLogger(logg),
		middleware.Metrics(),
		middleware.CORSMiddleware(cfg.App.CORSOrigins),
		gin.Recovery(),
	)
	routes.RegisterRoutes(r, db, cfg, infra)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		logg.Error(ctx, "failed to bind api address", err)
		return 1
	}

	logg.Info(logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": cfg.Addr()}), "starting api server")
	if err := serve(ctx, server, ln, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		return 1
	}
	logg.Info(context.Background(), "api server stopped")
	return 0
}

// serve blocks until ctx is cancelled or the server fails, then waits for
// in-flight requests before returning, so the caller's deferred closes run
// after the last handler.
func serve(ctx context.Context, server *http.Server, ln net.Listener, logg *logger.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var failure error
	select {
	case err, ok := <-serverErr:
		if ok {
			failure = err
		}
	case <-ctx.Done():
		logg.Info(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "graceful shutdown failed", err)
		return errors.Join(failure, err)
	}
	return failure
}
