package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/R0UTS/Animal-Hospitalty/internal/audit"
	"github.com/R0UTS/Animal-Hospitalty/internal/config"
	dbpkg "github.com/R0UTS/Animal-Hospitalty/internal/db"
	"github.com/R0UTS/Animal-Hospitalty/internal/handlers"
	infraRepo "github.com/R0UTS/Animal-Hospitalty/internal/infra/repository"
	"github.com/R0UTS/Animal-Hospitalty/internal/infra/repository/memory"
	"github.com/R0UTS/Animal-Hospitalty/internal/infra/storage"
	"github.com/R0UTS/Animal-Hospitalty/internal/media"
	"github.com/R0UTS/Animal-Hospitalty/internal/middleware"
	"github.com/R0UTS/Animal-Hospitalty/internal/notify"
	"github.com/R0UTS/Animal-Hospitalty/internal/routes"
	"github.com/R0UTS/Animal-Hospitalty/internal/tracing"
)

const (
	serviceName     = "animal-hospitality-api"
	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, logger, cfg.OTLPEndpoint, serviceName, cfg.Env)
	if err != nil {
		return err
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(c)
	}()

	deps := routes.Deps{
		Config: cfg,
		Log:    logger,
		Checks: map[string]handlers.Pinger{},
	}

	// ======================================================
	// PERSISTENCE
	// ======================================================
	switch cfg.DatabaseDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory database; data is lost on restart")
		store := memory.New(nil)
		deps.Users, deps.Animals, deps.Emergencies, deps.AuditStore = store, store, store, store
		deps.Checks["database"] = store

	default:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return err
		}
		defer dbpkg.Close(db)

		deps.Users = infraRepo.NewUserGormRepository(db)
		deps.Animals = infraRepo.NewAnimalGormRepository(db)
		deps.Emergencies = infraRepo.NewEmergencyGormRepository(db)
		deps.AuditStore = infraRepo.NewAuditGormRepository(db)
		deps.Checks["database"] = dbpkg.Pinger{DB: db}
	}

	dispatcher := audit.NewDispatcher(audit.New(deps.AuditStore), logger)
	deps.Audit = dispatcher
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := dispatcher.Close(c); err != nil {
			logger.Warn("audit drain incomplete", slog.String("error", err.Error()))
		}
	}()

	// ======================================================
	// ATTACHMENTS
	// ======================================================
	switch cfg.StorageDriver {
	case config.StorageS3:
		files, err := storage.NewS3Store(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			return err
		}
		deps.Files = files
	default:
		files, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			return err
		}
		deps.Files = files
	}
	deps.Thumbnails = media.NewThumbnailer(deps.Files, cfg.ThumbnailWidth, logger)

	// ======================================================
	// RELAY
	// ======================================================
	deps.Hub = notify.NewHub(logger)
	if cfg.RedisURL != "" {
		backplane, err := notify.NewRedisBackplane(ctx, cfg.RedisURL, cfg.RelayChannel, deps.Hub, logger)
		if err != nil {
			return err
		}
		defer backplane.Close()

		deps.Publisher = backplane
		deps.Checks["redis"] = backplane

		go func() {
			if err := backplane.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("relay backplane stopped", slog.String("error", err.Error()))
			}
		}()
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", slog.String("addr", cfg.Addr()), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
