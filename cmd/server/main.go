package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/thinkcraftlab/studio/internal/catalog"
	"github.com/thinkcraftlab/studio/internal/config"
	"github.com/thinkcraftlab/studio/internal/db"
	"github.com/thinkcraftlab/studio/internal/events"
	"github.com/thinkcraftlab/studio/internal/handlers"
	"github.com/thinkcraftlab/studio/internal/logging"
	"github.com/thinkcraftlab/studio/internal/media"
	"github.com/thinkcraftlab/studio/internal/middleware/auth"
	"github.com/thinkcraftlab/studio/internal/middleware/csrf"
	"github.com/thinkcraftlab/studio/internal/migrations"
	"github.com/thinkcraftlab/studio/internal/repo"
	"github.com/thinkcraftlab/studio/internal/service"
	httpserver "github.com/thinkcraftlab/studio/internal/transport/http"
)

func main() {
	config.LoadEnvFile(".env")
	cfg := config.Load()

	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.JWTRefreshSecret, "JWT_REFRESH_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx := context.Background()

	gdb, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}
	if err := migrate(ctx, cfg, gdb); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewProducer(cfg.KafkaBrokers, logger)
	}

	cat := &catalog.Catalog{}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = catalog.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cat.Cache = &catalog.RedisCache{RDB: rdb}
	}

	if cfg.ESURL != "" {
		es, err := catalog.NewESClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("elasticsearch_unavailable", "error", err)
		} else {
			searcher := &catalog.ESSearcher{ES: es, Index: cfg.ESIndex}
			if err := searcher.IndexAll(ctx, catalog.All()); err != nil {
				logger.Warn("elasticsearch_index_failed", "error", err)
			}
			cat.Searcher = searcher
		}
	}

	var images media.Resolver = media.Static{}
	if cfg.S3Bucket != "" {
		s3r, err := media.NewS3(ctx, media.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			log.Fatalf("s3 init failed: %v", err)
		}
		images = s3r
	}

	r := &repo.GormRepo{DB: gdb}
	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
		Events:        publisher,
	}

	deps := httpserver.Deps{
		AuthHandler:     &handlers.AuthHandler{Svc: authSvc, CookieSecure: cfg.CookieSecure},
		CartHandler:     &handlers.CartHandler{Svc: &service.CartService{Repo: r, Events: publisher, Images: images}},
		WishlistHandler: &handlers.WishlistHandler{Svc: &service.WishlistService{Repo: r, Events: publisher, Images: images}},
		ProductHandler:  &handlers.ProductHandler{Svc: &service.CatalogService{Catalog: cat, Images: images}},
		AuthMW:          auth.NewAutoRefreshMiddleware(cfg.JWTAccessSecret, authSvc, cfg.CookieSecure),
		Ready:           func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	}
	if cfg.CSRFEnabled {
		csrfCfg := csrf.DefaultConfig()
		csrfCfg.Secure = cfg.CookieSecure
		deps.CSRF = &csrfCfg
	}

	e := httpserver.New(logger, &deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server_started", "addr", srv.Addr, "db_driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	go func() {
		<-quit
		logger.Warn("force_exit")
		os.Exit(1)
	}()

	logger.Info("shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}

	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_error", "error", err)
	}

	if err := publisher.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis_close_error", "error", err)
		}
	}

	logger.Info("shutdown_complete")
}

func migrate(ctx context.Context, cfg config.Config, gdb *gorm.DB) error {
	if cfg.DBDriver == config.DriverPostgres {
		return migrations.Up(ctx, cfg.DatabaseURL)
	}
	return migrations.AutoMigrate(gdb)
}
