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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shopcart/internal/cache"
	"github.com/Skotchmaster/shopcart/internal/config"
	"github.com/Skotchmaster/shopcart/internal/events"
	"github.com/Skotchmaster/shopcart/internal/httpserver"
	"github.com/Skotchmaster/shopcart/internal/repo"
	"github.com/Skotchmaster/shopcart/internal/service"
	"github.com/Skotchmaster/shopcart/internal/telemetry"
	pkgconfig "github.com/Skotchmaster/shopcart/pkg/config"
	pkgdb "github.com/Skotchmaster/shopcart/pkg/db"
	"github.com/Skotchmaster/shopcart/pkg/logging"
	loggingmw "github.com/Skotchmaster/shopcart/pkg/middleware/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	pkgconfig.MustNonEmpty(cfg.Database.URL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, pkgdb.Options{DSN: cfg.Database.URL, Driver: cfg.Database.Driver})
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	shutdownTracing, err := telemetry.Setup(context.Background(), telemetry.Options{
		ServiceName: cfg.ServiceName,
		Enabled:     cfg.Tracing.Enabled,
	})
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	var producer *events.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = events.NewProducer(cfg.Kafka.Brokers)
		publisher = producer
		logger.Info("kafka_enabled", "brokers", cfg.Kafka.Brokers)
	}

	r := &repo.GormRepo{DB: db}
	catalogSvc := &service.CatalogService{Repo: r}

	var productCache *cache.RedisCache
	if cfg.Redis.URL != "" {
		productCache, err = cache.NewRedis(cfg.Redis.URL, cfg.Redis.TTL)
		if err != nil {
			logger.Warn("redis_unavailable", "error", err)
		} else {
			catalogSvc.Cache = productCache
			logger.Info("product_cache_enabled", "ttl", cfg.Redis.TTL.String())
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.Server.CORSAllowOrigins}))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: &service.AuthService{
			Repo:       r,
			Events:     publisher,
			Iterations: cfg.Security.PasswordIterations,
		}},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc, LegacyErrors: cfg.Catalog.LegacyErrors},
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: r, Events: publisher}},
		Ready:          func(ctx context.Context) error { return pkgdb.Ping(ctx, db) },
	})

	var handler http.Handler = e
	if cfg.Tracing.Enabled {
		handler = telemetry.Handler(e, cfg.ServiceName)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka_close_failed", "error", err)
		}
	}
	if productCache != nil {
		_ = productCache.Close()
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing_shutdown_failed", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Warn("db_close_failed", "error", err)
	}

	logger.Info("server_stopped")
}
