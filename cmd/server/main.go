package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asteroid-tracker/internal/bot"
	"asteroid-tracker/internal/cache"
	"asteroid-tracker/internal/config"
	"asteroid-tracker/internal/db"
	"asteroid-tracker/internal/handler"
	"asteroid-tracker/internal/logger"
	"asteroid-tracker/internal/observability"
	"asteroid-tracker/internal/provider"
	"asteroid-tracker/internal/repository"
	"asteroid-tracker/internal/service"
	"asteroid-tracker/pkg/tracing"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "asteroid-tracker/docs"
)

var (
	loadEnvFunc      = godotenv.Load
	loadConfigFunc   = config.Load
	initPostgresFunc = db.InitPostgres
	initRedisFunc    = cache.InitRedis
	initTracerFunc   = tracing.InitTracer
	newStoreFunc     = openStore
	newFetcherFunc   = func(tracer trace.Tracer, cfg *config.Config) service.FeedFetcher {
		return provider.NewNeoWsProvider(tracer, cfg.NASAAPIKey, cfg.NASAAPIURL)
	}
	newMetricsFunc         = observability.NewMetrics
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Asteroid Tracker API
// @version         1.0
// @description     Stores near-Earth objects fetched from the NASA NeoWs feed.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	_ = loadEnvFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfigFunc(ctx)
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	initPostgresFunc(ctx, cfg.DatabaseURL)
	defer db.Close()
	initRedisFunc(ctx, cfg.RedisURL)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatal("failed to initialize tracer", "err", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Error("error shutting down tracer provider", "err", err)
		}
	}()

	store, err := newStoreFunc(ctx, tracer)
	if err != nil {
		log.Fatal("failed to open asteroid store", "err", err)
	}

	var runLog service.RedisClient
	if cache.Client != nil {
		runLog = cache.Client
	}
	asteroids := service.NewAsteroidService(
		tracer,
		newFetcherFunc(tracer, cfg),
		store,
		runLog,
		newMetricsFunc(),
		nil,
	)

	startTelegramBotFunc(cfg.TelegramBotToken, asteroids)

	if cfg.APIKey == "" {
		log.Warn("API_KEY not set, mutating routes are unauthenticated")
	}
	h := newHandlerFunc(tracer, asteroids)

	r := newRouterFunc()
	r.Use(cors.New(corsConfig()))
	r.Use(otelgin.Middleware("asteroid-tracker"))

	h.RegisterRoutes(r, cfg.APIKey)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", "err", err)
	}

	log.Info("Server exiting")
}

func corsConfig() cors.Config {
	c := cors.DefaultConfig()
	c.AllowAllOrigins = true
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "X-API-Key")
	return c
}

// openStore picks Postgres when a pool is available and applies the schema;
// otherwise records live in memory for the life of the process.
func openStore(ctx context.Context, tracer trace.Tracer) (service.AsteroidStore, error) {
	if db.Pool == nil {
		log.Warn("no database configured, using in-memory asteroid store")
		return repository.NewMemoryAsteroidStore(nil), nil
	}
	repo := repository.NewAsteroidRepository(db.Pool, tracer)
	if err := repo.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return repo, nil
}
