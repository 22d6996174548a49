package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asteroid-tracker/internal/cache"
	"asteroid-tracker/internal/config"
	"asteroid-tracker/internal/db"
	"asteroid-tracker/internal/logger"
	"asteroid-tracker/internal/mcpserver"
	"asteroid-tracker/internal/provider"
	"asteroid-tracker/internal/repository"
	"asteroid-tracker/internal/service"
	"asteroid-tracker/pkg/tracing"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/trace"
)

var (
	loadEnvFunc      = godotenv.Load
	loadConfigFunc   = config.Load
	initPostgresFunc = db.InitPostgres
	initRedisFunc    = cache.InitRedis
	initTracerFunc   = tracing.InitTracer
	newStoreFunc     = openStore
	runStdioFunc     = func(ctx context.Context, server *mcp.Server) error {
		return server.Run(ctx, &mcp.StdioTransport{})
	}
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	_ = loadEnvFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfigFunc(ctx)
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	// stdout carries the stdio protocol; logs stay on stderr.
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	initPostgresFunc(ctx, cfg.DatabaseURL)
	defer db.Close()
	initRedisFunc(ctx, cfg.RedisURL)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatal("failed to initialize tracer", "err", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
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
	neows := provider.NewNeoWsProvider(tracer, cfg.NASAAPIKey, cfg.NASAAPIURL)
	asteroids := service.NewAsteroidService(tracer, neows, store, runLog, nil, nil)

	server := mcpserver.NewServer(asteroids, time.Duration(cfg.MCPRequestTimeoutSecs)*time.Second)

	if cfg.MCPTransport == "http" {
		serveHTTP(ctx, cancel, cfg, server)
		return
	}

	log.Info("MCP server running on stdio")
	if err := runStdioFunc(ctx, server); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("MCP stdio session ended", "err", err)
	}
}

func serveHTTP(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, server *mcp.Server) {
	if cfg.MCPAuthToken == "" {
		log.Warn("MCP_AUTH_TOKEN not set, MCP HTTP endpoint is unauthenticated")
	}
	limiter := mcpserver.PerMinute(nil, cfg.MCPRateLimitPerMin)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.MCPHTTPBind, cfg.MCPHTTPPort),
		Handler:           mcpserver.HTTPHandler(server, cfg.MCPAuthToken, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("MCP HTTP server listening", "addr", srv.Addr)
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info("Shutting down MCP server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Error("MCP server shutdown error", "err", err)
	}
	log.Info("MCP server exited")
}

func openStore(ctx context.Context, tracer trace.Tracer) (service.AsteroidStore, error) {
	if db.Pool == nil {
		log.Warn("no database configured, using in-memory asteroid store")
		return repository.NewMemoryAsteroidStore(nil), nil
	}
	return repository.NewAsteroidRepository(db.Pool, tracer), nil
}
