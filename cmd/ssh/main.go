package main

import (
	"context"
	"fmt"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"asteroid-tracker/internal/config"
	"asteroid-tracker/internal/db"
	"asteroid-tracker/internal/logger"
	"asteroid-tracker/internal/provider"
	"asteroid-tracker/internal/repository"
	"asteroid-tracker/internal/service"
	"asteroid-tracker/internal/tui"
	"asteroid-tracker/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
	gossh "golang.org/x/crypto/ssh"
)

var (
	loadEnvFunc       = godotenv.Load
	loadConfigFunc    = config.Load
	initPostgresFunc  = db.InitPostgres
	initTracerFunc    = tracing.InitTracer
	newStoreFunc      = openStore
	newWishServerFunc = wish.NewServer
	setupSignalNotify = ossignal.Notify
	waitForSignalFunc = func(quit <-chan os.Signal) { <-quit }
)

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
	neows := provider.NewNeoWsProvider(tracer, cfg.NASAAPIKey, cfg.NASAAPIURL)
	asteroids := service.NewAsteroidService(tracer, neows, store, nil, nil, nil)

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)
	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithPublicKeyAuth(publicKeyHandler(cfg.SSHAllowedFingerprints)),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				model := tui.NewModel(asteroids, s.User())
				pty, _, _ := s.Pty()
				model.SetSize(pty.Window.Width, pty.Window.Height)
				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatal("failed to create SSH server", "err", err)
	}

	if srv != nil {
		go func() {
			log.Info("SSH server listening", "addr", addr)
			if err := srv.ListenAndServe(); err != nil {
				log.Info("SSH server stopped", "err", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info("Shutting down SSH server...")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("SSH server shutdown error", "err", err)
		}
	}

	log.Info("SSH server exited")
}

func openStore(ctx context.Context, tracer trace.Tracer) (service.AsteroidStore, error) {
	if db.Pool == nil {
		log.Warn("no database configured, browsing an empty in-memory store")
		return repository.NewMemoryAsteroidStore(nil), nil
	}
	return repository.NewAsteroidRepository(db.Pool, tracer), nil
}

// publicKeyHandler admits keys whose SHA256 fingerprint is listed. An empty
// list admits every key.
func publicKeyHandler(allowed []string) ssh.PublicKeyHandler {
	if len(allowed) == 0 {
		log.Warn("SSH_ALLOWED_FINGERPRINTS not set, accepting any public key")
	}
	set := make(map[string]struct{}, len(allowed))
	for _, fp := range allowed {
		set[fp] = struct{}{}
	}
	return func(ctx ssh.Context, key ssh.PublicKey) bool {
		fingerprint := gossh.FingerprintSHA256(key)
		if allowFingerprint(set, fingerprint) {
			log.Info("SSH auth accepted", "fingerprint", fingerprint)
			return true
		}
		log.Warn("SSH auth denied", "fingerprint", fingerprint)
		return false
	}
}

func allowFingerprint(allowed map[string]struct{}, fingerprint string) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[fingerprint]
	return ok
}
