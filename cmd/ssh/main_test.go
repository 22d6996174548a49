package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"os"
	"testing"
	"time"

	"asteroid-tracker/internal/config"
	"asteroid-tracker/internal/repository"
	"asteroid-tracker/internal/service"

	"github.com/charmbracelet/ssh"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	gossh "golang.org/x/crypto/ssh"
)

func TestMainBootstrap(t *testing.T) {
	restore := stubSSHDeps()
	defer restore()

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
}

func TestPublicKeyHandler(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	key, err := gossh.NewPublicKey(pub)
	if err != nil {
		t.Fatalf("wrap key: %v", err)
	}
	fingerprint := gossh.FingerprintSHA256(key)

	if !publicKeyHandler(nil)(nil, key) {
		t.Fatal("empty allow-list should admit any key")
	}
	if !publicKeyHandler([]string{"SHA256:other", fingerprint})(nil, key) {
		t.Fatal("listed fingerprint should be admitted")
	}
	if publicKeyHandler([]string{"SHA256:other"})(nil, key) {
		t.Fatal("unlisted fingerprint should be denied")
	}
}

func stubSSHDeps() func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitPostgres := initPostgresFunc
	origInitTracer := initTracerFunc
	origNewStore := newStoreFunc
	origNewWishServer := newWishServerFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func(context.Context) (*config.Config, error) {
		return &config.Config{
			SSHPort:        2222,
			SSHHostKeyPath: ".ssh/test_key",
		}, nil
	}
	initPostgresFunc = func(context.Context, string) {}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	newStoreFunc = func(context.Context, trace.Tracer) (service.AsteroidStore, error) {
		return repository.NewMemoryAsteroidStore(nil), nil
	}
	newWishServerFunc = func(ops ...ssh.Option) (*ssh.Server, error) {
		return nil, nil
	}
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initPostgresFunc = origInitPostgres
		initTracerFunc = origInitTracer
		newStoreFunc = origNewStore
		newWishServerFunc = origNewWishServer
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
	}
}
