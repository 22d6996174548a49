package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
)

func stubRedis(t *testing.T, pingErr error) *string {
	t.Helper()

	origNewClient := newRedisClient
	origPing := pingRedis
	t.Cleanup(func() {
		newRedisClient = origNewClient
		pingRedis = origPing
		Client = nil
	})

	captured := new(string)
	newRedisClient = func(opts *redis.Options) *redis.Client {
		*captured = opts.Addr
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return pingErr
	}
	return captured
}

func TestInitRedisWithCustomAddr(t *testing.T) {
	captured := stubRedis(t, nil)

	InitRedis(context.Background(), "redis:9999")
	if *captured != "redis:9999" {
		t.Fatalf("expected custom addr, got %s", *captured)
	}
	if Client == nil {
		t.Fatal("expected client to be set")
	}
}

func TestInitRedisParsesURL(t *testing.T) {
	captured := stubRedis(t, nil)

	InitRedis(context.Background(), "redis://cache:6380/2")
	if *captured != "cache:6380" {
		t.Fatalf("expected parsed addr, got %s", *captured)
	}
}

func TestInitRedisSkipsWithoutURL(t *testing.T) {
	captured := stubRedis(t, nil)

	InitRedis(context.Background(), "")
	if *captured != "" || Client != nil {
		t.Fatalf("redis should not be initialised, addr=%q", *captured)
	}
}

func TestInitRedisPingFailureLeavesClientNil(t *testing.T) {
	stubRedis(t, errors.New("connection refused"))

	InitRedis(context.Background(), "redis:9999")
	if Client != nil {
		t.Fatal("client should stay nil when ping fails")
	}
}
