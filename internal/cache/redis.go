package cache

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// Client stays nil when REDIS_URL is unset or unreachable; the fetch run
// log is optional.
var Client *redis.Client

var (
	newRedisClient = func(opts *redis.Options) *redis.Client {
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
	parseRedisURL = redis.ParseURL
)

// InitRedis connects to addr, a host:port or redis:// URL. An empty addr
// leaves Client nil.
func InitRedis(ctx context.Context, addr string) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		log.Warn("REDIS_URL not set, skipping Redis")
		return
	}

	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := parseRedisURL(addr)
		if err != nil {
			log.Fatal("failed to parse REDIS_URL", "err", err)
		}
		opts = parsed
	}

	client := newRedisClient(opts)
	if err := pingRedis(ctx, client); err != nil {
		log.Warn("failed to connect to Redis, fetch run log disabled", "err", err)
		_ = client.Close()
		return
	}
	Client = client
	log.Info("Connected to Redis", "addr", opts.Addr)
}
