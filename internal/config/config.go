package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sethvargo/go-envconfig"
)

const DefaultNASAAPIURL = "https://api.nasa.gov/neo/rest/v1/feed"

type Config struct {
	NASAAPIKey string `env:"NASA_API_KEY"`
	NASAAPIURL string `env:"NASA_API_URL,default=https://api.nasa.gov/neo/rest/v1/feed"`

	HTTPPort int    `env:"HTTP_PORT,default=8080"`
	APIKey   string `env:"API_KEY"`

	DatabaseURL      string `env:"DATABASE_URL"`
	RedisURL         string `env:"REDIS_URL"`
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`

	SSHPort                int      `env:"SSH_PORT,default=2222"`
	SSHHostKeyPath         string   `env:"SSH_HOST_KEY_PATH,default=.ssh/asteroid_ed25519"`
	SSHAllowedFingerprints []string `env:"SSH_ALLOWED_FINGERPRINTS"`

	MCPTransport          string `env:"MCP_TRANSPORT,default=stdio"`
	MCPHTTPBind           string `env:"MCP_HTTP_BIND,default=127.0.0.1"`
	MCPHTTPPort           int    `env:"MCP_HTTP_PORT,default=8090"`
	MCPAuthToken          string `env:"MCP_AUTH_TOKEN"`
	MCPRequestTimeoutSecs int    `env:"MCP_REQUEST_TIMEOUT_SECS,default=30"`
	MCPRateLimitPerMin    int    `env:"MCP_RATE_LIMIT_PER_MIN,default=60"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`
}

// Load reads the configuration from the environment. Missing optional
// services are reported as warnings; malformed values are errors.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("process config: %w", err)
	}

	if strings.TrimSpace(cfg.NASAAPIKey) == "" {
		log.Warn("NASA_API_KEY not set, feed fetches will fail")
	}
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory store")
	}
	if cfg.RedisURL == "" {
		log.Warn("REDIS_URL not set, fetch run log disabled")
	}

	cfg.NASAAPIURL = strings.TrimSpace(cfg.NASAAPIURL)
	if cfg.NASAAPIURL == "" {
		cfg.NASAAPIURL = DefaultNASAAPIURL
	}

	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(cfg.MCPTransport))
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Warn("unsupported MCP_TRANSPORT, defaulting to stdio", "value", cfg.MCPTransport)
		cfg.MCPTransport = "stdio"
	}

	if cfg.HTTPPort <= 0 {
		cfg.HTTPPort = 8080
	}
	if cfg.SSHPort <= 0 {
		cfg.SSHPort = 2222
	}
	if cfg.MCPHTTPPort <= 0 {
		cfg.MCPHTTPPort = 8090
	}
	if cfg.MCPRequestTimeoutSecs <= 0 {
		cfg.MCPRequestTimeoutSecs = 30
	}
	if cfg.MCPRateLimitPerMin <= 0 {
		cfg.MCPRateLimitPerMin = 60
	}

	fingerprints := cfg.SSHAllowedFingerprints[:0]
	for _, fp := range cfg.SSHAllowedFingerprints {
		if fp = strings.TrimSpace(fp); fp != "" {
			fingerprints = append(fingerprints, fp)
		}
	}
	cfg.SSHAllowedFingerprints = fingerprints

	return &cfg, nil
}
