package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Tier is the deployment tier. It drives the quota store's fail-open /
// fail-closed policy.
type Tier string

const (
	TierDev  Tier = "dev"
	TierProd Tier = "prod"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Redis     RedisConfig
	OpenAI    OpenAIConfig
	Quota     QuotaConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Log       LogConfig
}

type AppConfig struct {
	Env Tier
}

type ServerConfig struct {
	Host string
	Port int
}

// RedisConfig describes the counter store. An empty Host means Redis is not
// configured; the quota store's tier policy decides what that means.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c RedisConfig) Configured() bool {
	return c.Host != ""
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type QuotaConfig struct {
	DailyCap int
}

type AdminConfig struct {
	Password string
}

// RateLimitConfig bounds per-client requests to the metered endpoint.
type RateLimitConfig struct {
	MaxRequests int
	WindowSec   int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Load .env file if it exists (ignore error if missing)
	_ = k.Load(file.Provider(".env"), dotenv.Parser())

	// Load environment variables (override .env)
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "_", "."))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env: Tier(k.String("app.env")),
		},
		Server: ServerConfig{
			Host: k.String("server.host"),
			Port: k.Int("server.port"),
		},
		Redis: RedisConfig{
			Host:     k.String("redis.host"),
			Port:     k.Int("redis.port"),
			Password: k.String("redis.password"),
			DB:       k.Int("redis.db"),
		},
		OpenAI: OpenAIConfig{
			APIKey: k.String("openai.api.key"),
			Model:  k.String("openai.model"),
		},
		Quota: QuotaConfig{
			DailyCap: k.Int("quota.daily.cap"),
		},
		Admin: AdminConfig{
			Password: k.String("admin.password"),
		},
		RateLimit: RateLimitConfig{
			MaxRequests: k.Int("ratelimit.max.requests"),
			WindowSec:   k.Int("ratelimit.window.sec"),
		},
		CORS: CORSConfig{
			AllowedOrigins: k.Strings("cors.allowed.origins"),
		},
		Log: LogConfig{
			Level:  k.String("log.level"),
			Format: k.String("log.format"),
		},
	}

	// Apply defaults
	if cfg.App.Env == "" {
		cfg.App.Env = TierDev
	}
	if cfg.App.Env != TierDev && cfg.App.Env != TierProd {
		return nil, fmt.Errorf("invalid app env %q: must be dev or prod", cfg.App.Env)
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Redis.Configured() && cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.Quota.DailyCap == 0 {
		cfg.Quota.DailyCap = 500
	}
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = 30
	}
	if cfg.RateLimit.WindowSec == 0 {
		cfg.RateLimit.WindowSec = 86400
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "debug"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	// Parse durations
	timeoutStr := k.String("openai.timeout")
	if timeoutStr == "" {
		timeoutStr = "30s"
	}
	cfg.OpenAI.Timeout, err = time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("parsing openai timeout: %w", err)
	}

	return cfg, nil
}
