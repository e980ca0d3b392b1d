package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET, required"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	CNPJ    CNPJConfig
	Events  EventsConfig
}

type SessionConfig struct {
	TokenTTL       time.Duration `env:"TOKEN_TTL,               default=24h"`
	Cookie         string        `env:"SESSION_COOKIE,          default=veicsys_session"`
	ResolveTimeout time.Duration `env:"SESSION_RESOLVE_TIMEOUT, default=2s"`
	// PreserveReturnPath appends ?next= to login redirects.
	PreserveReturnPath bool          `env:"PRESERVE_RETURN_PATH, default=false"`
	ProfileCacheTTL    time.Duration `env:"PROFILE_CACHE_TTL,    default=5m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=veicsys"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type CNPJConfig struct {
	APIURL  string        `env:"CNPJ_API_URL,     default=https://brasilapi.com.br/api/cnpj/v1"`
	Timeout time.Duration `env:"CNPJ_API_TIMEOUT, default=10s"`
}

type EventsConfig struct {
	Workers int `env:"EVENT_WORKERS, default=8"`
}

// IsDevelopment reports whether the service runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Events.Workers < 1 {
		return nil, fmt.Errorf("config: EVENT_WORKERS must be at least 1, got %d", cfg.Events.Workers)
	}
	if cfg.Session.ResolveTimeout <= 0 {
		return nil, fmt.Errorf("config: SESSION_RESOLVE_TIMEOUT must be positive")
	}
	return &cfg, nil
}
