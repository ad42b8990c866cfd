package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Upstream UpstreamConfig
	Redis    RedisConfig
	Session  SessionConfig
	Checkout CheckoutConfig
}

type UpstreamConfig struct {
	// GraphQLURL is the ordering API endpoint the gateway fronts.
	GraphQLURL string        `env:"UPSTREAM_GRAPHQL_URL, default=http://localhost:3000/graphql"`
	Timeout    time.Duration `env:"UPSTREAM_TIMEOUT,     default=10s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type SessionConfig struct {
	// ResolveBudget bounds how long a guarded request waits for the
	// authoritative profile fetch before answering with a waiting state.
	ResolveBudget time.Duration `env:"SESSION_RESOLVE_BUDGET, default=2s"`
	// ProfileTTL is the memoization window for resolved profiles.
	ProfileTTL time.Duration `env:"PROFILE_CACHE_TTL, default=60s"`
}

type CheckoutConfig struct {
	// CompensationWorkers sizes the worker pool cancelling unpaid orders.
	CompensationWorkers int `env:"COMPENSATION_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
