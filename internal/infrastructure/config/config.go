// Package config loads the process configuration from environment variables.
// Security-sensitive values (signing secret, store selection) are read once
// at startup; changing them requires a restart.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store backend identifiers accepted in STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// StoreBackend selects the active user store: memory, mongo, postgres,
	// or redis.
	StoreBackend string `env:"STORE_BACKEND, default=memory"`

	JWT      JWTConfig
	Hash     HashConfig
	Mongo    MongoConfig
	Postgres PostgresConfig
	Redis    RedisConfig
}

type JWTConfig struct {
	Secret            string `env:"JWT_SECRET"`
	Issuer            string `env:"JWT_ISSUER,   default=auth-service"`
	Audience          string `env:"JWT_AUDIENCE, default=auth-service-clients"`
	ExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES, default=60"`
}

// Expiration returns the configured token lifetime.
func (c JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationMinutes) * time.Minute
}

type HashConfig struct {
	Algorithm     string `env:"HASH_ALGORITHM, default=argon2id"`
	BcryptCost    int    `env:"HASH_BCRYPT_COST,    default=12"`
	Argon2Time    uint32 `env:"HASH_ARGON2_TIME,    default=1"`
	Argon2Memory  uint32 `env:"HASH_ARGON2_MEMORY,  default=65536"`
	Argon2Threads uint8  `env:"HASH_ARGON2_THREADS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_service"`
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig
// and validates it. Any failure here is fatal: the process must not start
// with a broken auth configuration.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the parts of the configuration that cannot be defaulted.
// Signing-secret strength is enforced where the key is consumed, in the
// token service constructor.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendMongo, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("config: unknown store backend %q", c.StoreBackend)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.JWT.ExpirationMinutes <= 0 {
		return fmt.Errorf("config: JWT_EXPIRATION_MINUTES must be positive, got %d", c.JWT.ExpirationMinutes)
	}

	if c.StoreBackend == BackendPostgres && c.Postgres.DSN == "" {
		return fmt.Errorf("config: POSTGRES_DSN is required for the postgres backend")
	}
	return nil
}
