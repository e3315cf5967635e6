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

	"github.com/rs/zerolog"

	"github.com/timetrack/auth-service/internal/api"
	"github.com/timetrack/auth-service/internal/core/authz"
	"github.com/timetrack/auth-service/internal/core/password"
	"github.com/timetrack/auth-service/internal/core/ports"
	"github.com/timetrack/auth-service/internal/core/service"
	"github.com/timetrack/auth-service/internal/infrastructure/config"
	"github.com/timetrack/auth-service/internal/infrastructure/db/memory"
	mongodb "github.com/timetrack/auth-service/internal/infrastructure/db/mongo"
	"github.com/timetrack/auth-service/internal/infrastructure/db/postgres"
	redisdb "github.com/timetrack/auth-service/internal/infrastructure/db/redis"
	"github.com/timetrack/auth-service/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	hasher, err := password.NewHasher(password.Config{
		Algorithm:     password.Algorithm(cfg.Hash.Algorithm),
		BcryptCost:    cfg.Hash.BcryptCost,
		Argon2Time:    cfg.Hash.Argon2Time,
		Argon2Memory:  cfg.Hash.Argon2Memory,
		Argon2Threads: cfg.Hash.Argon2Threads,
	})
	if err != nil {
		return err
	}

	store, ping, cleanup, err := buildStore(ctx, cfg, hasher)
	if err != nil {
		return err
	}
	defer cleanup()
	log.Info().Str("backend", cfg.StoreBackend).Msg("user store ready")

	tokens, err := service.NewTokenService(service.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		Audience:   cfg.JWT.Audience,
		Expiration: cfg.JWT.Expiration(),
	})
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		AuthService:  service.NewAuthService(store, tokens),
		Store:        store,
		Authorizer:   authz.NewAuthorizer(tokens),
		StoreBackend: cfg.StoreBackend,
		StorePing:    ping,
		Log:          log,
	})

	serverErrs := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrs <- fmt.Errorf("listen and serve: %w", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrs:
		return err
	case sig := <-shutdown:
		log.Info().Stringer("signal", sig).Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			_ = e.Close()
			return fmt.Errorf("shutdown http server: %w", err)
		}
	}
	return nil
}

// buildStore constructs the configured user store backend along with a
// readiness ping and a cleanup function for its connection.
func buildStore(ctx context.Context, cfg *config.Config, hasher password.Hasher) (ports.UserStore, func(context.Context) error, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		store, err := memory.NewUserStore(hasher)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, func(context.Context) error { return nil }, noop, nil

	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		store, err := mongodb.NewUserStore(ctx, db, hasher)
		if err != nil {
			return nil, nil, nil, err
		}
		ping := func(ctx context.Context) error { return client.Ping(ctx, nil) }
		cleanup := func() { _ = client.Disconnect(context.Background()) }
		return store, ping, cleanup, nil

	case config.BackendPostgres:
		db, err := postgres.Open(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return nil, nil, nil, err
		}
		ping := func(ctx context.Context) error { return db.PingContext(ctx) }
		cleanup := func() { _ = db.Close() }
		return postgres.NewUserStore(db, hasher), ping, cleanup, nil

	case config.BackendRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		store, err := redisdb.NewUserStore(ctx, client, hasher)
		if err != nil {
			return nil, nil, nil, err
		}
		ping := func(ctx context.Context) error { return client.Ping(ctx).Err() }
		cleanup := func() { _ = client.Close() }
		return store, ping, cleanup, nil
	}

	return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
