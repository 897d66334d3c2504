package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/loginapi/login-service/internal/api/handler"
	"github.com/loginapi/login-service/internal/core/ports"
	"github.com/loginapi/login-service/internal/infrastructure/db/memory"
	mongostore "github.com/loginapi/login-service/internal/infrastructure/db/mongo"
	pgstore "github.com/loginapi/login-service/internal/infrastructure/db/postgres"
	redisstore "github.com/loginapi/login-service/internal/infrastructure/db/redis"
	"github.com/loginapi/login-service/internal/pkg/config"
)

// userStore is a credential store that can also be seeded at startup.
type userStore interface {
	ports.UserRepository
	ports.UserSeeder
}

// stores is the credential store selected by configuration plus the backends
// the readiness probe pings and shutdown releases.
type stores struct {
	users   userStore
	checks  []handler.DependencyCheck
	closers []func(context.Context) error
}

// close releases every backend in reverse order of acquisition.
func (s *stores) close(ctx context.Context, log zerolog.Logger) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			log.Error().Err(err).Msg("backend close failed")
		}
	}
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	s := &stores{}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		s.users = memory.NewUserRepository()

	case config.DriverPostgres:
		if cfg.Postgres.Migrate {
			if err := pgstore.Migrate(ctx, cfg.Postgres.DSN); err != nil {
				return nil, err
			}
			log.Info().Msg("postgres migrations applied")
		}
		pool, err := pgstore.Connect(ctx, pgstore.Config{
			DSN:      cfg.Postgres.DSN,
			MaxConns: cfg.Postgres.MaxConns,
		})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error {
			pool.Close()
			return nil
		})

		repo := pgstore.NewUserRepository(pool)
		s.users = repo
		s.checks = append(s.checks, handler.DependencyCheck{Name: "postgres", Ping: repo.Ping})

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Disconnect)

		repo := mongostore.NewUserRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			s.close(ctx, log)
			return nil, err
		}
		s.users = repo
		s.checks = append(s.checks, handler.DependencyCheck{Name: "mongodb", Ping: repo.Ping})

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if cfg.Redis.Enabled {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			s.close(ctx, log)
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return client.Close() })

		cached := redisstore.NewCachedUserRepository(s.users, client, cfg.Redis.CacheTTL, log)
		s.users = cached
		s.checks = append(s.checks, handler.DependencyCheck{Name: "redis", Ping: cached.Ping})
	}

	return s, nil
}
