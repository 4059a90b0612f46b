package app

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"session-service/internal/clock"
	"session-service/internal/config"
	"session-service/internal/db"
	"session-service/internal/logger"
	"session-service/internal/redis"
	"session-service/internal/session"
)

type Infra struct {
	Store   session.Store
	cleanup func() error
}

func setupInfra(ctx context.Context, cfg config.Config, clk *clock.Clock) (*Infra, error) {
	switch cfg.StoreBackend {

	case "memory":
		store := session.NewMemoryStore(clk)
		store.StartSweeper(cfg.SweepInterval, cfg.MaxInactivity)

		logger.Info("in-memory session store ready", map[string]any{
			"sweepInterval": cfg.SweepInterval.String(),
			"maxInactivity": cfg.MaxInactivity.String(),
		})

		return &Infra{
			Store:   store,
			cleanup: store.Close,
		}, nil

	case "redis":
		client, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}

		logger.Info("redis session store ready", map[string]any{
			"addr": cfg.RedisAddr,
		})

		return &Infra{
			Store:   session.NewRedisStore(client.Client),
			cleanup: client.Close,
		}, nil

	case "postgres":
		sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}

		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}

		if err := db.RunSessionsMigration(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("postgres migration: %w", err)
		}

		logger.Info("postgres session store ready", nil)

		return &Infra{
			Store:   session.NewPostgresStore(sqlDB),
			cleanup: sqlDB.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
