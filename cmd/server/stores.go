package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/config"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/handlers"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/repository"
	"github.com/robfig/cron"
)

// stores holds the configured repositories and how to release them
type stores struct {
	Carts        repository.CartRepository
	Orders       repository.OrderRepository
	Status       repository.StatusRepository
	HealthChecks map[string]handlers.HealthCheck

	closers []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStores connects the backends named in cfg. Memory backends need no connection.
func openStores(ctx context.Context, cfg config.StorageConfig, scheduler *cron.Cron, log *slog.Logger) (*stores, error) {
	s := &stores{HealthChecks: make(map[string]handlers.HealthCheck)}
	ttl := time.Duration(cfg.CartTTLMinutes) * time.Minute

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch cfg.CartBackend {
	case "redis":
		client, err := repository.NewRedisClient(connectCtx, cfg.RedisURL)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = client.Close() })
		s.HealthChecks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		s.Carts = repository.NewRedisCartRepository(client, "", ttl)
		log.Info("cart store ready", "backend", "redis", "ttl", ttl.String())
	default:
		carts := repository.NewInMemoryCartRepository(ttl)
		if err := carts.ScheduleSweep(scheduler, cfg.CartSweepSpec, log); err != nil {
			s.Close()
			return nil, fmt.Errorf("invalid cart sweep schedule %q: %w", cfg.CartSweepSpec, err)
		}
		s.Carts = carts
		log.Info("cart store ready", "backend", "memory", "ttl", ttl.String(), "sweep", cfg.CartSweepSpec)
	}

	switch cfg.OrderBackend {
	case "postgres":
		db, err := repository.OpenPostgres(connectCtx, cfg.PostgresDSN)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = db.Close() })
		s.HealthChecks["postgres"] = db.PingContext

		orders := repository.NewPostgresOrderRepository(db)
		if err := orders.EnsureSchema(connectCtx); err != nil {
			s.Close()
			return nil, err
		}
		s.Orders = orders
		log.Info("order journal ready", "backend", "postgres")
	default:
		s.Orders = repository.NewInMemoryOrderRepository()
		log.Info("order journal ready", "backend", "memory")
	}

	switch cfg.StatusBackend {
	case "mongo":
		client, err := repository.ConnectMongo(connectCtx, cfg.MongoURI)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		})
		s.HealthChecks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		s.Status = repository.NewMongoStatusRepository(client, cfg.MongoDatabase)
		log.Info("status store ready", "backend", "mongo", "database", cfg.MongoDatabase)
	default:
		s.Status = repository.NewInMemoryStatusRepository()
		log.Info("status store ready", "backend", "memory")
	}

	return s, nil
}
