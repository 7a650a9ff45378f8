package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"credit-score/config"
	"credit-score/repository"
)

// stores holds the client repository and score cache selected by the
// configuration, plus whatever must be closed on exit. The repository is
// health checked through ClientService.Ready.
type stores struct {
	clients   repository.ClientRepository
	cache     repository.CacheRepository
	cachePing func(context.Context) error
	closers   []func() error
}

func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (*stores, error) {
	s := &stores{}

	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, clients are kept in memory")
		s.clients = repository.NewClientRepositoryMemory()
	} else {
		if err := repository.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
			return nil, err
		}
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() error { pool.Close(); return nil })
		s.clients = repository.NewPostgresClientRepository(pool)
		log.Info("using postgres client store")
	}

	if cfg.RedisAddr == "" {
		s.cache = repository.NewMemoryCache()
	} else {
		redisCache := repository.NewRedisCache(cfg.RedisAddr)
		if err := redisCache.Ping(ctx); err != nil {
			_ = redisCache.Close()
			_ = s.close()
			return nil, fmt.Errorf("redis: ping %s: %w", cfg.RedisAddr, err)
		}
		s.cache = redisCache
		s.cachePing = redisCache.Ping
		s.closers = append(s.closers, redisCache.Close)
		log.Info("using redis score cache", "addr", cfg.RedisAddr)
	}

	return s, nil
}

// checks returns the readiness checks for the stores, led by the client
// service's own.
func (s *stores) checks(svcReady func(context.Context) error) []func(context.Context) error {
	checks := []func(context.Context) error{svcReady}
	if s.cachePing != nil {
		checks = append(checks, s.cachePing)
	}
	return checks
}

func (s *stores) close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}
